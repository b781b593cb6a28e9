package settings

import (
	"strconv"

	"mit.edu/dsg/plansig/common"
)

// IntSetting is an integer tunable with an inclusive valid range.
type IntSetting struct {
	baseSetting
	defaultValue       int64
	minValue, maxValue int64
}

var _ extendedSetting = &IntSetting{}

// Get retrieves the int value in the setting.
func (i *IntSetting) Get(sv *Values) int64 {
	return sv.getInt64(i.slotIdx)
}

func (i *IntSetting) String(sv *Values) string {
	return EncodeInt(i.Get(sv))
}

// Encoded returns the encoded value of the current value of the setting.
func (i *IntSetting) Encoded(sv *Values) string {
	return i.String(sv)
}

// EncodedDefault returns the encoded value of the default value of the setting.
func (i *IntSetting) EncodedDefault() string {
	return EncodeInt(i.defaultValue)
}

// Typ returns the short (1 char) string denoting the type of setting.
func (*IntSetting) Typ() string {
	return "i"
}

// Default returns the default value.
func (i *IntSetting) Default() int64 {
	return i.defaultValue
}

// Validate checks that v lies within the setting's range.
func (i *IntSetting) Validate(v int64) error {
	if v < i.minValue || v > i.maxValue {
		return common.NewError(common.InvalidSettingError,
			"%d is outside the valid range for %s (%d .. %d)", v, i.key, i.minValue, i.maxValue)
	}
	return nil
}

// Override changes the setting without validation.
//
// For testing usage only.
func (i *IntSetting) Override(sv *Values, v int64) {
	sv.setInt64(i.slotIdx, v)
}

func (i *IntSetting) set(sv *Values, v int64) error {
	if err := i.Validate(v); err != nil {
		return err
	}
	sv.setInt64(i.slotIdx, v)
	return nil
}

func (i *IntSetting) decodeAndSet(sv *Values, encoded string) error {
	v, err := strconv.ParseInt(encoded, 10, 64)
	if err != nil {
		return common.NewError(common.InvalidSettingError, "invalid value %q for %s: expected an integer", encoded, i.key)
	}
	return i.set(sv, v)
}

func (i *IntSetting) setToDefault(sv *Values) {
	if err := i.set(sv, i.defaultValue); err != nil {
		panic(err)
	}
}

// RegisterIntSetting defines a new setting with type int.
func RegisterIntSetting(key, desc string, defaultValue, minValue, maxValue int64) *IntSetting {
	common.Assert(minValue <= defaultValue && defaultValue <= maxValue, "default of %s outside its range", key)
	s := &IntSetting{defaultValue: defaultValue, minValue: minValue, maxValue: maxValue}
	register(key, desc, s, &s.baseSetting)
	return s
}
