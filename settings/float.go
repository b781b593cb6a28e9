package settings

import (
	"math"
	"strconv"

	"mit.edu/dsg/plansig/common"
)

// FloatSetting is a floating point tunable with an inclusive valid range. The
// value is kept as its IEEE 754 bits in an int64 slot.
type FloatSetting struct {
	baseSetting
	defaultValue       float64
	minValue, maxValue float64
}

var _ extendedSetting = &FloatSetting{}

// Get retrieves the float value in the setting.
func (f *FloatSetting) Get(sv *Values) float64 {
	return math.Float64frombits(uint64(sv.getInt64(f.slotIdx)))
}

func (f *FloatSetting) String(sv *Values) string {
	return EncodeFloat(f.Get(sv))
}

// Encoded returns the encoded value of the current value of the setting.
func (f *FloatSetting) Encoded(sv *Values) string {
	return f.String(sv)
}

// EncodedDefault returns the encoded value of the default value of the setting.
func (f *FloatSetting) EncodedDefault() string {
	return EncodeFloat(f.defaultValue)
}

// Typ returns the short (1 char) string denoting the type of setting.
func (*FloatSetting) Typ() string {
	return "f"
}

// Default returns the default value.
func (f *FloatSetting) Default() float64 {
	return f.defaultValue
}

// Validate checks that v is a finite number within the setting's range.
func (f *FloatSetting) Validate(v float64) error {
	if math.IsNaN(v) || v < f.minValue || v > f.maxValue {
		return common.NewError(common.InvalidSettingError,
			"%s is outside the valid range for %s (%s .. %s)",
			EncodeFloat(v), f.key, EncodeFloat(f.minValue), EncodeFloat(f.maxValue))
	}
	return nil
}

// Override changes the setting without validation.
//
// For testing usage only.
func (f *FloatSetting) Override(sv *Values, v float64) {
	sv.setInt64(f.slotIdx, int64(math.Float64bits(v)))
}

func (f *FloatSetting) set(sv *Values, v float64) error {
	if err := f.Validate(v); err != nil {
		return err
	}
	sv.setInt64(f.slotIdx, int64(math.Float64bits(v)))
	return nil
}

func (f *FloatSetting) decodeAndSet(sv *Values, encoded string) error {
	v, err := strconv.ParseFloat(encoded, 64)
	if err != nil {
		return common.NewError(common.InvalidSettingError, "invalid value %q for %s: expected a number", encoded, f.key)
	}
	return f.set(sv, v)
}

func (f *FloatSetting) setToDefault(sv *Values) {
	if err := f.set(sv, f.defaultValue); err != nil {
		panic(err)
	}
}

// RegisterFloatSetting defines a new setting with type float.
func RegisterFloatSetting(key, desc string, defaultValue, minValue, maxValue float64) *FloatSetting {
	common.Assert(minValue <= defaultValue && defaultValue <= maxValue, "default of %s outside its range", key)
	s := &FloatSetting{defaultValue: defaultValue, minValue: minValue, maxValue: maxValue}
	register(key, desc, s, &s.baseSetting)
	return s
}
