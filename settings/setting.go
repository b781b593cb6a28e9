// Package settings holds the engine's runtime tunables.
//
// Each tunable is registered once, at package initialization, as a typed
// setting (IntSetting, FloatSetting) with a default and a valid range. The
// current values live in a Values container; every read goes to the container,
// so readers always observe the latest value and never a cached copy.
package settings

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"sync/atomic"

	"mit.edu/dsg/plansig/common"
)

// Setting is the interface shared by all typed settings.
type Setting interface {
	// Key returns the name the setting is set and reported by.
	Key() string
	// Description returns a one-line description of the setting.
	Description() string
	// Typ returns the short (1 char) string denoting the type of setting.
	Typ() string
	// Encoded returns the current value in its textual form.
	Encoded(sv *Values) string
	// EncodedDefault returns the default value in its textual form.
	EncodedDefault() string
}

type extendedSetting interface {
	Setting
	decodeAndSet(sv *Values, encoded string) error
	setToDefault(sv *Values)
	slot() int
}

type baseSetting struct {
	key         string
	description string
	slotIdx     int
}

func (b *baseSetting) Key() string         { return b.key }
func (b *baseSetting) Description() string { return b.description }
func (b *baseSetting) slot() int           { return b.slotIdx }

var registry = make(map[string]extendedSetting)
var registryOrder []extendedSetting

func register(key, desc string, s extendedSetting, b *baseSetting) {
	common.Assert(registry[key] == nil, "setting %s registered twice", key)
	b.key = key
	b.description = desc
	b.slotIdx = len(registryOrder)
	registry[key] = s
	registryOrder = append(registryOrder, s)
}

// Lookup returns the setting registered under key.
func Lookup(key string) (Setting, bool) {
	s, ok := registry[key]
	return s, ok
}

// Keys returns the keys of all registered settings in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(registry))
	for k := range registry {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Values holds the current value of every registered setting. A Values may be
// read and written from multiple goroutines.
type Values struct {
	slots []atomic.Int64
}

// NewValues returns a container with every setting at its default.
func NewValues() *Values {
	sv := &Values{slots: make([]atomic.Int64, len(registryOrder))}
	for _, s := range registryOrder {
		s.setToDefault(sv)
	}
	return sv
}

func (sv *Values) getInt64(slot int) int64 {
	return sv.slots[slot].Load()
}

func (sv *Values) setInt64(slot int, v int64) {
	sv.slots[slot].Store(v)
}

// Set parses encoded and assigns it to the setting named key. Unknown keys and
// values that do not parse or fall outside the setting's range report
// InvalidSettingError; the current value is left unchanged.
func Set(sv *Values, key, encoded string) error {
	s, ok := registry[key]
	if !ok {
		return common.NewError(common.InvalidSettingError, "unrecognized setting %q", key)
	}
	return s.decodeAndSet(sv, strings.TrimSpace(encoded))
}

// Reset returns every setting to its default.
func Reset(sv *Values) {
	for _, s := range registryOrder {
		s.setToDefault(sv)
	}
}

// EncodeInt renders an int setting value.
func EncodeInt(v int64) string {
	return strconv.FormatInt(v, 10)
}

// EncodeFloat renders a float setting value with at least one fractional
// digit, so 2 renders as "2.0".
func EncodeFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if math.IsInf(v, 0) || math.IsNaN(v) || strings.ContainsRune(s, '.') {
		return s
	}
	return s + ".0"
}
