package config

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Model is the loaded configuration of one environment.
type Model struct {
	Environment string
	// Path is the artifact the model was loaded from.
	Path       string
	Attributes map[string]cty.Value
}

// NewModel returns an empty model for environment.
func NewModel(environment, path string) *Model {
	return &Model{
		Environment: environment,
		Path:        path,
		Attributes:  make(map[string]cty.Value),
	}
}

// Keys returns the top-level attribute names in sorted order.
func (m *Model) Keys() []string {
	keys := make([]string, 0, len(m.Attributes))
	for k := range m.Attributes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Value returns the raw attribute. Null values are reported as absent.
func (m *Model) Value(key string) (cty.Value, bool) {
	if m == nil {
		return cty.NilVal, false
	}
	v, ok := m.Attributes[key]
	if !ok || v.IsNull() {
		return cty.NilVal, false
	}
	return v, true
}

// String returns key as a string, or fallback when it is absent or cannot
// be converted.
func (m *Model) String(key, fallback string) string {
	var s string
	if err := m.Decode(key, &s); err != nil {
		return fallback
	}
	return s
}

// Bool returns key as a bool, or fallback when it is absent or cannot be
// converted.
func (m *Model) Bool(key string, fallback bool) bool {
	var b bool
	if err := m.Decode(key, &b); err != nil {
		return fallback
	}
	return b
}

// Decode converts the attribute into target, which must be a non-nil
// pointer. The value is first converted to the cty type implied by the
// target so that, for example, an object decodes into a map.
func (m *Model) Decode(key string, target any) error {
	val, ok := m.Value(key)
	if !ok {
		return fmt.Errorf("configuration key %q is not set", key)
	}

	ptr := reflect.ValueOf(target)
	if ptr.Kind() != reflect.Ptr || ptr.IsNil() {
		return fmt.Errorf("target for decoding must be a non-nil pointer, got %T", target)
	}

	impliedType, err := gocty.ImpliedType(ptr.Elem().Interface())
	if err != nil {
		return gocty.FromCtyValue(val, target)
	}

	converted, err := convert.Convert(val, impliedType)
	if err != nil {
		return fmt.Errorf("configuration key %q: cannot convert %s to %s: %w",
			key, val.Type().FriendlyName(), impliedType.FriendlyName(), err)
	}
	return gocty.FromCtyValue(converted, target)
}
