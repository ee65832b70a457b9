package config

import (
	"fmt"
	"math/big"
	"sort"
	"time"

	"github.com/zclconf/go-cty/cty"
)

// ToCtyValue converts a value produced by a generic decoder (YAML, TOML)
// into a cty.Value. Maps become objects and slices become tuples, so that
// heterogeneous documents survive the conversion.
func ToCtyValue(v any) (cty.Value, error) {
	switch tv := v.(type) {
	case nil:
		return cty.NullVal(cty.DynamicPseudoType), nil
	case string:
		return cty.StringVal(tv), nil
	case bool:
		return cty.BoolVal(tv), nil
	case int:
		return cty.NumberIntVal(int64(tv)), nil
	case int8:
		return cty.NumberIntVal(int64(tv)), nil
	case int16:
		return cty.NumberIntVal(int64(tv)), nil
	case int32:
		return cty.NumberIntVal(int64(tv)), nil
	case int64:
		return cty.NumberIntVal(tv), nil
	case uint:
		return cty.NumberUIntVal(uint64(tv)), nil
	case uint8:
		return cty.NumberUIntVal(uint64(tv)), nil
	case uint16:
		return cty.NumberUIntVal(uint64(tv)), nil
	case uint32:
		return cty.NumberUIntVal(uint64(tv)), nil
	case uint64:
		return cty.NumberUIntVal(tv), nil
	case float32:
		return cty.NumberFloatVal(float64(tv)), nil
	case float64:
		return cty.NumberFloatVal(tv), nil
	case *big.Float:
		return cty.NumberVal(tv), nil
	case time.Time:
		return cty.StringVal(tv.Format(time.RFC3339Nano)), nil
	case []any:
		return tupleVal(len(tv), func(i int) any { return tv[i] })
	case []map[string]any:
		return tupleVal(len(tv), func(i int) any { return tv[i] })
	case map[string]any:
		return objectVal(tv)
	case map[any]any:
		converted := make(map[string]any, len(tv))
		for k, val := range tv {
			converted[fmt.Sprint(k)] = val
		}
		return objectVal(converted)
	default:
		return cty.NilVal, fmt.Errorf("unsupported configuration value of type %T", v)
	}
}

func tupleVal(n int, at func(int) any) (cty.Value, error) {
	if n == 0 {
		return cty.EmptyTupleVal, nil
	}
	elems := make([]cty.Value, 0, n)
	for i := 0; i < n; i++ {
		ev, err := ToCtyValue(at(i))
		if err != nil {
			return cty.NilVal, fmt.Errorf("[%d]: %w", i, err)
		}
		elems = append(elems, ev)
	}
	return cty.TupleVal(elems), nil
}

func objectVal(m map[string]any) (cty.Value, error) {
	if len(m) == 0 {
		return cty.EmptyObjectVal, nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	attrs := make(map[string]cty.Value, len(m))
	for _, k := range keys {
		av, err := ToCtyValue(m[k])
		if err != nil {
			return cty.NilVal, fmt.Errorf("%s: %w", k, err)
		}
		attrs[k] = av
	}
	return cty.ObjectVal(attrs), nil
}

// modelFromMap builds a Model from a decoded top-level document.
func modelFromMap(environment, path string, doc map[string]any) (*Model, error) {
	model := NewModel(environment, path)
	for k, v := range doc {
		val, err := ToCtyValue(v)
		if err != nil {
			return nil, fmt.Errorf("configuration %s: key %s: %w", path, k, err)
		}
		model.Attributes[k] = val
	}
	return model, nil
}
