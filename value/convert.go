package value

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"time"

	"github.com/iancoleman/orderedmap"
)

// maxExactFloat is the largest magnitude at which every integer is exactly
// representable as a float64.
const maxExactFloat = 1 << 53

// From converts a plain Go value into a Value. Maps with string keys become
// Mappings (map[string]any in sorted key order, orderedmap.OrderedMap in its
// own order), slices become Sequences.
func From(x any) (Value, error) {
	switch val := x.(type) {
	case nil:
		return Null(), nil
	case Value:
		return val, nil
	case *Mapping:
		return Map(val), nil
	case string:
		return Scalar(val), nil
	case bool:
		return Bool(val), nil
	case int:
		return Int(int64(val)), nil
	case int8:
		return Int(int64(val)), nil
	case int16:
		return Int(int64(val)), nil
	case int32:
		return Int(int64(val)), nil
	case int64:
		return Int(val), nil
	case uint:
		return fromUint(uint64(val)), nil
	case uint8:
		return Int(int64(val)), nil
	case uint16:
		return Int(int64(val)), nil
	case uint32:
		return Int(int64(val)), nil
	case uint64:
		return fromUint(val), nil
	case float32:
		return Float(float64(val)), nil
	case float64:
		return Float(val), nil
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return Int(i), nil
		}
		f, err := val.Float64()
		if err != nil {
			return Value{}, fmt.Errorf("invalid number %q: %w", val, err)
		}
		return Float(f), nil
	case time.Time:
		return Scalar(val.Format(time.RFC3339Nano)), nil
	case []Value:
		return Sequence(val...), nil
	case []string:
		seq := make([]Value, len(val))
		for i, s := range val {
			seq[i] = Scalar(s)
		}
		return Value{kind: KindSequence, seq: seq}, nil
	case []any:
		seq := make([]Value, len(val))
		for i, item := range val {
			v, err := From(item)
			if err != nil {
				return Value{}, fmt.Errorf("index %d: %w", i, err)
			}
			seq[i] = v
		}
		return Value{kind: KindSequence, seq: seq}, nil
	case map[string]string:
		m := NewMapping()
		for _, k := range sortedKeys(val) {
			m.Set(k, Scalar(val[k]))
		}
		return Map(m), nil
	case map[string]any:
		m := NewMapping()
		for _, k := range sortedKeys(val) {
			v, err := From(val[k])
			if err != nil {
				return Value{}, fmt.Errorf("key %q: %w", k, err)
			}
			m.Set(k, v)
		}
		return Map(m), nil
	case *orderedmap.OrderedMap, orderedmap.OrderedMap:
		return fromOrderedMap(toOrderedMapPtr(val))
	case fmt.Stringer:
		return Scalar(val.String()), nil
	default:
		return Value{}, fmt.Errorf("unsupported value type %T", x)
	}
}

func fromUint(u uint64) Value {
	if u > math.MaxInt64 {
		return Scalar(strconv.FormatUint(u, 10))
	}
	return Int(int64(u))
}

func fromOrderedMap(om *orderedmap.OrderedMap) (Value, error) {
	m := NewMapping()
	for _, k := range om.Keys() {
		raw, _ := om.Get(k)
		v, err := From(raw)
		if err != nil {
			return Value{}, fmt.Errorf("key %q: %w", k, err)
		}
		m.Set(k, v)
	}
	return Map(m), nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// toOrderedMapPtr converts both value and pointer types of OrderedMap to a
// pointer. orderedmap stores nested objects by value after UnmarshalJSON.
func toOrderedMapPtr(v any) *orderedmap.OrderedMap {
	switch val := v.(type) {
	case *orderedmap.OrderedMap:
		return val
	case orderedmap.OrderedMap:
		return &val
	default:
		return nil
	}
}

// FromDecodedJSON converts the output of orderedmap's JSON decoding into a
// Value. Integral numbers that fit a float64 exactly become Int.
func FromDecodedJSON(x any) (Value, error) {
	switch val := x.(type) {
	case float64:
		if val == math.Trunc(val) && math.Abs(val) <= maxExactFloat {
			return Int(int64(val)), nil
		}
		return Float(val), nil
	case []any:
		seq := make([]Value, len(val))
		for i, item := range val {
			v, err := FromDecodedJSON(item)
			if err != nil {
				return Value{}, err
			}
			seq[i] = v
		}
		return Value{kind: KindSequence, seq: seq}, nil
	case *orderedmap.OrderedMap, orderedmap.OrderedMap:
		om := toOrderedMapPtr(val)
		m := NewMapping()
		for _, k := range om.Keys() {
			raw, _ := om.Get(k)
			v, err := FromDecodedJSON(raw)
			if err != nil {
				return Value{}, fmt.Errorf("key %q: %w", k, err)
			}
			m.Set(k, v)
		}
		return Map(m), nil
	default:
		return From(val)
	}
}

// FromJSON parses any JSON document into a Value, keeping object key order.
func FromJSON(data []byte) (Value, error) {
	if !json.Valid(data) {
		return Value{}, fmt.Errorf("invalid JSON document")
	}
	// orderedmap only decodes objects, so the document is wrapped in one.
	wrapped := make([]byte, 0, len(data)+6)
	wrapped = append(wrapped, `{"v":`...)
	wrapped = append(wrapped, data...)
	wrapped = append(wrapped, '}')

	om := orderedmap.New()
	if err := om.UnmarshalJSON(wrapped); err != nil {
		return Value{}, err
	}
	raw, _ := om.Get("v")
	return FromDecodedJSON(raw)
}

// Native converts v into plain Go values: nil, string, int64, float64, bool,
// []any and *orderedmap.OrderedMap.
func (v Value) Native() any {
	switch v.kind {
	case KindScalar:
		return v.str
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	case KindBool:
		return v.b
	case KindSequence:
		out := make([]any, len(v.seq))
		for i, item := range v.seq {
			out[i] = item.Native()
		}
		return out
	case KindMapping:
		om := orderedmap.New()
		om.SetEscapeHTML(false)
		for _, k := range v.m.Keys() {
			item, _ := v.m.Get(k)
			om.Set(k, item.Native())
		}
		return om
	default:
		return nil
	}
}
