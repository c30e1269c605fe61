// Package value defines the typed value model returned and accepted by every
// configuration format.
//
// A Value is a tagged union. Text-based formats (INI, properties) produce only
// Scalar leaves; formats with native types (JSON, YAML, TOML) produce Int,
// Float, Bool and Null leaves directly. Coerce reinterprets Scalar text as typed
// values on request.
package value

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Kind identifies which member of the union a Value holds.
type Kind uint8

const (
	KindNull Kind = iota
	KindScalar
	KindInt
	KindFloat
	KindBool
	KindSequence
	KindMapping
)

var kindNames = map[Kind]string{
	KindNull:     "null",
	KindScalar:   "string",
	KindInt:      "int",
	KindFloat:    "float",
	KindBool:     "bool",
	KindSequence: "list",
	KindMapping:  "map",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// ParseKind maps a type name such as "int" or "map" to its Kind.
func ParseKind(name string) (Kind, error) {
	switch name {
	case "null", "nil":
		return KindNull, nil
	case "string", "str", "scalar":
		return KindScalar, nil
	case "int", "integer":
		return KindInt, nil
	case "float", "number":
		return KindFloat, nil
	case "bool", "boolean":
		return KindBool, nil
	case "list", "sequence", "array":
		return KindSequence, nil
	case "map", "mapping", "dict", "object":
		return KindMapping, nil
	}
	return KindNull, fmt.Errorf("unknown value type %q", name)
}

// Value is an immutable-by-convention configuration value. The zero Value is
// Null. Sequence and Mapping values share their backing storage when copied;
// use Clone for an independent copy.
type Value struct {
	kind Kind
	str  string
	i    int64
	f    float64
	b    bool
	seq  []Value
	m    *Mapping

	// datetime marks Scalar text that came from a date or time literal.
	datetime bool
}

// Null returns the null value.
func Null() Value { return Value{} }

// Scalar returns an untyped text value.
func Scalar(s string) Value { return Value{kind: KindScalar, str: s} }

// DateTime returns Scalar text that holds a date, time or date-time
// literal. It behaves like any other Scalar; formats with a native date type
// write it back unquoted.
func DateTime(s string) Value { return Value{kind: KindScalar, str: s, datetime: true} }

// Int returns an integer value.
func Int(i int64) Value { return Value{kind: KindInt, i: i} }

// Float returns a floating-point value.
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Sequence returns an ordered list of values. The items slice is copied.
func Sequence(items ...Value) Value {
	seq := make([]Value, len(items))
	copy(seq, items)
	return Value{kind: KindSequence, seq: seq}
}

// Map wraps m as a Value. A nil m becomes an empty mapping.
func Map(m *Mapping) Value {
	if m == nil {
		m = NewMapping()
	}
	return Value{kind: KindMapping, m: m}
}

// Kind reports which member of the union v holds.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is the null value.
func (v Value) IsNull() bool { return v.kind == KindNull }

// IsContainer reports whether v is a Sequence or a Mapping.
func (v Value) IsContainer() bool { return v.kind == KindSequence || v.kind == KindMapping }

func (v Value) AsScalar() (string, bool) { return v.str, v.kind == KindScalar }

// IsDateTime reports whether v was created by DateTime.
func (v Value) IsDateTime() bool { return v.kind == KindScalar && v.datetime }

func (v Value) AsInt() (int64, bool) { return v.i, v.kind == KindInt }

func (v Value) AsFloat() (float64, bool) { return v.f, v.kind == KindFloat }

func (v Value) AsBool() (bool, bool) { return v.b, v.kind == KindBool }

// AsSequence returns the items of a Sequence. The returned slice is shared
// with v.
func (v Value) AsSequence() ([]Value, bool) { return v.seq, v.kind == KindSequence }

// AsMapping returns the Mapping held by v. Mutating it mutates v.
func (v Value) AsMapping() (*Mapping, bool) { return v.m, v.kind == KindMapping }

// Text returns the textual form of v: the raw string of a Scalar, the decimal
// form of numbers, "true"/"false", "" for Null and compact JSON for
// containers.
func (v Value) Text() string {
	switch v.kind {
	case KindScalar:
		return v.str
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindSequence, KindMapping:
		data, err := v.MarshalJSON()
		if err != nil {
			return ""
		}
		return string(data)
	default:
		return ""
	}
}

func (v Value) String() string {
	if v.kind == KindNull {
		return "null"
	}
	return v.Text()
}

// Equal reports whether v and o hold the same kind and contents. Mapping
// equality includes entry order.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindScalar:
		return v.str == o.str
	case KindInt:
		return v.i == o.i
	case KindFloat:
		return v.f == o.f
	case KindBool:
		return v.b == o.b
	case KindSequence:
		if len(v.seq) != len(o.seq) {
			return false
		}
		for i := range v.seq {
			if !v.seq[i].Equal(o.seq[i]) {
				return false
			}
		}
		return true
	case KindMapping:
		return v.m.Equal(o.m)
	}
	return false
}

// Clone returns a deep copy of v.
func (v Value) Clone() Value {
	switch v.kind {
	case KindSequence:
		seq := make([]Value, len(v.seq))
		for i, item := range v.seq {
			seq[i] = item.Clone()
		}
		return Value{kind: KindSequence, seq: seq}
	case KindMapping:
		return Value{kind: KindMapping, m: v.m.Clone()}
	default:
		return v
	}
}

// MarshalJSON encodes v without HTML escaping.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNull:
		return []byte("null"), nil
	case KindScalar:
		return marshalNoEscape(v.str)
	case KindInt:
		return strconv.AppendInt(nil, v.i, 10), nil
	case KindFloat:
		return json.Marshal(v.f)
	case KindBool:
		return strconv.AppendBool(nil, v.b), nil
	case KindSequence:
		if v.seq == nil {
			return []byte("[]"), nil
		}
		return marshalNoEscape(v.seq)
	case KindMapping:
		return v.m.MarshalJSON()
	}
	return nil, fmt.Errorf("cannot marshal %s", v.kind)
}

func marshalNoEscape(x any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(x); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
