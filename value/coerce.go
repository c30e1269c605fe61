package value

import (
	"strconv"
	"strings"
)

// Coerce reinterprets every Scalar leaf of v as a typed value. The first
// matching rule wins: boolean literal, base-10 integer, float, JSON list or
// object text (coerced recursively), otherwise the text is kept. Containers
// are rebuilt element-wise; v itself is never modified.
func Coerce(v Value) Value {
	switch v.kind {
	case KindScalar:
		if c := coerceText(v.str); c.kind != KindScalar {
			return c
		}
		return v
	case KindSequence:
		seq := make([]Value, len(v.seq))
		for i, item := range v.seq {
			seq[i] = Coerce(item)
		}
		return Value{kind: KindSequence, seq: seq}
	case KindMapping:
		m := NewMapping()
		for _, k := range v.m.Keys() {
			item, _ := v.m.Get(k)
			m.Set(k, Coerce(item))
		}
		return Map(m)
	default:
		return v
	}
}

func coerceText(s string) Value {
	switch {
	case strings.EqualFold(s, "true"):
		return Bool(true)
	case strings.EqualFold(s, "false"):
		return Bool(false)
	}

	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return Int(i)
	}

	// ParseFloat also accepts words like "nan" and "infinity".
	if strings.ContainsAny(s, "0123456789") {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return Float(f)
		}
	}

	trimmed := strings.TrimSpace(s)
	if strings.HasPrefix(trimmed, "[") || strings.HasPrefix(trimmed, "{") {
		if parsed, err := FromJSON([]byte(trimmed)); err == nil {
			return Coerce(parsed)
		}
	}

	return Scalar(s)
}
