package value

import (
	"errors"
	"fmt"

	"github.com/spf13/cast"
)

// ErrCast is returned when a value cannot be converted to the requested kind.
var ErrCast = errors.New("cannot cast value")

// Cast converts v to the requested kind. Numbers, booleans and text convert
// through spf13/cast; any value converts to a Scalar (containers as compact
// JSON); Scalar JSON text converts to a Sequence or Mapping.
func Cast(v Value, kind Kind) (Value, error) {
	if v.kind == kind {
		return v, nil
	}

	switch kind {
	case KindScalar:
		if v.kind == KindNull {
			break
		}
		return Scalar(v.Text()), nil

	case KindInt, KindFloat, KindBool:
		if v.kind == KindNull || v.IsContainer() {
			break
		}
		return castPrimitive(v, kind)

	case KindSequence, KindMapping:
		if v.kind != KindScalar {
			break
		}
		if coerced := Coerce(v); coerced.kind == kind {
			return coerced, nil
		}
	}

	return Value{}, fmt.Errorf("%w: %s %q to %s", ErrCast, v.kind, v.Text(), kind)
}

// castPrimitive converts through spf13/cast. Scalar text is first read with
// the same base-10 rules as Coerce, so "010" is ten rather than octal.
func castPrimitive(v Value, kind Kind) (Value, error) {
	if v.kind == KindScalar {
		c := coerceText(v.str)
		numeric := c.kind == KindInt || c.kind == KindFloat
		if numeric && kind != KindBool || c.kind == KindBool && kind == KindBool {
			v = c
		}
	}
	if v.kind == kind {
		return v, nil
	}

	src := v.Native()
	var (
		out Value
		err error
	)
	switch kind {
	case KindInt:
		var i int64
		i, err = cast.ToInt64E(src)
		out = Int(i)
	case KindFloat:
		var f float64
		f, err = cast.ToFloat64E(src)
		out = Float(f)
	case KindBool:
		var b bool
		b, err = cast.ToBoolE(src)
		out = Bool(b)
	}
	if err != nil {
		return Value{}, fmt.Errorf("%w: %w", ErrCast, err)
	}
	return out, nil
}
