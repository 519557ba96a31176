package hdl

import (
	"reflect"

	"fortio.org/safecast"

	"fhdl/internal/shape"
)

// Value is a node of the expression graph.
type Value interface {
	// Shape is the width and signedness of the value's result.
	Shape() shape.Shape
	// RHSSignals is the set of signals read when the value is evaluated.
	RHSSignals() *SignalSet
	// LHSSignals is the set of signals written when the value is assigned
	// to. It fails with NotAssignable for values that cannot be targets.
	LHSSignals() (*SignalSet, error)
	String() string

	value()
}

// Len returns the width of v in bits.
func Len(v Value) int {
	return v.Shape().Width
}

// Wrap turns x into a Value. Values pass through unchanged; booleans and
// integers become a Const of minimal shape.
func Wrap(x any) (Value, error) {
	switch v := x.(type) {
	case nil:
		return nil, errorf(InvalidValue, "nil is not a value")
	case Value:
		if rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer && rv.IsNil() {
			return nil, errorf(InvalidValue, "nil %T is not a value", v)
		}
		return v, nil
	case bool:
		if v {
			return C(1), nil
		}
		return C(0), nil
	case int:
		return C(int64(v)), nil
	case int8:
		return C(int64(v)), nil
	case int16:
		return C(int64(v)), nil
	case int32:
		return C(int64(v)), nil
	case int64:
		return C(v), nil
	case uint8:
		return C(int64(v)), nil
	case uint16:
		return C(int64(v)), nil
	case uint32:
		return C(int64(v)), nil
	case uint:
		return wrapUnsigned(v)
	case uint64:
		return wrapUnsigned(v)
	default:
		return nil, errorf(InvalidValue, "object %v of type %T is not a value", x, x)
	}
}

func wrapUnsigned[T uint | uint64](v T) (Value, error) {
	n, err := safecast.Conv[int64](v)
	if err != nil {
		return nil, wrapErr(InvalidValue, err, "constant %d does not fit a literal", v)
	}
	return C(n), nil
}

func wrapAll(xs []any) ([]Value, error) {
	out := make([]Value, 0, len(xs))
	for _, x := range xs {
		v, err := Wrap(x)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// Must returns v, panicking if err is non-nil. Intended for tests and for
// designs whose construction is known to be valid.
func Must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
