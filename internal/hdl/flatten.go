package hdl

import "reflect"

// Flatten walks arbitrarily nested slices and arrays in items, depth first,
// and converts every leaf with leaf. The first leaf that fails aborts the walk.
func Flatten[T any](leaf func(any) (T, error), items ...any) ([]T, error) {
	out := make([]T, 0, len(items))
	var walk func(x any) error
	walk = func(x any) error {
		if xs, ok := x.([]any); ok {
			for _, e := range xs {
				if err := walk(e); err != nil {
					return err
				}
			}
			return nil
		}
		if rv := reflect.ValueOf(x); rv.IsValid() && (rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array) {
			for i := range rv.Len() {
				if err := walk(rv.Index(i).Interface()); err != nil {
					return err
				}
			}
			return nil
		}
		t, err := leaf(x)
		if err != nil {
			return err
		}
		out = append(out, t)
		return nil
	}
	for _, x := range items {
		if err := walk(x); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// FlattenValues flattens items into values, wrapping integer and boolean leaves.
func FlattenValues(items ...any) ([]Value, error) {
	return Flatten(Wrap, items...)
}

// FlattenStatements flattens items into statements.
func FlattenStatements(items ...any) ([]Statement, error) {
	return Flatten(asStatement, items...)
}

func asStatement(x any) (Statement, error) {
	s, ok := x.(Statement)
	if !ok {
		return nil, errorf(InvalidValue, "object %v of type %T is not a statement", x, x)
	}
	if rv := reflect.ValueOf(s); rv.Kind() == reflect.Pointer && rv.IsNil() {
		return nil, errorf(InvalidValue, "nil %T is not a statement", s)
	}
	return s, nil
}
