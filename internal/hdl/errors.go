package hdl

import (
	"errors"
	"fmt"
)

// ErrorKind classifies construction failures.
type ErrorKind uint8

const (
	// InvalidValue: an operand is not a value, or a width, count or arity is wrong.
	InvalidValue ErrorKind = iota + 1
	// IndexRange: an index or bound lies outside the operand's bits.
	IndexRange
	// BoundsConflict: a signal got both a shape and a range, or an empty range.
	BoundsConflict
	// AmbiguousTruthValue: a value was read as a bool outside the equality special case.
	AmbiguousTruthValue
	// NotAssignable: the value cannot appear on the left of an assignment.
	NotAssignable
	// UnsupportedKey: the value has no structural key.
	UnsupportedKey
	// MalformedCase: a switch case pattern does not match the test.
	MalformedCase
)

func (k ErrorKind) String() string {
	switch k {
	case InvalidValue:
		return "invalid value"
	case IndexRange:
		return "index out of range"
	case BoundsConflict:
		return "bounds conflict"
	case AmbiguousTruthValue:
		return "ambiguous truth value"
	case NotAssignable:
		return "not assignable"
	case UnsupportedKey:
		return "unsupported key"
	case MalformedCase:
		return "malformed case"
	default:
		return fmt.Sprintf("ErrorKind(%d)", k)
	}
}

// Error is returned by every builder in this package.
type Error struct {
	Kind ErrorKind
	Msg  string
	Err  error // underlying cause, if any
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// IsKind reports whether err is, or wraps, an *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

// KindOf returns the kind of the first *Error in err's chain, or 0.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

func errorf(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func wrapErr(kind ErrorKind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Err: err}
}
