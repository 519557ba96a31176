package irtext

import "fmt"

// Error reports a malformed or ill-typed textual form. When the IR
// constructor rejected the node, Err holds its *hdl.Error.
type Error struct {
	Path      string
	Span      Span
	Line, Col int
	Msg       string
	Err       error
}

func newError(src, path string, sp Span, err error, format string, args ...any) *Error {
	line, col := Position(src, sp.Start)
	return &Error{
		Path: path,
		Span: sp,
		Line: line,
		Col:  col,
		Msg:  fmt.Sprintf(format, args...),
		Err:  err,
	}
}

func (e *Error) Error() string {
	where := fmt.Sprintf("%d:%d", e.Line, e.Col)
	if e.Path != "" {
		where = e.Path + ":" + where
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", where, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", where, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }
