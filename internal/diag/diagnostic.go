package diag

import "strconv"

// Where locates a diagnostic. Line and Col are 1-based; zero means the
// diagnostic concerns the whole file.
type Where struct {
	Path string
	Line int
	Col  int
}

func (w Where) String() string {
	out := w.Path
	if w.Line > 0 {
		out += ":" + strconv.Itoa(w.Line)
		if w.Col > 0 {
			out += ":" + strconv.Itoa(w.Col)
		}
	}
	return out
}

type Note struct {
	Where Where
	Msg   string
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Where    Where
	Notes    []Note
}

func New(sev Severity, code Code, where Where, msg string) Diagnostic {
	return Diagnostic{Severity: sev, Code: code, Where: where, Message: msg}
}

func NewError(code Code, where Where, msg string) Diagnostic {
	return New(SevError, code, where, msg)
}

func NewWarning(code Code, where Where, msg string) Diagnostic {
	return New(SevWarning, code, where, msg)
}

func (d Diagnostic) WithNote(where Where, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Where: where, Msg: msg})
	return d
}
