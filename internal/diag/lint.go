package diag

import (
	"fmt"

	"fhdl/internal/design"
	"fhdl/internal/hdl"
)

// Lint reports questionable but legal constructions in d: signals that
// are declared and never used, signals left with the placeholder name,
// and signals read without a driver, which are the design's inputs.
func Lint(path string, d *design.Design) []Diagnostic {
	where := Where{Path: path}
	driven := hdl.NewSignalSet()
	read := hdl.NewSignalSet()
	for _, st := range d.Statements {
		driven.Union(st.LHSSignals())
		read.Union(st.RHSSignals())
	}
	var out []Diagnostic
	for _, sig := range d.Signals {
		switch {
		case !driven.Has(sig) && !read.Has(sig):
			out = append(out, NewWarning(IRUnusedSignal, where,
				fmt.Sprintf("signal %s is declared but never used", sig.Name())))
		case !driven.Has(sig):
			out = append(out, New(SevInfo, IRUndrivenSignal, where,
				fmt.Sprintf("signal %s is never driven and acts as an input", sig.Name())))
		}
		if hdl.IsPlaceholder(sig.Name()) {
			out = append(out, NewWarning(IRPlaceholderNamed, where,
				fmt.Sprintf("signal %s has no name", sig.ID())))
		}
	}
	return out
}
