// Package testkit holds invariant checks shared by tests of the packages
// that produce designs.
package testkit

import (
	"fmt"

	"fhdl/internal/design"
	"fhdl/internal/hdl"
	"fhdl/internal/irtext"
)

// CheckDesignInvariants verifies that
//  1. signal identities are unique,
//  2. every signal a statement reads or drives is listed in d.Signals,
//  3. every statement prints a textual form that parses back to the same
//     text against d's signals.
func CheckDesignInvariants(d *design.Design) error {
	if d == nil {
		return fmt.Errorf("nil design")
	}
	listed := hdl.NewSignalSet()
	for _, sig := range d.Signals {
		if listed.Has(sig) {
			return fmt.Errorf("signal %s (%s) listed twice", sig.Name(), sig.ID())
		}
		listed.Add(sig)
	}
	symbols := irtext.SymbolsOf(d.Signals...)
	for i, st := range d.Statements {
		for _, sig := range st.LHSSignals().Union(st.RHSSignals()).Signals() {
			if !listed.Has(sig) {
				return fmt.Errorf("statement %d uses unlisted signal %s", i, sig.Name())
			}
		}
		text := st.String()
		back, err := irtext.ParseStatement(text, symbols)
		if err != nil {
			return fmt.Errorf("statement %d does not parse back: %w", i, err)
		}
		if back.String() != text {
			return fmt.Errorf("statement %d round trip changed %s into %s", i, text, back)
		}
	}
	return nil
}
