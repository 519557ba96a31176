package design_test

import (
	"testing"

	"fhdl/internal/design"
	"fhdl/internal/hdl"
	"fhdl/internal/testkit"
)

func TestUnnamedSignalsRoundTrip(t *testing.T) {
	b := design.New("anon")
	x := hdl.Must(b.Signal("", hdl.WithWidth(3)))
	y := hdl.Must(b.Signal("", hdl.WithWidth(3)))
	if x.Name() == y.Name() {
		t.Fatalf("unnamed signals share name %q", x.Name())
	}
	if err := b.Add(hdl.Must(hdl.NewAssign(y, x))); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := testkit.CheckDesignInvariants(b.Design()); err != nil {
		t.Fatalf("invariants: %v", err)
	}
}
