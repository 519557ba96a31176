package testkit

import (
	"strings"
	"testing"

	"fhdl/internal/design"
	"fhdl/internal/hdl"
)

func TestCheckDesignInvariants(t *testing.T) {
	b := design.New("ok")
	a := hdl.Must(b.Signal("a", hdl.WithWidth(3)))
	y := hdl.Must(b.Signal("y", hdl.WithWidth(4)))
	if err := b.Add(hdl.Must(hdl.NewAssign(y, hdl.Must(hdl.Add(a, 1))))); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := CheckDesignInvariants(b.Design()); err != nil {
		t.Fatalf("CheckDesignInvariants: %v", err)
	}
}

func TestCheckDesignInvariantsCatchesDuplicates(t *testing.T) {
	b := design.New("dup")
	a := hdl.Must(b.Signal("a"))
	d := b.Design()
	d.Signals = append(d.Signals, a)
	if err := CheckDesignInvariants(d); err == nil || !strings.Contains(err.Error(), "listed twice") {
		t.Fatalf("err = %v", err)
	}
}

func TestCheckDesignInvariantsCatchesUnlisted(t *testing.T) {
	b := design.New("hidden")
	a := hdl.Must(b.Signal("a"))
	if err := b.Add(hdl.Must(hdl.NewAssign(a, 0))); err != nil {
		t.Fatalf("Add: %v", err)
	}
	d := b.Design()
	d.Signals = nil
	if err := CheckDesignInvariants(d); err == nil || !strings.Contains(err.Error(), "unlisted signal a") {
		t.Fatalf("err = %v", err)
	}
}
