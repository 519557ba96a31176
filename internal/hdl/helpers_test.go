package hdl

import (
	"testing"

	"fhdl/internal/ident"
	"fhdl/internal/shape"
)

func newSig(t *testing.T, alloc *ident.Allocator, name string, sh shape.Shape) *Signal {
	t.Helper()
	s, err := NewSignal(alloc, WithName(name), WithShape(sh))
	if err != nil {
		t.Fatalf("NewSignal(%s): %v", name, err)
	}
	return s
}

func expectKind(t *testing.T, err error, kind ErrorKind) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v error, got nil", kind)
	}
	if !IsKind(err, kind) {
		t.Fatalf("expected %v error, got %v", kind, err)
	}
}

func signalNames(set *SignalSet) []string {
	var out []string
	for _, s := range set.Signals() {
		out = append(out, s.Name())
	}
	return out
}
