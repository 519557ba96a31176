package hdl

import (
	"testing"

	"fhdl/internal/ident"
	"fhdl/internal/shape"
)

func TestTruthSpecialCases(t *testing.T) {
	alloc := ident.New()
	a := newSig(t, alloc, "a", shape.Unsigned(8))
	b := newSig(t, alloc, "b", shape.Unsigned(8))

	cases := []struct {
		name string
		x, y any
		want bool
	}{
		{"equal consts", C(5), C(5), true},
		{"different consts", C(5), C(6), false},
		{"same signal", a, a, true},
		{"distinct signals of equal shape", a, b, false},
		{"signal vs const", a, C(5), false},
		{"const vs signal", C(0), b, false},
	}
	for _, c := range cases {
		got, err := Truth(Must(Eq(c.x, c.y)))
		if err != nil {
			t.Fatalf("%s: %v", c.name, err)
		}
		if got != c.want {
			t.Fatalf("%s: Truth = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestTruthEqualConstsIgnoreWidth(t *testing.T) {
	x := Must(ConstWidth(5, 8))
	y := Must(ConstWidth(5, 3))
	got, err := Truth(Must(Eq(x, y)))
	if err != nil || !got {
		t.Fatalf("Truth = %v, %v", got, err)
	}
}

func TestTruthAmbiguous(t *testing.T) {
	alloc := ident.New()
	a := newSig(t, alloc, "a", shape.Unsigned(8))
	for _, v := range []Value{
		a,
		C(1),
		Must(Ne(a, a)),
		Must(Eq(Must(Add(a, 1)), a)),
		Must(Eq(Must(Index(a, 0)), C(1))),
	} {
		_, err := Truth(v)
		expectKind(t, err, AmbiguousTruthValue)
	}
}
