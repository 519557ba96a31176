package hdl

import (
	"testing"

	"fhdl/internal/ident"
	"fhdl/internal/shape"
)

func TestAssign(t *testing.T) {
	alloc := ident.New()
	a := newSig(t, alloc, "a", shape.Unsigned(8))
	b := newSig(t, alloc, "b", shape.Unsigned(8))
	st := Must(NewAssign(Must(NewSlice(a, 0, 4)), Must(Add(b, 1))))
	if !st.LHSSignals().Has(a) || st.LHSSignals().Len() != 1 {
		t.Fatalf("assign lhs = %v", st.LHSSignals())
	}
	if !st.RHSSignals().Has(b) || st.RHSSignals().Len() != 1 {
		t.Fatalf("assign rhs = %v", st.RHSSignals())
	}
	if s := st.String(); s != "(eq (slice (sig a) 0:4) (+ (sig b) (const 1'd1)))" {
		t.Fatalf("String() = %q", s)
	}

	_, err := NewAssign(Must(Add(a, b)), 1)
	expectKind(t, err, NotAssignable)
	_, err = NewAssign(C(1), a)
	expectKind(t, err, NotAssignable)
	_, err = NewAssign(NewClockSignal(""), a)
	expectKind(t, err, NotAssignable)
	_, err = NewAssign(a, 1.5)
	expectKind(t, err, InvalidValue)
}

func TestSwitchPatterns(t *testing.T) {
	alloc := ident.New()
	test := newSig(t, alloc, "test", shape.Unsigned(3))
	o := newSig(t, alloc, "o", shape.Unsigned(4))
	sw := Must(NewSwitch(test,
		On(0b10, Must(NewAssign(o, 1))),
		On(true, Must(NewAssign(o, 2))),
		On("111", []any{Must(NewAssign(o, 3)), []Statement{Must(NewAssign(o, 4))}}),
	))
	cases := sw.Cases()
	if len(cases) != 3 {
		t.Fatalf("expected 3 cases, got %d", len(cases))
	}
	want := []string{"010", "001", "111"}
	for i, c := range cases {
		if c.Pattern != want[i] {
			t.Fatalf("case %d pattern = %q, want %q", i, c.Pattern, want[i])
		}
	}
	if len(cases[2].Body) != 2 {
		t.Fatalf("nested bodies must be flattened, got %d statements", len(cases[2].Body))
	}
	if !sw.LHSSignals().Has(o) || sw.LHSSignals().Len() != 1 {
		t.Fatalf("switch lhs = %v", sw.LHSSignals())
	}
	rhs := sw.RHSSignals()
	if !rhs.Has(test) || rhs.Has(o) {
		t.Fatalf("switch rhs = %v", rhs)
	}
}

func TestSwitchKeepsOrder(t *testing.T) {
	alloc := ident.New()
	test := newSig(t, alloc, "test", shape.Unsigned(2))
	o := newSig(t, alloc, "o", shape.Unsigned(2))
	sw := Must(NewSwitch(test,
		On(3, Must(NewAssign(o, 3))),
		On(0, Must(NewAssign(o, 0))),
		On(1, Must(NewAssign(o, 1))),
		On(3, Must(NewAssign(o, 2))),
	))
	cases := sw.Cases()
	got := []string{cases[0].Pattern, cases[1].Pattern, cases[2].Pattern}
	if len(cases) != 3 || got[0] != "11" || got[1] != "00" || got[2] != "01" {
		t.Fatalf("case order = %v", got)
	}
	rhs := cases[0].Body[0].(*Assign).RHS().(*Const)
	if rhs.Int() != 2 {
		t.Fatalf("repeated key should replace the earlier body in place")
	}
	want := "(switch (sig test) (case 11 (eq (sig o) (const 2'd2))) (case 00 (eq (sig o) (const 0'd0))) (case 01 (eq (sig o) (const 1'd1))))"
	if s := sw.String(); s != want {
		t.Fatalf("String() = %q", s)
	}
}

func TestSwitchMalformed(t *testing.T) {
	alloc := ident.New()
	test := newSig(t, alloc, "test", shape.Unsigned(3))
	o := newSig(t, alloc, "o", shape.Unsigned(1))
	body := Must(NewAssign(o, 1))
	for _, key := range []any{"10", "1010", "1x0", 8, -1, 1.5} {
		_, err := NewSwitch(test, On(key, body))
		expectKind(t, err, MalformedCase)
	}
	_, err := NewSwitch(test, On(1, body, "not a statement"))
	expectKind(t, err, InvalidValue)
}
