package hdl

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/emirpasic/gods/maps/linkedhashmap"
)

// Statement relates values. Statements are immutable once built.
type Statement interface {
	// LHSSignals is the set of signals the statement writes.
	LHSSignals() *SignalSet
	// RHSSignals is the set of signals the statement reads.
	RHSSignals() *SignalSet
	String() string

	statement()
}

// Assign drives lhs with rhs.
type Assign struct {
	lhs, rhs Value
	targets  *SignalSet
}

// NewAssign builds an assignment. lhs must be a Signal, or a Slice, Part or
// Cat made of assignable values.
func NewAssign(lhs, rhs any) (*Assign, error) {
	l, err := Wrap(lhs)
	if err != nil {
		return nil, err
	}
	r, err := Wrap(rhs)
	if err != nil {
		return nil, err
	}
	targets, err := l.LHSSignals()
	if err != nil {
		return nil, err
	}
	return &Assign{lhs: l, rhs: r, targets: targets}, nil
}

func (a *Assign) LHS() Value { return a.lhs }

func (a *Assign) RHS() Value { return a.rhs }

func (a *Assign) LHSSignals() *SignalSet {
	return NewSignalSet().Union(a.targets)
}

func (a *Assign) RHSSignals() *SignalSet { return a.rhs.RHSSignals() }

func (a *Assign) String() string {
	return fmt.Sprintf("(eq %s %s)", a.lhs, a.rhs)
}

func (*Assign) statement() {}

// CaseArm is one input case of NewSwitch: a key and the statements run
// when the test matches it.
type CaseArm struct {
	Key  any
	Body []any
}

// On pairs a case key with its body. The key is an int, a bool, or a
// pattern string of '0' and '1' as long as the switch test.
func On(key any, body ...any) CaseArm {
	return CaseArm{Key: key, Body: body}
}

// SwitchCase is a normalised case of a Switch.
type SwitchCase struct {
	Pattern string
	Body    []Statement
}

// Switch runs the body of the first case whose pattern matches test.
type Switch struct {
	test  Value
	cases *linkedhashmap.Map // pattern -> []Statement
}

// NewSwitch builds a switch over test. Case order is kept exactly as
// given; a repeated pattern replaces the earlier body in its original
// position.
func NewSwitch(test any, arms ...CaseArm) (*Switch, error) {
	t, err := Wrap(test)
	if err != nil {
		return nil, err
	}
	width := Len(t)
	cases := linkedhashmap.New()
	for _, arm := range arms {
		pattern, err := casePattern(arm.Key, width)
		if err != nil {
			return nil, err
		}
		body, err := FlattenStatements(arm.Body...)
		if err != nil {
			return nil, err
		}
		cases.Put(pattern, body)
	}
	return &Switch{test: t, cases: cases}, nil
}

func casePattern(key any, width int) (string, error) {
	switch k := key.(type) {
	case bool:
		if k {
			return renderPattern(1, width)
		}
		return renderPattern(0, width)
	case int:
		return renderPattern(int64(k), width)
	case int64:
		return renderPattern(k, width)
	case string:
		if len(k) != width {
			return "", errorf(MalformedCase, "case pattern %q has %d bits, test has %d", k, len(k), width)
		}
		if strings.Trim(k, "01") != "" {
			return "", errorf(MalformedCase, "case pattern %q must contain only '0' and '1'", k)
		}
		return k, nil
	default:
		return "", errorf(MalformedCase, "case key %v of type %T is not an integer or pattern", key, key)
	}
}

func renderPattern(v int64, width int) (string, error) {
	if v < 0 {
		return "", errorf(MalformedCase, "case key %d is negative", v)
	}
	bin := strconv.FormatInt(v, 2)
	if v == 0 {
		bin = ""
	}
	if len(bin) > width {
		return "", errorf(MalformedCase, "case key %d does not fit in %d bits", v, width)
	}
	return strings.Repeat("0", width-len(bin)) + bin, nil
}

func (s *Switch) Test() Value { return s.test }

// Cases returns the cases in priority order.
func (s *Switch) Cases() []SwitchCase {
	out := make([]SwitchCase, 0, s.cases.Size())
	it := s.cases.Iterator()
	for it.Next() {
		body := it.Value().([]Statement)
		out = append(out, SwitchCase{
			Pattern: it.Key().(string),
			Body:    append([]Statement(nil), body...),
		})
	}
	return out
}

func (s *Switch) LHSSignals() *SignalSet {
	out := NewSignalSet()
	for _, c := range s.Cases() {
		for _, st := range c.Body {
			out.Union(st.LHSSignals())
		}
	}
	return out
}

func (s *Switch) RHSSignals() *SignalSet {
	out := s.test.RHSSignals()
	for _, c := range s.Cases() {
		for _, st := range c.Body {
			out.Union(st.RHSSignals())
		}
	}
	return out
}

func (s *Switch) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "(switch %s", s.test)
	for _, c := range s.Cases() {
		fmt.Fprintf(&sb, " (case %s", c.Pattern)
		for _, st := range c.Body {
			sb.WriteByte(' ')
			sb.WriteString(st.String())
		}
		sb.WriteByte(')')
	}
	sb.WriteByte(')')
	return sb.String()
}

func (*Switch) statement() {}
