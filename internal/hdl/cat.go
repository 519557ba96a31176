package hdl

import (
	"fmt"
	"strings"

	"fhdl/internal/shape"
)

// Cat concatenates its operands; operand 0 occupies the low bits. A Cat of
// assignable operands is itself assignable.
type Cat struct {
	operands []Value
	width    int
}

// NewCat concatenates args. Nested slices of operands are flattened in
// order, so Cat(a, []any{b, c}) lays out bits exactly like Cat(a, b, c).
func NewCat(args ...any) (*Cat, error) {
	vals, err := FlattenValues(args...)
	if err != nil {
		return nil, err
	}
	widths := make([]int, len(vals))
	for i, v := range vals {
		widths[i] = Len(v)
	}
	w, err := shape.AddWidths(widths...)
	if err != nil {
		return nil, wrapErr(InvalidValue, err, "concatenation")
	}
	return &Cat{operands: vals, width: w}, nil
}

// Operands returns a copy of the operand list, low bits first.
func (c *Cat) Operands() []Value {
	return append([]Value(nil), c.operands...)
}

func (c *Cat) Shape() shape.Shape { return shape.Unsigned(c.width) }

func (c *Cat) RHSSignals() *SignalSet {
	out := NewSignalSet()
	for _, op := range c.operands {
		out.Union(op.RHSSignals())
	}
	return out
}

func (c *Cat) LHSSignals() (*SignalSet, error) {
	out := NewSignalSet()
	for _, op := range c.operands {
		sigs, err := op.LHSSignals()
		if err != nil {
			return nil, err
		}
		out.Union(sigs)
	}
	return out, nil
}

func (c *Cat) String() string {
	parts := make([]string, 0, len(c.operands)+1)
	parts = append(parts, "cat")
	for _, op := range c.operands {
		parts = append(parts, op.String())
	}
	return "(" + strings.Join(parts, " ") + ")"
}

func (*Cat) value() {}

// Repl repeats its base count times, low to high.
type Repl struct {
	base  Value
	count int
	width int
}

// NewRepl replicates v count times. A zero count gives a zero-width value.
func NewRepl(v any, count int) (*Repl, error) {
	if count < 0 {
		return nil, errorf(InvalidValue, "replication count must be a non-negative integer, not %d", count)
	}
	base, err := Wrap(v)
	if err != nil {
		return nil, err
	}
	w, err := shape.MulWidth(Len(base), count)
	if err != nil {
		return nil, wrapErr(InvalidValue, err, "replication")
	}
	return &Repl{base: base, count: count, width: w}, nil
}

func (r *Repl) Base() Value { return r.base }

func (r *Repl) Count() int { return r.count }

func (r *Repl) Shape() shape.Shape { return shape.Unsigned(r.width) }

func (r *Repl) RHSSignals() *SignalSet { return r.base.RHSSignals() }

func (r *Repl) LHSSignals() (*SignalSet, error) {
	return nil, errorf(NotAssignable, "value %s cannot be used in assignments", r)
}

func (r *Repl) String() string {
	return fmt.Sprintf("(repl %s %d)", r.base, r.count)
}

func (*Repl) value() {}
