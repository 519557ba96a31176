package hdl

import (
	"fmt"
	"math"

	"fhdl/internal/shape"
)

// Slice is the static bit range [start, end) of its base.
type Slice struct {
	base       Value
	start, end int
}

// NewSlice selects bits [start, end) of base. Bounds may be negative and
// count from the top; after normalisation 0 <= start <= end <= len(base)
// must hold. Slicing a Slice yields one Slice of the underlying value.
func NewSlice(base any, start, end int) (*Slice, error) {
	v, err := Wrap(base)
	if err != nil {
		return nil, err
	}
	n := Len(v)
	if start < -n || start > n {
		return nil, errorf(IndexRange, "cannot start slice %d bits into %d-bit value", start, n)
	}
	if start < 0 {
		start += n
	}
	if end < -n || end > n {
		return nil, errorf(IndexRange, "cannot end slice %d bits into %d-bit value", end, n)
	}
	if end < 0 {
		end += n
	}
	if start > end {
		return nil, errorf(IndexRange, "slice start %d is past its end %d", start, end)
	}
	if inner, ok := v.(*Slice); ok {
		return &Slice{base: inner.base, start: inner.start + start, end: inner.start + end}, nil
	}
	return &Slice{base: v, start: start, end: end}, nil
}

// Index selects the single bit k of v; -len(v) <= k < len(v).
func Index(v any, k int) (*Slice, error) {
	val, err := Wrap(v)
	if err != nil {
		return nil, err
	}
	n := Len(val)
	if k < -n || k >= n {
		return nil, errorf(IndexRange, "cannot index %d bits into %d-bit value", k, n)
	}
	if k < 0 {
		k += n
	}
	return NewSlice(val, k, k+1)
}

// Open stands for an omitted Select bound: the first bit in the direction
// of step for start, past the last one for stop.
const Open = math.MinInt

// Select takes bits start, start+step, ... up to stop with the clamping
// rules of an ordinary range. A unit step gives a Slice; any other step
// gives a Cat of single-bit slices in range order.
func Select(v any, start, stop, step int) (Value, error) {
	val, err := Wrap(v)
	if err != nil {
		return nil, err
	}
	if step == 0 {
		return nil, errorf(InvalidValue, "slice step cannot be zero")
	}
	n := Len(val)
	start, stop = rangeBound(n, start, step, true), rangeBound(n, stop, step, false)
	if step == 1 {
		return NewSlice(val, start, max(start, stop))
	}
	var bits []any
	for i := start; (step > 0 && i < stop) || (step < 0 && i > stop); i += step {
		bit, err := NewSlice(val, i, i+1)
		if err != nil {
			return nil, err
		}
		bits = append(bits, bit)
	}
	return NewCat(bits...)
}

// Reverse returns the bits of v in reverse order.
func Reverse(v any) (Value, error) {
	return Select(v, Open, Open, -1)
}

func rangeBound(n, i, step int, isStart bool) int {
	lower, upper := 0, n
	if step < 0 {
		lower, upper = -1, n-1
	}
	switch {
	case i == Open && isStart == (step > 0):
		return lower
	case i == Open:
		return upper
	case i < 0:
		return max(i+n, lower)
	default:
		return min(i, upper)
	}
}

// Base returns the sliced value.
func (s *Slice) Base() Value { return s.base }

func (s *Slice) Start() int { return s.start }

func (s *Slice) End() int { return s.end }

func (s *Slice) Shape() shape.Shape { return shape.Unsigned(s.end - s.start) }

func (s *Slice) RHSSignals() *SignalSet { return s.base.RHSSignals() }

func (s *Slice) LHSSignals() (*SignalSet, error) { return s.base.LHSSignals() }

func (s *Slice) String() string {
	return fmt.Sprintf("(slice %s %d:%d)", s.base, s.start, s.end)
}

func (*Slice) value() {}

// Part selects width bits of base starting at a bit offset that is itself
// a value, resolved only when the design is evaluated.
type Part struct {
	base   Value
	offset Value
	width  int
}

// NewPart builds a part-select. width must not exceed len(base); a constant
// offset must also keep the selection inside base.
func NewPart(base, offset any, width int) (*Part, error) {
	if width < 0 {
		return nil, errorf(InvalidValue, "part width must be a non-negative integer, not %d", width)
	}
	b, err := Wrap(base)
	if err != nil {
		return nil, err
	}
	off, err := Wrap(offset)
	if err != nil {
		return nil, err
	}
	n := Len(b)
	if width > n {
		return nil, errorf(IndexRange, "cannot select %d bits of %d-bit value", width, n)
	}
	if c, ok := off.(*Const); ok && (c.lit < 0 || c.lit > int64(n-width)) {
		return nil, errorf(IndexRange, "cannot select %d bits at offset %d of %d-bit value", width, c.lit, n)
	}
	return &Part{base: b, offset: off, width: width}, nil
}

func (p *Part) Base() Value { return p.base }

func (p *Part) Offset() Value { return p.offset }

func (p *Part) Width() int { return p.width }

func (p *Part) Shape() shape.Shape { return shape.Unsigned(p.width) }

func (p *Part) RHSSignals() *SignalSet {
	return p.base.RHSSignals().Union(p.offset.RHSSignals())
}

func (p *Part) LHSSignals() (*SignalSet, error) { return p.base.LHSSignals() }

func (p *Part) String() string {
	return fmt.Sprintf("(part %s %s %d)", p.base, p.offset, p.width)
}

func (*Part) value() {}
