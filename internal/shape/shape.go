// Package shape describes the width and signedness of bit-vector values
// and the arithmetic that derives one shape from others.
package shape

import (
	"errors"
	"fmt"
	"math/bits"

	"fortio.org/safecast"
)

var (
	// ErrNegativeWidth reports a shape with fewer than zero bits.
	ErrNegativeWidth = errors.New("width must be a non-negative integer")
	// ErrEmptyRange reports an integer range whose upper bound does not exceed the lower one.
	ErrEmptyRange = errors.New("lower bound must be less than upper bound")
	// ErrTooWide reports a derived width that does not fit in an int.
	ErrTooWide = errors.New("derived width overflows")
)

// Shape is the number of bits of a value and whether the top bit is a sign bit.
type Shape struct {
	Width  int
	Signed bool
}

// Unsigned returns an unsigned shape of width bits.
func Unsigned(width int) Shape { return Shape{Width: width} }

// Signed returns a signed shape of width bits.
func Signed(width int) Shape { return Shape{Width: width, Signed: true} }

// Validate rejects negative widths.
func (s Shape) Validate() error {
	if s.Width < 0 {
		return fmt.Errorf("%w, not %d", ErrNegativeWidth, s.Width)
	}
	return nil
}

func (s Shape) String() string {
	if s.Signed {
		return fmt.Sprintf("s%d", s.Width)
	}
	return fmt.Sprintf("u%d", s.Width)
}

// BitsFor returns the minimum number of bits needed to represent n. With
// requireSign the result also has room for a sign bit. Values <= 0 always
// need a sign bit.
func BitsFor(n int64, requireSign bool) int {
	var r int
	switch {
	case n > 0:
		r = bits.Len64(uint64(n))
	case n == 0:
		requireSign = true
	default:
		requireSign = true
		r = bits.Len64(uint64(-(n + 1)))
	}
	if requireSign {
		r++
	}
	return r
}

// Of returns the minimal shape of the literal v: the plain bit length for
// non-negative values, the minimal two's complement width otherwise.
func Of(v int64) Shape {
	if v < 0 {
		return Signed(BitsFor(v, true))
	}
	return Unsigned(bits.Len64(uint64(v)))
}

// ForRange returns the smallest shape holding every integer in [lo, hi).
func ForRange(lo, hi int64) (Shape, error) {
	if lo >= hi {
		return Shape{}, fmt.Errorf("%w: [%d, %d)", ErrEmptyRange, lo, hi)
	}
	hi-- // inclusive
	signed := lo < 0 || hi < 0
	return Shape{
		Width:  max(BitsFor(lo, signed), BitsFor(hi, signed)),
		Signed: signed,
	}, nil
}

// Combine returns the shape able to hold every value of both a and b,
// adding a bit where an unsigned operand must sit beside a signed one.
func Combine(a, b Shape) Shape {
	switch {
	case !a.Signed && !b.Signed:
		return Unsigned(max(a.Width, b.Width))
	case a.Signed && b.Signed:
		return Signed(max(a.Width, b.Width))
	case !a.Signed && b.Signed:
		return Signed(max(a.Width+1, b.Width))
	default:
		return Signed(max(a.Width, b.Width+1))
	}
}

// ShiftLeftGrowth is the number of bits a left shift by an amount of the
// given shape can add.
func ShiftLeftGrowth(amount Shape) (int, error) {
	if amount.Signed {
		if amount.Width == 0 {
			return 0, nil
		}
		return pow2Minus1(amount.Width - 1)
	}
	return pow2Minus1(amount.Width)
}

// ShiftRightGrowth is the number of bits a right shift by an amount of the
// given shape can add. Only a signed amount can shift left in disguise.
func ShiftRightGrowth(amount Shape) (int, error) {
	if !amount.Signed || amount.Width == 0 {
		return 0, nil
	}
	p, err := pow2Minus1(amount.Width - 1)
	if err != nil {
		return 0, err
	}
	return p + 1, nil
}

// AddWidths sums widths, failing on overflow.
func AddWidths(ws ...int) (int, error) {
	var total uint64
	for _, w := range ws {
		if w < 0 {
			return 0, fmt.Errorf("%w, not %d", ErrNegativeWidth, w)
		}
		sum, carry := bits.Add64(total, uint64(w), 0)
		if carry != 0 {
			return 0, ErrTooWide
		}
		total = sum
	}
	out, err := safecast.Conv[int](total)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrTooWide, err)
	}
	return out, nil
}

// MulWidth returns w*n, failing on overflow.
func MulWidth(w, n int) (int, error) {
	if w < 0 || n < 0 {
		return 0, ErrNegativeWidth
	}
	hi, lo := bits.Mul64(uint64(w), uint64(n))
	if hi != 0 {
		return 0, ErrTooWide
	}
	out, err := safecast.Conv[int](lo)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrTooWide, err)
	}
	return out, nil
}

func pow2Minus1(exp int) (int, error) {
	if exp >= bits.UintSize-1 {
		return 0, fmt.Errorf("%w: shift amount of %d bits", ErrTooWide, exp)
	}
	return 1<<exp - 1, nil
}
