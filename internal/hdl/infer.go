package hdl

import "fhdl/internal/shape"

// Shape rules for Operator kinds. Each receives exactly the operand count
// listed in opSpecTable.

func inferSame(ops []shape.Shape) (shape.Shape, error) {
	return ops[0], nil
}

func inferBit([]shape.Shape) (shape.Shape, error) {
	return shape.Unsigned(1), nil
}

func inferNeg(ops []shape.Shape) (shape.Shape, error) {
	if ops[0].Signed {
		return ops[0], nil
	}
	w, err := shape.AddWidths(ops[0].Width, 1)
	if err != nil {
		return shape.Shape{}, err
	}
	return shape.Signed(w), nil
}

func inferAddSub(ops []shape.Shape) (shape.Shape, error) {
	c := shape.Combine(ops[0], ops[1])
	w, err := shape.AddWidths(c.Width, 1)
	if err != nil {
		return shape.Shape{}, err
	}
	return shape.Shape{Width: w, Signed: c.Signed}, nil
}

func inferMul(ops []shape.Shape) (shape.Shape, error) {
	a, b := ops[0], ops[1]
	w, err := shape.AddWidths(a.Width, b.Width)
	if err != nil {
		return shape.Shape{}, err
	}
	switch {
	case !a.Signed && !b.Signed:
		return shape.Unsigned(w), nil
	case a.Signed && b.Signed:
		return shape.Signed(max(w-1, 0)), nil
	default:
		return shape.Signed(w), nil
	}
}

// The remainder never exceeds the divisor.
func inferMod(ops []shape.Shape) (shape.Shape, error) {
	return ops[1], nil
}

func inferShl(ops []shape.Shape) (shape.Shape, error) {
	extra, err := shape.ShiftLeftGrowth(ops[1])
	if err != nil {
		return shape.Shape{}, err
	}
	return grow(ops[0], extra)
}

func inferShr(ops []shape.Shape) (shape.Shape, error) {
	extra, err := shape.ShiftRightGrowth(ops[1])
	if err != nil {
		return shape.Shape{}, err
	}
	return grow(ops[0], extra)
}

func inferBitwise(ops []shape.Shape) (shape.Shape, error) {
	return shape.Combine(ops[0], ops[1]), nil
}

// The selector does not contribute.
func inferMux(ops []shape.Shape) (shape.Shape, error) {
	return shape.Combine(ops[1], ops[2]), nil
}

func grow(s shape.Shape, extra int) (shape.Shape, error) {
	w, err := shape.AddWidths(s.Width, extra)
	if err != nil {
		return shape.Shape{}, err
	}
	return shape.Shape{Width: w, Signed: s.Signed}, nil
}
