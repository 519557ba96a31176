package hdl

import (
	"fmt"

	"fhdl/internal/shape"
)

// Const is a literal integer.
type Const struct {
	lit   int64
	shape shape.Shape
}

// C returns a constant with the minimal shape of v.
func C(v int64) *Const {
	return &Const{lit: v, shape: shape.Of(v)}
}

// NewConst returns a constant with an explicit shape.
func NewConst(v int64, s shape.Shape) (*Const, error) {
	if err := s.Validate(); err != nil {
		return nil, wrapErr(InvalidValue, err, "constant %d", v)
	}
	return &Const{lit: v, shape: s}, nil
}

// ConstWidth returns a constant of width bits, signed iff v is negative.
func ConstWidth(v int64, width int) (*Const, error) {
	return NewConst(v, shape.Shape{Width: width, Signed: v < 0})
}

// Int returns the literal value.
func (c *Const) Int() int64 { return c.lit }

func (c *Const) Shape() shape.Shape { return c.shape }

func (c *Const) RHSSignals() *SignalSet { return NewSignalSet() }

func (c *Const) LHSSignals() (*SignalSet, error) {
	return nil, errorf(NotAssignable, "value %s cannot be used in assignments", c)
}

func (c *Const) String() string {
	sign := ""
	if c.shape.Signed {
		sign = "s"
	}
	return fmt.Sprintf("(const %d'%sd%d)", c.shape.Width, sign, c.lit)
}

func (*Const) value() {}
