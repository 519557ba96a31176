package hdl

import (
	"math"
	"math/bits"
	"testing"

	"fhdl/internal/shape"
)

func TestWrap(t *testing.T) {
	c := C(7)
	v, err := Wrap(c)
	if err != nil || v != c {
		t.Fatalf("Wrap should pass values through, got %v, %v", v, err)
	}
	v, err = Wrap(true)
	if err != nil {
		t.Fatalf("Wrap(true): %v", err)
	}
	if got := v.(*Const); got.Int() != 1 || got.Shape() != shape.Unsigned(1) {
		t.Fatalf("Wrap(true) = %s", got)
	}
	v, err = Wrap(false)
	if err != nil || v.(*Const).Int() != 0 {
		t.Fatalf("Wrap(false) = %v, %v", v, err)
	}
	v, err = Wrap(uint16(300))
	if err != nil || v.(*Const).Int() != 300 {
		t.Fatalf("Wrap(uint16) = %v, %v", v, err)
	}
	_, err = Wrap("abc")
	expectKind(t, err, InvalidValue)
	_, err = Wrap(nil)
	expectKind(t, err, InvalidValue)
	_, err = Wrap((*Signal)(nil))
	expectKind(t, err, InvalidValue)
	_, err = Wrap(uint64(math.MaxUint64))
	expectKind(t, err, InvalidValue)
}

func TestConstDefaultShape(t *testing.T) {
	for _, v := range []int64{0, 1, 2, 3, 7, 8, 255, 256, 1 << 40} {
		c := C(v)
		if c.Shape().Width != bits.Len64(uint64(v)) || c.Shape().Signed {
			t.Fatalf("C(%d) shape = %v", v, c.Shape())
		}
	}
	if got := C(-3).Shape(); got != shape.Signed(3) {
		t.Fatalf("C(-3) shape = %v", got)
	}
}

func TestConstExplicitShape(t *testing.T) {
	c, err := ConstWidth(5, 8)
	if err != nil {
		t.Fatalf("ConstWidth: %v", err)
	}
	if c.Shape() != shape.Unsigned(8) {
		t.Fatalf("shape = %v", c.Shape())
	}
	c, err = ConstWidth(-3, 4)
	if err != nil || c.Shape() != shape.Signed(4) {
		t.Fatalf("ConstWidth(-3, 4) = %v, %v", c, err)
	}
	_, err = ConstWidth(1, -1)
	expectKind(t, err, InvalidValue)
	_, err = NewConst(1, shape.Shape{Width: -2, Signed: true})
	expectKind(t, err, InvalidValue)
}

func TestConstString(t *testing.T) {
	if got := Must(ConstWidth(3, 4)).String(); got != "(const 4'd3)" {
		t.Fatalf("got %q", got)
	}
	if got := Must(ConstWidth(-3, 4)).String(); got != "(const 4'sd-3)" {
		t.Fatalf("got %q", got)
	}
}

func TestConstNotAssignable(t *testing.T) {
	_, err := C(1).LHSSignals()
	expectKind(t, err, NotAssignable)
	if C(1).RHSSignals().Len() != 0 {
		t.Fatalf("constants read no signals")
	}
}

func TestMustPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("Must should panic on error")
		}
	}()
	Must(Wrap("x"))
}
