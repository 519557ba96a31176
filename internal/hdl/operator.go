package hdl

import (
	"fmt"
	"strings"

	"fhdl/internal/shape"
)

// OpKind names the operation an Operator node performs.
type OpKind uint8

const (
	OpInvalid OpKind = iota
	OpNeg
	OpNot
	OpAdd
	OpSub
	OpMul
	OpMod
	OpShl
	OpShr
	OpAnd
	OpOr
	OpXor
	OpEq
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe
	OpBool
	OpMux
)

type inferFn func(ops []shape.Shape) (shape.Shape, error)

// opSpec lists the printed symbol, operand count and shape rule of a kind.
type opSpec struct {
	name   string
	symbol string
	arity  int
	infer  inferFn
}

var opSpecTable = map[OpKind]opSpec{
	OpNeg:  {name: "negate", symbol: "-", arity: 1, infer: inferNeg},
	OpNot:  {name: "not", symbol: "~", arity: 1, infer: inferSame},
	OpAdd:  {name: "add", symbol: "+", arity: 2, infer: inferAddSub},
	OpSub:  {name: "sub", symbol: "-", arity: 2, infer: inferAddSub},
	OpMul:  {name: "mul", symbol: "*", arity: 2, infer: inferMul},
	OpMod:  {name: "mod", symbol: "%", arity: 2, infer: inferMod},
	OpShl:  {name: "shl", symbol: "<<<", arity: 2, infer: inferShl},
	OpShr:  {name: "shr", symbol: ">>>", arity: 2, infer: inferShr},
	OpAnd:  {name: "and", symbol: "&", arity: 2, infer: inferBitwise},
	OpOr:   {name: "or", symbol: "|", arity: 2, infer: inferBitwise},
	OpXor:  {name: "xor", symbol: "^", arity: 2, infer: inferBitwise},
	OpEq:   {name: "eq", symbol: "==", arity: 2, infer: inferBit},
	OpNe:   {name: "ne", symbol: "!=", arity: 2, infer: inferBit},
	OpLt:   {name: "lt", symbol: "<", arity: 2, infer: inferBit},
	OpLe:   {name: "le", symbol: "<=", arity: 2, infer: inferBit},
	OpGt:   {name: "gt", symbol: ">", arity: 2, infer: inferBit},
	OpGe:   {name: "ge", symbol: ">=", arity: 2, infer: inferBit},
	OpBool: {name: "boolify", symbol: "b", arity: 1, infer: inferBit},
	OpMux:  {name: "mux", symbol: "m", arity: 3, infer: inferMux},
}

func (k OpKind) String() string {
	if spec, ok := opSpecTable[k]; ok {
		return spec.name
	}
	return fmt.Sprintf("OpKind(%d)", k)
}

// Symbol returns the operator as printed in the textual form.
func (k OpKind) Symbol() string {
	return opSpecTable[k].symbol
}

// Arity returns the number of operands the kind takes, or 0 if unknown.
func (k OpKind) Arity() int {
	return opSpecTable[k].arity
}

// KindBySymbol finds the kind printed as sym with the given operand count.
// "-" is negation with one operand and subtraction with two.
func KindBySymbol(sym string, arity int) (OpKind, bool) {
	for kind, spec := range opSpecTable {
		if spec.symbol == sym && spec.arity == arity {
			return kind, true
		}
	}
	return OpInvalid, false
}

// Operator is an operation over wrapped operands. Its shape is computed once
// at construction.
type Operator struct {
	kind     OpKind
	operands []Value
	shape    shape.Shape
}

// NewOperator builds an operator node. Operands are wrapped; the operand
// count must match the kind.
func NewOperator(kind OpKind, operands ...any) (*Operator, error) {
	spec, ok := opSpecTable[kind]
	if !ok {
		return nil, errorf(InvalidValue, "unknown operator %v", kind)
	}
	if len(operands) != spec.arity {
		return nil, errorf(InvalidValue, "operator %v takes %d operands, got %d", kind, spec.arity, len(operands))
	}
	vals, err := wrapAll(operands)
	if err != nil {
		return nil, err
	}
	shapes := make([]shape.Shape, len(vals))
	for i, v := range vals {
		shapes[i] = v.Shape()
	}
	sh, err := spec.infer(shapes)
	if err != nil {
		return nil, wrapErr(InvalidValue, err, "operator %v", kind)
	}
	return &Operator{kind: kind, operands: vals, shape: sh}, nil
}

func (o *Operator) Kind() OpKind { return o.kind }

// Operands returns a copy of the operand list.
func (o *Operator) Operands() []Value {
	return append([]Value(nil), o.operands...)
}

func (o *Operator) Shape() shape.Shape { return o.shape }

func (o *Operator) RHSSignals() *SignalSet {
	out := NewSignalSet()
	for _, op := range o.operands {
		out.Union(op.RHSSignals())
	}
	return out
}

func (o *Operator) LHSSignals() (*SignalSet, error) {
	return nil, errorf(NotAssignable, "value %s cannot be used in assignments", o)
}

func (o *Operator) String() string {
	parts := make([]string, 0, len(o.operands)+1)
	parts = append(parts, o.kind.Symbol())
	for _, op := range o.operands {
		parts = append(parts, op.String())
	}
	return "(" + strings.Join(parts, " ") + ")"
}

func (*Operator) value() {}

// Builders, one per kind.

func Neg(a any) (*Operator, error)    { return NewOperator(OpNeg, a) }
func Not(a any) (*Operator, error)    { return NewOperator(OpNot, a) }
func Add(a, b any) (*Operator, error) { return NewOperator(OpAdd, a, b) }
func Sub(a, b any) (*Operator, error) { return NewOperator(OpSub, a, b) }
func Mul(a, b any) (*Operator, error) { return NewOperator(OpMul, a, b) }
func Mod(a, b any) (*Operator, error) { return NewOperator(OpMod, a, b) }
func Shl(a, b any) (*Operator, error) { return NewOperator(OpShl, a, b) }
func Shr(a, b any) (*Operator, error) { return NewOperator(OpShr, a, b) }
func And(a, b any) (*Operator, error) { return NewOperator(OpAnd, a, b) }
func Or(a, b any) (*Operator, error)  { return NewOperator(OpOr, a, b) }
func Xor(a, b any) (*Operator, error) { return NewOperator(OpXor, a, b) }
func Eq(a, b any) (*Operator, error)  { return NewOperator(OpEq, a, b) }
func Ne(a, b any) (*Operator, error)  { return NewOperator(OpNe, a, b) }
func Lt(a, b any) (*Operator, error)  { return NewOperator(OpLt, a, b) }
func Le(a, b any) (*Operator, error)  { return NewOperator(OpLe, a, b) }
func Gt(a, b any) (*Operator, error)  { return NewOperator(OpGt, a, b) }
func Ge(a, b any) (*Operator, error)  { return NewOperator(OpGe, a, b) }

// Bool is 1 if any bit of a is set, else 0.
func Bool(a any) (*Operator, error) { return NewOperator(OpBool, a) }

// Mux selects a when sel is non-zero, else b.
func Mux(sel, a, b any) (*Operator, error) { return NewOperator(OpMux, sel, a, b) }
