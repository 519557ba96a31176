package irdump

import (
	"fmt"

	"fortio.org/safecast"

	"fhdl/internal/design"
	"fhdl/internal/hdl"
	"fhdl/internal/shape"
)

// Rebuild turns a payload back into IR, declaring fresh signals on b.
// Signal identities are new; names, shapes and attributes are kept.
func Rebuild(p *Payload, b *design.Builder) error {
	r := rebuilder{sigs: make(map[uint64]*hdl.Signal, len(p.Signals))}
	for _, rec := range p.Signals {
		w, err := safecast.Conv[int](rec.Width)
		if err != nil {
			return err
		}
		opts := []hdl.SignalOption{
			hdl.WithName(rec.Name),
			hdl.WithShape(shape.Shape{Width: w, Signed: rec.Signed}),
			hdl.WithReset(rec.Reset),
			hdl.WithResetLess(rec.ResetLess),
		}
		for _, a := range rec.Attrs {
			opts = append(opts, hdl.WithAttr(a.Key, a.Value))
		}
		sig, err := b.Signal(rec.Name, opts...)
		if err != nil {
			return err
		}
		r.sigs[rec.ID] = sig
	}
	for _, n := range p.Statements {
		st, err := r.statement(n)
		if err != nil {
			return err
		}
		if err := b.Add(st); err != nil {
			return err
		}
	}
	return nil
}

type rebuilder struct {
	sigs map[uint64]*hdl.Signal
}

func (r *rebuilder) values(nodes []Node) ([]any, error) {
	out := make([]any, len(nodes))
	for i, n := range nodes {
		v, err := r.value(n)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (r *rebuilder) args(n Node, want int) ([]any, error) {
	if len(n.Args) != want {
		return nil, fmt.Errorf("irdump: %s node has %d operands, expected %d", n.Kind, len(n.Args), want)
	}
	return r.values(n.Args)
}

func (r *rebuilder) value(n Node) (hdl.Value, error) {
	switch n.Kind {
	case KindConst:
		w, err := safecast.Conv[int](n.Width)
		if err != nil {
			return nil, err
		}
		return hdl.NewConst(n.Int, shape.Shape{Width: w, Signed: n.Signed})
	case KindSignal:
		sig, ok := r.sigs[n.Ref]
		if !ok {
			return nil, fmt.Errorf("irdump: reference to undeclared signal %d", n.Ref)
		}
		return sig, nil
	case KindOp:
		kind, ok := hdl.KindBySymbol(n.Op, len(n.Args))
		if !ok {
			return nil, fmt.Errorf("irdump: unknown operator %q/%d", n.Op, len(n.Args))
		}
		ops, err := r.values(n.Args)
		if err != nil {
			return nil, err
		}
		return hdl.NewOperator(kind, ops...)
	case KindSlice:
		ops, err := r.args(n, 1)
		if err != nil {
			return nil, err
		}
		lo, err := safecast.Conv[int](n.Lo)
		if err != nil {
			return nil, err
		}
		hi, err := safecast.Conv[int](n.Hi)
		if err != nil {
			return nil, err
		}
		return hdl.NewSlice(ops[0], lo, hi)
	case KindPart:
		ops, err := r.args(n, 2)
		if err != nil {
			return nil, err
		}
		w, err := safecast.Conv[int](n.Width)
		if err != nil {
			return nil, err
		}
		return hdl.NewPart(ops[0], ops[1], w)
	case KindCat:
		ops, err := r.values(n.Args)
		if err != nil {
			return nil, err
		}
		return hdl.NewCat(ops...)
	case KindRepl:
		ops, err := r.args(n, 1)
		if err != nil {
			return nil, err
		}
		count, err := safecast.Conv[int](n.Int)
		if err != nil {
			return nil, err
		}
		return hdl.NewRepl(ops[0], count)
	case KindClock:
		return hdl.NewClockSignal(n.Text), nil
	case KindReset:
		return hdl.NewResetSignal(n.Text), nil
	default:
		return nil, fmt.Errorf("irdump: unknown value node %q", n.Kind)
	}
}

func (r *rebuilder) statement(n Node) (hdl.Statement, error) {
	switch n.Kind {
	case KindAssign:
		ops, err := r.args(n, 2)
		if err != nil {
			return nil, err
		}
		return hdl.NewAssign(ops[0], ops[1])
	case KindSwitch:
		ops, err := r.args(n, 1)
		if err != nil {
			return nil, err
		}
		arms := make([]hdl.CaseArm, 0, len(n.Cases))
		for _, c := range n.Cases {
			body := make([]any, 0, len(c.Body))
			for _, bn := range c.Body {
				st, err := r.statement(bn)
				if err != nil {
					return nil, err
				}
				body = append(body, st)
			}
			arms = append(arms, hdl.On(c.Pattern, body...))
		}
		return hdl.NewSwitch(ops[0], arms...)
	default:
		return nil, fmt.Errorf("irdump: unknown statement node %q", n.Kind)
	}
}
