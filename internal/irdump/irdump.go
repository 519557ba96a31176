// Package irdump serialises a design as a msgpack node tree for tools
// outside this module.
package irdump

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"fortio.org/safecast"
	"github.com/vmihailenco/msgpack/v5"

	"fhdl/internal/design"
	"fhdl/internal/hdl"
)

// SchemaVersion is bumped whenever the Payload layout changes.
const SchemaVersion uint16 = 1

// Node kinds.
const (
	KindConst  = "const"
	KindSignal = "sig"
	KindOp     = "op"
	KindSlice  = "slice"
	KindPart   = "part"
	KindCat    = "cat"
	KindRepl   = "repl"
	KindClock  = "clk"
	KindReset  = "rst"
	KindAssign = "eq"
	KindSwitch = "switch"
)

// Payload is the top-level record of a dump.
type Payload struct {
	Schema     uint16      `msgpack:"schema"`
	Name       string      `msgpack:"name"`
	Signals    []SignalRec `msgpack:"signals"`
	Statements []Node      `msgpack:"statements"`
}

// SignalRec describes one signal. Nodes refer to it by ID.
type SignalRec struct {
	ID        uint64    `msgpack:"id"`
	Name      string    `msgpack:"name"`
	Width     uint32    `msgpack:"width"`
	Signed    bool      `msgpack:"signed"`
	Reset     int64     `msgpack:"reset"`
	ResetLess bool      `msgpack:"reset_less"`
	Attrs     []AttrRec `msgpack:"attrs,omitempty"`
}

// AttrRec is one attribute; a list keeps insertion order.
type AttrRec struct {
	Key   string `msgpack:"key"`
	Value any    `msgpack:"value"`
}

// Node is a value or statement. Which fields are set depends on Kind:
//
//	const   Width Signed Int
//	sig     Ref
//	op      Op Args Width Signed
//	slice   Args[0] Lo Hi
//	part    Args[0] (base) Args[1] (offset) Width
//	cat     Args
//	repl    Args[0] Int (count)
//	clk,rst Text (domain)
//	eq      Args[0] (lhs) Args[1] (rhs)
//	switch  Args[0] (test) Cases
type Node struct {
	Kind   string `msgpack:"k"`
	Op     string `msgpack:"op,omitempty"`
	Width  uint32 `msgpack:"w,omitempty"`
	Signed bool   `msgpack:"s,omitempty"`
	Int    int64  `msgpack:"i,omitempty"`
	Ref    uint64 `msgpack:"ref,omitempty"`
	Lo     uint32 `msgpack:"lo,omitempty"`
	Hi     uint32 `msgpack:"hi,omitempty"`
	Text   string `msgpack:"t,omitempty"`
	Args   []Node `msgpack:"a,omitempty"`
	Cases  []Case `msgpack:"c,omitempty"`
}

// Case is one arm of a switch node.
type Case struct {
	Pattern string `msgpack:"p"`
	Body    []Node `msgpack:"b"`
}

// FromDesign converts d into a Payload.
func FromDesign(d *design.Design) (*Payload, error) {
	p := &Payload{Schema: SchemaVersion, Name: d.Name}
	for _, sig := range d.Signals {
		rec, err := signalRec(sig)
		if err != nil {
			return nil, err
		}
		p.Signals = append(p.Signals, rec)
	}
	for _, st := range d.Statements {
		n, err := statementNode(st)
		if err != nil {
			return nil, err
		}
		p.Statements = append(p.Statements, n)
	}
	return p, nil
}

func width(w int) (uint32, error) {
	out, err := safecast.Conv[uint32](w)
	if err != nil {
		return 0, fmt.Errorf("width %d does not fit the dump format: %w", w, err)
	}
	return out, nil
}

func signalRec(sig *hdl.Signal) (SignalRec, error) {
	w, err := width(sig.Shape().Width)
	if err != nil {
		return SignalRec{}, fmt.Errorf("signal %s: %w", sig.Name(), err)
	}
	rec := SignalRec{
		ID:        uint64(sig.ID()),
		Name:      sig.Name(),
		Width:     w,
		Signed:    sig.Shape().Signed,
		Reset:     sig.Reset(),
		ResetLess: sig.ResetLess(),
	}
	sig.Attrs().Each(func(key string, val any) {
		rec.Attrs = append(rec.Attrs, AttrRec{Key: key, Value: val})
	})
	return rec, nil
}

func valueNodes(vals []hdl.Value) ([]Node, error) {
	out := make([]Node, len(vals))
	for i, v := range vals {
		n, err := valueNode(v)
		if err != nil {
			return nil, err
		}
		out[i] = n
	}
	return out, nil
}

func valueNode(v hdl.Value) (Node, error) {
	switch v := v.(type) {
	case *hdl.Const:
		w, err := width(v.Shape().Width)
		if err != nil {
			return Node{}, err
		}
		return Node{Kind: KindConst, Width: w, Signed: v.Shape().Signed, Int: v.Int()}, nil
	case *hdl.Signal:
		return Node{Kind: KindSignal, Ref: uint64(v.ID())}, nil
	case *hdl.Operator:
		args, err := valueNodes(v.Operands())
		if err != nil {
			return Node{}, err
		}
		w, err := width(v.Shape().Width)
		if err != nil {
			return Node{}, err
		}
		return Node{Kind: KindOp, Op: v.Kind().Symbol(), Args: args, Width: w, Signed: v.Shape().Signed}, nil
	case *hdl.Slice:
		base, err := valueNode(v.Base())
		if err != nil {
			return Node{}, err
		}
		lo, err := width(v.Start())
		if err != nil {
			return Node{}, err
		}
		hi, err := width(v.End())
		if err != nil {
			return Node{}, err
		}
		return Node{Kind: KindSlice, Args: []Node{base}, Lo: lo, Hi: hi}, nil
	case *hdl.Part:
		args, err := valueNodes([]hdl.Value{v.Base(), v.Offset()})
		if err != nil {
			return Node{}, err
		}
		w, err := width(v.Width())
		if err != nil {
			return Node{}, err
		}
		return Node{Kind: KindPart, Args: args, Width: w}, nil
	case *hdl.Cat:
		args, err := valueNodes(v.Operands())
		if err != nil {
			return Node{}, err
		}
		return Node{Kind: KindCat, Args: args}, nil
	case *hdl.Repl:
		base, err := valueNode(v.Base())
		if err != nil {
			return Node{}, err
		}
		return Node{Kind: KindRepl, Args: []Node{base}, Int: int64(v.Count())}, nil
	case *hdl.ClockSignal:
		return Node{Kind: KindClock, Text: v.Domain()}, nil
	case *hdl.ResetSignal:
		return Node{Kind: KindReset, Text: v.Domain()}, nil
	default:
		return Node{}, fmt.Errorf("irdump: unsupported value %T", v)
	}
}

func statementNode(st hdl.Statement) (Node, error) {
	switch st := st.(type) {
	case *hdl.Assign:
		args, err := valueNodes([]hdl.Value{st.LHS(), st.RHS()})
		if err != nil {
			return Node{}, err
		}
		return Node{Kind: KindAssign, Args: args}, nil
	case *hdl.Switch:
		test, err := valueNode(st.Test())
		if err != nil {
			return Node{}, err
		}
		n := Node{Kind: KindSwitch, Args: []Node{test}}
		for _, c := range st.Cases() {
			body := make([]Node, 0, len(c.Body))
			for _, inner := range c.Body {
				bn, err := statementNode(inner)
				if err != nil {
					return Node{}, err
				}
				body = append(body, bn)
			}
			n.Cases = append(n.Cases, Case{Pattern: c.Pattern, Body: body})
		}
		return n, nil
	default:
		return Node{}, fmt.Errorf("irdump: unsupported statement %T", st)
	}
}

// Encode writes d to w.
func Encode(w io.Writer, d *design.Design) error {
	p, err := FromDesign(d)
	if err != nil {
		return err
	}
	return msgpack.NewEncoder(w).Encode(p)
}

// Decode reads a payload and checks its schema version.
func Decode(r io.Reader) (*Payload, error) {
	var p Payload
	if err := msgpack.NewDecoder(r).Decode(&p); err != nil {
		return nil, fmt.Errorf("irdump: %w", err)
	}
	if p.Schema != SchemaVersion {
		return nil, fmt.Errorf("irdump: schema %d, expected %d", p.Schema, SchemaVersion)
	}
	return &p, nil
}

// WriteFile encodes d into path, replacing it atomically.
func WriteFile(path string, d *design.Design) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if rmErr := os.Remove(f.Name()); rmErr != nil && !os.IsNotExist(rmErr) && err == nil {
			err = rmErr
		}
	}()
	if err := Encode(f, d); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), path)
}

// ReadFile decodes the payload stored at path.
func ReadFile(path string) (*Payload, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}
