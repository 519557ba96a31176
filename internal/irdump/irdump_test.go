package irdump

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vmihailenco/msgpack/v5"

	"fhdl/internal/design"
	"fhdl/internal/hdl"
	"fhdl/internal/shape"
	"fhdl/internal/testkit"
)

func sampleDesign(t *testing.T) *design.Design {
	t.Helper()
	b := design.New("alu")
	a := hdl.Must(b.Signal("a", hdl.WithWidth(8), hdl.WithAttr("keep", "true")))
	c := hdl.Must(b.Signal("c", hdl.WithShape(shape.Signed(4)), hdl.WithReset(-2)))
	op := hdl.Must(b.Signal("op", hdl.WithRange(0, 4)))
	out := hdl.Must(b.Signal("out", hdl.WithWidth(10), hdl.WithResetLess(true)))

	sum := hdl.Must(hdl.Add(a, c))
	stmts := []any{
		hdl.Must(hdl.NewAssign(out, 0)),
		hdl.Must(hdl.NewSwitch(op,
			hdl.On(0, hdl.Must(hdl.NewAssign(out, sum))),
			hdl.On(1, hdl.Must(hdl.NewAssign(hdl.Must(hdl.NewSlice(out, 0, 8)), hdl.Must(hdl.NewPart(a, op, 2))))),
			hdl.On("11", hdl.Must(hdl.NewAssign(out, hdl.Must(hdl.NewCat(hdl.Must(hdl.NewRepl(c, 2)), hdl.NewClockSignal(""), hdl.NewResetSignal("io")))))),
		)),
	}
	if err := b.Add(stmts...); err != nil {
		t.Fatalf("Add: %v", err)
	}
	return b.Design()
}

func TestEncodeDecodeRebuild(t *testing.T) {
	d := sampleDesign(t)
	var buf bytes.Buffer
	if err := Encode(&buf, d); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	p, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if p.Name != "alu" || len(p.Signals) != 4 || len(p.Statements) != 2 {
		t.Fatalf("payload = %+v", p)
	}
	c := p.Signals[1]
	if c.Name != "c" || c.Width != 4 || !c.Signed || c.Reset != -2 {
		t.Fatalf("signal record = %+v", c)
	}
	if len(p.Signals[0].Attrs) != 1 || p.Signals[0].Attrs[0].Key != "keep" || p.Signals[0].Attrs[0].Value != "true" {
		t.Fatalf("attrs = %+v", p.Signals[0].Attrs)
	}

	b := design.New("copy")
	if err := Rebuild(p, b); err != nil {
		t.Fatalf("Rebuild: %v", err)
	}
	got := b.Design()
	if err := testkit.CheckDesignInvariants(got); err != nil {
		t.Fatalf("invariants: %v", err)
	}
	for i, st := range d.Statements {
		if got.Statements[i].String() != st.String() {
			t.Fatalf("statement %d: got %s, want %s", i, got.Statements[i], st)
		}
	}
	for i, sig := range d.Signals {
		g := got.Signals[i]
		if g.Name() != sig.Name() || g.Shape() != sig.Shape() || g.ResetLess() != sig.ResetLess() {
			t.Fatalf("signal %d: got %s %v, want %s %v", i, g.Name(), g.Shape(), sig.Name(), sig.Shape())
		}
	}
}

func TestDecodeRejectsOtherSchema(t *testing.T) {
	data, err := msgpack.Marshal(&Payload{Schema: SchemaVersion + 1})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if _, err := Decode(bytes.NewReader(data)); err == nil || !strings.Contains(err.Error(), "schema") {
		t.Fatalf("err = %v", err)
	}
}

func TestRebuildRejectsDanglingRef(t *testing.T) {
	p := &Payload{
		Schema: SchemaVersion,
		Statements: []Node{{
			Kind: KindAssign,
			Args: []Node{{Kind: KindSignal, Ref: 99}, {Kind: KindConst, Width: 1, Int: 1}},
		}},
	}
	err := Rebuild(p, design.New("bad"))
	if err == nil || !strings.Contains(err.Error(), "undeclared signal 99") {
		t.Fatalf("err = %v", err)
	}
}

func TestWriteReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "alu.mp")
	if err := WriteFile(path, sampleDesign(t)); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	p, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if p.Name != "alu" {
		t.Fatalf("Name = %q", p.Name)
	}
	matches, _ := filepath.Glob(filepath.Join(filepath.Dir(path), "tmp-*"))
	if len(matches) != 0 {
		t.Fatalf("temp files left behind: %v", matches)
	}
}
