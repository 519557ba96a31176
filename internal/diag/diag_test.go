package diag

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	"fhdl/internal/design"
	"fhdl/internal/hdl"
	"fhdl/internal/irtext"
	"fhdl/internal/manifest"
)

func TestCodeIDs(t *testing.T) {
	cases := map[Code]string{
		IRNotAssignable: "IR1005",
		TxtSyntax:       "TXT2001",
		ManFormat:       "MAN3003",
		IOLoadFileError: "IO4001",
		UnknownCode:     "E0000",
	}
	for code, want := range cases {
		if code.ID() != want {
			t.Fatalf("%d.ID() = %q, want %q", code, code.ID(), want)
		}
	}
	if Code(999).Title() != "Unknown error" {
		t.Fatalf("unknown code title = %q", Code(999).Title())
	}
}

func TestClassify(t *testing.T) {
	_, hdlErr := hdl.NewAssign(hdl.C(1), hdl.C(2))
	_, txtErr := irtext.ParseValue("(sig ghost)", irtext.Symbols{})
	_, synErr := irtext.ParseValue("(+ (const 1'd1)", irtext.Symbols{})
	_, ioErr := os.Open("/definitely/not/here")
	cases := []struct {
		err  error
		want Code
	}{
		{hdlErr, IRNotAssignable},
		{fmt.Errorf("wrapped: %w", hdlErr), IRNotAssignable},
		{txtErr, TxtUnknownSignal},
		{synErr, TxtSyntax},
		{fmt.Errorf("x.toml: %w", manifest.ErrFormat), ManFormat},
		{ioErr, IOLoadFileError},
		{errors.New("plain"), UnknownCode},
	}
	for _, tc := range cases {
		if got := Classify(tc.err); got != tc.want {
			t.Fatalf("Classify(%v) = %s, want %s", tc.err, got.ID(), tc.want.ID())
		}
	}
}

func TestFromErrorPositions(t *testing.T) {
	_, err := irtext.ParseStatements("(eq (sig a) (const 1'd0))\n  (eq (sig ghost) (const 1'd0))", "top.toml",
		irtext.Symbols{"a": hdl.Must(hdl.NewSignal(design.New("t").Allocator(), hdl.WithName("a")))})
	d := FromError("top.toml", err)
	if d.Where != (Where{Path: "top.toml", Line: 2, Col: 12}) {
		t.Fatalf("Where = %+v", d.Where)
	}
	if d.Message != `unknown signal "ghost"` {
		t.Fatalf("Message = %q", d.Message)
	}
	got := Format(d)
	if got != `top.toml:2:12: error TXT2002: unknown signal "ghost"` {
		t.Fatalf("Format = %q", got)
	}

	d = FromError("m.toml", fmt.Errorf("m.toml: %w", manifest.ErrMissing))
	if d.Where.String() != "m.toml" || d.Message != "missing required key" {
		t.Fatalf("diagnostic = %+v", d)
	}
}

func TestBagSortDedup(t *testing.T) {
	b := NewBag(10)
	b.Add(NewWarning(IRUnusedSignal, Where{Path: "b.toml"}, "unused"))
	b.Add(NewError(TxtSyntax, Where{Path: "a.toml", Line: 3}, "bad"))
	b.Add(NewError(TxtSyntax, Where{Path: "a.toml", Line: 3}, "bad"))
	b.Add(NewError(IRIndexRange, Where{Path: "a.toml", Line: 1}, "range"))
	b.Sort()
	b.Dedup()
	items := b.Items()
	if len(items) != 3 {
		t.Fatalf("items = %v", items)
	}
	if items[0].Code != IRIndexRange || items[1].Code != TxtSyntax || items[2].Where.Path != "b.toml" {
		t.Fatalf("order = %s", FormatAll(items))
	}
	if !b.HasErrors() || !b.HasWarnings() {
		t.Fatalf("severity queries wrong")
	}

	small := NewBag(1)
	if !small.Add(Diagnostic{}) || small.Add(Diagnostic{}) {
		t.Fatalf("limit not enforced")
	}
	small.Merge(b)
	if small.Len() != 4 || small.Cap() != 4 {
		t.Fatalf("Merge len=%d cap=%d", small.Len(), small.Cap())
	}
}

func TestLint(t *testing.T) {
	b := design.New("lint")
	out := hdl.Must(b.Signal("out", hdl.WithWidth(2)))
	in := hdl.Must(b.Signal("in", hdl.WithWidth(2)))
	hdl.Must(b.Signal("spare"))
	hdl.Must(b.Signal(""))
	if err := b.Add(hdl.Must(hdl.NewAssign(out, in))); err != nil {
		t.Fatalf("Add: %v", err)
	}
	diags := Lint("lint.toml", b.Design())
	var lines []string
	for _, d := range diags {
		lines = append(lines, d.Code.ID()+" "+d.Severity.String())
	}
	got := strings.Join(lines, ",")
	want := "IR1100 info,IR1102 warning,IR1102 warning,IR1103 warning"
	if got != want {
		t.Fatalf("lint = %s, want %s\n%s", got, want, FormatAll(diags))
	}
}

func TestReportError(t *testing.T) {
	bag := NewBag(4)
	ReportError(BagReporter{Bag: bag}, "x.yaml", fmt.Errorf("x.yaml: %w", manifest.ErrSyntax))
	ReportError(BagReporter{Bag: bag}, "x.yaml", nil)
	if bag.Len() != 1 || bag.Items()[0].Code != ManSyntax {
		t.Fatalf("bag = %v", bag.Items())
	}
}
