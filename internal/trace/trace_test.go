package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestLevelReach(t *testing.T) {
	cases := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeDriver, false},
		{LevelError, ScopePass, true},
		{LevelError, ScopeDesign, false},
		{LevelPhase, ScopePass, true},
		{LevelPhase, ScopeDesign, false},
		{LevelDetail, ScopeDesign, true},
		{LevelDetail, ScopeNode, false},
		{LevelDebug, ScopeNode, true},
	}
	for _, c := range cases {
		if got := c.level.ShouldEmit(c.scope); got != c.want {
			t.Fatalf("%v.ShouldEmit(%v) = %v, want %v", c.level, c.scope, got, c.want)
		}
	}
}

func TestParseNames(t *testing.T) {
	if l, err := ParseLevel("DETAIL"); err != nil || l != LevelDetail {
		t.Fatalf("ParseLevel(DETAIL) = %v, %v", l, err)
	}
	if _, err := ParseLevel("loud"); err == nil || !strings.Contains(err.Error(), "off|error|phase|detail|debug") {
		t.Fatalf("ParseLevel(loud) err = %v", err)
	}
	if m, err := ParseMode("both"); err != nil || m != ModeBoth {
		t.Fatalf("ParseMode(both) = %v, %v", m, err)
	}
	if _, err := ParseMode("tape"); err == nil {
		t.Fatalf("expected error for unknown mode")
	}
	for in, want := range map[string]Format{"": FormatAuto, "json": FormatNDJSON, "Text": FormatText} {
		if f, err := ParseFormat(in); err != nil || f != want {
			t.Fatalf("ParseFormat(%q) = %v, %v", in, f, err)
		}
	}
	if Scope(99).String() != "unknown" || KindPoint.String() != "point" {
		t.Fatalf("names broken")
	}
}

func TestStreamTracerText(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDebug, FormatText)
	span := Begin(tr, ScopePass, "load", 0)
	Point(tr, ScopeNode, "signal", "count u8", span.ID())
	span.Set("path", "a.toml").Set("signals", "1").Set("path", "b.toml").End("ok")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %q", buf.String())
	}
	if !strings.Contains(lines[0], "-> load") ||
		!strings.Contains(lines[1], "  * signal (count u8)") ||
		!strings.HasSuffix(lines[2], "<- load (ok) {path=b.toml, signals=1}") {
		t.Fatalf("unexpected trace output:\n%s", buf.String())
	}
}

func TestTextDetailKeepsSExpressions(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDebug, FormatText)
	Point(tr, ScopeNode, "statement", "(eq (sig s) (const 0'd0))", 0)
	Point(tr, ScopeNode, "signal", "s u3", 0)
	out := buf.String()
	if !strings.Contains(out, "* statement (eq (sig s) (const 0'd0))\n") || strings.Contains(out, "((") {
		t.Fatalf("statement detail:\n%s", out)
	}
	if !strings.Contains(out, "* signal (s u3)\n") {
		t.Fatalf("signal detail:\n%s", out)
	}
}

func TestStreamTracerNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelPhase, FormatNDJSON)
	Point(tr, ScopeNode, "signal", "", 0)
	if buf.Len() != 0 {
		t.Fatalf("node events must be dropped at phase level")
	}
	Begin(tr, ScopeDriver, "check", 0).Set("errors", "0").End("")
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %q", lines)
	}
	var end struct {
		Name   string            `json:"name"`
		Scope  string            `json:"scope"`
		Kind   string            `json:"kind"`
		Fields map[string]string `json:"fields"`
	}
	if err := json.Unmarshal([]byte(lines[1]), &end); err != nil {
		t.Fatalf("invalid ndjson line %q: %v", lines[1], err)
	}
	if end.Name != "check" || end.Scope != "driver" || end.Kind != "end" || end.Fields["errors"] != "0" {
		t.Fatalf("end event = %+v", end)
	}
}

func TestErrorLevelOnlyFillsRings(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelError, Mode: ModeBoth, Output: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	Begin(tr, ScopePass, "load", 0).End("error")
	ring, _ := RingOf(tr)
	if buf.Len() != 0 || len(ring.Snapshot()) != 2 {
		t.Fatalf("stream %q, ring %d events", buf.String(), len(ring.Snapshot()))
	}
}

func TestRingTracerKeepsNewest(t *testing.T) {
	r := NewRingTracer(2, LevelDebug)
	for _, name := range []string{"a", "b", "c"} {
		Point(r, ScopeNode, name, "", 0)
	}
	snap := r.Snapshot()
	if len(snap) != 2 || snap[0].Name != "b" || snap[1].Name != "c" || snap[0].Seq >= snap[1].Seq {
		t.Fatalf("snapshot = %+v", snap)
	}
	var buf bytes.Buffer
	if err := r.Dump(&buf, FormatText); err != nil {
		t.Fatalf("Dump: %v", err)
	}
	if strings.Count(buf.String(), "\n") != 2 {
		t.Fatalf("dump = %q", buf.String())
	}
}

func TestNewModes(t *testing.T) {
	if tr, err := New(Config{Level: LevelOff}); err != nil || tr != Nop {
		t.Fatalf("off level should give Nop, got %T %v", tr, err)
	}
	if tr, err := New(Config{Level: LevelPhase, Mode: ModeRing}); err != nil {
		t.Fatalf("New(ring): %v", err)
	} else if _, ok := RingOf(tr); !ok {
		t.Fatalf("ring mode gave %T", tr)
	}

	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelDebug, Mode: ModeBoth, Output: &buf})
	if err != nil {
		t.Fatalf("New(both): %v", err)
	}
	ring, ok := RingOf(tr)
	if !ok {
		t.Fatalf("both mode keeps a ring, got %T", tr)
	}
	Point(tr, ScopeDesign, "design", "top", 0)
	if len(ring.Snapshot()) != 1 || !strings.Contains(buf.String(), "design (top)") {
		t.Fatalf("both mode must stream and keep the event")
	}
	if err := tr.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestContextPropagation(t *testing.T) {
	tr := NewRingTracer(8, LevelDebug)
	ctx := WithTracer(context.Background(), tr)
	if FromContext(ctx) != Tracer(tr) || FromContext(context.Background()) != Nop {
		t.Fatalf("tracer propagation broken")
	}
	span := Begin(tr, ScopeDriver, "root", 0)
	ctx = WithParent(ctx, span)
	if ParentFrom(ctx) != span.ID() || span.ID() == 0 {
		t.Fatalf("parent propagation broken")
	}
	inert := Begin(Nop, ScopePass, "x", 7)
	if inert.ID() != 7 || inert.End("") != 0 {
		t.Fatalf("inert spans report their parent id")
	}
}
