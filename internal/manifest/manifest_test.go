package manifest

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fhdl/internal/hdl"
	"fhdl/internal/irtext"
	"fhdl/internal/shape"
	"fhdl/internal/testkit"
)

const counterTOML = `
format = "1.2"
name = "counter"
statements = """
(eq (sig count) (+ (sig count) (const 1'd1)))
(switch (sig mode)
  (case 10 (eq (sig shadow) (const 1'd0))))
"""

[[signal]]
name = "count"
width = 8
reset = 3
attrs = { keep = true, beta = "x" }

[[signal]]
name = "mode"
min = 0
max = 3

[[signal]]
name = "shadow"
like = "count"
signed = false
reset_less = true
`

const counterYAML = `
format: "1.0.0"
name: counter
signal:
  - name: count
    width: 8
    signed: true
  - name: level
    min: -5
    max: 5
statements: |
  (eq (sig level) (slice (sig count) 0:4))
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoadTOMLAndBuild(t *testing.T) {
	m, err := Load(writeFile(t, "counter.toml", counterTOML))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if m.Name != "counter" || len(m.Signals) != 3 {
		t.Fatalf("manifest = %+v", m)
	}
	b, err := m.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	count, _ := b.Lookup("count")
	mode, _ := b.Lookup("mode")
	shadow, _ := b.Lookup("shadow")
	if count.Shape() != shape.Unsigned(8) || count.Reset() != 3 {
		t.Fatalf("count = %v reset %d", count.Shape(), count.Reset())
	}
	if got := count.Attrs().Keys(); len(got) != 2 || got[0] != "beta" || got[1] != "keep" {
		t.Fatalf("attrs keys = %v", got)
	}
	if mode.Shape() != shape.Unsigned(2) {
		t.Fatalf("mode shape = %v", mode.Shape())
	}
	if shadow.Shape() != count.Shape() || !shadow.ResetLess() || shadow.Reset() != 3 {
		t.Fatalf("shadow = %v resetless=%v reset=%d", shadow.Shape(), shadow.ResetLess(), shadow.Reset())
	}
	if stmts := b.Statements(); len(stmts) != 2 {
		t.Fatalf("statements = %v", stmts)
	}
	if d := b.Drivers(); d.Len() != 2 || !d.Has(count) || !d.Has(shadow) {
		t.Fatalf("drivers = %v", d)
	}
	if err := testkit.CheckDesignInvariants(b.Design()); err != nil {
		t.Fatalf("invariants: %v", err)
	}
}

func TestLoadYAMLAndBuild(t *testing.T) {
	m, err := Load(writeFile(t, "counter.yaml", counterYAML))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	b, err := m.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	count, _ := b.Lookup("count")
	level, _ := b.Lookup("level")
	if count.Shape() != shape.Signed(8) || level.Shape() != shape.Signed(4) {
		t.Fatalf("shapes = %v, %v", count.Shape(), level.Shape())
	}
}

func TestLoadErrors(t *testing.T) {
	cases := []struct {
		name, file, content string
		want                error
		msg                 string
	}{
		{"ext", "d.json", "{}", ErrExtension, ""},
		{"toml syntax", "d.toml", "format = ", ErrSyntax, ""},
		{"toml unknown key", "d.toml", "format = \"1.0\"\nname = \"d\"\ncolour = 1\n", ErrSyntax, "colour"},
		{"toml no name", "d.toml", "format = \"1.0\"\n", ErrMissing, `"name"`},
		{"yaml unknown key", "d.yaml", "format: \"1.0\"\nname: d\ncolour: 1\n", ErrSyntax, ""},
		{"yaml empty", "d.yml", "", ErrSyntax, "empty"},
		{"yaml no format", "d.yaml", "name: d\n", ErrMissing, `"format"`},
		{"format too new", "d.toml", "format = \"2.1\"\nname = \"d\"\n", ErrFormat, ">= 1.0, < 2.0"},
		{"format garbage", "d.toml", "format = \"one\"\nname = \"d\"\n", ErrFormat, ""},
		{"dup signal", "d.toml", "format = \"1.0\"\nname = \"d\"\n[[signal]]\nname = \"a\"\n[[signal]]\nname = \"a\"\n", ErrDeclaration, "already declared"},
		{"signed no width", "d.toml", "format = \"1.0\"\nname = \"d\"\n[[signal]]\nname = \"a\"\nsigned = true\n", ErrDeclaration, "explicit width"},
		{"like forward", "d.toml", "format = \"1.0\"\nname = \"d\"\n[[signal]]\nname = \"a\"\nlike = \"b\"\n[[signal]]\nname = \"b\"\n", ErrDeclaration, "earlier signal"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tc.file, tc.content))
			if !errors.Is(err, tc.want) {
				t.Fatalf("err = %v, want %v", err, tc.want)
			}
			if tc.msg != "" && !strings.Contains(err.Error(), tc.msg) {
				t.Fatalf("err = %v, want it to mention %q", err, tc.msg)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("err = %v", err)
	}
}

func TestBuildErrors(t *testing.T) {
	path := writeFile(t, "bad.toml", "format = \"1.0\"\nname = \"d\"\nstatements = \"\"\"\n(eq (sig a) (sig a))\n(eq (sig nope) (sig a))\n\"\"\"\n[[signal]]\nname = \"a\"\n")
	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	_, err = m.Build()
	var perr *irtext.Error
	if !errors.As(err, &perr) || perr.Line != 2 || !strings.Contains(err.Error(), path) {
		t.Fatalf("err = %v", err)
	}

	path = writeFile(t, "range.toml", "format = \"1.0\"\nname = \"d\"\n[[signal]]\nname = \"a\"\nwidth = 4\nmin = 0\nmax = 3\n")
	if m, err = Load(path); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, err = m.Build(); !hdl.IsKind(err, hdl.BoundsConflict) {
		t.Fatalf("err = %v, want BoundsConflict", err)
	}
}

func TestCheckFormat(t *testing.T) {
	for _, ok := range []string{"1.0", "1", "1.9.3"} {
		if err := CheckFormat(ok); err != nil {
			t.Fatalf("CheckFormat(%q) = %v", ok, err)
		}
	}
	for _, bad := range []string{"0.9", "2.0.0", "x"} {
		if err := CheckFormat(bad); !errors.Is(err, ErrFormat) {
			t.Fatalf("CheckFormat(%q) = %v", bad, err)
		}
	}
}
