package version

import (
	"strings"
	"testing"

	"github.com/fatih/color"
)

func withVersion(t *testing.T, v, commit, date string) {
	t.Helper()
	origVersion, origCommit, origDate := Version, GitCommit, BuildDate
	Version, GitCommit, BuildDate = v, commit, date
	t.Cleanup(func() {
		Version, GitCommit, BuildDate = origVersion, origCommit, origDate
	})
}

func TestRenderPlain(t *testing.T) {
	withVersion(t, "1.2.3-rc.1+build.7", "", "")
	if got := Render(false); got != "1.2.3-rc.1+build.7" {
		t.Fatalf("Render(false) = %q", got)
	}
}

func TestRenderColored(t *testing.T) {
	withVersion(t, "1.2.3-rc.1", "", "")
	orig := color.NoColor
	color.NoColor = false
	t.Cleanup(func() { color.NoColor = orig })

	got := Render(true)
	if !strings.Contains(got, "\x1b[") {
		t.Fatalf("Render(true) = %q, expected ANSI codes", got)
	}
	if !strings.HasSuffix(got, "-rc.1") {
		t.Fatalf("Render(true) = %q, prerelease lost", got)
	}
}

func TestRenderNonSemver(t *testing.T) {
	withVersion(t, "nightly", "", "")
	if got := Render(true); got != "nightly" {
		t.Fatalf("Render(true) = %q", got)
	}
}

func TestSummary(t *testing.T) {
	withVersion(t, "0.3.0", "abc123", "2026-01-15")
	if got := Summary(false); got != "fhdl 0.3.0, commit abc123, built 2026-01-15" {
		t.Fatalf("Summary = %q", got)
	}
	withVersion(t, "0.3.0", "", "")
	if got := Summary(false); got != "fhdl 0.3.0" {
		t.Fatalf("Summary = %q", got)
	}
}
