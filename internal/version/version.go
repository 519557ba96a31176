// Package version holds build metadata for the fhdl CLI. The variables
// can be overridden at build time via -ldflags.
package version

import (
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/fatih/color"
)

var (
	versionMajorColor = color.New(color.FgYellow, color.Bold)
	versionMinorColor = color.New(color.FgGreen, color.Bold)
	versionPatchColor = color.New(color.FgBlue, color.Bold)

	// Version is the semantic version of the CLI.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

// Render returns Version with the major, minor and patch numbers colored.
// A Version that is not semver is returned unchanged.
func Render(colored bool) string {
	v, err := semver.NewVersion(Version)
	if err != nil || !colored {
		return Version
	}
	out := versionMajorColor.Sprint(strconv.FormatUint(v.Major(), 10)) + "." +
		versionMinorColor.Sprint(strconv.FormatUint(v.Minor(), 10)) + "." +
		versionPatchColor.Sprint(strconv.FormatUint(v.Patch(), 10))
	if pre := v.Prerelease(); pre != "" {
		out += "-" + pre
	}
	if meta := v.Metadata(); meta != "" {
		out += "+" + meta
	}
	return out
}

// Summary is the one-line version string with commit and build date
// when they are known.
func Summary(colored bool) string {
	parts := []string{"fhdl " + Render(colored)}
	if GitCommit != "" {
		parts = append(parts, "commit "+GitCommit)
	}
	if BuildDate != "" {
		parts = append(parts, "built "+BuildDate)
	}
	return strings.Join(parts, ", ")
}
