package diag

import (
	"strings"
)

// Format renders d on one line: "where: severity ID: message", followed
// by one indented line per note.
func Format(d Diagnostic) string {
	var sb strings.Builder
	if w := d.Where.String(); w != "" {
		sb.WriteString(w)
		sb.WriteString(": ")
	}
	sb.WriteString(d.Severity.String())
	sb.WriteByte(' ')
	sb.WriteString(d.Code.ID())
	sb.WriteString(": ")
	sb.WriteString(d.Message)
	for _, n := range d.Notes {
		sb.WriteString("\n  note: ")
		if w := n.Where.String(); w != "" {
			sb.WriteString(w)
			sb.WriteString(": ")
		}
		sb.WriteString(n.Msg)
	}
	return sb.String()
}

// FormatAll renders every diagnostic, one per line.
func FormatAll(diags []Diagnostic) string {
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = Format(d)
	}
	return strings.Join(lines, "\n")
}
