package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"fhdl/internal/design"
	"fhdl/internal/diag"
)

func itoa(n int) string { return strconv.Itoa(n) }

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	infoColor    = color.New(color.FgCyan)
	pathColor    = color.New(color.Bold)
)

func severityColor(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return errorColor
	case diag.SevWarning:
		return warningColor
	default:
		return infoColor
	}
}

// renderDiagnostics prints diagnostics one per line, colored on request.
func renderDiagnostics(w io.Writer, diags []diag.Diagnostic, colored bool) {
	for _, d := range diags {
		if !colored {
			fmt.Fprintln(w, diag.Format(d))
			continue
		}
		var sb strings.Builder
		if where := d.Where.String(); where != "" {
			sb.WriteString(pathColor.Sprint(where))
			sb.WriteString(": ")
		}
		sb.WriteString(severityColor(d.Severity).Sprintf("%s %s", d.Severity, d.Code.ID()))
		sb.WriteString(": ")
		sb.WriteString(d.Message)
		for _, n := range d.Notes {
			sb.WriteString("\n  note: ")
			sb.WriteString(n.Msg)
		}
		fmt.Fprintln(w, sb.String())
	}
}

// renderSignalTable prints one aligned row per signal: name, shape, reset,
// and whether the design drives it. Names may be wide Unicode.
func renderSignalTable(w io.Writer, d *design.Design) {
	drivers := d.Drivers()
	header := []string{"signal", "shape", "reset", "role"}
	rows := [][]string{header}
	for _, sig := range d.Signals {
		role := "input"
		if drivers.Has(sig) {
			role = "driven"
		}
		reset := strconv.FormatInt(sig.Reset(), 10)
		if sig.ResetLess() {
			reset += " (no reset)"
		}
		rows = append(rows, []string{sig.Name(), sig.Shape().String(), reset, role})
	}
	widths := make([]int, len(header))
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}
	fmt.Fprintf(w, "%s:\n", d.Name)
	for _, row := range rows {
		var sb strings.Builder
		sb.WriteString("  ")
		for i, cell := range row {
			if i == len(row)-1 {
				sb.WriteString(cell)
				break
			}
			sb.WriteString(runewidth.FillRight(cell, widths[i]+2))
		}
		fmt.Fprintln(w, strings.TrimRight(sb.String(), " "))
	}
}
