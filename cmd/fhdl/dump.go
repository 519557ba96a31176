package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"fhdl/internal/design"
	"fhdl/internal/irdump"
	"fhdl/internal/trace"
)

var dumpCmd = &cobra.Command{
	Use:   "dump [flags] MANIFEST",
	Short: "Print or serialise the IR of a design",
	Long: `Build the design described by MANIFEST and write its IR, either in the
textual form (signals as comments, then one statement per line) or as a
msgpack node tree for external backends.`,
	Args: cobra.ExactArgs(1),
	RunE: runDump,
}

func init() {
	dumpCmd.Flags().String("format", "text", "output format (text|msgpack)")
	dumpCmd.Flags().StringP("output", "o", "", "write to file instead of stdout")
}

func runDump(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	format = strings.ToLower(format)
	switch format {
	case "text", "msgpack":
	default:
		return fmt.Errorf("unsupported format %q (must be text or msgpack)", format)
	}

	d, err := loadDesign(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "dump", trace.ParentFrom(ctx)).Set("format", format)
	defer span.End("")

	if format == "msgpack" {
		if output != "" {
			return irdump.WriteFile(output, d)
		}
		if f, ok := cmd.OutOrStdout().(*os.File); ok && isTerminal(f) {
			return fmt.Errorf("refusing to write msgpack to a terminal, use -o FILE")
		}
		return irdump.Encode(cmd.OutOrStdout(), d)
	}

	if output == "" {
		return writeText(cmd.OutOrStdout(), d)
	}
	f, err := os.Create(output)
	if err != nil {
		return err
	}
	if err := writeText(f, d); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// writeText prints the design so that the statement lines parse back with
// irtext; everything else is a ';' comment.
func writeText(w io.Writer, d *design.Design) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "; design %s\n", d.Name)
	for _, sig := range d.Signals {
		fmt.Fprintf(bw, "; signal %s %s reset=%d", sig.Name(), sig.Shape(), sig.Reset())
		if sig.ResetLess() {
			bw.WriteString(" reset_less")
		}
		if sig.Attrs().Len() > 0 {
			fmt.Fprintf(bw, " attrs=%s", sig.Attrs())
		}
		bw.WriteByte('\n')
	}
	for _, st := range d.Statements {
		bw.WriteString(st.String())
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
