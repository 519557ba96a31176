package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"fhdl/internal/prof"
	"fhdl/internal/version"
)

var rootCmd = &cobra.Command{
	Use:           "fhdl",
	Short:         "Hardware IR toolkit",
	Long:          `fhdl loads design manifests into the hardware IR, checks them and dumps them for backends`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cleanup, err := setupTracing(cmd)
		if err != nil {
			return err
		}
		traceCleanup = cleanup
		return startProfiling(cmd)
	},
}

var (
	traceCleanup func(failed bool)
	profSession  *prof.Session
)

// runCleanup stops profiling and flushes tracing. It is safe to call when
// PersistentPreRunE never ran.
func runCleanup(failed bool) {
	if profSession != nil {
		if err := profSession.Stop(); err != nil {
			fmt.Fprintf(os.Stderr, "fhdl: profile: %v\n", err)
		}
		profSession = nil
	}
	if traceCleanup != nil {
		traceCleanup(failed)
		traceCleanup = nil
	}
}

func startProfiling(cmd *cobra.Command) error {
	flags := cmd.Root().PersistentFlags()
	cpuPath, err := flags.GetString("cpuprofile")
	if err != nil {
		return err
	}
	memPath, err := flags.GetString("memprofile")
	if err != nil {
		return err
	}
	if cpuPath == "" && memPath == "" {
		return nil
	}
	s, err := prof.Start(cpuPath, memPath)
	if err != nil {
		return fmt.Errorf("profile: %w", err)
	}
	profSession = s
	return nil
}

func init() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(shapeCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")
	rootCmd.PersistentFlags().String("trace", "", "trace output file (- for stderr)")
	rootCmd.PersistentFlags().String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	rootCmd.PersistentFlags().String("trace-mode", "stream", "trace storage (stream|ring|both)")
	rootCmd.PersistentFlags().String("trace-format", "auto", "trace format (auto|text|ndjson)")
	rootCmd.PersistentFlags().Int("trace-ring-size", 4096, "ring buffer capacity for ring trace mode")
	rootCmd.PersistentFlags().Bool("timings", false, "print phase timings to stderr")
	rootCmd.PersistentFlags().String("cpuprofile", "", "write a CPU profile to file")
	rootCmd.PersistentFlags().String("memprofile", "", "write a heap profile to file on exit")
}

// main runs the root command, exiting with status 1 on error.
func main() {
	err := rootCmd.Execute()
	runCleanup(err != nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fhdl: %v\n", err)
		os.Exit(1)
	}
}

// isTerminal reports whether f is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// useColor resolves the --color flag against the output stream.
func useColor(cmd *cobra.Command) (bool, error) {
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false, err
	}
	switch colorFlag {
	case "on":
		return true, nil
	case "off":
		return false, nil
	case "auto":
		f, ok := cmd.OutOrStdout().(*os.File)
		return ok && isTerminal(f), nil
	default:
		return false, fmt.Errorf("invalid --color value %q (expected auto|on|off)", colorFlag)
	}
}
