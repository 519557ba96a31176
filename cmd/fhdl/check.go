package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"fhdl/internal/diag"
	"fhdl/internal/observ"
	"fhdl/internal/trace"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] MANIFEST...",
	Short: "Load and verify design manifests",
	Long: `Load every manifest, build its design and report construction errors
and lint findings. With --watch the check is repeated whenever one of the
manifests changes.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().Bool("watch", false, "re-run the check when a manifest changes")
	checkCmd.Flags().Bool("signals", false, "print the signal table of every design")
	checkCmd.Flags().Bool("no-lint", false, "report construction errors only")
	checkCmd.Flags().Bool("warnings-as-errors", false, "fail when any warning is reported")
	checkCmd.Flags().Int("jobs", 0, "manifests to load in parallel (0 = GOMAXPROCS)")
}

type checkOptions struct {
	signals          bool
	lint             bool
	warningsAsErrors bool
	jobs             int
	maxDiagnostics   int
	colored          bool
	timings          bool
}

var errCheckFailed = errors.New("check failed")

func runCheck(cmd *cobra.Command, args []string) error {
	watch, err := cmd.Flags().GetBool("watch")
	if err != nil {
		return err
	}
	opts, err := readCheckOptions(cmd)
	if err != nil {
		return err
	}
	if !watch {
		return checkOnce(cmd, args, opts)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	cmd.SetContext(ctx)
	return watchManifests(ctx, args, func() {
		if err := checkOnce(cmd, args, opts); err != nil && !errors.Is(err, errCheckFailed) {
			fmt.Fprintf(cmd.ErrOrStderr(), "fhdl: %v\n", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "watching for changes, press Ctrl-C to stop")
	})
}

func readCheckOptions(cmd *cobra.Command) (checkOptions, error) {
	var opts checkOptions
	var err error
	if opts.signals, err = cmd.Flags().GetBool("signals"); err != nil {
		return opts, err
	}
	noLint, err := cmd.Flags().GetBool("no-lint")
	if err != nil {
		return opts, err
	}
	opts.lint = !noLint
	if opts.warningsAsErrors, err = cmd.Flags().GetBool("warnings-as-errors"); err != nil {
		return opts, err
	}
	if opts.jobs, err = cmd.Flags().GetInt("jobs"); err != nil {
		return opts, err
	}
	if opts.maxDiagnostics, err = cmd.Root().PersistentFlags().GetInt("max-diagnostics"); err != nil {
		return opts, err
	}
	if opts.colored, err = useColor(cmd); err != nil {
		return opts, err
	}
	if opts.timings, err = cmd.Root().PersistentFlags().GetBool("timings"); err != nil {
		return opts, err
	}
	return opts, nil
}

func checkOnce(cmd *cobra.Command, paths []string, opts checkOptions) error {
	ctx := cmd.Context()
	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "check", trace.ParentFrom(ctx))
	ctx = trace.WithParent(ctx, span)

	timer := observ.NewTimer()
	if opts.timings {
		defer func() { fmt.Fprint(cmd.ErrOrStderr(), timer.Summary()) }()
	}

	var results []loadResult
	err := timer.Measure("load", func() error {
		var err error
		results, err = loadAll(ctx, paths, opts.jobs)
		return err
	})
	if err != nil {
		span.End("cancelled")
		return err
	}
	var bag *diag.Bag
	_ = timer.Measure("diagnose", func() error {
		bag = collect(results, opts.maxDiagnostics, opts.lint)
		return nil
	})

	out := cmd.OutOrStdout()
	items := bag.Items()
	_ = timer.Measure("render", func() error {
		if opts.signals {
			for _, r := range results {
				if r.Design != nil {
					renderSignalTable(out, r.Design)
				}
			}
		}
		renderDiagnostics(out, items, opts.colored)
		return nil
	})

	errs, warns := 0, 0
	for _, d := range items {
		switch d.Severity {
		case diag.SevError:
			errs++
		case diag.SevWarning:
			warns++
		}
	}
	fmt.Fprintf(out, "checked %d manifest(s): %d error(s), %d warning(s)\n", len(paths), errs, warns)
	span.Set("errors", itoa(errs)).Set("warnings", itoa(warns)).End("")

	if bag.HasErrors() || (opts.warningsAsErrors && bag.HasWarnings()) {
		return errCheckFailed
	}
	return nil
}
