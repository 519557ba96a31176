package main

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"fhdl/internal/design"
	"fhdl/internal/diag"
	"fhdl/internal/manifest"
	"fhdl/internal/trace"
)

// loadResult is the outcome of loading one manifest. Exactly one of
// Design and Err is set.
type loadResult struct {
	Path   string
	Design *design.Design
	Err    error
}

// loadDesign reads the manifest at path and builds its design.
func loadDesign(ctx context.Context, path string) (*design.Design, error) {
	tr := trace.FromContext(ctx)
	span := trace.Begin(tr, trace.ScopePass, "load", trace.ParentFrom(ctx)).Set("path", path)

	m, err := manifest.Load(path)
	if err != nil {
		span.End("error")
		return nil, err
	}
	b, err := m.Build(design.WithTracer(tr, span.ID()))
	if err != nil {
		span.End("error")
		return nil, err
	}
	d := b.Design()
	span.Set("signals", itoa(len(d.Signals))).Set("statements", itoa(len(d.Statements))).End("ok")
	return d, nil
}

// loadAll loads paths concurrently. A failing manifest does not stop the
// others; only cancellation aborts the run. Results keep the order of paths.
func loadAll(ctx context.Context, paths []string, jobs int) ([]loadResult, error) {
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	results := make([]loadResult, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, min(jobs, len(paths))))
	for i, path := range paths {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			d, err := loadDesign(gctx, path)
			results[i] = loadResult{Path: path, Design: d, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// collect turns load results into a sorted, deduplicated bag, adding lint
// findings for the designs that built.
func collect(results []loadResult, maxDiagnostics int, lint bool) *diag.Bag {
	bag := diag.NewBag(maxDiagnostics)
	reporter := diag.BagReporter{Bag: bag}
	for _, r := range results {
		if r.Err != nil {
			diag.ReportError(reporter, r.Path, r.Err)
			continue
		}
		if lint {
			for _, d := range diag.Lint(r.Path, r.Design) {
				reporter.Report(d)
			}
		}
	}
	bag.Sort()
	bag.Dedup()
	return bag
}
