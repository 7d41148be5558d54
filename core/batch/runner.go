// Package batch runs the review pipeline over a list of regions:
// load → normalize → render → write, one region at a time.
//
// A failing region is reported and skipped; it never stops the batch and
// never leaves its file partly rewritten, because the whole table is
// rendered before anything is written.
package batch

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/gaurav-prasanna/reviewprep/core"
	"github.com/gaurav-prasanna/reviewprep/core/metrics"
	"github.com/gaurav-prasanna/reviewprep/discover"
	"github.com/gaurav-prasanna/reviewprep/logger"
)

// Options wires the pipeline stages into a Runner.
type Options struct {
	Template   discover.Template
	Loader     core.Loader
	Normalizer core.Normalizer
	Renderer   core.Renderer
	Writer     core.Writer
	Metrics    *metrics.Recorder // optional
	Console    io.Writer         // progress notices; io.Discard if nil
	DryRun     bool              // run every stage except the write
}

// Runner processes regions sequentially.
type Runner struct {
	opts Options
	now  func() time.Time
}

// New creates a Runner.
func New(opts Options) *Runner {
	if opts.Console == nil {
		opts.Console = io.Discard
	}
	return &Runner{opts: opts, now: time.Now}
}

// Run processes every region in order and prints the completion notice.
// It always returns a Report, whatever happened to individual regions.
func (r *Runner) Run(ctx context.Context, regions []string) *Report {
	log := logger.FromContext(ctx)
	report := &Report{Started: r.now()}

	for _, region := range regions {
		var res RegionResult
		if err := ctx.Err(); err != nil {
			res = RegionResult{Region: region, Path: r.opts.Template.Path(region), Err: err}
		} else {
			res = r.process(ctx, region)
		}
		report.Results = append(report.Results, res)
		r.notify(res)
	}

	fmt.Fprintln(r.opts.Console, "Data preparation is completed for all files.")

	report.Finished = r.now()
	if r.opts.Metrics != nil {
		r.opts.Metrics.BatchFinished(report.Started, report.Finished)
	}
	log.Info("Batch finished",
		"regions", len(report.Results),
		"failed", len(report.Failed()),
		"elapsed", report.Finished.Sub(report.Started))
	return report
}

// process runs one region through the pipeline.
func (r *Runner) process(ctx context.Context, region string) RegionResult {
	path := r.opts.Template.Path(region)
	res := RegionResult{Region: region, Path: path}
	log := logger.FromContext(ctx).With("region", region, "path", path)

	if err := discover.ValidateRegion(region); err != nil {
		res.Err = &core.Error{Kind: core.KindLoad, Err: err}
		return res
	}

	// 1. Load
	table, err := r.opts.Loader.Load(ctx, path)
	if err != nil {
		res.Err = fmt.Errorf("load: %w", err)
		return res
	}

	// 2. Normalize
	normalized, stats, err := r.opts.Normalizer.Normalize(table)
	res.RowsIn = stats.RowsIn
	if err != nil {
		res.Err = fmt.Errorf("normalize: %w", err)
		return res
	}
	res.RowsOut = stats.RowsOut
	res.NonCanonicalBools = stats.NonCanonicalBools
	if stats.NonCanonicalBools > 0 {
		log.Warn("Non-boolean flag values coerced to 1", "count", stats.NonCanonicalBools)
	}

	// 3. Render
	data, err := r.opts.Renderer.Render(normalized)
	if err != nil {
		res.Err = fmt.Errorf("render: %w", err)
		return res
	}

	// 4. Write
	if r.opts.DryRun {
		log.Info("Dry run, file left untouched", "rows_in", stats.RowsIn, "rows_out", stats.RowsOut)
		return res
	}
	if err := r.opts.Writer.Write(path, data); err != nil {
		res.Err = fmt.Errorf("write: %w", err)
		return res
	}

	log.Debug("Region written", "rows_in", stats.RowsIn, "rows_out", stats.RowsOut, "bytes", len(data))
	return res
}

// notify prints the per-region console notice and records metrics.
func (r *Runner) notify(res RegionResult) {
	if res.Err != nil {
		fmt.Fprintf(r.opts.Console, "An error occurred while processing %s: %v.\n", res.Region, res.Err)
		if r.opts.Metrics != nil {
			r.opts.Metrics.RegionFailed(res.Kind().String())
		}
		return
	}
	fmt.Fprintf(r.opts.Console, "Data preparation completed for %s.\n", res.Region)
	switch {
	case r.opts.Metrics == nil:
	case r.opts.DryRun:
		r.opts.Metrics.RegionChecked(res.RowsIn)
	default:
		r.opts.Metrics.RegionSucceeded(res.RowsIn, res.RowsOut)
	}
}

// RegionResult is the outcome of one region.
type RegionResult struct {
	Region            string
	Path              string
	RowsIn            int
	RowsOut           int
	NonCanonicalBools int
	Err               error
}

// OK reports whether the region was processed without error.
func (r RegionResult) OK() bool {
	return r.Err == nil
}

// Kind classifies the failure. Errors outside the taxonomy, such as
// cancellation, are KindUnknown.
func (r RegionResult) Kind() core.ErrorKind {
	return core.KindOf(r.Err)
}

// Report collects the results of a batch in input order.
type Report struct {
	Results  []RegionResult
	Started  time.Time
	Finished time.Time
}

// Failed returns the results that carry an error.
func (r *Report) Failed() []RegionResult {
	var failed []RegionResult
	for _, res := range r.Results {
		if !res.OK() {
			failed = append(failed, res)
		}
	}
	return failed
}

// Succeeded returns the number of regions processed without error.
func (r *Report) Succeeded() int {
	return len(r.Results) - len(r.Failed())
}
