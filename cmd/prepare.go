// Package cmd, prepare command.
// This is the main command that orchestrates the pipeline:
// load → normalize → render → write, for every selected region.
//
// It handles configuration, region selection (explicit, configured or
// discovered) and the batch summary.
package cmd

import (
	"fmt"

	"github.com/gaurav-prasanna/reviewprep/config"
	"github.com/gaurav-prasanna/reviewprep/core/batch"
	"github.com/gaurav-prasanna/reviewprep/core/load"
	"github.com/gaurav-prasanna/reviewprep/core/metrics"
	"github.com/gaurav-prasanna/reviewprep/core/normalize"
	"github.com/gaurav-prasanna/reviewprep/core/output"
	"github.com/gaurav-prasanna/reviewprep/core/render"
	"github.com/gaurav-prasanna/reviewprep/discover"
	"github.com/gaurav-prasanna/reviewprep/logger"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// prepareFlags mirror the config keys they override.
type prepareFlags struct {
	baseDir     string
	discover    bool
	dryRun      bool
	strictBool  bool
	atomic      bool
	metricsFile string
	failOnError bool
}

func newPrepareCmd(fs afero.Fs, g *globalFlags) *cobra.Command {
	f := &prepareFlags{}
	cmd := &cobra.Command{
		Use:   "prepare [region...]",
		Short: "Normalize the review files of the given regions",
		Long: `Prepare normalizes review files one region at a time. A region that fails
is reported and skipped; the rest of the batch still runs.

Regions are taken from the arguments, from --discover, or from the config.

Examples:
  reviewprep prepare
  reviewprep prepare bangkok chiang_mai --base_dir ./reviews
  reviewprep prepare --discover --base_dir ./reviews --atomic
  reviewprep prepare --config reviewprep.yaml --dry_run`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPrepare(cmd, fs, g, f, args)
		},
	}

	cmd.Flags().StringVar(&f.baseDir, "base_dir", "", "Directory holding the review files")
	cmd.Flags().BoolVar(&f.discover, "discover", false, "Process every review file found in the base directory")
	cmd.Flags().BoolVar(&f.dryRun, "dry_run", false, "Run every step but leave files untouched")
	cmd.Flags().BoolVar(&f.strictBool, "strict_bool", false, "Fail a region on non-boolean isAnonymous/isLiked values")
	cmd.Flags().BoolVar(&f.atomic, "atomic", false, "Write through a temp file and rename")
	cmd.Flags().StringVar(&f.metricsFile, "metrics_file", "", "Write Prometheus textfile metrics here")
	cmd.Flags().BoolVar(&f.failOnError, "fail_on_error", false, "Exit non-zero if any region failed")
	return cmd
}

func runPrepare(cmd *cobra.Command, fs afero.Fs, g *globalFlags, f *prepareFlags, args []string) error {
	// --- Configuration ---
	cfg, err := config.Load(config.LoadOptions{
		Fs:        fs,
		File:      g.configFile,
		Overrides: overrides(cmd, g, f),
	})
	if err != nil {
		return err
	}

	log := logger.NewLogger(&logger.Config{
		Level:      logger.LogLevel(cfg.Log.Level),
		Output:     cmd.ErrOrStderr(),
		JSON:       cfg.Log.JSON,
		TimeFormat: "15:04:05",
	})
	ctx := logger.ContextWithLogger(cmd.Context(), log)

	// --- Regions ---
	if cfg.Discover && len(args) > 0 {
		return fmt.Errorf("--discover and explicit regions are mutually exclusive")
	}
	regions, err := selectRegions(fs, cfg, args)
	if err != nil {
		return err
	}
	log.Debug("Regions selected", "count", len(regions), "base_dir", cfg.BaseDir)

	// --- Pipeline ---
	recorder := metrics.New()
	runner := batch.New(batch.Options{
		Template:   cfg.Template(),
		Loader:     load.New(fs),
		Normalizer: normalize.New(cfg.NormalizerOptions()),
		Renderer:   render.NewCSVRenderer(),
		Writer:     output.New(fs, cfg.AtomicWrite),
		Metrics:    recorder,
		Console:    cmd.OutOrStdout(),
		DryRun:     cfg.DryRun,
	})
	report := runner.Run(ctx, regions)

	if cfg.MetricsFile != "" {
		if err := recorder.WriteTextfile(cfg.MetricsFile); err != nil {
			log.Error("Metrics not written", "err", err)
		}
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("interrupted: %w", err)
	}
	if failed := report.Failed(); cfg.FailOnError && len(failed) > 0 {
		return fmt.Errorf("%d/%d regions failed", len(failed), len(report.Results))
	}
	return nil
}

// selectRegions picks the batch input: explicit args, discovered files,
// or the configured list. Explicit and configured regions run exactly as
// given, repeats included.
func selectRegions(fs afero.Fs, cfg *config.Config, args []string) ([]string, error) {
	switch {
	case len(args) > 0:
		return args, nil
	case cfg.Discover:
		regions, err := discover.Discover(fs, cfg.Template())
		if err != nil {
			return nil, fmt.Errorf("discovering regions: %w", err)
		}
		return regions, nil
	default:
		return cfg.Regions, nil
	}
}

// overrides collects the flags the user actually set, keyed by config path.
func overrides(cmd *cobra.Command, g *globalFlags, f *prepareFlags) map[string]any {
	out := map[string]any{}
	set := func(flag, key string, value any) {
		if cmd.Flags().Changed(flag) {
			out[key] = value
		}
	}
	set("log_level", "log.level", g.logLevel)
	set("log_json", "log.json", g.logJSON)
	set("base_dir", "base_dir", f.baseDir)
	set("discover", "discover", f.discover)
	set("dry_run", "dry_run", f.dryRun)
	set("strict_bool", "strict_bool", f.strictBool)
	set("atomic", "atomic_write", f.atomic)
	set("metrics_file", "metrics_file", f.metricsFile)
	set("fail_on_error", "fail_on_error", f.failOnError)
	return out
}
