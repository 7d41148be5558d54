// Package cmd implements the CLI commands for reviewprep using Cobra.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configFile string
	logLevel   string
	logJSON    bool
}

// newRootCmd builds the command tree. fs backs every file the commands touch.
func newRootCmd(fs afero.Fs) *cobra.Command {
	g := &globalFlags{}
	rootCmd := &cobra.Command{
		Use:   "reviewprep",
		Short: "reviewprep: normalize per-region review CSV files in place",
		Long: `reviewprep prepares review exports for SQL analysis. For each region it
loads th_<region>_reviews.csv, coerces isAnonymous/isLiked to 0/1 and likeCount
to an integer, drops rows whose reviewerId is longer than 8 characters, and
overwrites the file.

Usage:
  reviewprep prepare [region...] [flags]`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&g.configFile, "config", "", "YAML config file")
	rootCmd.PersistentFlags().StringVar(&g.logLevel, "log_level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&g.logJSON, "log_json", false, "Log as JSON")

	rootCmd.AddCommand(newPrepareCmd(fs, g))
	return rootCmd
}

// Execute runs the root command. SIGINT and SIGTERM stop the batch
// between regions.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(afero.NewOsFs()).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
