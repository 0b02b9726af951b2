package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "firebuild-cache",
		Short: "Save the firebuild cache at the end of a CI job",
		Long: `firebuild-cache is the post-build step of the firebuild CI cache.
It prints firebuild's cache hit statistics, optionally adds them to the
GitHub Actions job summary, and stores the firebuild cache directory in a
cache backend so that later runs can restore it.

A failing cache step never fails the job: problems are reported as warnings.`,
		SilenceUsage: true,
	}

	root.AddCommand(newSaveCmd())
	root.AddCommand(newStatsCmd())
	return root
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		stop()
		os.Exit(1)
	}
}
