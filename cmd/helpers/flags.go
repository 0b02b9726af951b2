package helpers

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/zinc-sig/firebuild-cache/cmd/config"
	"github.com/zinc-sig/firebuild-cache/internal/actions"
	"github.com/zinc-sig/firebuild-cache/internal/firebuild"
)

// SetupStepFlags adds flags shared by the save and stats commands
func SetupStepFlags(cmd *cobra.Command, flags *config.StepFlags) {
	cmd.Flags().StringVar(&flags.Verbose, "verbose", "", "Statistics verbosity: 0, 1 or 2 (default: INPUT_VERBOSE)")
	cmd.Flags().StringVar(&flags.Summary, "summary", "", "Add statistics to the job summary when \"true\" (default: INPUT_SUMMARY)")
	cmd.Flags().StringVar(&flags.Tool, "tool", firebuild.DefaultBinary, "firebuild binary to query")
	cmd.Flags().StringVar(&flags.WorkDir, "workdir", actions.OSEnvironment.Workspace(), "Directory the cache path is relative to")
	cmd.Flags().BoolVar(&flags.Debug, "debug", false, "Write debug logs to stderr")
}

// SetupSaveFlags adds flags only meaningful when saving
func SetupSaveFlags(cmd *cobra.Command, flags *config.StepFlags) {
	cmd.Flags().BoolVar(&flags.DryRun, "dry-run", false, "Compute the cache key without uploading")
	cmd.Flags().StringVar(&flags.ResultFile, "result-file", "", "Write the outcome as JSON to this file")
}

// SetupCacheFlags adds cache backend flags to a command
func SetupCacheFlags(cmd *cobra.Command, cfg *config.CacheConfig) {
	cmd.Flags().StringVar(&cfg.Backend, "cache-backend", os.Getenv("FIREBUILD_CACHE_BACKEND"), "Cache backend type: minio, local or http")
	cmd.Flags().StringVar(&cfg.Config, "cache-config", "", "Cache backend configuration as JSON string")
	cmd.Flags().StringArrayVar(&cfg.ConfigKV, "cache-config-kv", nil, "Cache backend config key=value pairs (can be used multiple times)")
	cmd.Flags().StringVar(&cfg.ConfigFile, "cache-config-file", "", "Path to JSON file containing cache backend configuration")
}
