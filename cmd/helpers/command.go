package helpers

import (
	"io"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/spf13/cobra"
	"github.com/zinc-sig/firebuild-cache/cmd/config"
	"github.com/zinc-sig/firebuild-cache/internal/actions"
	"github.com/zinc-sig/firebuild-cache/internal/firebuild"
	"github.com/zinc-sig/firebuild-cache/internal/runner"
	"github.com/zinc-sig/firebuild-cache/internal/step"
)

// NewLogger creates the logfmt diagnostics logger, debug level only when enabled
func NewLogger(w io.Writer, debug bool) log.Logger {
	logger := log.NewLogfmtLogger(log.NewSyncWriter(w))
	logger = log.With(logger, "ts", log.DefaultTimestampUTC)
	if debug {
		return level.NewFilter(logger, level.AllowDebug())
	}
	return level.NewFilter(logger, level.AllowInfo())
}

// BuildInput reads the step input from the environment, applying flag overrides
func BuildInput(cmd *cobra.Command, flags *config.StepFlags, env actions.Environment) step.Input {
	in := step.InputFromEnv(env, []string{firebuild.CacheDir(flags.Tool)})
	if cmd.Flags().Changed("verbose") {
		in.Verbose = flags.Verbose
	}
	if cmd.Flags().Changed("summary") {
		in.Summary = flags.Summary
	}
	in.DryRun = flags.DryRun
	return in
}

// NewTool creates the firebuild wrapper running commands in the work directory
func NewTool(flags *config.StepFlags) *firebuild.Tool {
	r := runner.NewRunner()
	r.Dir = flags.WorkDir
	return firebuild.New(flags.Tool, r)
}
