package cmd

import (
	"github.com/spf13/cobra"
	"github.com/zinc-sig/firebuild-cache/cmd/config"
	"github.com/zinc-sig/firebuild-cache/cmd/helpers"
	"github.com/zinc-sig/firebuild-cache/internal/actions"
	"github.com/zinc-sig/firebuild-cache/internal/step"
)

func newStatsCmd() *cobra.Command {
	var flags config.StepFlags

	statsCmd := &cobra.Command{
		Use:   "stats [flags]",
		Short: "Print firebuild statistics without saving the cache",
		Long: `Print firebuild's cache statistics in a log group and, when the summary
input is "true", append them to the job summary. Nothing is saved.`,
		Example: `  firebuild-cache stats --verbose 2
  firebuild-cache stats --summary true`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := &step.Step{
				Input:   helpers.BuildInput(cmd, &flags, actions.OSEnvironment),
				Tool:    helpers.NewTool(&flags),
				Printer: actions.NewPrinter(cmd.OutOrStdout()),
				Logger:  helpers.NewLogger(cmd.ErrOrStderr(), flags.Debug),
			}
			s.ExecuteStats(cmd.Context())
			return nil
		},
	}

	helpers.SetupStepFlags(statsCmd, &flags)
	return statsCmd
}
