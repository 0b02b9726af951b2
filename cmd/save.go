package cmd

import (
	"github.com/spf13/cobra"
	"github.com/zinc-sig/firebuild-cache/cmd/config"
	"github.com/zinc-sig/firebuild-cache/cmd/helpers"
	"github.com/zinc-sig/firebuild-cache/internal/actions"
	"github.com/zinc-sig/firebuild-cache/internal/cache"
	"github.com/zinc-sig/firebuild-cache/internal/confmap"
	"github.com/zinc-sig/firebuild-cache/internal/output"
	"github.com/zinc-sig/firebuild-cache/internal/step"
)

func newSaveCmd() *cobra.Command {
	var (
		flags    config.StepFlags
		cacheCfg config.CacheConfig
	)

	saveCmd := &cobra.Command{
		Use:   "save [flags]",
		Short: "Report firebuild statistics and save the cache",
		Long: `Report firebuild statistics and save the firebuild cache directory.

The run state comes from the restore step (STATE_shouldSave, STATE_primaryKey)
and the action inputs from INPUT_VERBOSE and INPUT_SUMMARY. The cache is
saved under the primary key followed by the current time, unless firebuild
reports an empty cache.`,
		Example: `  firebuild-cache save --cache-backend minio --cache-config-file cache.json
  firebuild-cache save --cache-backend local --cache-config-kv dir=/mnt/ci-cache
  firebuild-cache save --cache-backend http --cache-config '{"url":"https://cache.internal/firebuild"}' --dry-run`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSave(cmd, &flags, &cacheCfg)
		},
	}

	helpers.SetupStepFlags(saveCmd, &flags)
	helpers.SetupSaveFlags(saveCmd, &flags)
	helpers.SetupCacheFlags(saveCmd, &cacheCfg)
	return saveCmd
}

func runSave(cmd *cobra.Command, flags *config.StepFlags, cacheCfg *config.CacheConfig) error {
	printer := actions.NewPrinter(cmd.OutOrStdout())
	logger := helpers.NewLogger(cmd.ErrOrStderr(), flags.Debug)

	saver := &helpers.LazySaver{
		Config:  cacheCfg,
		WorkDir: flags.WorkDir,
		Logger:  logger,
	}
	if flags.Debug {
		saver.Verbose = func(backend cache.Backend, conf confmap.Map) {
			helpers.PrintBackendInfo(cmd.ErrOrStderr(), backend.Name(), conf, false)
		}
	}

	s := &step.Step{
		Input:   helpers.BuildInput(cmd, flags, actions.OSEnvironment),
		Tool:    helpers.NewTool(flags),
		Saver:   saver,
		Backend: cacheCfg.Backend,
		Printer: printer,
		Logger:  logger,
	}

	if flags.DryRun {
		conf, err := helpers.BuildCacheConfig(cacheCfg)
		if err != nil {
			printer.Warningf("Dry run: %v", err)
		} else {
			helpers.PrintBackendInfo(cmd.ErrOrStderr(), cacheCfg.Backend, conf, true)
		}
	}

	outcome := s.Execute(cmd.Context())

	if flags.ResultFile != "" {
		if err := output.WriteFile(flags.ResultFile, outcome); err != nil {
			printer.Warningf("Writing %s failed: %v", flags.ResultFile, err)
		}
	}

	// The job goes on whatever happened
	return nil
}
