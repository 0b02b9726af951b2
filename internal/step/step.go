// Package step implements the post-build cache save step.
//
// Run is the procedure itself and reports failures as ordinary errors.
// Execute is the only place where failures are downgraded: a cache step
// must never fail the job, so every error becomes a single warning.
package step

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/zinc-sig/firebuild-cache/internal/actions"
	"github.com/zinc-sig/firebuild-cache/internal/cache"
	"github.com/zinc-sig/firebuild-cache/internal/firebuild"
	"github.com/zinc-sig/firebuild-cache/internal/output"
)

// KeyTimeFormat matches JavaScript's Date.toISOString
const KeyTimeFormat = "2006-01-02T15:04:05.000Z"

// StatsGroup names the log group holding the statistics
const StatsGroup = "firebuild stats"

// Input is everything the step reads from its environment
type Input struct {
	ShouldSave  bool     // Set by the restore step
	PrimaryKey  string   // Set by the restore step, empty when setup failed
	Verbose     string   // "0", "1" or "2"
	Summary     string   // "true" (any case) enables the job summary
	SummaryPath string   // GITHUB_STEP_SUMMARY
	OutputPath  string   // GITHUB_OUTPUT
	Paths       []string // Directories to cache
	DryRun      bool
}

// InputFromEnv reads the step input the way the action runner provides it
func InputFromEnv(env actions.Environment, paths []string) Input {
	return Input{
		ShouldSave:  env.State("shouldSave") == "true",
		PrimaryKey:  env.State("primaryKey"),
		Verbose:     env.Input("verbose"),
		Summary:     env.Input("summary"),
		SummaryPath: env.SummaryPath(),
		OutputPath:  env.OutputPath(),
		Paths:       paths,
	}
}

// SummaryEnabled reports whether statistics go to the job summary
func (in Input) SummaryEnabled() bool {
	return strings.ToLower(in.Summary) == "true"
}

// Tool is the firebuild functionality the step needs
type Tool interface {
	SupportsVerbose(ctx context.Context) (bool, error)
	Stats(ctx context.Context, verbosity string) (string, error)
	IsEmpty(ctx context.Context) (bool, error)
}

// Saver persists paths under a cache key
type Saver interface {
	Save(ctx context.Context, paths []string, key string) (*cache.SaveResult, error)
}

type Step struct {
	Input   Input
	Tool    Tool
	Saver   Saver  // May be nil for dry runs
	Backend string // Backend name, reported in the outcome
	Printer *actions.Printer
	Logger  log.Logger
	Now     func() time.Time
}

// Execute runs the step and never fails: any error or panic is logged as
// exactly one warning and recorded in the returned outcome. Failing to set
// the step outputs gets its own warning and leaves the outcome unchanged.
func (s *Step) Execute(ctx context.Context) (outcome *output.Outcome) {
	outcome = &output.Outcome{Backend: s.Backend, DryRun: s.Input.DryRun}

	defer func() {
		if r := recover(); r != nil {
			s.fail(outcome, fmt.Errorf("panic: %v", r))
		}
	}()

	if err := s.Run(ctx, outcome); err != nil {
		s.fail(outcome, err)
		return outcome
	}

	// The cache is already saved at this point, so the outcome stands
	if err := s.writeOutputs(outcome); err != nil {
		s.Printer.Warningf("Setting outputs failed: %v", err)
	}
	return outcome
}

func (s *Step) fail(outcome *output.Outcome, err error) {
	outcome.Saved = false
	outcome.Reason = output.ReasonFailed
	outcome.Error = err.Error()
	s.Printer.Warningf("Saving cache failed: %v", err)
}

// Run performs the save procedure, filling in outcome as it goes
func (s *Step) Run(ctx context.Context, outcome *output.Outcome) error {
	in := s.Input

	if !in.ShouldSave {
		s.Printer.Info("Not saving cache because 'save' is set to 'false'.")
		outcome.Reason = output.ReasonSaveDisabled
		return nil
	}
	if in.PrimaryKey == "" {
		s.Printer.Notice("firebuild setup failed, skipping saving.")
		outcome.Reason = output.ReasonSetupFailed
		return nil
	}

	stats, err := s.ReportStats(ctx)
	if err != nil {
		return err
	}
	if size, ok := firebuild.ParseCacheSize(stats); ok {
		outcome.CacheSize = size.String()
		s.Printer.Debug("firebuild cache size: " + size.String())
	}

	empty, err := s.Tool.IsEmpty(ctx)
	if err != nil {
		return err
	}
	if empty {
		s.Printer.Info("Not saving cache because no objects are cached.")
		outcome.Reason = output.ReasonEmptyCache
		return nil
	}

	saveKey := in.PrimaryKey + s.now().UTC().Format(KeyTimeFormat)
	outcome.Key = saveKey
	s.Printer.Infof("Save cache using key %q.", saveKey)

	if in.DryRun {
		s.Printer.Infof("Dry run: not uploading %s to the %s cache backend.", strings.Join(in.Paths, ", "), s.Backend)
		outcome.Reason = output.ReasonDryRun
		return nil
	}
	if s.Saver == nil {
		return fmt.Errorf("no cache backend configured")
	}

	result, err := s.Saver.Save(ctx, in.Paths, saveKey)
	if err != nil {
		return err
	}

	s.Printer.Infof("Cache Size: ~%s (%d B)", humanize.Bytes(uint64(result.ArchiveBytes)), result.ArchiveBytes)
	s.Printer.Infof("Cache saved with key: %s", saveKey)
	outcome.Saved = true
	outcome.ArchiveBytes = result.ArchiveBytes
	return nil
}

// ReportStats prints the firebuild statistics in a log group and appends
// them to the job summary when enabled. It returns the statistics text.
func (s *Step) ReportStats(ctx context.Context) (string, error) {
	// Some versions of firebuild do not support --verbose
	knowsVerbose, err := s.Tool.SupportsVerbose(ctx)
	if err != nil {
		return "", err
	}

	var stats string
	err = s.Printer.Group(StatsGroup, func() error {
		verbosity := ""
		if knowsVerbose {
			verbosity = s.verbosity()
		}

		var err error
		stats, err = s.Tool.Stats(ctx, verbosity)
		if err != nil {
			return err
		}
		s.Printer.Print(stats)
		return nil
	})
	if err != nil {
		return "", err
	}
	level.Debug(s.logger()).Log("msg", "stats collected", "bytes", len(stats), "verbose_supported", knowsVerbose)

	if s.Input.SummaryEnabled() && stats != "" {
		if err := s.addStatsToSummary(stats); err != nil {
			return "", err
		}
	}
	return stats, nil
}

func (s *Step) verbosity() string {
	flag, ok := firebuild.Verbosity(s.Input.Verbose)
	if !ok {
		s.Printer.Warningf("Invalid value %q of \"verbose\" option ignored.", s.Input.Verbose)
	}
	return flag
}

func (s *Step) addStatsToSummary(stats string) error {
	if s.Input.SummaryPath == "" {
		s.Printer.Warning("GITHUB_STEP_SUMMARY is not set, unable to add stats to Job Summary.")
		return nil
	}
	return actions.AppendFile(s.Input.SummaryPath, firebuild.SummaryBlock(stats))
}

func (s *Step) writeOutputs(outcome *output.Outcome) error {
	path := s.Input.OutputPath
	if path == "" || !s.Input.ShouldSave {
		return nil
	}

	if err := actions.SetOutput(path, "cache-saved", fmt.Sprint(outcome.Saved)); err != nil {
		return err
	}
	if outcome.Saved {
		return actions.SetOutput(path, "cache-key", outcome.Key)
	}
	return nil
}

// ExecuteStats reports the statistics only. Like Execute it never fails.
func (s *Step) ExecuteStats(ctx context.Context) (stats string) {
	defer func() {
		if r := recover(); r != nil {
			s.Printer.Warningf("Collecting stats failed: panic: %v", r)
		}
	}()

	stats, err := s.ReportStats(ctx)
	if err != nil {
		s.Printer.Warningf("Collecting stats failed: %v", err)
	}
	return stats
}

func (s *Step) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Step) logger() log.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return log.NewNopLogger()
}
