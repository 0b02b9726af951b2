// Package firebuild wraps the firebuild command line.
//
// firebuild only reports its state as free text. Every assumption about that
// text lives in this package: the --verbose capability probe, the statistics
// flags and the patterns recognising the cache size.
package firebuild

import (
	"context"
	"fmt"
	"path"

	"github.com/zinc-sig/firebuild-cache/internal/runner"
)

// DefaultBinary is the command name used when none is configured
const DefaultBinary = "firebuild"

// verboseFlag appears in --help output of versions accepting -v
const verboseFlag = "--verbose"

// Shell runs a command line and returns its captured output,
// failing when the command exits unsuccessfully
type Shell interface {
	Output(ctx context.Context, command string) (*runner.Result, error)
}

// Tool invokes a firebuild binary through a shell
type Tool struct {
	Binary string
	Shell  Shell
}

// New creates a Tool for binary, defaulting to DefaultBinary
func New(binary string, shell Shell) *Tool {
	if binary == "" {
		binary = DefaultBinary
	}
	return &Tool{Binary: binary, Shell: shell}
}

// SupportsVerbose reports whether the binary accepts verbosity flags.
// Older firebuild releases do not.
func (t *Tool) SupportsVerbose(ctx context.Context) (bool, error) {
	out, err := t.output(ctx, t.Binary+" --help")
	if err != nil {
		return false, err
	}
	return containsVerboseFlag(out), nil
}

// Stats returns the statistics text printed by "firebuild -s".
// verbosity is appended verbatim and must come from Verbosity.
func (t *Tool) Stats(ctx context.Context, verbosity string) (string, error) {
	return t.output(ctx, t.Binary+" -s"+verbosity)
}

// IsEmpty queries the statistics again and reports whether the cache holds no objects
func (t *Tool) IsEmpty(ctx context.Context) (bool, error) {
	out, err := t.Stats(ctx, "")
	if err != nil {
		return false, err
	}
	return CacheIsEmpty(out), nil
}

// CacheDir returns the workspace-relative cache directory of the binary
func (t *Tool) CacheDir() string {
	return CacheDir(t.Binary)
}

// CacheDir returns the workspace-relative cache directory for binary
func CacheDir(binary string) string {
	if binary == "" {
		binary = DefaultBinary
	}
	return path.Join(".cache", path.Base(binary))
}

func (t *Tool) output(ctx context.Context, command string) (string, error) {
	result, err := t.Shell.Output(ctx, command)
	if err != nil {
		return "", fmt.Errorf("firebuild: %w", err)
	}
	return result.Stdout, nil
}
