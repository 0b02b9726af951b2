package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"syscall"
	"time"
)

// Grace period for output pipes held open by grandchildren after cancellation
const waitDelay = 500 * time.Millisecond

// Runner executes shell command lines and captures their output
type Runner struct {
	Shell     string   // Shell binary (default: bash)
	ShellArgs []string // Arguments placed before the command line (default: -xc)
	Dir       string   // Working directory, empty means current
}

type Result struct {
	Command       string
	Stdout        string
	Stderr        string
	ExitCode      int
	ExecutionTime int64 // milliseconds
}

// NewRunner creates a runner invoking commands through "bash -xc"
func NewRunner() *Runner {
	return &Runner{
		Shell:     "bash",
		ShellArgs: []string{"-xc"},
	}
}

// Run executes the command line and waits for it to finish.
// A non-zero exit status is reported through Result.ExitCode, not as an error.
func (r *Runner) Run(ctx context.Context, command string) (*Result, error) {
	shell := r.Shell
	if shell == "" {
		shell = "bash"
	}
	args := append(append([]string{}, r.ShellArgs...), command)

	cmd := exec.CommandContext(ctx, shell, args...)
	cmd.Dir = r.Dir
	cmd.WaitDelay = waitDelay

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	startTime := time.Now()
	err := cmd.Run()
	executionTime := time.Since(startTime).Milliseconds()

	exitCode := 0
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("command %q interrupted: %w", command, ctx.Err())
		}
		var exitError *exec.ExitError
		if !errors.As(err, &exitError) {
			return nil, fmt.Errorf("failed to start command %q: %w", command, err)
		}
		if status, ok := exitError.Sys().(syscall.WaitStatus); ok {
			exitCode = status.ExitStatus()
		} else {
			exitCode = 1
		}
	}

	return &Result{
		Command:       command,
		Stdout:        stdout.String(),
		Stderr:        stderr.String(),
		ExitCode:      exitCode,
		ExecutionTime: executionTime,
	}, nil
}

// Output runs the command and returns its stdout, failing on a non-zero exit status
func (r *Runner) Output(ctx context.Context, command string) (*Result, error) {
	result, err := r.Run(ctx, command)
	if err != nil {
		return nil, err
	}
	if result.ExitCode != 0 {
		return result, &ExitError{Command: command, ExitCode: result.ExitCode, Stderr: result.Stderr}
	}
	return result, nil
}

// ExitError reports a command that ran but exited unsuccessfully
type ExitError struct {
	Command  string
	ExitCode int
	Stderr   string
}

func (e *ExitError) Error() string {
	msg := fmt.Sprintf("the process '%s' failed with exit code %d", e.Command, e.ExitCode)
	if tail := stderrTail(e.Stderr); tail != "" {
		msg += ": " + tail
	}
	return msg
}

// Number of stderr lines kept in an ExitError message
const stderrTailLines = 3

// stderrTail returns the last lines of stderr without shell trace lines
func stderrTail(stderr string) string {
	var lines []string
	for _, line := range strings.Split(stderr, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "+") {
			continue
		}
		lines = append(lines, line)
	}
	if len(lines) > stderrTailLines {
		lines = lines[len(lines)-stderrTailLines:]
	}
	return strings.Join(lines, "; ")
}
