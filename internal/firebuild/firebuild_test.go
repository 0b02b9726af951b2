package firebuild

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/zinc-sig/firebuild-cache/internal/runner"
)

// fakeShell returns canned stdout per command and records every call
type fakeShell struct {
	outputs map[string]string
	errs    map[string]error
	calls   []string
}

func (f *fakeShell) Output(ctx context.Context, command string) (*runner.Result, error) {
	f.calls = append(f.calls, command)
	if err := f.errs[command]; err != nil {
		return nil, err
	}
	return &runner.Result{Command: command, Stdout: f.outputs[command]}, nil
}

func TestSupportsVerbose(t *testing.T) {
	tests := []struct {
		name string
		help string
		want bool
	}{
		{
			name: "new firebuild",
			help: "Usage: firebuild [OPTIONS] <BUILD COMMAND>\n  -s --show-stats  show cache statistics\n  -v --verbose     increase verbosity\n",
			want: true,
		},
		{
			name: "old firebuild",
			help: "Usage: firebuild [OPTIONS] <BUILD COMMAND>\n  -s --show-stats  show cache statistics\n",
			want: false,
		},
		{
			name: "empty help",
			help: "",
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shell := &fakeShell{outputs: map[string]string{"firebuild --help": tt.help}}
			got, err := New("", shell).SupportsVerbose(context.Background())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("SupportsVerbose() = %v, want %v", got, tt.want)
			}
			if !reflect.DeepEqual(shell.calls, []string{"firebuild --help"}) {
				t.Errorf("calls = %v", shell.calls)
			}
		})
	}
}

func TestStatsCommandLine(t *testing.T) {
	tests := []struct {
		verbosity string
		want      string
	}{
		{"", "firebuild -s"},
		{" -v", "firebuild -s -v"},
		{" -vv", "firebuild -s -vv"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			shell := &fakeShell{outputs: map[string]string{tt.want: "stats"}}
			got, err := New("", shell).Stats(context.Background(), tt.verbosity)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != "stats" {
				t.Errorf("Stats() = %q", got)
			}
			if !reflect.DeepEqual(shell.calls, []string{tt.want}) {
				t.Errorf("calls = %v, want [%s]", shell.calls, tt.want)
			}
		})
	}
}

func TestIsEmpty(t *testing.T) {
	shell := &fakeShell{outputs: map[string]string{
		"firebuild -s": "Statistics of stored cache:\n  Cache size:  0.00 kB\n",
	}}

	empty, err := New("", shell).IsEmpty(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !empty {
		t.Error("IsEmpty() = false, want true")
	}
	if !reflect.DeepEqual(shell.calls, []string{"firebuild -s"}) {
		t.Errorf("calls = %v", shell.calls)
	}
}

func TestToolErrors(t *testing.T) {
	boom := errors.New("the process 'firebuild -s' failed with exit code 1")
	shell := &fakeShell{errs: map[string]error{
		"firebuild --help": boom,
		"firebuild -s":     boom,
	}}
	tool := New("", shell)

	if _, err := tool.SupportsVerbose(context.Background()); !errors.Is(err, boom) {
		t.Errorf("SupportsVerbose() error = %v", err)
	}
	if _, err := tool.Stats(context.Background(), ""); !errors.Is(err, boom) {
		t.Errorf("Stats() error = %v", err)
	}
	_, err := tool.IsEmpty(context.Background())
	if !errors.Is(err, boom) {
		t.Errorf("IsEmpty() error = %v", err)
	}
	if err != nil && !strings.HasPrefix(err.Error(), "firebuild: ") {
		t.Errorf("error should be prefixed, got %q", err.Error())
	}
}

func TestCustomBinary(t *testing.T) {
	shell := &fakeShell{outputs: map[string]string{}}
	tool := New("/opt/fb/bin/firebuild-dev", shell)

	if _, err := tool.Stats(context.Background(), " -v"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if shell.calls[0] != "/opt/fb/bin/firebuild-dev -s -v" {
		t.Errorf("call = %q", shell.calls[0])
	}
	if tool.CacheDir() != ".cache/firebuild-dev" {
		t.Errorf("CacheDir() = %q", tool.CacheDir())
	}
}

func TestCacheDir(t *testing.T) {
	if got := CacheDir(""); got != ".cache/firebuild" {
		t.Errorf("CacheDir(\"\") = %q", got)
	}
	if got := CacheDir("firebuild"); got != ".cache/firebuild" {
		t.Errorf("CacheDir(firebuild) = %q", got)
	}
}
