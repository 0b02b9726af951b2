package actions

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
)

func TestAppendFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary.md")

	if err := AppendFile(path, "first\n"); err != nil {
		t.Fatalf("AppendFile() unexpected error: %v", err)
	}
	if err := AppendFile(path, "second\n"); err != nil {
		t.Fatalf("AppendFile() unexpected error: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(content) != "first\nsecond\n" {
		t.Errorf("content = %q, want %q", content, "first\nsecond\n")
	}
}

func TestAppendFileMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "summary.md")

	err := AppendFile(path, "text")
	if err == nil {
		t.Fatal("expected error for missing directory")
	}
	if !strings.Contains(err.Error(), "failed to open") {
		t.Errorf("error = %v", err)
	}
}

func TestSetOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "output")

	if err := SetOutput(path, "cache-saved", "true"); err != nil {
		t.Fatalf("SetOutput() unexpected error: %v", err)
	}
	if err := SetOutput(path, "stats", "Hits: 1\nMisses: 2"); err != nil {
		t.Fatalf("SetOutput() unexpected error: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	pattern := regexp.MustCompile(`^cache-saved=true\nstats<<(ghadelimiter_[0-9a-f-]+)\nHits: 1\nMisses: 2\n(ghadelimiter_[0-9a-f-]+)\n$`)
	m := pattern.FindStringSubmatch(string(content))
	if m == nil {
		t.Fatalf("unexpected output file content: %q", content)
	}
	if m[1] != m[2] {
		t.Errorf("delimiters differ: %q vs %q", m[1], m[2])
	}
}

func TestFormatOutput(t *testing.T) {
	if got := formatOutput("key", "value", "EOF"); got != "key=value\n" {
		t.Errorf("single line = %q", got)
	}
	if got := formatOutput("key", "a\nb", "EOF"); got != "key<<EOF\na\nb\nEOF\n" {
		t.Errorf("multi-line = %q", got)
	}
}
