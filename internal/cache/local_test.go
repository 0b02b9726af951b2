package cache

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/zinc-sig/firebuild-cache/internal/confmap"
)

func TestLocalBackendUpload(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "store")

	backend := NewLocalBackend()
	if err := backend.Configure(context.Background(), confmap.Map{"dir": dir}); err != nil {
		t.Fatalf("Configure() unexpected error: %v", err)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Fatalf("Configure() should create the directory: %v", err)
	}

	ctx := context.Background()
	if err := backend.Upload(ctx, strings.NewReader("first"), 5, "linux/key.tar.zst"); err != nil {
		t.Fatalf("Upload() unexpected error: %v", err)
	}
	// Same object again replaces the content
	if err := backend.Upload(ctx, strings.NewReader("second"), 6, "linux/key.tar.zst"); err != nil {
		t.Fatalf("Upload() unexpected error: %v", err)
	}

	content, err := os.ReadFile(filepath.Join(dir, "linux", "key.tar.zst"))
	if err != nil {
		t.Fatal(err)
	}
	if string(content) != "second" {
		t.Errorf("content = %q, want %q", content, "second")
	}
}

func TestLocalBackendShortWrite(t *testing.T) {
	dir := t.TempDir()
	backend := NewLocalBackend()
	if err := backend.Configure(context.Background(), confmap.Map{"dir": dir}); err != nil {
		t.Fatal(err)
	}

	err := backend.Upload(context.Background(), strings.NewReader("abc"), 10, "key.tar.zst")
	if err == nil || !strings.Contains(err.Error(), "short write") {
		t.Fatalf("Upload() error = %v, want short write", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "key.tar.zst")); !os.IsNotExist(err) {
		t.Error("failed upload should not leave a file behind")
	}
}

func TestLocalBackendRejectsEscapingObjects(t *testing.T) {
	backend := NewLocalBackend()
	if err := backend.Configure(context.Background(), confmap.Map{"dir": t.TempDir()}); err != nil {
		t.Fatal(err)
	}

	for _, object := range []string{"../outside.tar.zst", "a/../../outside", ".."} {
		err := backend.Upload(context.Background(), strings.NewReader("x"), 1, object)
		if err == nil || !strings.Contains(err.Error(), "escapes the cache directory") {
			t.Errorf("Upload(%q) error = %v, want escape error", object, err)
		}
	}
}

func TestLocalBackendCancelled(t *testing.T) {
	backend := NewLocalBackend()
	if err := backend.Configure(context.Background(), confmap.Map{"dir": t.TempDir()}); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := backend.Upload(ctx, strings.NewReader("x"), 1, "key.tar.zst"); err == nil {
		t.Error("Upload() with cancelled context should fail")
	}
}

func TestLocalBackendConfigure(t *testing.T) {
	backend := NewLocalBackend()
	if err := backend.Configure(context.Background(), confmap.Map{}); err == nil || !strings.Contains(err.Error(), "dir is required") {
		t.Errorf("Configure() error = %v, want dir is required", err)
	}
	if err := backend.Upload(context.Background(), strings.NewReader("x"), 1, "k"); err == nil {
		t.Error("Upload() on unconfigured backend should fail")
	}
	if backend.Name() != "local" {
		t.Errorf("Name() = %s", backend.Name())
	}
}
