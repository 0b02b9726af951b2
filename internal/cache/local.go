package cache

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/renameio/v2"

	"github.com/zinc-sig/firebuild-cache/internal/confmap"
)

// LocalBackend stores archives in a directory on the runner,
// such as a volume shared between self-hosted runs
type LocalBackend struct {
	dir string
}

// NewLocalBackend creates a new LocalBackend
func NewLocalBackend() *LocalBackend {
	return &LocalBackend{}
}

// Name returns the backend name
func (l *LocalBackend) Name() string {
	return "local"
}

// Configure creates the storage directory if needed
func (l *LocalBackend) Configure(ctx context.Context, config confmap.Map) error {
	dir, ok := config.String("dir")
	if !ok || dir == "" {
		return fmt.Errorf("local: dir is required")
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("local: failed to create %s: %w", dir, err)
	}
	l.dir = dir
	return nil
}

// Upload writes the archive atomically; readers never see a partial file
func (l *LocalBackend) Upload(ctx context.Context, reader io.Reader, size int64, object string) error {
	if l.dir == "" {
		return fmt.Errorf("local: backend not configured")
	}

	dest, err := l.path(object)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return fmt.Errorf("local: failed to create directory for %s: %w", object, err)
	}

	pending, err := renameio.NewPendingFile(dest, renameio.WithPermissions(0644))
	if err != nil {
		return fmt.Errorf("local: failed to create %s: %w", dest, err)
	}
	defer func() { _ = pending.Cleanup() }()

	written, err := io.Copy(pending, contextReader{ctx: ctx, r: reader})
	if err != nil {
		return fmt.Errorf("local: failed to write %s: %w", dest, err)
	}
	if size >= 0 && written != size {
		return fmt.Errorf("local: short write to %s: %d of %d bytes", dest, written, size)
	}

	if err := pending.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("local: failed to commit %s: %w", dest, err)
	}
	return nil
}

// path maps object to a file below the storage directory
func (l *LocalBackend) path(object string) (string, error) {
	dest := filepath.Join(l.dir, filepath.FromSlash(object))
	rel, err := filepath.Rel(l.dir, dest)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("local: object %q escapes the cache directory", object)
	}
	return dest, nil
}

// contextReader stops a copy once ctx is done
type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (c contextReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
