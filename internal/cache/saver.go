package cache

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// Saver archives paths and uploads them to a backend
type Saver struct {
	Backend Backend
	WorkDir string // Base directory for relative paths, empty means current
	Logger  log.Logger
}

// SaveResult describes a stored cache entry
type SaveResult struct {
	Key          string
	Object       string
	Entries      int
	ContentBytes int64
	ArchiveBytes int64
}

// Save stores paths under key. The upload is attempted exactly once.
func (s *Saver) Save(ctx context.Context, paths []string, key string) (*SaveResult, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}
	if s.Backend == nil {
		return nil, fmt.Errorf("no cache backend configured")
	}
	logger := s.Logger
	if logger == nil {
		logger = log.NewNopLogger()
	}

	archive, err := os.CreateTemp("", "firebuild-cache-*"+ArchiveExtension)
	if err != nil {
		return nil, fmt.Errorf("failed to create temp archive: %w", err)
	}
	defer func() {
		_ = archive.Close()
		_ = os.Remove(archive.Name())
	}()

	stats, err := WriteArchive(archive, s.WorkDir, paths)
	if err != nil {
		return nil, err
	}

	size, err := archive.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, fmt.Errorf("failed to determine archive size: %w", err)
	}
	if _, err := archive.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("failed to rewind archive: %w", err)
	}

	object := ObjectName(key)
	level.Debug(logger).Log(
		"msg", "archive created",
		"path", archive.Name(),
		"entries", stats.Entries,
		"content", humanize.IBytes(uint64(stats.Bytes)),
		"archive", humanize.IBytes(uint64(size)),
	)

	if err := s.Backend.Upload(ctx, archive, size, object); err != nil {
		return nil, err
	}
	level.Debug(logger).Log("msg", "archive uploaded", "backend", s.Backend.Name(), "object", object)

	return &SaveResult{
		Key:          key,
		Object:       object,
		Entries:      stats.Entries,
		ContentBytes: stats.Bytes,
		ArchiveBytes: size,
	}, nil
}
