package cache

import (
	"archive/tar"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"
)

// ErrNoPaths is returned when none of the paths to cache exist
var ErrNoPaths = errors.New("path validation error: path(s) specified in the action for caching do(es) not exist, hence no cache is being saved")

// ArchiveStats describes a written archive
type ArchiveStats struct {
	Entries int   // Files, directories and links stored
	Bytes   int64 // Uncompressed size of regular files
}

// WriteArchive writes paths, relative to dir, as a zstd compressed tar stream.
// Entry names keep the paths as given so the archive restores in place.
// Missing paths are skipped; ErrNoPaths is returned when all are missing.
func WriteArchive(w io.Writer, dir string, paths []string) (*ArchiveStats, error) {
	zw, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd writer: %w", err)
	}
	tw := tar.NewWriter(zw)

	stats := &ArchiveStats{}
	found := false
	for _, p := range paths {
		base := dir
		if filepath.IsAbs(p) {
			// stored without the leading slash, as tar does
			base = string(filepath.Separator)
		}
		root := filepath.Join(base, p)
		if _, err := os.Lstat(root); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			_ = zw.Close()
			return nil, fmt.Errorf("failed to stat %s: %w", p, err)
		}
		found = true

		if err := addTree(tw, base, root, stats); err != nil {
			_ = zw.Close()
			return nil, err
		}
	}

	if !found {
		_ = zw.Close()
		return nil, ErrNoPaths
	}

	// produce tar
	if err := tw.Close(); err != nil {
		_ = zw.Close()
		return nil, fmt.Errorf("failed to finish tar stream: %w", err)
	}
	// produce zstd
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish zstd stream: %w", err)
	}
	return stats, nil
}

func addTree(tw *tar.Writer, base, root string, stats *ArchiveStats) error {
	return filepath.WalkDir(root, func(file string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		fi, err := d.Info()
		if err != nil {
			return err
		}

		var link string
		if fi.Mode()&fs.ModeSymlink != 0 {
			if link, err = os.Readlink(file); err != nil {
				return err
			}
		} else if !fi.Mode().IsRegular() && !fi.IsDir() {
			// sockets, fifos and devices have no place in a cache
			return nil
		}

		header, err := tar.FileInfoHeader(fi, link)
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(base, file)
		if err != nil {
			return err
		}
		// must provide real name
		header.Name = filepath.ToSlash(rel)
		if fi.IsDir() {
			header.Name += "/"
		}

		if err := tw.WriteHeader(header); err != nil {
			return fmt.Errorf("failed to write header for %s: %w", rel, err)
		}
		stats.Entries++

		if !fi.Mode().IsRegular() {
			return nil
		}

		data, err := os.Open(file)
		if err != nil {
			return err
		}
		defer func() { _ = data.Close() }()

		n, err := io.Copy(tw, data)
		if err != nil {
			return fmt.Errorf("failed to archive %s: %w", rel, err)
		}
		stats.Bytes += n
		return nil
	})
}
