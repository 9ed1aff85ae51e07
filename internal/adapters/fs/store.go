// Package fs provides file system adapters for the output directory and preflight checks.
package fs

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"go.trai.ch/assetpipe/internal/core/domain"
	"go.trai.ch/assetpipe/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.OutputStore = (*Store)(nil)

// Store manages the output directory on the local file system.
type Store struct{}

// NewStore creates a new Store.
func NewStore() *Store {
	return &Store{}
}

// Empty removes everything inside dir and creates dir if it does not exist.
func (s *Store) Empty(dir string) error {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
			return zerr.With(zerr.Wrap(errors.Join(domain.ErrOutputCleanFailed, err), "failed to create output directory"), "dir", dir)
		}
		return nil
	}
	if err != nil {
		return zerr.With(zerr.Wrap(errors.Join(domain.ErrOutputCleanFailed, err), "failed to read output directory"), "dir", dir)
	}

	for _, e := range entries {
		path := filepath.Join(dir, e.Name())
		if err := os.RemoveAll(path); err != nil {
			return zerr.With(zerr.Wrap(errors.Join(domain.ErrOutputCleanFailed, err), "failed to remove output entry"), "path", path)
		}
	}
	return nil
}

// WriteStats streams stats as JSON to path.
func (s *Store) WriteStats(ctx context.Context, path string, stats *domain.Stats) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create stats directory"), "path", path)
	}

	//nolint:gosec // path is derived from the configured output directory
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, domain.FilePerm)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create stats file"), "path", path)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = zerr.With(zerr.Wrap(cerr, "failed to close stats file"), "path", path)
		}
	}()

	w := bufio.NewWriter(f)
	if err := json.NewEncoder(w).Encode(stats); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to encode stats"), "path", path)
	}
	if err := w.Flush(); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write stats file"), "path", path)
	}
	return nil
}
