package fs_test

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/assetpipe/internal/adapters/fs"
	"go.trai.ch/assetpipe/internal/core/domain"
)

func TestStore_Empty(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "build", "production")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "js"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "js", "bundle.js"), []byte("old"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bundle-stats.json"), []byte("{}"), 0o600))

	before, err := os.Stat(dir)
	require.NoError(t, err)

	require.NoError(t, fs.NewStore().Empty(dir))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)

	after, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, os.SameFile(before, after), "directory itself must be preserved")
}

func TestStore_EmptyCreatesMissingDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "build", "dev")

	require.NoError(t, fs.NewStore().Empty(dir))

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestStore_EmptyOnFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "build")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o600))

	err := fs.NewStore().Empty(file)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrOutputCleanFailed))
}

func TestStore_WriteStats(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bundle-stats.json")
	stats := &domain.Stats{
		Hash:   "abc123",
		Mode:   domain.ModeProduction,
		Chunks: []domain.ChunkStats{{Name: "main", Entry: true, Files: []string{"js/bundle.js"}}},
	}

	require.NoError(t, fs.NewStore().WriteStats(t.Context(), path, stats))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "abc123", decoded["hash"])
	assert.Contains(t, decoded, "chunks")
}

func TestStore_WriteStatsFailure(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "out")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	err := fs.NewStore().WriteStats(t.Context(), filepath.Join(blocker, "bundle-stats.json"), &domain.Stats{})
	require.Error(t, err)
}
