package fs_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/assetpipe/internal/adapters/fs"
	"go.trai.ch/assetpipe/internal/core/domain"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func projectPaths(root string) *domain.Paths {
	return &domain.Paths{
		AppPath:        root,
		AppPackageJSON: filepath.Join(root, "package.json"),
		AppNodeModules: filepath.Join(root, "node_modules"),
		Browserslistrc: filepath.Join(root, ".browserslistrc"),
	}
}

func TestVerifier_VerifyRequiredFiles(t *testing.T) {
	root := t.TempDir()
	index := filepath.Join(root, "src", "index.js")
	writeFile(t, index, "")
	v := fs.NewVerifier()

	require.NoError(t, v.VerifyRequiredFiles(index))

	err := v.VerifyRequiredFiles(index, filepath.Join(root, "public", "index.html"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrRequiredFileMissing))

	err = v.VerifyRequiredFiles(filepath.Join(root, "src"))
	assert.True(t, errors.Is(err, domain.ErrRequiredFileMissing))
}

func TestVerifier_VerifyPackageTree(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "package.json"),
		`{"dependencies":{"react":"^18.0.0","@scope/ui":"1.0.0"},"devDependencies":{"eslint":"8"}}`)
	writeFile(t, filepath.Join(root, "node_modules", "react", "package.json"), "{}")
	writeFile(t, filepath.Join(root, "node_modules", "@scope", "ui", "package.json"), "{}")
	v := fs.NewVerifier()

	err := v.VerifyPackageTree(projectPaths(root))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrPackageTreeInvalid))

	writeFile(t, filepath.Join(root, "node_modules", "eslint", "package.json"), "{}")
	assert.NoError(t, v.VerifyPackageTree(projectPaths(root)))
}

func TestVerifier_VerifyBrowsers(t *testing.T) {
	t.Run("package.json key", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, filepath.Join(root, "package.json"), `{"browserslist":[">0.2%","not dead"]}`)
		assert.NoError(t, fs.NewVerifier().VerifyBrowsers(projectPaths(root)))
	})

	t.Run("rc file", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, filepath.Join(root, ".browserslistrc"), "defaults\n")
		assert.NoError(t, fs.NewVerifier().VerifyBrowsers(projectPaths(root)))
	})

	t.Run("missing", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, filepath.Join(root, "package.json"), `{"name":"app"}`)
		err := fs.NewVerifier().VerifyBrowsers(projectPaths(root))
		assert.True(t, errors.Is(err, domain.ErrBrowserslistMissing))
	})

	t.Run("no package.json", func(t *testing.T) {
		err := fs.NewVerifier().VerifyBrowsers(projectPaths(t.TempDir()))
		assert.True(t, errors.Is(err, domain.ErrBrowserslistMissing))
	})
}
