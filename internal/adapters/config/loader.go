// Package config locates application files and provides the baseline bundler configuration.
package config

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/assetpipe/internal/core/domain"
	"go.trai.ch/assetpipe/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader.
type Loader struct{}

// NewLoader creates a new Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load resolves the application paths of cwd, applying assetpipe.yaml when present.
func (l *Loader) Load(cwd string) (*domain.Paths, error) {
	root, err := filepath.Abs(cwd)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to resolve application root"), "cwd", cwd)
	}

	pf, err := readProjectFile(filepath.Join(root, domain.ConfigFileName))
	if err != nil {
		return nil, err
	}

	src := resolve(root, pf.Src, DefaultSrc)
	public := resolve(root, pf.Public, DefaultPublic)

	return &domain.Paths{
		AppPath:        root,
		AppSrc:         src,
		AppIndexJs:     resolve(root, pf.Entry, filepath.Join(rel(root, src), DefaultEntry)),
		AppHTML:        resolve(root, pf.HTML, filepath.Join(rel(root, public), DefaultHTML)),
		AppPublic:      public,
		AppBuild:       resolve(root, pf.Build, domain.BuildDirName),
		AppPackageJSON: filepath.Join(root, "package.json"),
		AppNodeModules: filepath.Join(root, "node_modules"),
		Browserslistrc: filepath.Join(root, ".browserslistrc"),
	}, nil
}

func readProjectFile(path string) (ProjectFile, error) {
	var pf ProjectFile

	f, err := os.Open(path) //nolint:gosec // path is the fixed config file name under the app root
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return pf, nil
		}
		return pf, zerr.With(zerr.Wrap(errors.Join(domain.ErrConfigReadFailed, err), "failed to open config file"), "file", path)
	}
	defer func() { _ = f.Close() }()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&pf); err != nil && !errors.Is(err, io.EOF) {
		return pf, zerr.With(zerr.Wrap(errors.Join(domain.ErrConfigParseFailed, err), "invalid config file"), "file", path)
	}
	return pf, nil
}

func resolve(root, value, fallback string) string {
	if value == "" {
		value = fallback
	}
	if filepath.IsAbs(value) {
		return filepath.Clean(value)
	}
	return filepath.Join(root, value)
}

func rel(root, path string) string {
	r, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return r
}
