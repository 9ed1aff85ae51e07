package fs

import (
	"encoding/json"
	"errors"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"go.trai.ch/assetpipe/internal/core/domain"
	"go.trai.ch/assetpipe/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Verifier = (*Verifier)(nil)

// Verifier checks the project on disk before a build starts.
type Verifier struct{}

// NewVerifier creates a new Verifier.
func NewVerifier() *Verifier {
	return &Verifier{}
}

// VerifyRequiredFiles fails on the first file that does not exist.
func (v *Verifier) VerifyRequiredFiles(files ...string) error {
	for _, path := range files {
		info, err := os.Stat(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return zerr.With(zerr.Wrap(domain.ErrRequiredFileMissing, "could not find a required file"), "path", path)
			}
			return zerr.With(zerr.Wrap(err, "failed to stat required file"), "path", path)
		}
		if info.IsDir() {
			return zerr.With(zerr.Wrap(domain.ErrRequiredFileMissing, "required file is a directory"), "path", path)
		}
	}
	return nil
}

type packageManifest struct {
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
	Browserslist    json.RawMessage   `json:"browserslist"`
}

func readManifest(path string) (*packageManifest, error) {
	//nolint:gosec // path comes from the resolved project layout
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read package.json"), "path", path)
	}
	var m packageManifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to parse package.json"), "path", path)
	}
	return &m, nil
}

// VerifyPackageTree checks that every dependency declared in package.json has
// a directory under node_modules.
func (v *Verifier) VerifyPackageTree(paths *domain.Paths) error {
	m, err := readManifest(paths.AppPackageJSON)
	if err != nil {
		return err
	}

	declared := maps.Clone(m.Dependencies)
	if declared == nil {
		declared = make(map[string]string)
	}
	maps.Copy(declared, m.DevDependencies)

	for _, name := range slices.Sorted(maps.Keys(declared)) {
		dir := filepath.Join(paths.AppNodeModules, filepath.FromSlash(name))
		if _, err := os.Stat(filepath.Join(dir, "package.json")); err != nil {
			return zerr.With(zerr.With(zerr.Wrap(domain.ErrPackageTreeInvalid, "dependency is not installed"),
				"package", name), "expected", dir)
		}
	}
	return nil
}

// VerifyBrowsers checks that target browsers are declared, either as a
// "browserslist" key in package.json or in a .browserslistrc file.
func (v *Verifier) VerifyBrowsers(paths *domain.Paths) error {
	if paths.Browserslistrc != "" {
		if _, err := os.Stat(paths.Browserslistrc); err == nil {
			return nil
		}
	}

	m, err := readManifest(paths.AppPackageJSON)
	if err != nil {
		return errors.Join(domain.ErrBrowserslistMissing, err)
	}
	if len(m.Browserslist) == 0 || string(m.Browserslist) == "null" {
		return zerr.With(zerr.Wrap(domain.ErrBrowserslistMissing,
			"add a \"browserslist\" key to package.json or a .browserslistrc file"), "path", paths.AppPackageJSON)
	}
	return nil
}
