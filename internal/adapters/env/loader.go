// Package env reads the build settings from the process environment and .env files.
package env

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"go.trai.ch/assetpipe/internal/core/domain"
	"go.trai.ch/assetpipe/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.SettingsLoader = (*Loader)(nil)

// Variables read into domain.Settings.
const (
	OutputPathVar     = "CRA_BUILD_OUTPUT_PATH"
	PublicPathVar     = "CRA_BUILD_PUBLIC_PATH"
	SkipPreflightVar  = "SKIP_PREFLIGHT_CHECK"
	GenerateSourceVar = "GENERATE_SOURCEMAP"
	ClientEnvPrefix   = "REACT_APP_"
)

// Loader merges .env files under the process environment.
type Loader struct {
	environ func() []string
}

// New creates a Loader over the process environment.
func New() *Loader {
	return &Loader{environ: os.Environ}
}

// NewWithEnviron creates a Loader over a fixed list of KEY=VALUE pairs.
func NewWithEnviron(environ []string) *Loader {
	return &Loader{environ: func() []string { return environ }}
}

// Files returns the .env files consulted for mode, highest precedence first.
func Files(mode domain.BuildMode) []string {
	return []string{
		".env." + mode.String() + ".local",
		".env.local",
		".env." + mode.String(),
		".env",
	}
}

// Load reads the .env files of root that exist, then the environment, which
// takes precedence over any file.
func (l *Loader) Load(root string, mode domain.BuildMode) (domain.Settings, error) {
	vars := make(map[string]string)

	for _, name := range Files(mode) {
		path := filepath.Join(root, name)
		values, err := godotenv.Read(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return domain.Settings{}, zerr.With(zerr.Wrap(errors.Join(domain.ErrEnvLoadFailed, err), "failed to read .env file"), "file", path)
		}
		for k, v := range values {
			if _, ok := vars[k]; !ok {
				vars[k] = v
			}
		}
	}

	for _, kv := range l.environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			vars[k] = v
		}
	}

	return settingsFrom(vars), nil
}

func settingsFrom(vars map[string]string) domain.Settings {
	s := domain.Settings{
		OutputPath:    vars[OutputPathVar],
		PublicPath:    vars[PublicPathVar],
		SkipPreflight: vars[SkipPreflightVar] == "true",
		SourceMaps:    vars[GenerateSourceVar] != "false",
		ClientEnv:     make(map[string]string),
	}
	for k, v := range vars {
		if strings.HasPrefix(k, ClientEnvPrefix) {
			s.ClientEnv[k] = v
		}
	}
	return s
}
