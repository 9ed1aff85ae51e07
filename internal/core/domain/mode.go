package domain

import "go.trai.ch/zerr"

// BuildMode selects the optimization and naming policy of a build.
type BuildMode string

const (
	// ModeDevelopment builds unminified output with hash-free chunk names.
	ModeDevelopment BuildMode = "development"
	// ModeProduction builds minified output with content-hashed chunk names.
	ModeProduction BuildMode = "production"
)

// ParseBuildMode validates a mode given on the command line.
func ParseBuildMode(s string) (BuildMode, error) {
	switch m := BuildMode(s); m {
	case ModeDevelopment, ModeProduction:
		return m, nil
	default:
		return "", zerr.With(zerr.Wrap(ErrInvalidMode, "unsupported mode"), "mode", s)
	}
}

// IsProduction reports whether m is the production mode.
func (m BuildMode) IsProduction() bool {
	return m == ModeProduction
}

func (m BuildMode) String() string {
	return string(m)
}
