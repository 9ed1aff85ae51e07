package domain

import "go.trai.ch/zerr"

// Configuration errors. They are reported before any output is touched.
var (
	// ErrInvalidMode is returned when the build mode is neither development nor production.
	ErrInvalidMode = zerr.New("invalid build mode, expected 'development' or 'production'")

	// ErrRequiredFileMissing is returned when a file the build cannot start without is absent.
	ErrRequiredFileMissing = zerr.New("required file is missing")

	// ErrMissingConfigElement is returned when the baseline configuration lacks a shape
	// the transformer needs to modify.
	ErrMissingConfigElement = zerr.New("baseline configuration is missing an expected element")

	// ErrConfigReadFailed is returned when the project config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the project config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrInvalidTemplate is returned when an output naming template cannot be expanded.
	ErrInvalidTemplate = zerr.New("invalid output name template")
)

// Environment errors.
var (
	// ErrBrowserslistMissing is returned when no target browsers are declared for the project.
	ErrBrowserslistMissing = zerr.New("no browserslist configuration found")

	// ErrPackageTreeInvalid is returned when a declared dependency is not installed.
	ErrPackageTreeInvalid = zerr.New("dependency declared in package.json is not installed")

	// ErrEnvLoadFailed is returned when a .env file exists but cannot be parsed.
	ErrEnvLoadFailed = zerr.New("failed to load environment file")
)

// Compile errors.
var (
	// ErrEngineFailed is returned when the bundler cannot be started or crashes.
	ErrEngineFailed = zerr.New("bundler failed")

	// ErrEmitFailed is returned when compiled outputs cannot be written.
	ErrEmitFailed = zerr.New("failed to write compiled output")

	// ErrOutputNameConflict is returned when two outputs resolve to the same file name.
	ErrOutputNameConflict = zerr.New("multiple outputs resolve to the same file name")

	// ErrWatcherFailed is returned when the file watcher stops unexpectedly.
	ErrWatcherFailed = zerr.New("file watcher failed")
)

// Persistence errors.
var (
	// ErrOutputCleanFailed is returned when the output directory cannot be emptied.
	ErrOutputCleanFailed = zerr.New("failed to empty output directory")

	// ErrStatsWriteFailed is returned when the stats file cannot be written.
	ErrStatsWriteFailed = zerr.New("failed to write build stats")
)

// ErrBuildExecutionFailed marks a failure that has already been reported to the user.
var ErrBuildExecutionFailed = zerr.New("build execution failed")
