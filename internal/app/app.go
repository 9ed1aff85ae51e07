// Package app implements the application layer for assetpipe.
package app

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"go.trai.ch/assetpipe/internal/core/domain"
	"go.trai.ch/assetpipe/internal/core/ports"
	"go.trai.ch/assetpipe/internal/engine/driver"
	"go.trai.ch/assetpipe/internal/engine/transform"
	"go.trai.ch/zerr"
)

// Variant selects which command flavour is being run.
type Variant int

const (
	// VariantBuild is the regular build command.
	VariantBuild Variant = iota
	// VariantDev is the development build with its own output directory.
	VariantDev
)

// App represents the main application logic.
type App struct {
	loader   ports.ConfigLoader
	provider ports.BaseConfigProvider
	settings ports.SettingsLoader
	verifier ports.Verifier
	driver   *driver.Driver
	reporter ports.Reporter
	progress ports.ProgressReporter
	logger   ports.Logger
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	provider ports.BaseConfigProvider,
	settings ports.SettingsLoader,
	verifier ports.Verifier,
	drv *driver.Driver,
	reporter ports.Reporter,
	progress ports.ProgressReporter,
	log ports.Logger,
) *App {
	return &App{
		loader:   loader,
		provider: provider,
		settings: settings,
		verifier: verifier,
		driver:   drv,
		reporter: reporter,
		progress: progress,
		logger:   log,
	}
}

// BuildOptions configuration for the Build method.
type BuildOptions struct {
	Mode       domain.BuildMode
	Variant    Variant
	Watch      bool
	WriteStats bool
	// Dir is the directory the application is looked up from.
	Dir string
	// OnBuild observes watch-mode builds. Optional.
	OnBuild func(domain.BuildEvent)
}

// Build checks the project, prepares the configuration and runs the build.
//
// Preflight failures are returned before the output directory is touched.
// A failed one-shot build is printed and returned joined with
// domain.ErrBuildExecutionFailed.
func (a *App) Build(ctx context.Context, opts BuildOptions) error {
	cfg, paths, err := a.prepare(opts)
	if err != nil {
		return err
	}

	a.logger.Info(fmt.Sprintf("building %s into %s", opts.Mode, cfg.Output.Path))

	if opts.Watch {
		return a.driver.Watch(ctx, cfg, driver.WatchOptions{
			Root:     paths.AppPath,
			Ignore:   watchIgnore(paths.AppPath, paths.AppBuild, cfg.Output.Path),
			Progress: a.progress.Handle,
			OnBuild:  opts.OnBuild,
		})
	}

	summary, err := a.driver.BuildOnce(ctx, cfg, driver.BuildOptions{WriteStats: opts.WriteStats})
	if err != nil {
		a.reporter.PrintFailure(err)
		return errors.Join(domain.ErrBuildExecutionFailed, err)
	}

	a.reporter.PrintSummary(summary)
	if summary.Failed() {
		return domain.ErrBuildExecutionFailed
	}
	return nil
}

func (a *App) prepare(opts BuildOptions) (*domain.BuildConfiguration, *domain.Paths, error) {
	// 1. Locate the application
	dir := opts.Dir
	if dir == "" {
		dir = "."
	}
	paths, err := a.loader.Load(dir)
	if err != nil {
		return nil, nil, zerr.Wrap(err, "failed to load configuration")
	}

	// 2. Read the environment
	settings, err := a.settings.Load(paths.AppPath, opts.Mode)
	if err != nil {
		return nil, nil, zerr.Wrap(err, "failed to load environment")
	}

	// 3. Preflight checks
	if !settings.SkipPreflight {
		if err := a.verifier.VerifyPackageTree(paths); err != nil {
			return nil, nil, err
		}
	}

	required := []string{paths.AppIndexJs}
	if opts.Variant == VariantDev {
		required = append(required, paths.AppHTML)
	}
	if err := a.verifier.VerifyRequiredFiles(required...); err != nil {
		return nil, nil, err
	}

	if err := a.verifier.VerifyBrowsers(paths); err != nil {
		return nil, nil, err
	}

	// 4. Configure the bundler
	base, err := a.provider.Base(opts.Mode, paths, settings)
	if err != nil {
		return nil, nil, zerr.Wrap(err, "failed to create baseline configuration")
	}

	overrides := domain.Overrides{
		OutputPath: resolve(paths.AppPath, settings.OutputPath),
		PublicPath: settings.PublicPath,
		BuildRoot:  paths.AppBuild,
		Entry:      paths.AppIndexJs,
	}
	if opts.Variant == VariantDev {
		overrides.OutputSubdir = domain.DevOutputDirName
	}

	cfg, err := transform.Transform(base, opts.Mode, overrides)
	if err != nil {
		return nil, nil, err
	}

	return cfg, paths, nil
}

func resolve(root, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}

// watchIgnore returns the patterns, relative to root, of the directories the
// build writes to.
func watchIgnore(root string, dirs ...string) []string {
	var patterns []string
	for _, dir := range dirs {
		rel, err := filepath.Rel(root, dir)
		if err != nil {
			continue
		}
		rel = filepath.ToSlash(rel)
		if rel == "." || rel == ".." || strings.HasPrefix(rel, "../") {
			continue
		}
		patterns = append(patterns, rel, rel+"/**")
	}
	return patterns
}
