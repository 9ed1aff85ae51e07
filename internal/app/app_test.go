package app_test

import (
	"context"
	"errors"
	"iter"
	"path/filepath"
	"testing"
	"testing/synctest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/assetpipe/internal/adapters/telemetry"
	"go.trai.ch/assetpipe/internal/app"
	"go.trai.ch/assetpipe/internal/core/domain"
	"go.trai.ch/assetpipe/internal/core/ports"
	"go.trai.ch/assetpipe/internal/core/ports/mocks"
	"go.trai.ch/assetpipe/internal/engine/driver"
	"go.uber.org/mock/gomock"
)

const root = "/app"

func testPaths() *domain.Paths {
	return &domain.Paths{
		AppPath:        root,
		AppSrc:         filepath.Join(root, "src"),
		AppIndexJs:     filepath.Join(root, "src", "index.js"),
		AppHTML:        filepath.Join(root, "public", "index.html"),
		AppPublic:      filepath.Join(root, "public"),
		AppBuild:       filepath.Join(root, "build"),
		AppPackageJSON: filepath.Join(root, "package.json"),
		AppNodeModules: filepath.Join(root, "node_modules"),
	}
}

func baseline(mode domain.BuildMode) *domain.BuildConfiguration {
	plugins := domain.NewPluginRegistry(
		&domain.HTMLPlugin{Template: filepath.Join(root, "public", "index.html"), Filename: "index.html"},
		&domain.ManifestPlugin{Filename: "asset-manifest.json"},
	)
	if mode.IsProduction() {
		plugins.Set(&domain.StylesheetExtractPlugin{Filename: "static/css/[name].css"})
	}
	return &domain.BuildConfiguration{
		Mode:    mode,
		Context: root,
		Entry:   []domain.EntryPoint{{Name: "main", Import: filepath.Join(root, "src", "index.js")}},
		Output:  domain.Output{Path: filepath.Join(root, "build")},
		Rules:   []domain.FileRule{{Name: "file", Extensions: []string{".svg"}}},
		Plugins: plugins,
	}
}

type fixture struct {
	loader   *mocks.MockConfigLoader
	provider *mocks.MockBaseConfigProvider
	settings *mocks.MockSettingsLoader
	verifier *mocks.MockVerifier
	engine   *mocks.MockEngine
	store    *mocks.MockOutputStore
	watcher  *mocks.MockWatcher
	reporter *mocks.MockReporter
	progress *mocks.MockProgressReporter
	logger   *mocks.MockLogger
	app      *app.App
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := &fixture{
		loader:   mocks.NewMockConfigLoader(ctrl),
		provider: mocks.NewMockBaseConfigProvider(ctrl),
		settings: mocks.NewMockSettingsLoader(ctrl),
		verifier: mocks.NewMockVerifier(ctrl),
		engine:   mocks.NewMockEngine(ctrl),
		store:    mocks.NewMockOutputStore(ctrl),
		watcher:  mocks.NewMockWatcher(ctrl),
		reporter: mocks.NewMockReporter(ctrl),
		progress: mocks.NewMockProgressReporter(ctrl),
		logger:   mocks.NewMockLogger(ctrl),
	}
	drv := driver.New(f.engine, f.store, f.watcher, f.reporter, telemetry.NewNoOpTracer())
	f.app = app.New(f.loader, f.provider, f.settings, f.verifier, drv, f.reporter, f.progress, f.logger)
	return f
}

// expectPreflight sets up a project that passes every check.
func (f *fixture) expectPreflight(mode domain.BuildMode, settings domain.Settings) {
	paths := testPaths()
	f.loader.EXPECT().Load(".").Return(paths, nil)
	f.settings.EXPECT().Load(root, mode).Return(settings, nil)
	if !settings.SkipPreflight {
		f.verifier.EXPECT().VerifyPackageTree(paths).Return(nil)
	}
	f.verifier.EXPECT().VerifyRequiredFiles(gomock.Any()).Return(nil).AnyTimes()
	f.verifier.EXPECT().VerifyBrowsers(paths).Return(nil)
	f.provider.EXPECT().Base(mode, paths, settings).Return(baseline(mode), nil)
	f.logger.EXPECT().Info(gomock.Any()).AnyTimes()
}

func TestApp_BuildProduction(t *testing.T) {
	f := newFixture(t)
	f.expectPreflight(domain.ModeProduction, domain.Settings{SourceMaps: true})

	summary := domain.DiagnosticsSummary{Stats: &domain.Stats{Hash: "abc"}}
	var built *domain.BuildConfiguration
	gomock.InOrder(
		f.store.EXPECT().Empty(filepath.Join(root, "build", "production")).Return(nil),
		f.engine.EXPECT().Run(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ any, cfg *domain.BuildConfiguration) (*domain.CompileResult, error) {
				built = cfg
				return &domain.CompileResult{Stats: summary.Stats}, nil
			}),
		f.reporter.EXPECT().PrintSummary(gomock.Any()),
	)

	err := f.app.Build(t.Context(), app.BuildOptions{Mode: domain.ModeProduction})

	require.NoError(t, err)
	require.NotNil(t, built)
	assert.Equal(t, domain.MainScriptFilename, built.Output.Filename)
	assert.Equal(t, domain.DefaultPublicPath, built.Output.PublicPath)
	assert.False(t, built.Plugins.Has(domain.RoleHTML))
	assert.False(t, built.Plugins.Has(domain.RoleManifest))
}

func TestApp_BuildWritesStats(t *testing.T) {
	f := newFixture(t)
	f.expectPreflight(domain.ModeProduction, domain.Settings{})

	stats := &domain.Stats{Hash: "abc"}
	out := filepath.Join(root, "build", "production")
	gomock.InOrder(
		f.store.EXPECT().Empty(out).Return(nil),
		f.engine.EXPECT().Run(gomock.Any(), gomock.Any()).Return(&domain.CompileResult{Stats: stats}, nil),
		f.store.EXPECT().WriteStats(gomock.Any(), filepath.Join(out, domain.StatsFileName), stats).Return(nil),
		f.reporter.EXPECT().PrintSummary(gomock.Any()),
	)

	err := f.app.Build(t.Context(), app.BuildOptions{Mode: domain.ModeProduction, WriteStats: true})

	require.NoError(t, err)
}

func TestApp_BuildSettingsOverrideOutput(t *testing.T) {
	f := newFixture(t)
	f.expectPreflight(domain.ModeDevelopment, domain.Settings{OutputPath: "../backend/static", PublicPath: "/static/"})

	var built *domain.BuildConfiguration
	f.store.EXPECT().Empty("/backend/static").Return(nil)
	f.engine.EXPECT().Run(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ any, cfg *domain.BuildConfiguration) (*domain.CompileResult, error) {
			built = cfg
			return &domain.CompileResult{}, nil
		})
	f.reporter.EXPECT().PrintSummary(gomock.Any())

	err := f.app.Build(t.Context(), app.BuildOptions{Mode: domain.ModeDevelopment})

	require.NoError(t, err)
	assert.Equal(t, "/static/", built.Output.PublicPath)
}

func TestApp_BuildCompileFailure(t *testing.T) {
	f := newFixture(t)
	f.expectPreflight(domain.ModeProduction, domain.Settings{})

	f.store.EXPECT().Empty(gomock.Any()).Return(nil)
	f.engine.EXPECT().Run(gomock.Any(), gomock.Any()).Return(&domain.CompileResult{
		Errors: []domain.Diagnostic{{Text: "Unexpected token", File: "src/index.js", Line: 1, Column: 4}},
	}, nil)
	f.reporter.EXPECT().PrintSummary(gomock.Any()).Do(func(s domain.DiagnosticsSummary) {
		assert.True(t, s.Failed())
	})

	err := f.app.Build(t.Context(), app.BuildOptions{Mode: domain.ModeProduction, WriteStats: true})

	require.ErrorIs(t, err, domain.ErrBuildExecutionFailed)
}

func TestApp_BuildHardFailure(t *testing.T) {
	f := newFixture(t)
	f.expectPreflight(domain.ModeProduction, domain.Settings{})

	cause := errors.New("disk full")
	f.store.EXPECT().Empty(gomock.Any()).Return(cause)
	f.reporter.EXPECT().PrintFailure(cause)

	err := f.app.Build(t.Context(), app.BuildOptions{Mode: domain.ModeProduction})

	require.ErrorIs(t, err, domain.ErrBuildExecutionFailed)
	require.ErrorIs(t, err, cause)
}

func TestApp_SkipPreflight(t *testing.T) {
	f := newFixture(t)
	// VerifyPackageTree is not expected.
	f.expectPreflight(domain.ModeProduction, domain.Settings{SkipPreflight: true})

	f.store.EXPECT().Empty(gomock.Any()).Return(nil)
	f.engine.EXPECT().Run(gomock.Any(), gomock.Any()).Return(&domain.CompileResult{}, nil)
	f.reporter.EXPECT().PrintSummary(gomock.Any())

	require.NoError(t, f.app.Build(t.Context(), app.BuildOptions{Mode: domain.ModeProduction}))
}

func TestApp_PreflightFailures(t *testing.T) {
	tests := []struct {
		name  string
		setup func(f *fixture, paths *domain.Paths)
		want  error
	}{
		{
			name: "package tree",
			setup: func(f *fixture, paths *domain.Paths) {
				f.verifier.EXPECT().VerifyPackageTree(paths).Return(domain.ErrPackageTreeInvalid)
			},
			want: domain.ErrPackageTreeInvalid,
		},
		{
			name: "required files",
			setup: func(f *fixture, paths *domain.Paths) {
				f.verifier.EXPECT().VerifyPackageTree(paths).Return(nil)
				f.verifier.EXPECT().VerifyRequiredFiles(paths.AppIndexJs).Return(domain.ErrRequiredFileMissing)
			},
			want: domain.ErrRequiredFileMissing,
		},
		{
			name: "browsers",
			setup: func(f *fixture, paths *domain.Paths) {
				f.verifier.EXPECT().VerifyPackageTree(paths).Return(nil)
				f.verifier.EXPECT().VerifyRequiredFiles(paths.AppIndexJs).Return(nil)
				f.verifier.EXPECT().VerifyBrowsers(paths).Return(domain.ErrBrowserslistMissing)
			},
			want: domain.ErrBrowserslistMissing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			paths := testPaths()
			f.loader.EXPECT().Load(".").Return(paths, nil)
			f.settings.EXPECT().Load(root, domain.ModeProduction).Return(domain.Settings{}, nil)
			tt.setup(f, paths)

			// No store or engine calls: the output directory stays untouched.
			err := f.app.Build(t.Context(), app.BuildOptions{Mode: domain.ModeProduction})

			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestApp_DevVariantRequiresHTML(t *testing.T) {
	f := newFixture(t)
	paths := testPaths()
	f.loader.EXPECT().Load(".").Return(paths, nil)
	f.settings.EXPECT().Load(root, domain.ModeDevelopment).Return(domain.Settings{}, nil)
	f.verifier.EXPECT().VerifyPackageTree(paths).Return(nil)
	f.verifier.EXPECT().VerifyRequiredFiles(paths.AppIndexJs, paths.AppHTML).Return(domain.ErrRequiredFileMissing)

	err := f.app.Build(t.Context(), app.BuildOptions{Mode: domain.ModeDevelopment, Variant: app.VariantDev})

	require.ErrorIs(t, err, domain.ErrRequiredFileMissing)
}

func TestApp_DevVariantOutput(t *testing.T) {
	f := newFixture(t)
	f.expectPreflight(domain.ModeDevelopment, domain.Settings{})

	f.store.EXPECT().Empty(filepath.Join(root, "build", "dev")).Return(nil)
	f.engine.EXPECT().Run(gomock.Any(), gomock.Any()).Return(&domain.CompileResult{}, nil)
	f.reporter.EXPECT().PrintSummary(gomock.Any())

	err := f.app.Build(t.Context(), app.BuildOptions{Mode: domain.ModeDevelopment, Variant: app.VariantDev})

	require.NoError(t, err)
}

func TestApp_LoadFailure(t *testing.T) {
	f := newFixture(t)
	f.loader.EXPECT().Load("/elsewhere").Return(nil, domain.ErrConfigParseFailed)

	err := f.app.Build(t.Context(), app.BuildOptions{Mode: domain.ModeProduction, Dir: "/elsewhere"})

	require.ErrorIs(t, err, domain.ErrConfigParseFailed)
}

func TestApp_Watch(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture(t)
		f.expectPreflight(domain.ModeDevelopment, domain.Settings{})

		ctx, cancel := context.WithCancel(t.Context())
		defer cancel()

		session := mocks.NewMockSession(gomock.NewController(t))
		f.store.EXPECT().Empty(filepath.Join(root, "build", "development")).Return(nil)
		f.engine.EXPECT().Open(gomock.Any(), gomock.Any()).Return(session, nil)
		f.watcher.EXPECT().Start(gomock.Any(), root, "build", "build/**", "build/development", "build/development/**").
			Return(nil)
		f.watcher.EXPECT().Events().Return(iter.Seq[ports.WatchEvent](func(func(ports.WatchEvent) bool) {}))
		f.watcher.EXPECT().Err().Return(nil)
		f.watcher.EXPECT().Stop().Return(nil)
		session.EXPECT().Rebuild(gomock.Any()).Return(&domain.CompileResult{}, nil)
		session.EXPECT().Close().Return(nil)
		f.reporter.EXPECT().PrintReport(gomock.Any())

		var events []domain.BuildEvent
		done := make(chan error, 1)
		go func() {
			done <- f.app.Build(ctx, app.BuildOptions{
				Mode:  domain.ModeDevelopment,
				Watch: true,
				OnBuild: func(ev domain.BuildEvent) {
					events = append(events, ev)
				},
			})
		}()

		synctest.Wait()
		cancel()

		require.NoError(t, <-done)
		require.Len(t, events, 1)
		assert.Equal(t, domain.TriggerInitial, events[0].Trigger)
	})
}
