package transform_test

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/assetpipe/internal/core/domain"
	"go.trai.ch/assetpipe/internal/engine/chunknames"
	"go.trai.ch/assetpipe/internal/engine/transform"
)

func baseline(mode domain.BuildMode) *domain.BuildConfiguration {
	plugins := domain.NewPluginRegistry(
		&domain.HotReloadPlugin{},
		&domain.HTMLPlugin{Template: "public/index.html", Filename: "index.html"},
		&domain.ManifestPlugin{Filename: "asset-manifest.json"},
		&domain.DefinePlugin{Definitions: map[string]string{"process.env.NODE_ENV": `"` + mode.String() + `"`}},
	)
	if mode.IsProduction() {
		plugins.Set(&domain.StylesheetExtractPlugin{
			Filename:      "static/css/[name].[contenthash:8].css",
			ChunkFilename: "static/css/[name].[contenthash:8].chunk.css",
		})
	}

	return &domain.BuildConfiguration{
		Mode:    mode,
		Context: "/app",
		Entry: []domain.EntryPoint{
			{Name: "main", Import: "/app/node_modules/dev-client/index.js"},
			{Name: "main", Import: "/app/src/index.js"},
		},
		Output: domain.Output{
			Path:          "/app/build",
			PublicPath:    "/static-root/",
			Filename:      "static/js/[name].[contenthash:8].js",
			ChunkFilename: "static/js/[name].[contenthash:8].chunk.js",
		},
		Rules: []domain.FileRule{
			{Name: "url", Extensions: []string{".png"}, InlineLimit: 10000, Filename: "static/media/[name].[hash:8].[ext]"},
			{Name: "file", Extensions: []string{".svg"}, Filename: "static/media/[name].[hash:8].[ext]"},
		},
		Plugins:      plugins,
		Optimization: domain.Optimization{Minimize: mode.IsProduction(), SplitChunks: domain.SplitChunks{Chunks: domain.ChunksAll}},
		SourceMap:    domain.SourceMapLinked,
	}
}

func overrides() domain.Overrides {
	return domain.Overrides{BuildRoot: "/app/build", Entry: "/app/src/index.js"}
}

func TestTransform_Production(t *testing.T) {
	base := baseline(domain.ModeProduction)

	cfg, err := transform.Transform(base, domain.ModeProduction, overrides())
	require.NoError(t, err)

	want := domain.Output{
		Path:          filepath.Join("/app/build", "production"),
		PublicPath:    "/",
		Filename:      "js/bundle.js",
		ChunkFilename: "js/[name].[contenthash:8].chunk.js",
	}
	if diff := cmp.Diff(want, cfg.Output); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, []domain.EntryPoint{{Name: "main", Import: "/app/src/index.js"}}, cfg.Entry)
	assert.Equal(t, domain.SplitChunks{Chunks: domain.ChunksAll, StableNames: true}, cfg.Optimization.SplitChunks)
	assert.True(t, cfg.Optimization.Minimize)
	for _, r := range cfg.Rules {
		assert.Equal(t, "media/[name].[hash:8].[ext]", r.Filename)
	}

	css, ok := domain.PluginAs[*domain.StylesheetExtractPlugin](cfg.Plugins, domain.RoleStylesheetExtract)
	require.True(t, ok)
	assert.Equal(t, "css/[name].css", css.Filename)
	assert.Equal(t, "css/[name].[contenthash:8].chunk.css", css.ChunkFilename)

	assert.Equal(t, []domain.PluginRole{domain.RoleStylesheetExtract, domain.RoleDefine}, cfg.Plugins.Roles())

	hooks := cfg.Plugins.Hooks()
	require.Len(t, hooks, 1)
	assert.Equal(t, chunknames.HookName, hooks[0].Name())
}

func TestTransform_Development(t *testing.T) {
	cfg, err := transform.Transform(baseline(domain.ModeDevelopment), domain.ModeDevelopment, overrides())
	require.NoError(t, err)

	assert.Equal(t, filepath.Join("/app/build", "development"), cfg.Output.Path)
	assert.Equal(t, "js/[name].chunk.js", cfg.Output.ChunkFilename)
	assert.False(t, cfg.Plugins.Has(domain.RoleStylesheetExtract))
	assert.Equal(t, []domain.PluginRole{domain.RoleDefine}, cfg.Plugins.Roles())
}

func TestTransform_MainScriptIsFixedInEveryMode(t *testing.T) {
	for _, mode := range []domain.BuildMode{domain.ModeDevelopment, domain.ModeProduction} {
		cfg, err := transform.Transform(baseline(mode), mode, overrides())
		require.NoError(t, err)
		assert.Equal(t, "js/bundle.js", cfg.Output.Filename, mode)

		hashed := strings.Contains(cfg.Output.ChunkFilename, "hash")
		assert.Equal(t, mode.IsProduction(), hashed, mode)
	}
}

func TestTransform_Overrides(t *testing.T) {
	o := overrides()
	o.OutputPath = "/srv/www/assets"
	o.PublicPath = "/assets/"

	cfg, err := transform.Transform(baseline(domain.ModeProduction), domain.ModeProduction, o)
	require.NoError(t, err)

	assert.Equal(t, "/srv/www/assets", cfg.Output.Path)
	assert.Equal(t, "/assets/", cfg.Output.PublicPath)
}

func TestTransform_OutputSubdir(t *testing.T) {
	o := overrides()
	o.OutputSubdir = "dev"

	cfg, err := transform.Transform(baseline(domain.ModeDevelopment), domain.ModeDevelopment, o)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join("/app/build", "dev"), cfg.Output.Path)
}

func TestTransform_DoesNotMutateBaseline(t *testing.T) {
	base := baseline(domain.ModeProduction)
	snapshot := baseline(domain.ModeProduction)

	_, err := transform.Transform(base, domain.ModeProduction, overrides())
	require.NoError(t, err)

	opts := cmp.Options{
		cmp.AllowUnexported(domain.PluginRegistry{}),
		cmpopts.EquateEmpty(),
	}
	if diff := cmp.Diff(snapshot, base, opts); diff != "" {
		t.Errorf("baseline mutated (-want +got):\n%s", diff)
	}
}

func TestTransform_MissingElements(t *testing.T) {
	t.Run("no media rules", func(t *testing.T) {
		base := baseline(domain.ModeDevelopment)
		base.Rules = nil

		_, err := transform.Transform(base, domain.ModeDevelopment, overrides())
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrMissingConfigElement))
	})

	t.Run("no stylesheet plugin in production", func(t *testing.T) {
		base := baseline(domain.ModeProduction)
		base.Plugins.Remove(domain.RoleStylesheetExtract)

		_, err := transform.Transform(base, domain.ModeProduction, overrides())
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrMissingConfigElement))
	})

	t.Run("no application entry", func(t *testing.T) {
		o := overrides()
		o.Entry = ""

		cfg, err := transform.Transform(baseline(domain.ModeDevelopment), domain.ModeDevelopment, o)
		require.Error(t, err)
		assert.Nil(t, cfg)
		assert.True(t, errors.Is(err, domain.ErrMissingConfigElement))
	})

	t.Run("nil baseline", func(t *testing.T) {
		_, err := transform.Transform(nil, domain.ModeProduction, overrides())
		assert.True(t, errors.Is(err, domain.ErrMissingConfigElement))
	})
}
