package config

import (
	"strconv"
	"strings"

	"go.trai.ch/assetpipe/internal/core/domain"
	"go.trai.ch/assetpipe/internal/core/ports"
)

var _ ports.BaseConfigProvider = (*Provider)(nil)

// Baseline naming and behavior.
const (
	DevClientEntry = "react-dev-utils/webpackHotDevClient"

	DevScriptFilename       = "static/js/bundle.js"
	DevChunkScriptFilename  = "static/js/[name].chunk.js"
	ProdScriptFilename      = "static/js/[name].[contenthash:8].js"
	ProdChunkScriptFilename = "static/js/[name].[contenthash:8].chunk.js"

	ProdStylesheetFilename      = "static/css/[name].[contenthash:8].css"
	ProdChunkStylesheetFilename = "static/css/[name].[contenthash:8].chunk.css"

	StaticMediaFilename = "static/media/[name].[hash:8].[ext]"
	ImageInlineLimit    = 10000

	HTMLFilename     = "index.html"
	ManifestFilename = "asset-manifest.json"
)

// Media rule names.
const (
	URLRule  = "url"
	FileRule = "file"
)

// Provider implements ports.BaseConfigProvider with the conventional
// single-page application baseline.
type Provider struct{}

// NewProvider creates a new Provider.
func NewProvider() *Provider {
	return &Provider{}
}

// Base returns the baseline configuration for mode.
func (p *Provider) Base(mode domain.BuildMode, paths *domain.Paths, settings domain.Settings) (*domain.BuildConfiguration, error) {
	publicPath := settings.PublicPath
	if publicPath == "" {
		publicPath = domain.DefaultPublicPath
	}

	cfg := &domain.BuildConfiguration{
		Mode:    mode,
		Context: paths.AppPath,
		Output: domain.Output{
			Path:       paths.AppBuild,
			PublicPath: publicPath,
		},
		Rules: []domain.FileRule{
			{
				Name:        URLRule,
				Extensions:  []string{".bmp", ".gif", ".jpg", ".jpeg", ".png"},
				InlineLimit: ImageInlineLimit,
				Filename:    StaticMediaFilename,
			},
			{
				Name:       FileRule,
				Extensions: []string{".svg", ".webp", ".avif", ".ico", ".woff", ".woff2", ".ttf", ".eot", ".otf", ".mp4", ".webm", ".mp3", ".wav"},
				Filename:   StaticMediaFilename,
			},
		},
		Optimization: domain.Optimization{
			Minimize:    mode.IsProduction(),
			SplitChunks: domain.SplitChunks{Chunks: domain.ChunksAll},
		},
	}

	define := &domain.DefinePlugin{Definitions: definitions(mode, publicPath, settings.ClientEnv)}
	html := &domain.HTMLPlugin{Template: paths.AppHTML, Filename: HTMLFilename}
	manifest := &domain.ManifestPlugin{Filename: ManifestFilename}

	if mode.IsProduction() {
		cfg.Entry = []domain.EntryPoint{{Name: "main", Import: paths.AppIndexJs}}
		cfg.Output.Filename = ProdScriptFilename
		cfg.Output.ChunkFilename = ProdChunkScriptFilename
		cfg.SourceMap = domain.SourceMapNone
		if settings.SourceMaps {
			cfg.SourceMap = domain.SourceMapLinked
		}
		cfg.Plugins = domain.NewPluginRegistry(html, manifest, &domain.StylesheetExtractPlugin{
			Filename:      ProdStylesheetFilename,
			ChunkFilename: ProdChunkStylesheetFilename,
		}, define)
		return cfg, nil
	}

	cfg.Entry = []domain.EntryPoint{
		{Name: "main", Import: DevClientEntry},
		{Name: "main", Import: paths.AppIndexJs},
	}
	cfg.Output.Filename = DevScriptFilename
	cfg.Output.ChunkFilename = DevChunkScriptFilename
	cfg.SourceMap = domain.SourceMapInline
	cfg.Plugins = domain.NewPluginRegistry(&domain.HotReloadPlugin{}, html, manifest, define)
	return cfg, nil
}

func definitions(mode domain.BuildMode, publicPath string, clientEnv map[string]string) map[string]string {
	defs := map[string]string{
		"process.env.NODE_ENV":   strconv.Quote(mode.String()),
		"process.env.PUBLIC_URL": strconv.Quote(strings.TrimSuffix(publicPath, "/")),
	}
	for k, v := range clientEnv {
		defs["process.env."+k] = strconv.Quote(v)
	}
	return defs
}
