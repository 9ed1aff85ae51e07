// Package esbuild implements ports.Engine with the esbuild Go API.
package esbuild

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
	"go.trai.ch/assetpipe/internal/core/domain"
	"go.trai.ch/assetpipe/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Engine = (*Engine)(nil)

// Temporary output names. Final names are assigned after the build.
const (
	entryNames = "[name]-[hash]"
	chunkNames = "chunks/[name]-[hash]"
	assetNames = "assets/[name]-[hash]"
)

// Engine compiles configurations with esbuild.
type Engine struct {
	logger ports.Logger
}

// New creates an Engine.
func New(logger ports.Logger) *Engine {
	return &Engine{logger: logger}
}

// Run performs a single compilation and writes its outputs.
func (e *Engine) Run(ctx context.Context, cfg *domain.BuildConfiguration) (*domain.CompileResult, error) {
	s, err := e.open(cfg, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = s.Close() }()
	return s.Rebuild(ctx)
}

// Open creates an incremental session for cfg. progress, if not nil,
// receives progress events during each rebuild.
func (e *Engine) Open(cfg *domain.BuildConfiguration, progress func(domain.ProgressEvent)) (ports.Session, error) {
	return e.open(cfg, progress)
}

func (e *Engine) open(cfg *domain.BuildConfiguration, progress func(domain.ProgressEvent)) (*Session, error) {
	if cfg.Plugins.Has(domain.RoleHotReload) {
		e.logger.Warn("Hot module replacement is not supported by this engine, ignoring the hot-reload plugin.")
	}

	p, err := newPlan(cfg, progress)
	if err != nil {
		return nil, err
	}

	build, ctxErr := api.Context(p.opts)
	if ctxErr != nil {
		return nil, zerr.Wrap(errors.Join(domain.ErrEngineFailed, messagesError(ctxErr.Errors)), "invalid bundler options")
	}

	s := &Session{
		cfg:      cfg,
		layout:   p.layout,
		source:   p.source,
		build:    build,
		progress: progress,
	}
	if p.scan != nil {
		scan, ctxErr := api.Context(*p.scan)
		if ctxErr != nil {
			build.Dispose()
			return nil, zerr.Wrap(errors.Join(domain.ErrEngineFailed, messagesError(ctxErr.Errors)), "invalid bundler options")
		}
		s.scan = scan
	}
	return s, nil
}

// plan holds the esbuild options derived from a configuration.
type plan struct {
	opts api.BuildOptions
	// scan lists the modules of each entry without writing anything. It is
	// nil unless installed packages are split into vendor chunks.
	scan   *api.BuildOptions
	layout layout
	source *entrySource
}

func newPlan(cfg *domain.BuildConfiguration, progress func(domain.ProgressEvent)) (*plan, error) {
	workDir := cfg.Context
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, zerr.Wrap(err, "failed to resolve working directory")
		}
		workDir = wd
	}
	workDir, err := filepath.Abs(workDir)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to resolve working directory")
	}

	outdir := cfg.Output.Path
	if !filepath.IsAbs(outdir) {
		outdir = filepath.Join(workDir, outdir)
	}

	if len(cfg.Entry) == 0 {
		return nil, zerr.Wrap(domain.ErrMissingConfigElement, "no entry point configured")
	}
	imports := make(map[string][]string)
	for _, ep := range cfg.Entry {
		imports[ep.Name] = append(imports[ep.Name], ep.Import)
	}

	split := cfg.Optimization.SplitChunks
	vendors := split.Chunks == domain.ChunksAll && split.StableNames

	l := layout{
		workDir: workDir,
		outdir:  outdir,
		entries: make(map[string]string, len(imports)),
		vendors: make(map[string]string),
	}
	var entryPoints, vendorPoints []api.EntryPoint
	for _, name := range sortedKeys(imports) {
		input := entryNamespace + ":" + name
		l.entries[input] = name
		entryPoints = append(entryPoints, api.EntryPoint{InputPath: input, OutputPath: name})
		if vendors {
			vendor := vendorEntryName(name)
			l.vendors[entryNamespace+":"+vendor] = name
			vendorPoints = append(vendorPoints, api.EntryPoint{InputPath: entryNamespace + ":" + vendor, OutputPath: vendor})
		}
	}

	loaders := map[string]api.Loader{".js": api.LoaderJSX}
	for _, r := range cfg.Rules {
		for _, ext := range r.Extensions {
			loaders[ext] = api.LoaderFile
		}
	}

	source := newEntrySource(imports)
	var plugins []api.Plugin
	if progress != nil {
		plugins = append(plugins, progressPlugin(workDir, progress))
	}
	plugins = append(plugins, entryPlugin(workDir, source))
	if p, ok := inlinePlugin(cfg.Rules); ok {
		plugins = append(plugins, p)
	}

	minify := cfg.Optimization.Minimize
	opts := api.BuildOptions{
		AbsWorkingDir:       workDir,
		EntryPointsAdvanced: append(slices.Clone(entryPoints), vendorPoints...),
		Outdir:              outdir,
		PublicPath:          cfg.Output.PublicPath,
		EntryNames:          entryNames,
		ChunkNames:          chunkNames,
		AssetNames:          assetNames,
		Bundle:              true,
		Splitting:           split.Chunks != domain.ChunksNone,
		Format:              api.FormatESModule,
		Platform:            api.PlatformBrowser,
		Target:              api.ES2020,
		Charset:             api.CharsetUTF8,
		JSX:                 api.JSXAutomatic,
		Loader:              loaders,
		Define:              cfg.Definitions(),
		Sourcemap:           sourceMap(cfg.SourceMap),
		MinifyWhitespace:    minify,
		MinifyIdentifiers:   minify,
		MinifySyntax:        minify,
		Metafile:            true,
		Write:               false,
		LogLevel:            api.LogLevelSilent,
		Plugins:             plugins,
	}

	p := &plan{opts: opts, layout: l, source: source}
	if vendors {
		scan := opts
		scan.EntryPointsAdvanced = entryPoints
		scan.Splitting = false
		scan.Sourcemap = api.SourceMapNone
		scan.MinifyWhitespace, scan.MinifyIdentifiers, scan.MinifySyntax = false, false, false
		scan.Plugins = []api.Plugin{entryPlugin(workDir, source)}
		p.scan = &scan
	}
	return p, nil
}

func sourceMap(m domain.SourceMapMode) api.SourceMap {
	switch m {
	case domain.SourceMapInline:
		return api.SourceMapInline
	case domain.SourceMapLinked:
		return api.SourceMapLinked
	default:
		return api.SourceMapNone
	}
}

// messagesError joins the texts of esbuild messages into one error.
func messagesError(msgs []api.Message) error {
	texts := make([]string, 0, len(msgs))
	for _, m := range msgs {
		texts = append(texts, m.Text)
	}
	return errors.New(strings.Join(texts, "\n"))
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
