package esbuild

import (
	"maps"
	"path"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
	"go.trai.ch/assetpipe/internal/core/domain"
	"go.trai.ch/assetpipe/internal/engine/emit"
)

// Shared chunk name prefixes, by whether the chunk holds installed packages.
const (
	vendorsPrefix = "vendors~"
	defaultPrefix = "default~"
)

// layout describes where a build runs and which entries it was given.
type layout struct {
	workDir string
	outdir  string
	// entries maps the metafile entry point of each configured entry to its name.
	entries map[string]string
	// vendors maps the metafile entry point of each vendor entry to the name
	// of the entry it serves. Their own outputs are not emitted.
	vendors map[string]string
}

// entryDeps lists, for each entry chunk, the shared chunks it loads statically.
type entryDeps map[*domain.Chunk][]*domain.Chunk

// newEmission groups the output files of a build into chunks and assigns
// each file its naming template.
func newEmission(cfg *domain.BuildConfiguration, l layout, files []api.OutputFile, meta *metafile) (*domain.Emission, entryDeps) {
	outputs := meta.outputs(l.workDir, l.outdir)
	e := &domain.Emission{PublicPath: cfg.Output.PublicPath}

	skip := vendorOutputs(l, outputs)
	byTemp := make(map[string]*domain.EmittedFile, len(files))
	var scripts, others []*domain.EmittedFile
	for _, of := range files {
		f := &domain.EmittedFile{
			TempPath: tempPath(l.workDir, l.outdir, of.Path),
			Contents: of.Contents,
		}
		if skip[f.TempPath] {
			continue
		}
		byTemp[f.TempPath] = f
		switch path.Ext(f.TempPath) {
		case ".js":
			f.Kind = domain.FileScript
			scripts = append(scripts, f)
		default:
			others = append(others, f)
		}
	}
	slices.SortFunc(scripts, byTempPath)
	slices.SortFunc(others, byTempPath)

	// Entry and async chunks first, so shared chunks can be named after them.
	var shared []*domain.EmittedFile
	for _, f := range scripts {
		o := outputs[f.TempPath]
		if o.EntryPoint == "" {
			shared = append(shared, f)
			continue
		}
		c := &domain.Chunk{Name: asyncName(o.EntryPoint), Kind: domain.ChunkAsync, Modules: modules(o)}
		if name, ok := l.entries[o.EntryPoint]; ok {
			c.Name, c.Kind, c.Initial = name, domain.ChunkEntry, true
		}
		e.Chunks = append(e.Chunks, c)
		f.Chunk = c
		e.Add(f)
	}

	importers := sharedImporters(e, outputs)
	initial := initialShared(e, outputs)
	for _, f := range shared {
		o := outputs[f.TempPath]
		c := &domain.Chunk{
			Name:    sharedName(cfg.Optimization.SplitChunks.StableNames, f, o, importers[f.TempPath]),
			Kind:    domain.ChunkShared,
			Modules: modules(o),
		}
		e.Chunks = append(e.Chunks, c)
		f.Chunk = c
		e.Add(f)
	}
	dedupeChunkNames(e.Chunks)

	deps := make(entryDeps)
	for entry, temps := range initial {
		for _, t := range temps {
			c := byTemp[t].Chunk
			c.Initial = true
			deps[entry] = append(deps[entry], c)
		}
	}

	stylesheets := make(map[string]*domain.Chunk)
	for _, f := range scripts {
		if css := outputs[f.TempPath].CSSBundle; css != "" {
			stylesheets[css] = f.Chunk
		}
	}

	var sourceMaps []*domain.EmittedFile
	for _, f := range others {
		switch path.Ext(f.TempPath) {
		case ".map":
			f.Kind = domain.FileSourceMap
			sourceMaps = append(sourceMaps, f)
			continue
		case ".css":
			f.Kind = domain.FileStylesheet
			f.Chunk = stylesheets[f.TempPath]
			if f.Chunk == nil {
				f.Source = f.TempPath
			}
		default:
			f.Kind = domain.FileMedia
			f.Source = mediaSource(outputs[f.TempPath])
		}
		e.Add(f)
	}

	for _, f := range sourceMaps {
		f.Owner = byTemp[strings.TrimSuffix(f.TempPath, ".map")]
		if f.Owner != nil {
			f.Chunk = f.Owner.Chunk
		}
		e.Add(f)
	}

	for _, f := range e.Files {
		f.Template = template(cfg, f)
	}
	return e, deps
}

// vendorOutputs returns the outputs of vendor entries with their stylesheets
// and source maps. The code they import lives in shared chunks.
func vendorOutputs(l layout, outputs map[string]metaOutput) map[string]bool {
	skip := make(map[string]bool)
	for temp, o := range outputs {
		if _, ok := l.vendors[o.EntryPoint]; !ok {
			continue
		}
		skip[temp], skip[temp+".map"] = true, true
		if o.CSSBundle != "" {
			skip[o.CSSBundle], skip[o.CSSBundle+".map"] = true, true
		}
	}
	return skip
}

// template returns the naming template of f from the configuration.
func template(cfg *domain.BuildConfiguration, f *domain.EmittedFile) string {
	entry := f.Chunk != nil && f.Chunk.Kind == domain.ChunkEntry
	switch f.Kind {
	case domain.FileScript:
		if entry {
			return cfg.Output.Filename
		}
		return cfg.Output.ChunkFilename
	case domain.FileStylesheet:
		css, ok := domain.PluginAs[*domain.StylesheetExtractPlugin](cfg.Plugins, domain.RoleStylesheetExtract)
		switch {
		case ok && entry:
			return css.Filename
		case ok:
			return css.ChunkFilename
		case entry:
			return domain.StylesheetFilename
		default:
			return domain.ChunkStylesheetFilename
		}
	case domain.FileMedia:
		if r, ok := cfg.RuleFor(path.Ext(f.Source)); ok && r.Filename != "" {
			return r.Filename
		}
		return domain.MediaFilename
	default:
		return ""
	}
}

// sharedImporters maps each shared chunk to the sorted names of the entry and
// async chunks that load it, directly or through other shared chunks.
func sharedImporters(e *domain.Emission, outputs map[string]metaOutput) map[string][]string {
	importers := make(map[string][]string)
	for _, c := range e.Chunks {
		f := c.File(domain.FileScript)
		for dep := range reachable(f.TempPath, outputs, false) {
			importers[dep] = append(importers[dep], c.Name)
		}
	}
	for k := range importers {
		slices.Sort(importers[k])
		importers[k] = slices.Compact(importers[k])
	}
	return importers
}

// initialShared returns, per entry chunk, the sorted shared outputs loaded by
// its static imports.
func initialShared(e *domain.Emission, outputs map[string]metaOutput) map[*domain.Chunk][]string {
	initial := make(map[*domain.Chunk][]string)
	for _, c := range e.Chunks {
		if c.Kind != domain.ChunkEntry {
			continue
		}
		deps := slices.Sorted(maps.Keys(reachable(c.File(domain.FileScript).TempPath, outputs, true)))
		if len(deps) > 0 {
			initial[c] = deps
		}
	}
	return initial
}

// reachable returns the shared script outputs imported from start. With
// staticOnly, dynamic imports are not followed.
func reachable(start string, outputs map[string]metaOutput, staticOnly bool) map[string]bool {
	seen := make(map[string]bool)
	queue := []string{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, imp := range outputs[cur].Imports {
			if imp.External || (staticOnly && imp.Kind != "import-statement") {
				continue
			}
			dep := imp.Path
			o, ok := outputs[dep]
			if !ok || o.EntryPoint != "" || seen[dep] {
				continue
			}
			seen[dep] = true
			queue = append(queue, dep)
		}
	}
	return seen
}

func sharedName(stable bool, f *domain.EmittedFile, o metaOutput, importers []string) string {
	if !stable || len(importers) == 0 {
		return emit.Digest(f.Contents)[:8]
	}
	prefix := defaultPrefix
	for in := range o.Inputs {
		if strings.Contains(in, "node_modules/") {
			prefix = vendorsPrefix
			break
		}
	}
	return prefix + strings.Join(importers, "~")
}

// dedupeChunkNames suffixes repeated chunk names with a counter.
func dedupeChunkNames(chunks []*domain.Chunk) {
	seen := make(map[string]int, len(chunks))
	for _, c := range chunks {
		n := seen[c.Name]
		seen[c.Name] = n + 1
		if n > 0 {
			c.Name = c.Name + "~" + strconv.Itoa(n)
		}
	}
}

func asyncName(entryPoint string) string {
	base := path.Base(filepath.ToSlash(entryPoint))
	if i := strings.LastIndex(base, ":"); i >= 0 {
		base = base[i+1:]
	}
	return strings.TrimSuffix(base, path.Ext(base))
}

func modules(o metaOutput) []string {
	var mods []string
	for in := range o.Inputs {
		if strings.HasPrefix(in, entryNamespace+":") {
			continue
		}
		mods = append(mods, in)
	}
	slices.Sort(mods)
	return mods
}

func mediaSource(o metaOutput) string {
	for in := range o.Inputs {
		return in
	}
	return ""
}

func byTempPath(a, b *domain.EmittedFile) int {
	return strings.Compare(a.TempPath, b.TempPath)
}
