package esbuild

import (
	"maps"
	"slices"
	"strings"
	"time"

	"go.trai.ch/assetpipe/internal/core/domain"
	"go.trai.ch/assetpipe/internal/engine/emit"
)

// EngineName identifies the bundler in stats.
const EngineName = "esbuild"

// newStats describes a finished emission.
func newStats(cfg *domain.BuildConfiguration, e *domain.Emission, deps entryDeps, meta *metafile, started, finished time.Time) *domain.Stats {
	s := &domain.Stats{
		Engine:      EngineName,
		Mode:        cfg.Mode,
		Time:        finished.Sub(started).Milliseconds(),
		BuiltAt:     finished.UnixMilli(),
		OutputPath:  cfg.Output.Path,
		PublicPath:  cfg.Output.PublicPath,
		Assets:      []domain.AssetStats{},
		Chunks:      []domain.ChunkStats{},
		Modules:     []domain.ModuleStats{},
		Entrypoints: make(map[string]domain.EntrypointStats),
		Errors:      []string{},
		Warnings:    []string{},
	}

	var names []string
	for _, f := range e.Files {
		a := domain.AssetStats{Name: f.Path, Size: len(f.Contents), Chunks: []string{}}
		if f.Chunk != nil {
			a.Chunks = append(a.Chunks, f.Chunk.Name)
		}
		s.Assets = append(s.Assets, a)
		names = append(names, f.Path+"\x00"+emit.Digest(f.Contents))
	}
	slices.SortFunc(s.Assets, func(a, b domain.AssetStats) int { return strings.Compare(a.Name, b.Name) })
	slices.Sort(names)
	s.Hash = emit.Digest([]byte(strings.Join(names, "\n")))

	moduleChunks := make(map[string][]string)
	for _, c := range e.Chunks {
		cs := domain.ChunkStats{
			Name:    c.Name,
			Kind:    c.Kind.String(),
			Initial: c.Initial,
			Entry:   c.Kind == domain.ChunkEntry,
			Files:   []string{},
			Modules: c.Modules,
		}
		for _, f := range c.Files {
			cs.Files = append(cs.Files, f.Path)
			cs.Size += len(f.Contents)
		}
		for _, m := range c.Modules {
			moduleChunks[m] = append(moduleChunks[m], c.Name)
		}
		s.Chunks = append(s.Chunks, cs)

		if c.Kind == domain.ChunkEntry {
			s.Entrypoints[c.Name] = entrypoint(c, deps[c])
		}
	}

	for _, name := range slices.Sorted(maps.Keys(meta.Inputs)) {
		if strings.HasPrefix(name, entryNamespace+":") {
			continue
		}
		chunks := moduleChunks[name]
		if chunks == nil {
			chunks = []string{}
		}
		s.Modules = append(s.Modules, domain.ModuleStats{Name: name, Size: meta.Inputs[name].Bytes, Chunks: chunks})
	}

	return s
}

// entrypoint lists the chunks an entry needs at startup and their files.
// Shared chunks come first, in load order.
func entrypoint(entry *domain.Chunk, shared []*domain.Chunk) domain.EntrypointStats {
	ep := domain.EntrypointStats{Chunks: []string{}, Assets: []string{}}
	for _, c := range append(slices.Clone(shared), entry) {
		ep.Chunks = append(ep.Chunks, c.Name)
		for _, f := range c.Files {
			if f.Kind != domain.FileSourceMap {
				ep.Assets = append(ep.Assets, f.Path)
			}
		}
	}
	return ep
}
