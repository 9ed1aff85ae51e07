package domain

import (
	"maps"
	"slices"
)

// BuildConfiguration is the complete description of one bundler run.
type BuildConfiguration struct {
	Mode         BuildMode
	Context      string
	Entry        []EntryPoint
	Output       Output
	Rules        []FileRule
	Plugins      *PluginRegistry
	Optimization Optimization
	SourceMap    SourceMapMode
}

// EntryPoint binds a logical chunk name to a module path.
// Several entry points sharing a name are bundled into the same chunk.
type EntryPoint struct {
	Name   string
	Import string
}

// Output controls where and under which names compiled files are written.
type Output struct {
	Path          string
	PublicPath    string
	Filename      string
	ChunkFilename string
}

// Optimization groups minification and code splitting settings.
type Optimization struct {
	Minimize    bool
	SplitChunks SplitChunks
}

// ChunkSelection decides which chunks take part in code splitting.
type ChunkSelection string

const (
	// ChunksNone disables code splitting.
	ChunksNone ChunkSelection = ""
	// ChunksAsync splits only dynamically imported code.
	ChunksAsync ChunkSelection = "async"
	// ChunksAll splits shared code out of both initial and async chunks.
	ChunksAll ChunkSelection = "all"
)

// SplitChunks configures shared chunk extraction.
type SplitChunks struct {
	Chunks ChunkSelection
	// StableNames derives shared chunk names from the chunks that import them,
	// e.g. "vendors~main", instead of from their contents.
	StableNames bool
}

// SourceMapMode selects how source maps are produced.
type SourceMapMode int

const (
	// SourceMapNone disables source maps.
	SourceMapNone SourceMapMode = iota
	// SourceMapInline embeds source maps in the compiled files.
	SourceMapInline
	// SourceMapLinked writes source maps next to the compiled files.
	SourceMapLinked
)

// FileRule routes media files to the file emitter.
type FileRule struct {
	Name       string
	Extensions []string
	// InlineLimit is the size in bytes below which files are inlined as data URLs.
	// Zero disables inlining.
	InlineLimit int64
	Filename    string
}

// Matches reports whether the rule applies to a file extension such as ".png".
func (r FileRule) Matches(ext string) bool {
	return slices.Contains(r.Extensions, ext)
}

// Clone returns a deep copy of c. Plugins are copied by reference inside a new registry.
func (c *BuildConfiguration) Clone() *BuildConfiguration {
	if c == nil {
		return nil
	}

	out := *c
	out.Entry = slices.Clone(c.Entry)
	out.Rules = make([]FileRule, len(c.Rules))
	for i, r := range c.Rules {
		r.Extensions = slices.Clone(r.Extensions)
		out.Rules[i] = r
	}
	out.Plugins = c.Plugins.Clone()

	return &out
}

// RuleFor returns the first rule matching ext.
func (c *BuildConfiguration) RuleFor(ext string) (FileRule, bool) {
	for _, r := range c.Rules {
		if r.Matches(ext) {
			return r, true
		}
	}
	return FileRule{}, false
}

// Definitions returns the compile-time constants of the define plugin, if any.
func (c *BuildConfiguration) Definitions() map[string]string {
	p, ok := PluginAs[*DefinePlugin](c.Plugins, RoleDefine)
	if !ok {
		return nil
	}
	return maps.Clone(p.Definitions)
}
