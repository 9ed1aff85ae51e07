// Package chunknames keeps the file names of selected chunks free of content hashes.
package chunknames

import "go.trai.ch/assetpipe/internal/core/domain"

// HookName identifies the stabilizer among emission hooks.
const HookName = "chunk-name-stabilizer"

// DefaultChunks are the chunks a server-side template links to by fixed name:
// the main chunk and the vendor chunk split out of it.
var DefaultChunks = []string{"main", "vendors~main"}

var _ domain.EmitHook = (*Stabilizer)(nil)

// Stabilizer is an emission hook that gives the listed chunks hash-free names.
// Only chunks emitted through the chunk template are renamed; entry chunks
// are named by the output filename already.
type Stabilizer struct {
	names map[string]struct{}
}

// New creates a Stabilizer for the given chunk names, or DefaultChunks if none are given.
func New(names ...string) *Stabilizer {
	if len(names) == 0 {
		names = DefaultChunks
	}
	s := &Stabilizer{names: make(map[string]struct{}, len(names))}
	for _, n := range names {
		s.names[n] = struct{}{}
	}
	return s
}

// Name implements domain.EmitHook.
func (s *Stabilizer) Name() string {
	return HookName
}

// BeforeEmit implements domain.EmitHook.
func (s *Stabilizer) BeforeEmit(e *domain.Emission) error {
	for _, c := range e.Chunks {
		if c.Kind == domain.ChunkEntry {
			continue
		}
		if _, ok := s.names[c.Name]; !ok {
			continue
		}
		for _, f := range c.Files {
			switch f.Kind {
			case domain.FileScript:
				f.Template = domain.ChunkScriptFilename
			case domain.FileStylesheet:
				f.Template = domain.ChunkStylesheetFilename
			}
		}
	}
	return nil
}
