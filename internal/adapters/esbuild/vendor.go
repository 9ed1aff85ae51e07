package esbuild

import (
	"fmt"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"sync"
)

// vendorEntryName is the synthetic entry that pulls the installed packages
// of entry name into a chunk of their own.
func vendorEntryName(name string) string {
	return vendorsPrefix + name
}

func isInstalled(p string) bool {
	return strings.HasPrefix(p, "node_modules/") || strings.Contains(p, "/node_modules/")
}

// vendorImports returns, per entry name, the installed modules imported by
// application code that the entry loads statically. entries maps metafile
// entry points to entry names.
func vendorImports(meta *metafile, entries map[string]string) map[string][]string {
	out := make(map[string][]string, len(entries))
	for input, name := range entries {
		seen := map[string]bool{input: true}
		found := make(map[string]bool)
		queue := []string{input}
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			for _, imp := range meta.Inputs[cur].Imports {
				if imp.External || (imp.Kind != "import-statement" && imp.Kind != "require-call") {
					continue
				}
				if isInstalled(imp.Path) {
					found[imp.Path] = true
					continue
				}
				if !seen[imp.Path] {
					seen[imp.Path] = true
					queue = append(queue, imp.Path)
				}
			}
		}
		for p := range found {
			out[name] = append(out[name], p)
		}
		slices.Sort(out[name])
	}
	return out
}

// entrySource generates the contents of the virtual entry modules.
type entrySource struct {
	imports map[string][]string

	mu sync.Mutex
	// vendors is keyed by vendor entry name and holds paths relative to the
	// working directory.
	vendors map[string][]string
}

func newEntrySource(imports map[string][]string) *entrySource {
	return &entrySource{imports: imports}
}

func (s *entrySource) setVendors(byEntry map[string][]string) {
	vendors := make(map[string][]string, len(byEntry))
	for name, paths := range byEntry {
		vendors[vendorEntryName(name)] = paths
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vendors = vendors
}

func (s *entrySource) module(name string) string {
	var b strings.Builder
	if imports, ok := s.imports[name]; ok {
		for _, imp := range imports {
			fmt.Fprintf(&b, "import %s;\n", strconv.Quote(filepath.ToSlash(imp)))
		}
		return b.String()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// Namespace re-exports keep whole modules in the vendor chunk, including
	// packages marked free of side effects.
	for i, p := range s.vendors[name] {
		fmt.Fprintf(&b, "export * as v%d from %s;\n", i, strconv.Quote("./"+p))
	}
	return b.String()
}
