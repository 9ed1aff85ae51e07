package emit

import (
	"bytes"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/assetpipe/internal/core/domain"
	"go.trai.ch/zerr"
)

// Resolve gives every file of e its final path and rewrites the references
// between files to match.
//
// Files are named in dependency order so that a file's digest is computed over
// contents that already refer to the final names of its dependencies. A file
// whose dependencies are unchanged therefore keeps its name across builds.
// Source maps take the name of their owner with a ".map" suffix and are left
// out of the owner's digest.
func Resolve(e *domain.Emission) error {
	maps := make(map[*domain.EmittedFile]*domain.EmittedFile)
	var files []*domain.EmittedFile
	for _, f := range e.Files {
		if f.Kind == domain.FileSourceMap && f.Owner != nil {
			maps[f.Owner] = f
			continue
		}
		files = append(files, f)
	}

	dirs := make(map[*domain.EmittedFile]string, len(files))
	for _, f := range files {
		dir, err := finalDir(f)
		if err != nil {
			return err
		}
		dirs[f] = dir
	}

	refs := references(files)
	for _, f := range dependencyOrder(files, refs) {
		for _, t := range refs[f] {
			if t.Path != "" {
				rewrite(f, t, dirs[f], e.PublicPath)
			}
		}

		hashed := f.Contents
		m := maps[f]
		if m != nil {
			hashed = bytes.ReplaceAll(f.Contents, []byte(path.Base(m.TempPath)), nil)
		}

		final, err := finalPath(f, Digest(hashed))
		if err != nil {
			return err
		}
		f.Path = final

		if m != nil {
			m.Path = final + ".map"
			f.Contents = bytes.ReplaceAll(f.Contents, []byte(path.Base(m.TempPath)), []byte(path.Base(m.Path)))
		}
	}

	// References inside import cycles could not be rewritten before hashing.
	for _, f := range files {
		for _, t := range refs[f] {
			rewrite(f, t, dirs[f], e.PublicPath)
		}
	}

	return checkConflicts(e.Files)
}

// references maps each text file to the files whose temporary names it contains.
func references(files []*domain.EmittedFile) map[*domain.EmittedFile][]*domain.EmittedFile {
	refs := make(map[*domain.EmittedFile][]*domain.EmittedFile)
	for _, f := range files {
		if f.Kind != domain.FileScript && f.Kind != domain.FileStylesheet {
			continue
		}
		for _, t := range files {
			if t != f && bytes.Contains(f.Contents, []byte(path.Base(t.TempPath))) {
				refs[f] = append(refs[f], t)
			}
		}
	}
	return refs
}

// dependencyOrder sorts files so that every file comes after the files it
// references. Files caught in a cycle are appended in temporary path order.
func dependencyOrder(files []*domain.EmittedFile, refs map[*domain.EmittedFile][]*domain.EmittedFile) []*domain.EmittedFile {
	pending := make(map[*domain.EmittedFile]int, len(files))
	dependents := make(map[*domain.EmittedFile][]*domain.EmittedFile)
	for _, f := range files {
		pending[f] = len(refs[f])
		for _, t := range refs[f] {
			dependents[t] = append(dependents[t], f)
		}
	}

	byTempPath := func(a, b *domain.EmittedFile) int { return strings.Compare(a.TempPath, b.TempPath) }

	var ready []*domain.EmittedFile
	for _, f := range files {
		if pending[f] == 0 {
			ready = append(ready, f)
		}
	}
	slices.SortFunc(ready, byTempPath)

	order := make([]*domain.EmittedFile, 0, len(files))
	seen := make(map[*domain.EmittedFile]bool, len(files))
	for len(ready) > 0 {
		f := ready[0]
		ready = ready[1:]
		order = append(order, f)
		seen[f] = true

		var next []*domain.EmittedFile
		for _, d := range dependents[f] {
			pending[d]--
			if pending[d] == 0 {
				next = append(next, d)
			}
		}
		slices.SortFunc(next, byTempPath)
		ready = append(ready, next...)
	}

	var cyclic []*domain.EmittedFile
	for _, f := range files {
		if !seen[f] {
			cyclic = append(cyclic, f)
		}
	}
	slices.SortFunc(cyclic, byTempPath)

	return append(order, cyclic...)
}

func rewrite(f, t *domain.EmittedFile, dir, publicPath string) {
	from := relative(path.Dir(f.TempPath), t.TempPath)
	to := relative(dir, t.Path)
	f.Contents = bytes.ReplaceAll(f.Contents, []byte(from), []byte(to))

	if publicPath != "" {
		prefix := strings.TrimSuffix(publicPath, "/") + "/"
		f.Contents = bytes.ReplaceAll(f.Contents, []byte(prefix+t.TempPath), []byte(prefix+t.Path))
	}
}

func relative(dir, target string) string {
	rel, err := filepath.Rel(filepath.FromSlash(dir), filepath.FromSlash(target))
	if err != nil {
		return target
	}
	rel = filepath.ToSlash(rel)
	if !strings.HasPrefix(rel, "../") {
		rel = "./" + rel
	}
	return rel
}

func finalPath(f *domain.EmittedFile, digest string) (string, error) {
	if f.Template == "" {
		return f.TempPath, nil
	}
	return Expand(f.Template, logicalName(f), strings.TrimPrefix(path.Ext(f.TempPath), "."), digest)
}

func finalDir(f *domain.EmittedFile) (string, error) {
	p, err := finalPath(f, strings.Repeat("0", 16))
	if err != nil {
		return "", err
	}
	return path.Dir(p), nil
}

func logicalName(f *domain.EmittedFile) string {
	if f.Chunk != nil {
		return f.Chunk.Name
	}
	base := path.Base(filepath.ToSlash(f.Source))
	if base == "." || base == "/" {
		base = path.Base(f.TempPath)
	}
	return strings.TrimSuffix(base, path.Ext(base))
}

func checkConflicts(files []*domain.EmittedFile) error {
	seen := make(map[string]*domain.EmittedFile, len(files))
	for _, f := range files {
		if prev, ok := seen[f.Path]; ok {
			return zerr.With(zerr.With(zerr.Wrap(domain.ErrOutputNameConflict, "conflicting output names"),
				"path", f.Path), "sources", []string{prev.TempPath, f.TempPath})
		}
		seen[f.Path] = f
	}
	return nil
}
