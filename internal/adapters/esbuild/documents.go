package esbuild

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path"
	"slices"
	"strings"

	"go.trai.ch/assetpipe/internal/core/domain"
	"go.trai.ch/zerr"
)

// publicURL returns the URL of an output path under publicPath.
func publicURL(publicPath, p string) string {
	return strings.TrimSuffix(publicPath, "/") + "/" + p
}

// htmlDocument renders the HTML shell template with tags for the entry chunks.
func htmlDocument(p *domain.HTMLPlugin, e *domain.Emission) (*domain.EmittedFile, error) {
	tmpl, err := os.ReadFile(p.Template)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(errors.Join(domain.ErrEmitFailed, err), "failed to read HTML template"), "template", p.Template)
	}

	var head, body strings.Builder
	for _, c := range entryChunks(e) {
		if f := c.File(domain.FileStylesheet); f != nil {
			fmt.Fprintf(&head, "<link href=\"%s\" rel=\"stylesheet\">", publicURL(e.PublicPath, f.Path))
		}
		if f := c.File(domain.FileScript); f != nil {
			fmt.Fprintf(&body, "<script type=\"module\" src=\"%s\"></script>", publicURL(e.PublicPath, f.Path))
		}
	}

	html := strings.ReplaceAll(string(tmpl), "%PUBLIC_URL%", strings.TrimSuffix(e.PublicPath, "/"))
	html = insertBefore(html, "</head>", head.String())
	html = insertBefore(html, "</body>", body.String())

	return &domain.EmittedFile{
		Kind:     domain.FileDocument,
		TempPath: p.Filename,
		Path:     p.Filename,
		Contents: []byte(html),
	}, nil
}

func insertBefore(doc, marker, tags string) string {
	if tags == "" {
		return doc
	}
	if i := strings.LastIndex(doc, marker); i >= 0 {
		return doc[:i] + tags + doc[i:]
	}
	return doc + tags
}

type assetManifest struct {
	Files       map[string]string `json:"files"`
	Entrypoints []string          `json:"entrypoints"`
}

// manifestDocument maps logical file names to their public URLs.
func manifestDocument(p *domain.ManifestPlugin, e *domain.Emission) (*domain.EmittedFile, error) {
	m := assetManifest{Files: make(map[string]string, len(e.Files)), Entrypoints: []string{}}
	for _, f := range e.Files {
		m.Files[manifestKey(f)] = publicURL(e.PublicPath, f.Path)
	}
	for _, c := range entryChunks(e) {
		for _, kind := range []domain.FileKind{domain.FileStylesheet, domain.FileScript} {
			if f := c.File(kind); f != nil {
				m.Entrypoints = append(m.Entrypoints, f.Path)
			}
		}
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, zerr.Wrap(errors.Join(domain.ErrEmitFailed, err), "failed to encode asset manifest")
	}
	return &domain.EmittedFile{
		Kind:     domain.FileDocument,
		TempPath: p.Filename,
		Path:     p.Filename,
		Contents: append(data, '\n'),
	}, nil
}

func manifestKey(f *domain.EmittedFile) string {
	switch {
	case f.Kind == domain.FileDocument:
		return f.Path
	case f.Kind == domain.FileMedia:
		return path.Join(path.Dir(f.Path), path.Base(f.Source))
	case f.Chunk != nil:
		ext := path.Ext(f.Path)
		if f.Kind == domain.FileSourceMap && f.Owner != nil {
			ext = path.Ext(f.Owner.Path) + ext
		}
		return f.Chunk.Name + ext
	default:
		return f.Path
	}
}

func entryChunks(e *domain.Emission) []*domain.Chunk {
	var entries []*domain.Chunk
	for _, c := range e.Chunks {
		if c.Kind == domain.ChunkEntry {
			entries = append(entries, c)
		}
	}
	slices.SortFunc(entries, func(a, b *domain.Chunk) int { return strings.Compare(a.Name, b.Name) })
	return entries
}
