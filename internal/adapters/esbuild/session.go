package esbuild

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/evanw/esbuild/pkg/api"
	"go.trai.ch/assetpipe/internal/core/domain"
	"go.trai.ch/assetpipe/internal/core/ports"
	"go.trai.ch/assetpipe/internal/engine/emit"
	"go.trai.ch/zerr"
)

var _ ports.Session = (*Session)(nil)

// Session is an incremental esbuild context bound to one configuration.
type Session struct {
	mu       sync.Mutex
	cfg      *domain.BuildConfiguration
	layout   layout
	source   *entrySource
	build    api.BuildContext
	scan     api.BuildContext
	progress func(domain.ProgressEvent)
}

// Rebuild compiles again and writes the outputs. Builds never overlap.
// Canceling ctx cancels the running build.
func (s *Session) Rebuild(ctx context.Context) (*domain.CompileResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	started := time.Now()
	if s.scan != nil {
		s.source.setVendors(s.scanVendors(ctx))
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}
	stop := context.AfterFunc(ctx, s.build.Cancel)
	result := s.build.Rebuild()
	stop()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	defer s.report(domain.ProgressEvent{Fraction: 1, Message: "done"})

	cr := &domain.CompileResult{
		Errors:   toDiagnostics(result.Errors),
		Warnings: toDiagnostics(result.Warnings),
	}
	if len(cr.Errors) > 0 {
		return cr, nil
	}

	stats, err := s.emit(result, started)
	if err != nil {
		return nil, err
	}
	for _, w := range cr.Warnings {
		stats.Warnings = append(stats.Warnings, w.String())
	}
	cr.Stats = stats
	return cr, nil
}

// Close disposes of the esbuild contexts.
func (s *Session) Close() error {
	s.build.Dispose()
	if s.scan != nil {
		s.scan.Dispose()
	}
	return nil
}

// scanVendors lists the installed modules of each entry. A failed scan
// yields none; the main build reports the errors.
func (s *Session) scanVendors(ctx context.Context) map[string][]string {
	stop := context.AfterFunc(ctx, s.scan.Cancel)
	result := s.scan.Rebuild()
	stop()
	if len(result.Errors) > 0 {
		return nil
	}
	meta, err := parseMetafile(result.Metafile)
	if err != nil {
		return nil
	}
	return vendorImports(meta, s.layout.entries)
}

func (s *Session) emit(result api.BuildResult, started time.Time) (*domain.Stats, error) {
	meta, err := parseMetafile(result.Metafile)
	if err != nil {
		return nil, errors.Join(domain.ErrEngineFailed, err)
	}

	e, deps := newEmission(s.cfg, s.layout, result.OutputFiles, meta)
	for _, h := range s.cfg.Plugins.Hooks() {
		if err := h.BeforeEmit(e); err != nil {
			return nil, zerr.With(zerr.Wrap(errors.Join(domain.ErrEmitFailed, err), "emission hook failed"), "hook", h.Name())
		}
	}
	if err := emit.Resolve(e); err != nil {
		return nil, zerr.Wrap(err, "failed to name outputs")
	}

	if p, ok := domain.PluginAs[*domain.HTMLPlugin](s.cfg.Plugins, domain.RoleHTML); ok {
		doc, err := htmlDocument(p, e)
		if err != nil {
			return nil, err
		}
		e.Add(doc)
	}
	if p, ok := domain.PluginAs[*domain.ManifestPlugin](s.cfg.Plugins, domain.RoleManifest); ok {
		doc, err := manifestDocument(p, e)
		if err != nil {
			return nil, err
		}
		e.Add(doc)
	}

	if err := write(s.layout.outdir, e); err != nil {
		return nil, err
	}
	return newStats(s.cfg, e, deps, meta, started, time.Now()), nil
}

func (s *Session) report(event domain.ProgressEvent) {
	if s.progress != nil {
		s.progress(event)
	}
}

func write(outdir string, e *domain.Emission) error {
	for _, f := range e.Files {
		full := filepath.Join(outdir, filepath.FromSlash(f.Path))
		if err := os.MkdirAll(filepath.Dir(full), domain.DirPerm); err != nil {
			return zerr.With(zerr.Wrap(errors.Join(domain.ErrEmitFailed, err), "failed to create output directory"), "dir", filepath.Dir(full))
		}
		if err := os.WriteFile(full, f.Contents, domain.FilePerm); err != nil {
			return zerr.With(zerr.Wrap(errors.Join(domain.ErrEmitFailed, err), "failed to write output file"), "file", full)
		}
	}
	return nil
}

func toDiagnostics(msgs []api.Message) []domain.Diagnostic {
	if len(msgs) == 0 {
		return nil
	}
	out := make([]domain.Diagnostic, 0, len(msgs))
	for _, m := range msgs {
		d := domain.Diagnostic{Text: m.Text, Plugin: m.PluginName}
		if loc := m.Location; loc != nil {
			d.File = loc.File
			d.Line = loc.Line
			d.Column = loc.Column
			d.LineText = loc.LineText
		}
		for _, n := range m.Notes {
			if n.Text != "" {
				d.Notes = append(d.Notes, n.Text)
			}
		}
		out = append(out, d)
	}
	return out
}
