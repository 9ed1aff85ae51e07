// Package transform turns the baseline bundler configuration into the
// backend-integration configuration.
package transform

import (
	"path/filepath"

	"go.trai.ch/assetpipe/internal/core/domain"
	"go.trai.ch/assetpipe/internal/engine/chunknames"
	"go.trai.ch/zerr"
)

// Transform returns a copy of base adjusted for mode and overrides. base is not modified.
//
// The steps run in a fixed order: output path, public path, main script name,
// chunk names, entry, code splitting, media names, stylesheet names
// (production only), plugin removal, chunk name stabilizer.
func Transform(base *domain.BuildConfiguration, mode domain.BuildMode, o domain.Overrides) (*domain.BuildConfiguration, error) {
	if base == nil {
		return nil, zerr.Wrap(domain.ErrMissingConfigElement, "no baseline configuration")
	}

	cfg := base.Clone()
	cfg.Mode = mode

	cfg.Output.Path = outputPath(mode, o)

	cfg.Output.PublicPath = o.PublicPath
	if cfg.Output.PublicPath == "" {
		cfg.Output.PublicPath = domain.DefaultPublicPath
	}

	cfg.Output.Filename = domain.MainScriptFilename

	cfg.Output.ChunkFilename = domain.ChunkScriptFilename
	if mode.IsProduction() {
		cfg.Output.ChunkFilename = domain.HashedChunkScriptFilename
	}

	if o.Entry == "" {
		return nil, zerr.Wrap(domain.ErrMissingConfigElement, "no application entry")
	}
	cfg.Entry = []domain.EntryPoint{{Name: "main", Import: o.Entry}}

	cfg.Optimization.SplitChunks = domain.SplitChunks{Chunks: domain.ChunksAll, StableNames: true}

	if len(cfg.Rules) == 0 {
		return nil, zerr.Wrap(domain.ErrMissingConfigElement, "no media rules in baseline configuration")
	}
	for i := range cfg.Rules {
		cfg.Rules[i].Filename = domain.MediaFilename
	}

	if mode.IsProduction() {
		if !cfg.Plugins.Has(domain.RoleStylesheetExtract) {
			return nil, zerr.Wrap(domain.ErrMissingConfigElement, "no stylesheet extract plugin in production baseline")
		}
		cfg.Plugins.Set(&domain.StylesheetExtractPlugin{
			Filename:      domain.StylesheetFilename,
			ChunkFilename: domain.HashedChunkStylesheetFilename,
		})
	}

	cfg.Plugins.Remove(domain.RoleHotReload)
	cfg.Plugins.Remove(domain.RoleHTML)
	cfg.Plugins.Remove(domain.RoleManifest)

	cfg.Plugins.Attach(chunknames.New())

	return cfg, nil
}

func outputPath(mode domain.BuildMode, o domain.Overrides) string {
	if o.OutputPath != "" {
		return o.OutputPath
	}
	root := o.BuildRoot
	if root == "" {
		root = domain.BuildDirName
	}
	subdir := o.OutputSubdir
	if subdir == "" {
		subdir = mode.String()
	}
	return filepath.Join(root, subdir)
}
