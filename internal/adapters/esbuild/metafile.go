package esbuild

import (
	"encoding/json"
	"path/filepath"

	"go.trai.ch/zerr"
)

// metafile is the build description esbuild produces when Metafile is set.
// Paths are relative to the working directory.
type metafile struct {
	Inputs  map[string]metaInput  `json:"inputs"`
	Outputs map[string]metaOutput `json:"outputs"`
}

type metaInput struct {
	Bytes   int          `json:"bytes"`
	Imports []metaImport `json:"imports"`
}

type metaImport struct {
	Path     string `json:"path"`
	Kind     string `json:"kind"`
	External bool   `json:"external,omitempty"`
}

type metaOutput struct {
	Bytes      int                         `json:"bytes"`
	Inputs     map[string]metaContribution `json:"inputs"`
	Imports    []metaImport                `json:"imports"`
	EntryPoint string                      `json:"entryPoint,omitempty"`
	CSSBundle  string                      `json:"cssBundle,omitempty"`
}

type metaContribution struct {
	BytesInOutput int `json:"bytesInOutput"`
}

func parseMetafile(data string) (*metafile, error) {
	var m metafile
	if err := json.Unmarshal([]byte(data), &m); err != nil {
		return nil, zerr.Wrap(err, "failed to decode esbuild metafile")
	}
	return &m, nil
}

// outputs returns the outputs keyed by their path relative to outdir.
// Imports of other outputs and CSS bundles are converted the same way.
func (m *metafile) outputs(workDir, outdir string) map[string]metaOutput {
	out := make(map[string]metaOutput, len(m.Outputs))
	for key, o := range m.Outputs {
		imports := make([]metaImport, len(o.Imports))
		for i, imp := range o.Imports {
			if !imp.External {
				imp.Path = tempPath(workDir, outdir, imp.Path)
			}
			imports[i] = imp
		}
		o.Imports = imports
		if o.CSSBundle != "" {
			o.CSSBundle = tempPath(workDir, outdir, o.CSSBundle)
		}
		out[tempPath(workDir, outdir, key)] = o
	}
	return out
}

// tempPath converts a metafile path into a slash-separated path relative to outdir.
func tempPath(workDir, outdir, key string) string {
	abs := filepath.FromSlash(key)
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(workDir, abs)
	}
	rel, err := filepath.Rel(outdir, abs)
	if err != nil {
		return filepath.ToSlash(key)
	}
	return filepath.ToSlash(rel)
}
