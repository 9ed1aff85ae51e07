package esbuild

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync/atomic"

	"github.com/evanw/esbuild/pkg/api"
	"go.trai.ch/assetpipe/internal/core/domain"
)

// entryNamespace holds the virtual modules that group the imports of one entry point.
const entryNamespace = "assetpipe-entry"

// entryPlugin serves one virtual module per entry name.
func entryPlugin(workDir string, source *entrySource) api.Plugin {
	return api.Plugin{
		Name: "assetpipe-entry",
		Setup: func(build api.PluginBuild) {
			build.OnResolve(api.OnResolveOptions{Filter: "^" + entryNamespace + ":"},
				func(args api.OnResolveArgs) (api.OnResolveResult, error) {
					return api.OnResolveResult{
						Path:      strings.TrimPrefix(args.Path, entryNamespace+":"),
						Namespace: entryNamespace,
					}, nil
				})
			build.OnLoad(api.OnLoadOptions{Filter: ".*", Namespace: entryNamespace},
				func(args api.OnLoadArgs) (api.OnLoadResult, error) {
					contents := source.module(args.Path)
					return api.OnLoadResult{
						Contents:   &contents,
						ResolveDir: workDir,
						Loader:     api.LoaderJS,
					}, nil
				})
		},
	}
}

// inlinePlugin loads files matched by rules with an inline limit as data
// URLs when they are small enough. Larger files fall through to the file loader.
func inlinePlugin(rules []domain.FileRule) (api.Plugin, bool) {
	var exts []string
	for _, r := range rules {
		if r.InlineLimit <= 0 {
			continue
		}
		for _, ext := range r.Extensions {
			exts = append(exts, regexp.QuoteMeta(strings.TrimPrefix(ext, ".")))
		}
	}
	if len(exts) == 0 {
		return api.Plugin{}, false
	}

	filter := `\.(` + strings.Join(exts, "|") + `)$`
	return api.Plugin{
		Name: "assetpipe-inline",
		Setup: func(build api.PluginBuild) {
			build.OnLoad(api.OnLoadOptions{Filter: filter, Namespace: "file"},
				func(args api.OnLoadArgs) (api.OnLoadResult, error) {
					limit := inlineLimit(rules, filepath.Ext(args.Path))
					info, err := os.Stat(args.Path)
					if err != nil || limit <= 0 || info.Size() > limit {
						return api.OnLoadResult{}, nil
					}
					data, err := os.ReadFile(args.Path)
					if err != nil {
						return api.OnLoadResult{}, err
					}
					contents := string(data)
					return api.OnLoadResult{Contents: &contents, Loader: api.LoaderDataURL}, nil
				})
		},
	}, true
}

func inlineLimit(rules []domain.FileRule, ext string) int64 {
	for _, r := range rules {
		if r.Matches(ext) {
			return r.InlineLimit
		}
	}
	return 0
}

// progressPlugin reports module loading as progress events. The fraction
// stays below 1 until the session has written the outputs.
func progressPlugin(workDir string, report func(domain.ProgressEvent)) api.Plugin {
	var resolved, loaded atomic.Int64

	return api.Plugin{
		Name: "assetpipe-progress",
		Setup: func(build api.PluginBuild) {
			build.OnStart(func() (api.OnStartResult, error) {
				resolved.Store(0)
				loaded.Store(0)
				report(domain.ProgressEvent{Fraction: 0.1, Message: "building"})
				return api.OnStartResult{}, nil
			})
			build.OnResolve(api.OnResolveOptions{Filter: ".*"},
				func(api.OnResolveArgs) (api.OnResolveResult, error) {
					resolved.Add(1)
					return api.OnResolveResult{}, nil
				})
			build.OnLoad(api.OnLoadOptions{Filter: ".*"},
				func(args api.OnLoadArgs) (api.OnLoadResult, error) {
					done := loaded.Add(1)
					total := max(resolved.Load(), done)
					report(domain.ProgressEvent{
						Fraction: 0.1 + 0.8*float64(done)/float64(total),
						Message:  "building",
						Activity: "loading",
						Active:   fmt.Sprintf("%d/%d modules", done, total),
						Module:   displayPath(workDir, args.Path),
					})
					return api.OnLoadResult{}, nil
				})
			build.OnEnd(func(*api.BuildResult) (api.OnEndResult, error) {
				report(domain.ProgressEvent{Fraction: 0.95, Message: "emitting"})
				return api.OnEndResult{}, nil
			})
		},
	}
}

func displayPath(workDir, p string) string {
	if rel, err := filepath.Rel(workDir, p); err == nil && !strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(rel)
	}
	return p
}
