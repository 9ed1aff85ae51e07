package esbuild

import (
	"testing"

	"github.com/evanw/esbuild/pkg/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/assetpipe/internal/core/domain"
)

func testLayout() layout {
	return layout{
		workDir: "/app",
		outdir:  "/app/build/production",
		entries: map[string]string{"assetpipe-entry:main": "main"},
	}
}

func testMetafile() *metafile {
	return &metafile{
		Inputs: map[string]metaInput{
			"assetpipe-entry:main":          {Bytes: 30},
			"src/index.js":                  {Bytes: 120},
			"src/Page.js":                   {Bytes: 80},
			"src/Other.js":                  {Bytes: 70},
			"node_modules/lodash/lodash.js": {Bytes: 5000},
			"src/logo.png":                  {Bytes: 20000},
		},
		Outputs: map[string]metaOutput{
			"build/production/main.js": {
				EntryPoint: "assetpipe-entry:main",
				CSSBundle:  "build/production/main.css",
				Inputs:     map[string]metaContribution{"assetpipe-entry:main": {}, "src/index.js": {}},
				Imports: []metaImport{
					{Path: "build/production/Page-AAAA.js", Kind: "dynamic-import"},
					{Path: "build/production/Other-BBBB.js", Kind: "dynamic-import"},
					{Path: "build/production/assets/logo-CCCC.png", Kind: "file-loader"},
				},
			},
			"build/production/main.css":    {Inputs: map[string]metaContribution{"src/index.css": {}}},
			"build/production/main.js.map": {},
			"build/production/Page-AAAA.js": {
				EntryPoint: "src/Page.js",
				Inputs:     map[string]metaContribution{"src/Page.js": {}},
				Imports:    []metaImport{{Path: "build/production/chunks/chunk-DDDD.js", Kind: "import-statement"}},
			},
			"build/production/Other-BBBB.js": {
				EntryPoint: "src/Other.js",
				Inputs:     map[string]metaContribution{"src/Other.js": {}},
				Imports:    []metaImport{{Path: "build/production/chunks/chunk-DDDD.js", Kind: "import-statement"}},
			},
			"build/production/chunks/chunk-DDDD.js": {
				Inputs: map[string]metaContribution{"node_modules/lodash/lodash.js": {}},
			},
			"build/production/assets/logo-CCCC.png": {
				Inputs: map[string]metaContribution{"src/logo.png": {}},
			},
		},
	}
}

func testOutputFiles() []api.OutputFile {
	return []api.OutputFile{
		{Path: "/app/build/production/main.js", Contents: []byte(`import("./Page-AAAA.js");import("./Other-BBBB.js");"/assets/logo-CCCC.png";//# sourceMappingURL=main.js.map`)},
		{Path: "/app/build/production/main.js.map", Contents: []byte(`{"version":3}`)},
		{Path: "/app/build/production/main.css", Contents: []byte(`body{}`)},
		{Path: "/app/build/production/Page-AAAA.js", Contents: []byte(`import "./chunks/chunk-DDDD.js";`)},
		{Path: "/app/build/production/Other-BBBB.js", Contents: []byte(`import "./chunks/chunk-DDDD.js";`)},
		{Path: "/app/build/production/chunks/chunk-DDDD.js", Contents: []byte(`export const x = 1;`)},
		{Path: "/app/build/production/assets/logo-CCCC.png", Contents: []byte("png")},
	}
}

func testConfig(stable bool) *domain.BuildConfiguration {
	return &domain.BuildConfiguration{
		Mode: domain.ModeProduction,
		Output: domain.Output{
			PublicPath:    "/",
			Filename:      domain.MainScriptFilename,
			ChunkFilename: domain.HashedChunkScriptFilename,
		},
		Rules: []domain.FileRule{{Name: "file", Extensions: []string{".png"}, Filename: domain.MediaFilename}},
		Plugins: domain.NewPluginRegistry(&domain.StylesheetExtractPlugin{
			Filename:      domain.StylesheetFilename,
			ChunkFilename: domain.HashedChunkStylesheetFilename,
		}),
		Optimization: domain.Optimization{
			SplitChunks: domain.SplitChunks{Chunks: domain.ChunksAll, StableNames: stable},
		},
	}
}

func TestNewEmission_Chunks(t *testing.T) {
	e, deps := newEmission(testConfig(true), testLayout(), testOutputFiles(), testMetafile())

	main := e.Chunk("main")
	require.NotNil(t, main)
	assert.Equal(t, domain.ChunkEntry, main.Kind)
	assert.True(t, main.Initial)
	assert.Equal(t, []string{"src/index.js"}, main.Modules)
	assert.Equal(t, domain.MainScriptFilename, main.File(domain.FileScript).Template)
	assert.Equal(t, domain.StylesheetFilename, main.File(domain.FileStylesheet).Template)

	page := e.Chunk("Page")
	require.NotNil(t, page)
	assert.Equal(t, domain.ChunkAsync, page.Kind)
	assert.Equal(t, domain.HashedChunkScriptFilename, page.File(domain.FileScript).Template)

	shared := e.Chunk("vendors~Other~Page")
	require.NotNil(t, shared)
	assert.Equal(t, domain.ChunkShared, shared.Kind)
	assert.False(t, shared.Initial)
	assert.Empty(t, deps[main])

	var media, sourceMap *domain.EmittedFile
	for _, f := range e.Files {
		switch f.Kind {
		case domain.FileMedia:
			media = f
		case domain.FileSourceMap:
			sourceMap = f
		}
	}
	require.NotNil(t, media)
	assert.Equal(t, "src/logo.png", media.Source)
	assert.Equal(t, domain.MediaFilename, media.Template)
	require.NotNil(t, sourceMap)
	assert.Same(t, main.File(domain.FileScript), sourceMap.Owner)
}

func TestNewEmission_HashNamedSharedChunks(t *testing.T) {
	e, _ := newEmission(testConfig(false), testLayout(), testOutputFiles(), testMetafile())

	for _, c := range e.Chunks {
		if c.Kind == domain.ChunkShared {
			assert.Len(t, c.Name, 8)
		}
	}
}

func TestNewEmission_InitialShared(t *testing.T) {
	meta := testMetafile()
	out := meta.Outputs["build/production/main.js"]
	out.Imports = append(out.Imports, metaImport{Path: "build/production/chunks/chunk-DDDD.js", Kind: "import-statement"})
	meta.Outputs["build/production/main.js"] = out

	e, deps := newEmission(testConfig(true), testLayout(), testOutputFiles(), meta)

	shared := e.Chunk("vendors~Other~Page~main")
	require.NotNil(t, shared)
	assert.True(t, shared.Initial)
	assert.Equal(t, []*domain.Chunk{shared}, deps[e.Chunk("main")])
}

func TestAsyncName(t *testing.T) {
	assert.Equal(t, "Page", asyncName("src/pages/Page.jsx"))
	assert.Equal(t, "main", asyncName("assetpipe-entry:main"))
}

func TestTempPath(t *testing.T) {
	assert.Equal(t, "chunks/chunk-X.js", tempPath("/app", "/app/build/dev", "build/dev/chunks/chunk-X.js"))
	assert.Equal(t, "main.js", tempPath("/app", "/app/build/dev", "/app/build/dev/main.js"))
}

func TestParseMetafile(t *testing.T) {
	m, err := parseMetafile(`{"inputs":{"src/a.js":{"bytes":3}},"outputs":{"out/a.js":{"bytes":9,"entryPoint":"src/a.js","inputs":{"src/a.js":{"bytesInOutput":3}},"imports":[]}}}`)
	require.NoError(t, err)
	assert.Equal(t, 3, m.Inputs["src/a.js"].Bytes)
	assert.Equal(t, "src/a.js", m.Outputs["out/a.js"].EntryPoint)

	_, err = parseMetafile("{")
	require.Error(t, err)
}

func TestNewEmission_VendorEntry(t *testing.T) {
	l := testLayout()
	l.vendors = map[string]string{"assetpipe-entry:vendors~main": "main"}
	meta := &metafile{
		Outputs: map[string]metaOutput{
			"build/production/main.js": {
				EntryPoint: "assetpipe-entry:main",
				Inputs:     map[string]metaContribution{"src/index.js": {}},
				Imports:    []metaImport{{Path: "build/production/chunks/chunk-EEEE.js", Kind: "import-statement"}},
			},
			"build/production/vendors~main.js": {
				EntryPoint: "assetpipe-entry:vendors~main",
				CSSBundle:  "build/production/vendors~main.css",
				Imports:    []metaImport{{Path: "build/production/chunks/chunk-EEEE.js", Kind: "import-statement"}},
			},
			"build/production/vendors~main.css": {},
			"build/production/chunks/chunk-EEEE.js": {
				Inputs: map[string]metaContribution{"node_modules/react/index.js": {}},
			},
		},
	}
	files := []api.OutputFile{
		{Path: "/app/build/production/main.js", Contents: []byte(`import "./chunks/chunk-EEEE.js";`)},
		{Path: "/app/build/production/vendors~main.js", Contents: []byte(`import "./chunks/chunk-EEEE.js";`)},
		{Path: "/app/build/production/vendors~main.js.map", Contents: []byte(`{}`)},
		{Path: "/app/build/production/vendors~main.css", Contents: []byte(`.x{}`)},
		{Path: "/app/build/production/chunks/chunk-EEEE.js", Contents: []byte(`export const react = 1;`)},
	}

	e, deps := newEmission(testConfig(true), l, files, meta)

	vendors := e.Chunk("vendors~main")
	require.NotNil(t, vendors)
	assert.Equal(t, domain.ChunkShared, vendors.Kind)
	assert.True(t, vendors.Initial)
	assert.Equal(t, []*domain.Chunk{vendors}, deps[e.Chunk("main")])
	assert.Len(t, e.Chunks, 2)
	for _, f := range e.Files {
		assert.NotContains(t, f.TempPath, "vendors~main.")
	}
}
