package domain

// Stats is the serializable description of a compilation, written to
// StatsFileName on request and rendered in watch reports.
type Stats struct {
	Hash        string                     `json:"hash"`
	Engine      string                     `json:"engine"`
	Mode        BuildMode                  `json:"mode"`
	Time        int64                      `json:"time"`
	BuiltAt     int64                      `json:"builtAt"`
	OutputPath  string                     `json:"outputPath"`
	PublicPath  string                     `json:"publicPath"`
	Assets      []AssetStats               `json:"assets"`
	Chunks      []ChunkStats               `json:"chunks"`
	Modules     []ModuleStats              `json:"modules"`
	Entrypoints map[string]EntrypointStats `json:"entrypoints"`
	Errors      []string                   `json:"errors"`
	Warnings    []string                   `json:"warnings"`
}

// AssetStats describes one written file.
type AssetStats struct {
	Name   string   `json:"name"`
	Size   int      `json:"size"`
	Chunks []string `json:"chunks"`
}

// ChunkStats describes one chunk.
type ChunkStats struct {
	Name    string   `json:"name"`
	Kind    string   `json:"kind"`
	Initial bool     `json:"initial"`
	Entry   bool     `json:"entry"`
	Files   []string `json:"files"`
	Size    int      `json:"size"`
	Modules []string `json:"modules"`
}

// ModuleStats describes one input module.
type ModuleStats struct {
	Name   string   `json:"name"`
	Size   int      `json:"size"`
	Chunks []string `json:"chunks"`
}

// EntrypointStats lists the files needed to boot an entry.
type EntrypointStats struct {
	Chunks []string `json:"chunks"`
	Assets []string `json:"assets"`
}
