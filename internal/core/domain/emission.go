package domain

// ChunkKind tells how a chunk is loaded.
type ChunkKind int

const (
	// ChunkEntry is loaded by the HTML shell.
	ChunkEntry ChunkKind = iota
	// ChunkAsync is loaded through a dynamic import.
	ChunkAsync
	// ChunkShared holds code extracted from several other chunks.
	ChunkShared
)

func (k ChunkKind) String() string {
	switch k {
	case ChunkEntry:
		return "entry"
	case ChunkAsync:
		return "async"
	case ChunkShared:
		return "shared"
	default:
		return "unknown"
	}
}

// FileKind classifies an emitted file.
type FileKind int

const (
	// FileScript is compiled JavaScript.
	FileScript FileKind = iota
	// FileStylesheet is extracted CSS.
	FileStylesheet
	// FileMedia is an image, font or other file copied by a file rule.
	FileMedia
	// FileSourceMap is the source map of another emitted file.
	FileSourceMap
	// FileDocument is a generated HTML or JSON document.
	FileDocument
)

// Chunk is a logical output unit with a stable identity.
type Chunk struct {
	Name    string
	Kind    ChunkKind
	Initial bool
	Files   []*EmittedFile
	Modules []string
}

// File returns the chunk's file of the given kind, or nil.
func (c *Chunk) File(kind FileKind) *EmittedFile {
	for _, f := range c.Files {
		if f.Kind == kind {
			return f
		}
	}
	return nil
}

// EmittedFile is one output file on its way to disk.
//
// TempPath is the engine-assigned path relative to the output directory.
// Template is the naming template applied by the resolver, and Path the
// resolved final path, also relative to the output directory.
type EmittedFile struct {
	Kind     FileKind
	Chunk    *Chunk
	Owner    *EmittedFile
	Source   string
	TempPath string
	Template string
	Path     string
	Contents []byte
}

// Emission is the set of files produced by one compilation.
type Emission struct {
	PublicPath string
	Chunks     []*Chunk
	Files      []*EmittedFile
}

// Chunk returns the chunk called name, or nil.
func (e *Emission) Chunk(name string) *Chunk {
	for _, c := range e.Chunks {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Add appends f to the emission and to its chunk, if any.
func (e *Emission) Add(f *EmittedFile) {
	e.Files = append(e.Files, f)
	if f.Chunk != nil {
		f.Chunk.Files = append(f.Chunk.Files, f)
	}
}
