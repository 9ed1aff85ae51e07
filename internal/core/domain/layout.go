package domain

const (
	// ConfigFileName is the name of the optional project configuration file.
	ConfigFileName = "assetpipe.yaml"

	// BuildDirName is the default build root, relative to the app root.
	BuildDirName = "build"

	// DevOutputDirName is the output subdirectory used by the dev variant.
	DevOutputDirName = "dev"

	// StatsFileName is the name of the serialized compilation stats file.
	StatsFileName = "bundle-stats.json"

	// MainScriptFilename is the fixed output name of the main entry script.
	MainScriptFilename = "js/bundle.js"

	// ChunkScriptFilename is the chunk template in development.
	ChunkScriptFilename = "js/[name].chunk.js"

	// HashedChunkScriptFilename is the chunk template in production.
	HashedChunkScriptFilename = "js/[name].[contenthash:8].chunk.js"

	// StylesheetFilename is the extracted stylesheet template for entry chunks.
	StylesheetFilename = "css/[name].css"

	// ChunkStylesheetFilename is the extracted stylesheet template for stable chunks.
	ChunkStylesheetFilename = "css/[name].chunk.css"

	// HashedChunkStylesheetFilename is the extracted stylesheet template for other chunks.
	HashedChunkStylesheetFilename = "css/[name].[contenthash:8].chunk.css"

	// MediaFilename is the naming template for media files.
	MediaFilename = "media/[name].[hash:8].[ext]"

	// DefaultPublicPath is the public URL prefix used when none is configured.
	DefaultPublicPath = "/"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)
