package config

// ProjectFile is the optional assetpipe.yaml of an application.
// Every path is relative to the application root.
type ProjectFile struct {
	Src    string `yaml:"src"`
	Entry  string `yaml:"entry"`
	Public string `yaml:"public"`
	HTML   string `yaml:"html"`
	Build  string `yaml:"build"`
}

// Default locations of a project without assetpipe.yaml.
const (
	DefaultSrc    = "src"
	DefaultEntry  = "index.js"
	DefaultPublic = "public"
	DefaultHTML   = "index.html"
)
