package domain

// Settings is the process environment relevant to a build, read once at startup.
type Settings struct {
	// OutputPath overrides the output directory (CRA_BUILD_OUTPUT_PATH).
	OutputPath string
	// PublicPath overrides the public URL prefix (CRA_BUILD_PUBLIC_PATH).
	PublicPath string
	// SkipPreflight disables the installed package check (SKIP_PREFLIGHT_CHECK).
	SkipPreflight bool
	// SourceMaps is false when GENERATE_SOURCEMAP=false.
	SourceMaps bool
	// ClientEnv holds the REACT_APP_* variables exposed to the bundle.
	ClientEnv map[string]string
}

// Overrides are the inputs of the configuration transformer besides the baseline.
type Overrides struct {
	OutputPath   string
	PublicPath   string
	BuildRoot    string
	OutputSubdir string
	Entry        string
}

// Paths locates the files of an application.
type Paths struct {
	AppPath        string
	AppSrc         string
	AppIndexJs     string
	AppHTML        string
	AppPublic      string
	AppBuild       string
	AppPackageJSON string
	AppNodeModules string
	Browserslistrc string
}
