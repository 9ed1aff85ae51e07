package ports

import "go.trai.ch/assetpipe/internal/core/domain"

// ConfigLoader locates the files of an application.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load resolves the application paths relative to cwd, applying the
	// optional project config file.
	Load(cwd string) (*domain.Paths, error)
}

// BaseConfigProvider produces the baseline bundler configuration for a mode.
type BaseConfigProvider interface {
	Base(mode domain.BuildMode, paths *domain.Paths, settings domain.Settings) (*domain.BuildConfiguration, error)
}

// SettingsLoader reads the process environment into domain.Settings.
type SettingsLoader interface {
	// Load applies the .env files of root for mode, then reads the settings.
	Load(root string, mode domain.BuildMode) (domain.Settings, error)
}
