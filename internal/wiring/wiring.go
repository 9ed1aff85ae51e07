// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/assetpipe/internal/adapters/config"
	_ "go.trai.ch/assetpipe/internal/adapters/console"
	_ "go.trai.ch/assetpipe/internal/adapters/env"
	_ "go.trai.ch/assetpipe/internal/adapters/esbuild"
	_ "go.trai.ch/assetpipe/internal/adapters/fs"
	_ "go.trai.ch/assetpipe/internal/adapters/logger"
	_ "go.trai.ch/assetpipe/internal/adapters/progress"
	_ "go.trai.ch/assetpipe/internal/adapters/telemetry"
	_ "go.trai.ch/assetpipe/internal/adapters/watcher"
	// Register app and engine nodes.
	_ "go.trai.ch/assetpipe/internal/app"
	_ "go.trai.ch/assetpipe/internal/engine/driver"
)
