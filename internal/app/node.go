package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/assetpipe/internal/adapters/config"   //nolint:depguard // Wired in app layer
	"go.trai.ch/assetpipe/internal/adapters/console"  //nolint:depguard // Wired in app layer
	"go.trai.ch/assetpipe/internal/adapters/env"      //nolint:depguard // Wired in app layer
	"go.trai.ch/assetpipe/internal/adapters/fs"       //nolint:depguard // Wired in app layer
	"go.trai.ch/assetpipe/internal/adapters/logger"   //nolint:depguard // Wired in app layer
	"go.trai.ch/assetpipe/internal/adapters/progress" //nolint:depguard // Wired in app layer
	"go.trai.ch/assetpipe/internal/core/ports"
	"go.trai.ch/assetpipe/internal/engine/driver"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.LoaderNodeID,
			config.ProviderNodeID,
			env.NodeID,
			fs.VerifierNodeID,
			driver.NodeID,
			console.NodeID,
			progress.NodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	provider, err := graft.Dep[ports.BaseConfigProvider](ctx)
	if err != nil {
		return nil, err
	}

	settings, err := graft.Dep[ports.SettingsLoader](ctx)
	if err != nil {
		return nil, err
	}

	verifier, err := graft.Dep[ports.Verifier](ctx)
	if err != nil {
		return nil, err
	}

	drv, err := graft.Dep[*driver.Driver](ctx)
	if err != nil {
		return nil, err
	}

	reporter, err := graft.Dep[ports.Reporter](ctx)
	if err != nil {
		return nil, err
	}

	prog, err := graft.Dep[ports.ProgressReporter](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, provider, settings, verifier, drv, reporter, prog, log), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	app, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return NewComponents(app, log), nil
}
