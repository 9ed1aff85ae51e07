package driver

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/assetpipe/internal/adapters/console"   //nolint:depguard // Wired in engine wiring
	"go.trai.ch/assetpipe/internal/adapters/esbuild"   //nolint:depguard // Wired in engine wiring
	"go.trai.ch/assetpipe/internal/adapters/fs"        //nolint:depguard // Wired in engine wiring
	"go.trai.ch/assetpipe/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/assetpipe/internal/adapters/watcher"   //nolint:depguard // Wired in engine wiring
	"go.trai.ch/assetpipe/internal/core/ports"
)

// NodeID is the unique identifier for the driver Graft node.
const NodeID graft.ID = "engine.driver"

func init() {
	graft.Register(graft.Node[*Driver]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			esbuild.NodeID,
			fs.StoreNodeID,
			watcher.WatcherNodeID,
			console.NodeID,
			telemetry.TracerNodeID,
		},
		Run: func(ctx context.Context) (*Driver, error) {
			engine, err := graft.Dep[ports.Engine](ctx)
			if err != nil {
				return nil, err
			}

			store, err := graft.Dep[ports.OutputStore](ctx)
			if err != nil {
				return nil, err
			}

			w, err := graft.Dep[ports.Watcher](ctx)
			if err != nil {
				return nil, err
			}

			reporter, err := graft.Dep[ports.Reporter](ctx)
			if err != nil {
				return nil, err
			}

			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}

			return New(engine, store, w, reporter, tracer), nil
		},
	})
}
