package esbuild

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/assetpipe/internal/adapters/logger"
	"go.trai.ch/assetpipe/internal/core/ports"
)

// NodeID is the unique identifier for the esbuild engine Graft node.
const NodeID graft.ID = "adapter.esbuild"

func init() {
	graft.Register(graft.Node[ports.Engine]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.Engine, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return New(log), nil
		},
	})
}
