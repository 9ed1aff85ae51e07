package config

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/assetpipe/internal/core/ports"
)

const (
	// LoaderNodeID is the unique identifier for the config loader Graft node.
	LoaderNodeID graft.ID = "adapter.config.loader"
	// ProviderNodeID is the unique identifier for the baseline provider Graft node.
	ProviderNodeID graft.ID = "adapter.config.provider"
)

func init() {
	graft.Register(graft.Node[ports.ConfigLoader]{
		ID:        LoaderNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ConfigLoader, error) {
			return NewLoader(), nil
		},
	})

	graft.Register(graft.Node[ports.BaseConfigProvider]{
		ID:        ProviderNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.BaseConfigProvider, error) {
			return NewProvider(), nil
		},
	})
}
