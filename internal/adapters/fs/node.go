package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/assetpipe/internal/core/ports"
)

const (
	// StoreNodeID is the unique identifier for the output store Graft node.
	StoreNodeID graft.ID = "adapter.fs.store"
	// VerifierNodeID is the unique identifier for the preflight verifier Graft node.
	VerifierNodeID graft.ID = "adapter.fs.verifier"
)

func init() {
	graft.Register(graft.Node[ports.OutputStore]{
		ID:        StoreNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.OutputStore, error) {
			return NewStore(), nil
		},
	})

	graft.Register(graft.Node[ports.Verifier]{
		ID:        VerifierNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Verifier, error) {
			return NewVerifier(), nil
		},
	})
}
