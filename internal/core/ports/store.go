package ports

import (
	"context"

	"go.trai.ch/assetpipe/internal/core/domain"
)

// OutputStore manages the output directory.
//
//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type OutputStore interface {
	// Empty removes the contents of dir, creating it if needed. dir itself is kept.
	Empty(dir string) error
	// WriteStats serializes stats to path.
	WriteStats(ctx context.Context, path string, stats *domain.Stats) error
}
