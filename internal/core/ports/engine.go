package ports

import (
	"context"

	"go.trai.ch/assetpipe/internal/core/domain"
)

// Engine compiles a configuration into files on disk.
//
// Both methods return an error only for hard failures. Compilation errors in
// the user's code are reported through domain.CompileResult.
//
//go:generate mockgen -source=engine.go -destination=mocks/mock_engine.go -package=mocks
type Engine interface {
	// Run performs a single compilation.
	Run(ctx context.Context, cfg *domain.BuildConfiguration) (*domain.CompileResult, error)
	// Open prepares an incremental compilation session. progress may be nil.
	Open(cfg *domain.BuildConfiguration, progress func(domain.ProgressEvent)) (Session, error)
}

// Session is an incremental compilation that keeps state between builds.
type Session interface {
	// Rebuild compiles the configuration again, reusing previous work.
	Rebuild(ctx context.Context) (*domain.CompileResult, error)
	// Close releases the session.
	Close() error
}
