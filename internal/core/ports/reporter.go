package ports

import "go.trai.ch/assetpipe/internal/core/domain"

// Reporter prints build outcomes for the user.
//
//go:generate mockgen -source=reporter.go -destination=mocks/mock_reporter.go -package=mocks
type Reporter interface {
	// PrintSummary prints the outcome of a one-shot build.
	PrintSummary(summary domain.DiagnosticsSummary)
	// PrintFailure prints a build that could not complete.
	PrintFailure(err error)
	// PrintReport prints the compact report of a watch-mode build.
	PrintReport(summary domain.DiagnosticsSummary)
}

// ProgressReporter renders compilation progress.
type ProgressReporter interface {
	Handle(event domain.ProgressEvent)
}
