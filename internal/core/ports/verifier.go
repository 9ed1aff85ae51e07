package ports

import "go.trai.ch/assetpipe/internal/core/domain"

// Verifier runs the checks that must pass before a build starts.
//
//go:generate mockgen -source=verifier.go -destination=mocks/mock_verifier.go -package=mocks
type Verifier interface {
	// VerifyRequiredFiles fails with domain.ErrRequiredFileMissing on the first absent file.
	VerifyRequiredFiles(files ...string) error
	// VerifyPackageTree checks that every declared dependency is installed.
	VerifyPackageTree(paths *domain.Paths) error
	// VerifyBrowsers checks that target browsers are declared.
	VerifyBrowsers(paths *domain.Paths) error
}
