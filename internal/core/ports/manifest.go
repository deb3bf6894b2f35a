package ports

import "go.trai.ch/wheelwright/internal/core/domain"

// ProjectDescriptor reads a project's build configuration from its manifest.
//
//go:generate go run go.uber.org/mock/mockgen -source=manifest.go -destination=mocks/mock_manifest.go -package=mocks
type ProjectDescriptor interface {
	// Describe inspects the project once and returns its build configuration.
	// It returns an error wrapping domain.ErrManifestUnreadable when no manifest can be read.
	Describe(projectPath string) (domain.ProjectConfig, error)

	// ReadBuildRequirements returns the declared build requirements in declaration order.
	ReadBuildRequirements(projectPath string) ([]string, error)

	// HasPEP517Backend reports whether the project opts into PEP 517.
	HasPEP517Backend(projectPath string) (bool, error)
}
