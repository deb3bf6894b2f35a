package ports

import (
	"context"

	"go.trai.ch/wheelwright/internal/core/domain"
)

// EnvironmentFactory provisions Python environments for builds.
//
// Implementations are responsible for:
//   - Creating fresh isolated environments holding exactly the requested requirements
//   - Handing out the ambient interpreter untouched for non-isolated builds
//
//go:generate go run go.uber.org/mock/mockgen -source=environment.go -destination=mocks/mock_environment.go -package=mocks
type EnvironmentFactory interface {
	// CreateIsolated creates an environment for the interpreter containing only the given
	// requirement specifiers. No packages from the ambient environment are visible inside it.
	//
	// Returns an error wrapping domain.ErrEnvironmentProvisioning with the installer's raw
	// output when the environment cannot be created, or domain.ErrInterpreterNotFound when
	// the interpreter itself cannot be started.
	CreateIsolated(ctx context.Context, interpreter string, requirements []string) (Environment, error)

	// Ambient returns the interpreter's own environment, unmodified.
	Ambient(ctx context.Context, interpreter string) (Environment, error)

	// Configure applies provisioning options to subsequent CreateIsolated calls.
	Configure(opts domain.EnvironmentOptions)
}

// Environment is a provisioned Python environment that can run build backends.
type Environment interface {
	// Python returns the path of the environment's interpreter.
	Python() string

	// Isolated reports whether the environment hides the ambient site-packages
	// and runs the backend with a filtered process environment.
	Isolated() bool

	// RunBackend invokes a build backend entry point inside the environment.
	// A non-zero exit status is reported in the result, not as an error; the error is
	// reserved for failures to start the backend at all.
	RunBackend(ctx context.Context, inv domain.BackendInvocation) (domain.BackendResult, error)

	// Close releases the environment. Ambient environments are never removed.
	Close() error
}
