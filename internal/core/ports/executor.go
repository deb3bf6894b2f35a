// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/wheelwright/internal/core/domain"
)

// Executor runs child processes and captures their output.
//
//go:generate go run go.uber.org/mock/mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Execute runs the command to completion.
	//
	// Stdout and stderr are captured separately and returned verbatim in the result,
	// which is populated even when the command fails. A non-zero exit status yields
	// an error wrapping domain.ErrCommandFailed with the "exit_code" attribute; a
	// command that cannot be started yields domain.ErrCommandStartFailed.
	Execute(ctx context.Context, cmd domain.Command) (domain.ProcessResult, error)
}
