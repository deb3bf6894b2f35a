// Package reporter projects build outcomes onto the caller-facing result.
package reporter

import "go.trai.ch/wheelwright/internal/core/domain"

// Report converts outcome into an ExternalResult. The diagnostic becomes the
// result's stderr unchanged.
func Report(outcome domain.BuildOutcome) domain.ExternalResult {
	return domain.ExternalResult{
		Success: outcome.Succeeded,
		Stdout:  outcome.Stdout,
		Stderr:  outcome.Diagnostic,
	}
}
