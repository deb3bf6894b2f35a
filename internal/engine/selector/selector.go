// Package selector decides which build lane a request takes.
package selector

import "go.trai.ch/wheelwright/internal/core/domain"

// Select maps a project configuration and a build request to exactly one build mode.
//
// The rules are evaluated in priority order:
//  1. forcing and disabling PEP 517 together is rejected;
//  2. disabling PEP 517 needs a setup.py to fall back to;
//  3. forcing PEP 517 needs a pyproject.toml, nothing is synthesized;
//  4. a PEP 517 project builds through its backend, isolated when requested;
//  5. everything else is a legacy setup.py build.
//
// Select is pure: it performs no I/O and keeps no state between calls.
func Select(config domain.ProjectConfig, request domain.BuildRequest) domain.BuildMode {
	switch {
	case request.HasConflictingFlags():
		return domain.Rejected{Reason: domain.ConflictingFlags}

	case request.PEP517Disable:
		if !config.HasLegacySetup {
			return domain.Rejected{Reason: domain.Pep517DisableInvalidForPep517OnlyProject}
		}
		return domain.LegacySetup{}

	case request.PEP517Force && !config.HasPEP517Declaration:
		return domain.Rejected{Reason: domain.Pep517UnsupportedForLegacyProject}

	case config.HasPEP517Declaration:
		if !request.IsolationEnabled {
			return domain.Pep517NonIsolated{}
		}
		if !config.RequirementsDeclared {
			return domain.Rejected{Reason: domain.IsolationRequirementsMissing}
		}
		return domain.Pep517Isolated{}

	default:
		return domain.LegacySetup{}
	}
}
