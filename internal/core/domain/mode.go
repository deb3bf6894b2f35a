package domain

import "fmt"

// BuildMode is the strategy chosen for a build request.
// It is a closed set: Pep517Isolated, Pep517NonIsolated, LegacySetup and Rejected.
type BuildMode interface {
	fmt.Stringer
	buildMode()
}

// Pep517Isolated builds through the PEP 517 backend in a fresh isolated environment.
type Pep517Isolated struct{}

// Pep517NonIsolated builds through the PEP 517 backend in the ambient environment.
type Pep517NonIsolated struct{}

// LegacySetup builds by running setup.py in the ambient environment.
type LegacySetup struct{}

// Rejected means the request cannot be honored for the given project.
type Rejected struct {
	Reason RejectionKind
}

func (Pep517Isolated) buildMode()    {}
func (Pep517NonIsolated) buildMode() {}
func (LegacySetup) buildMode()       {}
func (Rejected) buildMode()          {}

func (Pep517Isolated) String() string    { return "pep517-isolated" }
func (Pep517NonIsolated) String() string { return "pep517-non-isolated" }
func (LegacySetup) String() string       { return "legacy-setup" }
func (r Rejected) String() string        { return "rejected(" + r.Reason.String() + ")" }

// IsIsolated reports whether the mode requires an isolated build environment.
func IsIsolated(mode BuildMode) bool {
	_, ok := mode.(Pep517Isolated)
	return ok
}

// UsesPEP517 reports whether the mode invokes a PEP 517 backend.
func UsesPEP517(mode BuildMode) bool {
	switch mode.(type) {
	case Pep517Isolated, Pep517NonIsolated:
		return true
	default:
		return false
	}
}

// RejectionKind enumerates the reasons a build request is rejected before any environment is touched.
type RejectionKind int

const (
	// ConflictingFlags means PEP 517 was both forced and disabled.
	ConflictingFlags RejectionKind = iota + 1
	// Pep517UnsupportedForLegacyProject means PEP 517 was forced on a project without pyproject.toml.
	Pep517UnsupportedForLegacyProject
	// Pep517DisableInvalidForPep517OnlyProject means PEP 517 was disabled on a project without setup.py.
	Pep517DisableInvalidForPep517OnlyProject
	// IsolationRequirementsMissing means isolation is on but no build requirements are declared.
	IsolationRequirementsMissing
)

func (k RejectionKind) String() string {
	switch k {
	case ConflictingFlags:
		return "conflicting-flags"
	case Pep517UnsupportedForLegacyProject:
		return "pep517-unsupported-for-legacy-project"
	case Pep517DisableInvalidForPep517OnlyProject:
		return "pep517-disable-invalid-for-pep517-only-project"
	case IsolationRequirementsMissing:
		return "isolation-requirements-missing"
	default:
		return fmt.Sprintf("rejection(%d)", int(k))
	}
}

// Diagnostic returns the user-facing error sentence for the rejection.
// Callers match on these sentences, so they must stay stable.
func (k RejectionKind) Diagnostic() string {
	switch k {
	case ConflictingFlags:
		return "ERROR: --force-pep517 and --no-use-pep517 are mutually exclusive"
	case Pep517UnsupportedForLegacyProject:
		return "ERROR: Forcing PEP 517 processing is invalid: project does not have a pyproject.toml"
	case Pep517DisableInvalidForPep517OnlyProject:
		return "ERROR: Disabling PEP 517 processing is invalid: project does not have a setup.py"
	case IsolationRequirementsMissing:
		return "ERROR: Build isolation requires the [build-system] table to declare its requires key"
	default:
		return fmt.Sprintf("ERROR: build rejected (%s)", k)
	}
}
