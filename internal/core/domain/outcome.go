package domain

import (
	"errors"

	"go.trai.ch/zerr"
)

// FailureKind classifies why a build outcome failed.
type FailureKind int

const (
	// FailureNone marks a successful outcome.
	FailureNone FailureKind = iota
	// FailureRejection means the build mode was rejected before any environment was touched.
	FailureRejection
	// FailureManifestUnreadable means the project manifest could not be read.
	FailureManifestUnreadable
	// FailureEnvironmentProvisioning means the build environment could not be created.
	FailureEnvironmentProvisioning
	// FailureBackendUnavailable means the build backend could not be imported.
	FailureBackendUnavailable
	// FailureBackendBuild means the build backend ran and reported a failure.
	FailureBackendBuild
	// FailurePackaging means the executable package could not be assembled.
	FailurePackaging
	// FailureRun means the built package ran and exited unsuccessfully.
	FailureRun
)

func (k FailureKind) String() string {
	switch k {
	case FailureNone:
		return "none"
	case FailureRejection:
		return "rejection"
	case FailureManifestUnreadable:
		return "manifest-unreadable"
	case FailureEnvironmentProvisioning:
		return "environment-provisioning"
	case FailureBackendUnavailable:
		return "backend-unavailable"
	case FailureBackendBuild:
		return "backend-build-failure"
	case FailurePackaging:
		return "packaging-failure"
	case FailureRun:
		return "run-failure"
	default:
		return "unknown"
	}
}

// BuildOutcome is the terminal result of one build request.
type BuildOutcome struct {
	Succeeded bool
	// Diagnostic is the failure text, kept verbatim from the failing tool. On
	// success it carries the built package's stderr when the package was run.
	Diagnostic string
	Failure    FailureKind
	// Rejection is set when Failure is FailureRejection.
	Rejection RejectionKind
	// Stdout is the captured standard output of the last step that ran.
	Stdout string
	// Wheel is the path of the built wheel on success.
	Wheel string
	// Artifact is the path of the executable package, if one was assembled.
	Artifact string
}

// Succeed returns a successful outcome for the given wheel.
func Succeed(wheel, stdout string) BuildOutcome {
	return BuildOutcome{Succeeded: true, Wheel: wheel, Stdout: stdout}
}

// Fail returns a failed outcome of the given kind.
func Fail(kind FailureKind, diagnostic string) BuildOutcome {
	return BuildOutcome{Failure: kind, Diagnostic: diagnostic}
}

// Reject returns the failed outcome for a rejected build mode.
func Reject(kind RejectionKind) BuildOutcome {
	return BuildOutcome{
		Failure:    FailureRejection,
		Rejection:  kind,
		Diagnostic: kind.Diagnostic() + "\n",
	}
}

// Err returns the failure as an error matching the sentinel for its kind,
// or nil for a successful outcome.
func (o BuildOutcome) Err() error {
	if o.Succeeded {
		return nil
	}

	var err error
	switch o.Failure {
	case FailureRejection:
		err = ErrBuildRejected
		if o.Rejection == ConflictingFlags {
			err = errors.Join(ErrBuildRejected, ErrConflictingFlags)
		}
	case FailureManifestUnreadable:
		err = ErrManifestUnreadable
	case FailureEnvironmentProvisioning:
		err = ErrEnvironmentProvisioning
	case FailureBackendUnavailable:
		err = ErrBackendUnavailable
	case FailureBackendBuild:
		err = ErrBackendBuildFailure
	case FailurePackaging:
		err = ErrPackagingFailed
	case FailureRun:
		err = ErrRunFailed
	default:
		err = ErrBuildExecutionFailed
	}

	// Wrap before attaching metadata so errors.Is still reaches the sentinel.
	err = zerr.With(zerr.Wrap(err, o.Failure.String()), "failure", o.Failure.String())
	if o.Failure == FailureRejection {
		err = zerr.With(err, "rejection", o.Rejection.String())
	}
	return err
}

// ExternalResult is the caller-facing shape of a build outcome.
type ExternalResult struct {
	Success bool
	Stdout  string
	Stderr  string
}
