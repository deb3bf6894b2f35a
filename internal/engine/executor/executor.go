// Package executor runs a build backend inside a provisioned environment.
package executor

import (
	"context"
	"os"
	"path/filepath"
	"sort"

	"go.trai.ch/wheelwright/internal/core/domain"
	"go.trai.ch/wheelwright/internal/core/ports"
	"go.trai.ch/zerr"
)

// Executor invokes build backends and normalizes their results into outcomes.
type Executor struct {
	tempRoot string
}

// New creates an Executor that places wheel output directories under tempRoot.
// An empty tempRoot uses the system temporary directory.
func New(tempRoot string) *Executor {
	return &Executor{tempRoot: tempRoot}
}

// Execute builds a wheel for config in env according to mode.
//
// Rejected modes return the rejection diagnostic without touching env. The
// returned outcome's Wheel lives in a fresh directory owned by the caller;
// use Cleanup to remove it.
func (e *Executor) Execute(
	ctx context.Context,
	mode domain.BuildMode,
	env ports.Environment,
	config domain.ProjectConfig,
) domain.BuildOutcome {
	if rejected, ok := mode.(domain.Rejected); ok {
		return domain.Reject(rejected.Reason)
	}

	hook := domain.HookLegacySetup
	if domain.UsesPEP517(mode) {
		hook = domain.HookPEP517BuildWheel
	}

	outDir, err := os.MkdirTemp(e.tempRoot, "wheelwright-wheel-")
	if err != nil {
		return domain.Fail(domain.FailureBackendBuild, domain.DiagnosticFor(zerr.Wrap(err, "failed to create wheel directory")))
	}

	inv := domain.BackendInvocation{
		Hook:        hook,
		Backend:     config.BuildBackend,
		BackendPath: config.BackendPath,
		ProjectDir:  config.Path,
		OutputDir:   outDir,
	}

	res, err := env.RunBackend(ctx, inv)
	if err != nil {
		_ = os.RemoveAll(outDir)
		return domain.Fail(domain.FailureBackendBuild, domain.DiagnosticFor(err))
	}

	switch {
	case res.Unavailable:
		_ = os.RemoveAll(outDir)
		out := domain.Fail(domain.FailureBackendUnavailable, res.Stderr)
		out.Stdout = res.Stdout
		return out
	case res.ExitCode != 0:
		_ = os.RemoveAll(outDir)
		out := domain.Fail(domain.FailureBackendBuild, res.Stderr)
		out.Stdout = res.Stdout
		return out
	}

	wheel, err := findWheel(outDir)
	if err != nil {
		_ = os.RemoveAll(outDir)
		out := domain.Fail(domain.FailureBackendBuild, res.Stderr+domain.DiagnosticFor(err))
		out.Stdout = res.Stdout
		return out
	}

	return domain.Succeed(wheel, res.Stdout)
}

// Cleanup removes the output directory of a successful outcome.
func Cleanup(outcome domain.BuildOutcome) error {
	if outcome.Wheel == "" {
		return nil
	}
	return os.RemoveAll(filepath.Dir(outcome.Wheel))
}

func findWheel(dir string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.whl"))
	if err != nil {
		return "", zerr.Wrap(err, "failed to scan wheel directory")
	}
	if len(matches) == 0 {
		return "", zerr.With(zerr.Wrap(domain.ErrNoWheelProduced, "build_wheel"), "dir", dir)
	}
	sort.Strings(matches)
	return matches[0], nil
}
