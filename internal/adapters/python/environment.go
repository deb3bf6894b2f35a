package python

import (
	"context"
	_ "embed"
	"errors"
	"os"
	"path/filepath"

	"go.trai.ch/wheelwright/internal/core/domain"
	"go.trai.ch/wheelwright/internal/core/ports"
	"go.trai.ch/zerr"
)

//go:embed driver.py
var driverScript []byte

// Environment is a Python interpreter, possibly inside a virtual environment.
type Environment struct {
	executor ports.Executor
	python   string
	isolated bool
	// dir is removed on Close. Empty for ambient and cached environments.
	dir string
}

var _ ports.Environment = (*Environment)(nil)

// Python returns the path of the environment's interpreter.
func (e *Environment) Python() string {
	return e.python
}

// Isolated reports whether the environment hides the ambient site-packages.
func (e *Environment) Isolated() bool {
	return e.isolated
}

// RunBackend runs the backend driver with the environment's interpreter.
func (e *Environment) RunBackend(ctx context.Context, inv domain.BackendInvocation) (domain.BackendResult, error) {
	driver, cleanup, err := writeDriver()
	if err != nil {
		return domain.BackendResult{}, err
	}
	defer cleanup()

	args := []string{e.python, driver, hookArg(inv.Hook), inv.Backend, inv.OutputDir}
	args = append(args, inv.BackendPath...)

	res, err := e.executor.Execute(ctx, domain.Command{
		Args:      args,
		Dir:       inv.ProjectDir,
		Env:       e.processEnv(),
		FilterEnv: e.isolated,
	})
	result := domain.BackendResult{
		ExitCode: res.ExitCode,
		Stdout:   res.Stdout,
		Stderr:   res.Stderr,
	}
	if err != nil && !errors.Is(err, domain.ErrCommandFailed) {
		return result, zerr.With(zerr.Wrap(err, "run build backend"), "python", e.python)
	}

	marker := filepath.Join(inv.OutputDir, domain.BackendUnavailableMarker)
	if _, statErr := os.Stat(marker); statErr == nil {
		result.Unavailable = true
		_ = os.Remove(marker)
	}
	return result, nil
}

// Close removes the environment directory when the environment owns one.
func (e *Environment) Close() error {
	if e.dir == "" {
		return nil
	}
	if err := os.RemoveAll(e.dir); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to remove build environment"), "dir", e.dir)
	}
	return nil
}

func (e *Environment) processEnv() []string {
	env := []string{"PYTHONDONTWRITEBYTECODE=1"}
	if e.isolated {
		env = append(env, "PYTHONNOUSERSITE=1")
	}
	return env
}

func hookArg(hook domain.BackendHook) string {
	if hook == domain.HookLegacySetup {
		return "setup.py"
	}
	return "build_wheel"
}

func writeDriver() (path string, cleanup func(), err error) {
	f, err := os.CreateTemp("", "wheelwright-driver-*.py")
	if err != nil {
		return "", nil, zerr.Wrap(err, "failed to create backend driver")
	}
	path = f.Name()
	cleanup = func() {
		_ = os.Remove(path)
	}

	if _, err := f.Write(driverScript); err != nil {
		_ = f.Close()
		cleanup()
		return "", nil, zerr.Wrap(err, "failed to write backend driver")
	}
	if err := f.Close(); err != nil {
		cleanup()
		return "", nil, zerr.Wrap(err, "failed to close backend driver")
	}
	return path, cleanup, nil
}
