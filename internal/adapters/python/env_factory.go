// Package python provisions Python build environments and runs build backends inside them.
package python

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"sync"

	"go.trai.ch/wheelwright/internal/core/domain"
	"go.trai.ch/wheelwright/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/singleflight"
)

// EnvFactory implements ports.EnvironmentFactory using venv and pip.
type EnvFactory struct {
	executor ports.Executor
	logger   ports.Logger
	tempRoot string

	mu   sync.RWMutex
	opts domain.EnvironmentOptions

	requestGroup singleflight.Group
}

var _ ports.EnvironmentFactory = (*EnvFactory)(nil)

// NewEnvFactory creates a new EnvFactory. Uncached environments are created
// in the system temporary directory.
func NewEnvFactory(executor ports.Executor, logger ports.Logger) *EnvFactory {
	return &EnvFactory{
		executor: executor,
		logger:   logger,
	}
}

// Configure applies provisioning options to subsequent CreateIsolated calls.
func (f *EnvFactory) Configure(opts domain.EnvironmentOptions) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.opts = opts
}

func (f *EnvFactory) options() domain.EnvironmentOptions {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.opts
}

// Ambient returns the interpreter's own environment.
// The interpreter is resolved to its sys.executable so later invocations do
// not depend on PATH lookup.
func (f *EnvFactory) Ambient(ctx context.Context, interpreter string) (ports.Environment, error) {
	python, err := f.resolveInterpreter(ctx, interpreter)
	if err != nil {
		return nil, err
	}
	return &Environment{
		executor: f.executor,
		python:   python,
	}, nil
}

// CreateIsolated creates a virtual environment holding only requirements.
//
// With environment reuse enabled, environments are cached under the cache
// directory keyed by interpreter and requirement set, and concurrent requests
// for the same key share one provisioning run.
func (f *EnvFactory) CreateIsolated(
	ctx context.Context,
	interpreter string,
	requirements []string,
) (ports.Environment, error) {
	opts := f.options()
	if opts.ReuseEnvironments && opts.CacheDir != "" {
		return f.cachedIsolated(ctx, interpreter, requirements, opts)
	}

	dir, err := os.MkdirTemp(f.tempRoot, "wheelwright-env-")
	if err != nil {
		return nil, zerr.Wrap(err, "failed to create environment directory")
	}

	python, err := f.provision(ctx, interpreter, dir, requirements, opts)
	if err != nil {
		_ = os.RemoveAll(dir)
		return nil, err
	}

	return &Environment{
		executor: f.executor,
		python:   python,
		isolated: true,
		dir:      dir,
	}, nil
}

// CacheRecord is the metadata written once a cached environment is complete.
type CacheRecord struct {
	Interpreter  string   `json:"interpreter"`
	Requirements []string `json:"requirements"`
	Python       string   `json:"python"`
}

func (f *EnvFactory) cachedIsolated(
	ctx context.Context,
	interpreter string,
	requirements []string,
	opts domain.EnvironmentOptions,
) (ports.Environment, error) {
	envID := domain.GenerateEnvID(interpreter, requirements)

	result, err, _ := f.requestGroup.Do(envID, func() (any, error) {
		cacheRoot, err := filepath.Abs(domain.EnvCachePath(opts.CacheDir))
		if err != nil {
			return nil, zerr.Wrap(err, "failed to resolve environment cache")
		}
		recordPath := filepath.Join(cacheRoot, envID+".json")
		dir := filepath.Join(cacheRoot, envID)

		if rec, err := LoadEnvFromCache(recordPath); err == nil {
			if _, statErr := os.Stat(rec.Python); statErr == nil {
				f.logger.Debug("reusing cached build environment " + envID)
				return rec.Python, nil
			}
		}

		if err := os.RemoveAll(dir); err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to reset cached environment"), "dir", dir)
		}
		if err := os.MkdirAll(cacheRoot, domain.DirPerm); err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to create environment cache"), "dir", cacheRoot)
		}

		python, err := f.provision(ctx, interpreter, dir, requirements, opts)
		if err != nil {
			_ = os.RemoveAll(dir)
			return nil, err
		}

		rec := CacheRecord{
			Interpreter:  interpreter,
			Requirements: slices.Sorted(slices.Values(requirements)),
			Python:       python,
		}
		if err := SaveEnvToCache(recordPath, rec); err != nil {
			// The environment is still usable; it is rebuilt next time.
			f.logger.Warn("failed to record cached environment: " + err.Error())
		}
		return python, nil
	})
	if err != nil {
		return nil, err
	}

	return &Environment{
		executor: f.executor,
		python:   result.(string),
		isolated: true,
	}, nil
}

// provision creates a venv in dir and installs requirements into it.
func (f *EnvFactory) provision(
	ctx context.Context,
	interpreter string,
	dir string,
	requirements []string,
	opts domain.EnvironmentOptions,
) (string, error) {
	res, err := f.executor.Execute(ctx, domain.Command{
		Args:      []string{interpreter, "-m", "venv", dir},
		FilterEnv: true,
	})
	if err != nil {
		return "", provisionError(err, res, "venv", interpreter)
	}

	python := venvPython(dir)
	if len(requirements) == 0 {
		return python, nil
	}

	f.logger.Debug("installing build requirements: " + strings.Join(requirements, " "))

	args := []string{
		python, "-m", "pip", "install",
		"--disable-pip-version-check",
		"--no-input",
	}
	if opts.PipIndexURL != "" {
		args = append(args, "--index-url", opts.PipIndexURL)
	}
	args = append(args, opts.PipExtraArgs...)
	args = append(args, requirements...)

	res, err = f.executor.Execute(ctx, domain.Command{
		Args:      args,
		Env:       []string{"PYTHONNOUSERSITE=1"},
		FilterEnv: true,
	})
	if err != nil {
		return "", provisionError(err, res, "pip install", interpreter)
	}

	return python, nil
}

func (f *EnvFactory) resolveInterpreter(ctx context.Context, interpreter string) (string, error) {
	res, err := f.executor.Execute(ctx, domain.Command{
		Args: []string{interpreter, "-c", "import sys; print(sys.executable)"},
	})
	if err != nil {
		return "", provisionError(err, res, "inspect interpreter", interpreter)
	}
	python := strings.TrimSpace(res.Stdout)
	if python == "" {
		return interpreter, nil
	}
	return python, nil
}

func provisionError(err error, res domain.ProcessResult, step, interpreter string) error {
	if errors.Is(err, domain.ErrCommandStartFailed) {
		return zerr.With(zerr.Wrap(domain.ErrInterpreterNotFound, interpreter), "interpreter", interpreter)
	}
	wrapped := zerr.Wrap(domain.ErrEnvironmentProvisioning, step)
	wrapped = zerr.With(wrapped, "exit_code", res.ExitCode)
	return zerr.With(wrapped, domain.OutputKey, res.Stdout+res.Stderr)
}

func venvPython(dir string) string {
	if runtime.GOOS == "windows" {
		return filepath.Join(dir, "Scripts", "python.exe")
	}
	return filepath.Join(dir, "bin", "python")
}

// LoadEnvFromCache loads a cached environment record.
func LoadEnvFromCache(path string) (CacheRecord, error) {
	var rec CacheRecord

	//nolint:gosec // Path is constructed from trusted cache directory
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return rec, domain.ErrCacheMiss
		}
		return rec, zerr.Wrap(domain.ErrEnvCacheReadFailed, err.Error())
	}

	if err := json.Unmarshal(data, &rec); err != nil {
		return rec, zerr.Wrap(domain.ErrEnvCacheReadFailed, err.Error())
	}
	if rec.Python == "" {
		return rec, domain.ErrCacheMiss
	}
	return rec, nil
}

// SaveEnvToCache atomically writes a cached environment record.
func SaveEnvToCache(path string, rec CacheRecord) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return zerr.Wrap(domain.ErrEnvCacheWriteFailed, err.Error())
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return zerr.Wrap(domain.ErrEnvCacheWriteFailed, err.Error())
	}

	tmpFile, err := os.CreateTemp(dir, "env-cache-*.json")
	if err != nil {
		return zerr.Wrap(domain.ErrEnvCacheWriteFailed, err.Error())
	}
	tmpName := tmpFile.Name()

	defer func() {
		if _, err := os.Stat(tmpName); err == nil {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return zerr.Wrap(domain.ErrEnvCacheWriteFailed, err.Error())
	}
	if err := tmpFile.Close(); err != nil {
		return zerr.Wrap(domain.ErrEnvCacheWriteFailed, err.Error())
	}
	if err := os.Chmod(tmpName, domain.FilePerm); err != nil {
		return zerr.Wrap(domain.ErrEnvCacheWriteFailed, err.Error())
	}
	if err := os.Rename(tmpName, path); err != nil {
		return zerr.Wrap(domain.ErrEnvCacheWriteFailed, err.Error())
	}
	return nil
}
