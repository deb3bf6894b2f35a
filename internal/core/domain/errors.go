package domain

import "go.trai.ch/zerr"

var (
	// ErrManifestUnreadable is returned when a project has no readable build manifest
	// (neither pyproject.toml nor setup.py) or pyproject.toml cannot be parsed.
	ErrManifestUnreadable = zerr.New("project manifest is unreadable")

	// ErrInvalidBuildSystem is returned when the [build-system] table has the wrong shape.
	ErrInvalidBuildSystem = zerr.New("invalid [build-system] table in pyproject.toml")

	// ErrProjectNotFound is returned when the project path does not exist or is not a directory.
	ErrProjectNotFound = zerr.New("project directory not found")

	// ErrConflictingFlags is returned when PEP 517 is both forced and disabled.
	ErrConflictingFlags = zerr.New("conflicting PEP 517 flags")

	// ErrBuildRejected is returned when the selected build mode is a rejection.
	ErrBuildRejected = zerr.New("build rejected")

	// ErrProvisionRejected is returned when provisioning is requested for a rejected mode.
	ErrProvisionRejected = zerr.New("cannot provision an environment for a rejected build")

	// ErrEnvironmentProvisioning is returned when a build environment cannot be created.
	ErrEnvironmentProvisioning = zerr.New("failed to provision build environment")

	// ErrInterpreterNotFound is returned when the requested Python interpreter cannot be located.
	ErrInterpreterNotFound = zerr.New("python interpreter not found")

	// ErrBackendUnavailable is returned when the build backend cannot be imported.
	ErrBackendUnavailable = zerr.New("build backend is unavailable")

	// ErrBackendBuildFailure is returned when the build backend ran but failed.
	ErrBackendBuildFailure = zerr.New("build backend failed")

	// ErrNoWheelProduced is returned when a backend reports success without producing a wheel.
	ErrNoWheelProduced = zerr.New("build backend produced no wheel")

	// ErrPackagingFailed is returned when the executable package cannot be assembled.
	ErrPackagingFailed = zerr.New("failed to assemble executable package")

	// ErrRunFailed is returned when the built package exits unsuccessfully.
	ErrRunFailed = zerr.New("built package exited with failure")

	// ErrCommandFailed is returned when a child process exits with a non-zero status.
	ErrCommandFailed = zerr.New("command failed")

	// ErrCommandStartFailed is returned when a child process cannot be started.
	ErrCommandStartFailed = zerr.New("failed to start command")

	// ErrNoInterpreters is returned when a build is requested without any interpreter.
	ErrNoInterpreters = zerr.New("no python interpreters configured")

	// ErrBuildExecutionFailed is returned when at least one build request failed.
	ErrBuildExecutionFailed = zerr.New("build execution failed")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrUnsupportedConfigVersion is returned when the config file declares an unknown version.
	ErrUnsupportedConfigVersion = zerr.New("unsupported config version")

	// ErrEnvCacheReadFailed is returned when reading an environment cache entry fails.
	ErrEnvCacheReadFailed = zerr.New("failed to read environment cache entry")

	// ErrEnvCacheWriteFailed is returned when writing an environment cache entry fails.
	ErrEnvCacheWriteFailed = zerr.New("failed to write environment cache entry")

	// ErrCacheMiss is returned when a requested item is not found in the cache.
	ErrCacheMiss = zerr.New("cache miss")
)
