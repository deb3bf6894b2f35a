package domain

import "path/filepath"

const (
	// WheelwrightDirName is the name of the internal workspace directory.
	WheelwrightDirName = ".wheelwright"

	// CacheDirName is the name of the cache directory.
	CacheDirName = "cache"

	// EnvDirName is the name of the environment cache directory.
	EnvDirName = "environments"

	// ConfigFileName is the name of the optional configuration file.
	ConfigFileName = "wheelwright.yaml"

	// PyprojectFileName is the PEP 518 project manifest.
	PyprojectFileName = "pyproject.toml"

	// SetupScriptFileName is the legacy setuptools build script.
	SetupScriptFileName = "setup.py"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// ExecutablePerm is the permission for built executable packages (rwxr-xr-x).
	ExecutablePerm = 0o755
)

// DefaultCachePath returns the default cache directory.
// It joins .wheelwright and cache.
func DefaultCachePath() string {
	return filepath.Join(WheelwrightDirName, CacheDirName)
}

// EnvCachePath returns the environment cache directory below the given cache root.
func EnvCachePath(cacheDir string) string {
	return filepath.Join(cacheDir, EnvDirName)
}
