package domain

// Settings holds the tool configuration resolved from wheelwright.yaml and defaults.
type Settings struct {
	// Root is the directory containing the configuration file, or the working directory.
	Root string
	// Interpreters are the Python interpreters to build for.
	Interpreters []string
	// BuildIsolation is the default isolation setting.
	BuildIsolation bool
	// PipIndexURL overrides the package index used when provisioning isolated environments.
	PipIndexURL string
	// PipExtraArgs are appended to every pip install invocation.
	PipExtraArgs []string
	// CacheDir is the cache root.
	CacheDir string
	// ReuseEnvironments enables the isolated environment cache.
	ReuseEnvironments bool
}

// DefaultSettings returns the settings used when no configuration file exists.
func DefaultSettings(root string) Settings {
	return Settings{
		Root:           root,
		Interpreters:   []string{"python3"},
		BuildIsolation: true,
		CacheDir:       DefaultCachePath(),
	}
}

// EnvironmentOptions controls how isolated environments are provisioned.
type EnvironmentOptions struct {
	PipIndexURL       string
	PipExtraArgs      []string
	CacheDir          string
	ReuseEnvironments bool
}

// EnvironmentOptions extracts the provisioning options from s.
func (s Settings) EnvironmentOptions() EnvironmentOptions {
	return EnvironmentOptions{
		PipIndexURL:       s.PipIndexURL,
		PipExtraArgs:      s.PipExtraArgs,
		CacheDir:          s.CacheDir,
		ReuseEnvironments: s.ReuseEnvironments,
	}
}
