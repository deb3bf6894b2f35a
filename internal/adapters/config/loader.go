// Package config provides the configuration loader for wheelwright.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/wheelwright/internal/core/domain"
	"go.trai.ch/wheelwright/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// supportedVersion is the only configuration schema version understood.
const supportedVersion = "1"

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

var _ ports.ConfigLoader = (*Loader)(nil)

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load reads the configuration discovered from cwd.
// A missing configuration file yields domain.DefaultSettings rooted at cwd.
func (l *Loader) Load(cwd string) (domain.Settings, error) {
	configPath, found, err := findConfiguration(cwd)
	if err != nil {
		return domain.Settings{}, err
	}
	if !found {
		settings := domain.DefaultSettings(cwd)
		settings.CacheDir = filepath.Join(cwd, settings.CacheDir)
		return settings, nil
	}

	var file Configfile
	if err := readAndUnmarshalYAML(configPath, &file); err != nil {
		return domain.Settings{}, err
	}

	if file.Version != "" && file.Version != supportedVersion {
		err := zerr.Wrap(domain.ErrUnsupportedConfigVersion, file.Version)
		err = zerr.With(err, "version", file.Version)
		return domain.Settings{}, zerr.With(err, "path", configPath)
	}
	if file.Version == "" {
		l.Logger.Warn("no version set in " + configPath + ", assuming version " + supportedVersion)
	}

	return toSettings(filepath.Dir(configPath), file)
}

func findConfiguration(cwd string) (string, bool, error) {
	currentDir, err := filepath.Abs(cwd)
	if err != nil {
		return "", false, zerr.With(zerr.Wrap(err, "failed to resolve working directory"), "cwd", cwd)
	}

	for {
		configPath := filepath.Join(currentDir, domain.ConfigFileName)
		info, err := os.Stat(configPath)
		switch {
		case err == nil && !info.IsDir():
			return configPath, true, nil
		case err != nil && !errors.Is(err, fs.ErrNotExist):
			err = zerr.Wrap(domain.ErrConfigReadFailed, err.Error())
			return "", false, zerr.With(err, "path", configPath)
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root
			return "", false, nil
		}
		currentDir = parentDir
	}
}

func toSettings(root string, file Configfile) (domain.Settings, error) {
	settings := domain.DefaultSettings(root)

	if len(file.Python) > 0 {
		interpreters := make([]string, 0, len(file.Python))
		for _, interpreter := range file.Python {
			interpreter = strings.TrimSpace(interpreter)
			if interpreter == "" {
				return domain.Settings{}, zerr.Wrap(domain.ErrConfigParseFailed, "python entries must not be empty")
			}
			if !slices.Contains(interpreters, interpreter) {
				interpreters = append(interpreters, interpreter)
			}
		}
		settings.Interpreters = interpreters
	}

	if file.BuildIsolation != nil {
		settings.BuildIsolation = *file.BuildIsolation
	}

	settings.PipIndexURL = file.Pip.IndexURL
	settings.PipExtraArgs = file.Pip.ExtraArgs
	settings.ReuseEnvironments = file.Cache.ReuseEnvironments
	settings.CacheDir = resolveDir(root, file.Cache.Dir, settings.CacheDir)

	return settings, nil
}

// resolveDir anchors dir at root, falling back to def when dir is empty.
func resolveDir(root, dir, def string) string {
	if dir == "" {
		dir = def
	}
	if filepath.IsAbs(dir) {
		return filepath.Clean(dir)
	}
	return filepath.Clean(filepath.Join(root, dir))
}

// readAndUnmarshalYAML reads a YAML file and unmarshals it into the target struct.
func readAndUnmarshalYAML[T any](configPath string, target *T) error {
	// #nosec G304 -- configPath is discovered by the loader
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		err = zerr.Wrap(domain.ErrConfigReadFailed, err.Error())
		return zerr.With(err, "path", configPath)
	}

	if parseErr := yaml.Unmarshal(configFile, target); parseErr != nil {
		err = zerr.Wrap(domain.ErrConfigParseFailed, parseErr.Error())
		return zerr.With(err, "path", configPath)
	}

	return nil
}
