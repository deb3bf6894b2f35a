// Package manifest reads a Python project's build configuration from disk.
package manifest

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"go.trai.ch/wheelwright/internal/core/domain"
	"go.trai.ch/zerr"
)

// pyproject is the subset of pyproject.toml that drives a build.
type pyproject struct {
	BuildSystem buildSystem `toml:"build-system"`
}

type buildSystem struct {
	Requires     []string `toml:"requires"`
	BuildBackend string   `toml:"build-backend"`
	BackendPath  []string `toml:"backend-path"`
}

// Descriptor implements ports.ProjectDescriptor over pyproject.toml and setup.py.
type Descriptor struct{}

// NewDescriptor creates a new Descriptor.
func NewDescriptor() *Descriptor {
	return &Descriptor{}
}

// Describe inspects the project at projectPath.
//
// A pyproject.toml marks the project as PEP 517 capable. Without a
// [build-system] table the setuptools legacy backend and its default
// requirements apply. A table that omits requires is reported through
// RequirementsDeclared so isolated builds can refuse it.
func (d *Descriptor) Describe(projectPath string) (domain.ProjectConfig, error) {
	info, err := os.Stat(projectPath)
	if err != nil || !info.IsDir() {
		return domain.ProjectConfig{}, unreadable(domain.ErrProjectNotFound, projectPath)
	}

	config := domain.ProjectConfig{Path: projectPath}

	config.HasLegacySetup, err = fileExists(filepath.Join(projectPath, domain.SetupScriptFileName))
	if err != nil {
		return domain.ProjectConfig{}, unreadable(err, projectPath)
	}

	pyprojectPath := filepath.Join(projectPath, domain.PyprojectFileName)
	hasPyproject, err := fileExists(pyprojectPath)
	if err != nil {
		return domain.ProjectConfig{}, unreadable(err, pyprojectPath)
	}

	if !hasPyproject {
		if !config.HasLegacySetup {
			return domain.ProjectConfig{}, unreadable(
				zerr.New("neither pyproject.toml nor setup.py found"), projectPath)
		}
		config.BuildBackend = domain.DefaultBuildBackend
		config.BuildRequirements = domain.DefaultBuildRequirements()
		config.RequirementsDeclared = true
		return config, nil
	}

	var doc pyproject
	md, err := toml.DecodeFile(pyprojectPath, &doc)
	if err != nil {
		return domain.ProjectConfig{}, unreadable(err, pyprojectPath)
	}

	config.HasPEP517Declaration = true

	if !md.IsDefined("build-system") {
		config.BuildBackend = domain.DefaultBuildBackend
		config.BuildRequirements = domain.DefaultBuildRequirements()
		config.RequirementsDeclared = true
		return config, nil
	}

	config.RequirementsDeclared = md.IsDefined("build-system", "requires")
	config.BuildRequirements = doc.BuildSystem.Requires
	if config.BuildRequirements == nil {
		config.BuildRequirements = []string{}
	}

	config.BuildBackend = doc.BuildSystem.BuildBackend
	if config.BuildBackend == "" {
		config.BuildBackend = domain.DefaultBuildBackend
	}

	for _, p := range doc.BuildSystem.BackendPath {
		abs := filepath.Join(projectPath, p)
		if !filepath.IsLocal(p) {
			err := zerr.With(zerr.Wrap(domain.ErrInvalidBuildSystem, "backend-path must stay inside the project"),
				"backend_path", p)
			return domain.ProjectConfig{}, unreadable(err, pyprojectPath)
		}
		config.BackendPath = append(config.BackendPath, abs)
	}

	return config, nil
}

// ReadBuildRequirements returns the project's build requirements in declaration order.
func (d *Descriptor) ReadBuildRequirements(projectPath string) ([]string, error) {
	config, err := d.Describe(projectPath)
	if err != nil {
		return nil, err
	}
	return config.BuildRequirements, nil
}

// HasPEP517Backend reports whether the project carries a pyproject.toml.
func (d *Descriptor) HasPEP517Backend(projectPath string) (bool, error) {
	config, err := d.Describe(projectPath)
	if err != nil {
		return false, err
	}
	return config.HasPEP517Declaration, nil
}

func fileExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return !info.IsDir(), nil
}

// unreadable keeps both the manifest sentinel and the underlying cause matchable.
func unreadable(err error, path string) error {
	return zerr.With(zerr.Wrap(errors.Join(domain.ErrManifestUnreadable, err), path), "path", path)
}
