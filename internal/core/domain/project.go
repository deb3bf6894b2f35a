package domain

const (
	// DefaultBuildBackend is the PEP 517 backend assumed when pyproject.toml has no [build-system] table.
	DefaultBuildBackend = "setuptools.build_meta:__legacy__"
)

// DefaultBuildRequirements returns the requirements assumed when pyproject.toml has no [build-system] table.
func DefaultBuildRequirements() []string {
	return []string{"setuptools>=40.8.0"}
}

// ProjectConfig describes how a source project can be built.
// It is read once per build request and never mutated afterwards.
type ProjectConfig struct {
	// Path is the absolute path of the project directory.
	Path string

	// HasPEP517Declaration is true when the project carries a pyproject.toml,
	// either with an explicit [build-system] table or relying on the defaults.
	HasPEP517Declaration bool

	// HasLegacySetup is true when the project has a setup.py at its root.
	HasLegacySetup bool

	// BuildBackend is the "module:object" reference of the PEP 517 backend.
	BuildBackend string

	// BackendPath lists in-tree directories to prepend to sys.path before importing the backend.
	BackendPath []string

	// BuildRequirements are the declared build-time requirement specifiers, in declaration order.
	// They are opaque to wheelwright and handed to the environment provisioner unchanged.
	BuildRequirements []string

	// RequirementsDeclared is false when a [build-system] table exists but omits "requires".
	RequirementsDeclared bool
}
