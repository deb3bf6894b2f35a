package domain

// BackendHook selects the entry point used to build a wheel.
type BackendHook int

const (
	// HookPEP517BuildWheel calls the backend's build_wheel hook.
	HookPEP517BuildWheel BackendHook = iota
	// HookLegacySetup runs "setup.py bdist_wheel".
	HookLegacySetup
)

func (h BackendHook) String() string {
	if h == HookLegacySetup {
		return "setup.py bdist_wheel"
	}
	return "build_wheel"
}

// BackendInvocation describes one call into a build backend.
type BackendInvocation struct {
	Hook        BackendHook
	Backend     string
	BackendPath []string
	ProjectDir  string
	OutputDir   string
}

// BackendResult is the raw terminal status of a backend invocation.
type BackendResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
	// Unavailable is set when the backend could not be imported at all.
	// It is independent of ExitCode, which the backend itself controls.
	Unavailable bool
}

// BackendUnavailableMarker is the file the backend driver leaves in the
// output directory when the backend cannot be imported.
const BackendUnavailableMarker = ".wheelwright-backend-unavailable"

// Command is a child process to run.
type Command struct {
	Args []string
	Dir  string
	// Env holds "KEY=VALUE" pairs layered over the system environment.
	Env []string
	// FilterEnv restricts the inherited system environment to an allow-list
	// of locale, proxy and certificate variables. When false the process
	// sees the caller's environment unmodified apart from Env.
	FilterEnv bool
}

// ProcessResult is the captured output of a finished child process.
type ProcessResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
}
