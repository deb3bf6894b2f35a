package domain

// BuildRequest is a single caller-supplied build of one project under one interpreter.
type BuildRequest struct {
	// ID uniquely identifies the request in logs and traces.
	ID string

	// ProjectPath is the directory containing the project manifest.
	ProjectPath string

	// Interpreter is the Python interpreter to build for.
	Interpreter string

	// IsolationEnabled builds PEP 517 projects in a fresh environment holding only
	// the declared build requirements (inverse of --no-build-isolation).
	IsolationEnabled bool

	// PEP517Force requires the PEP 517 lane (--force-pep517).
	PEP517Force bool

	// PEP517Disable requests the legacy lane (--no-use-pep517).
	PEP517Disable bool

	// PEP517Requested records --use-pep517. It does not change lane selection:
	// a declared project already uses PEP 517 and a legacy-only project keeps
	// its legacy lane.
	PEP517Requested bool

	// OutputPath is where the executable package is written (-o). Empty means no output file.
	OutputPath string

	// RunArgs are passed to the built package, which is executed right after the build.
	RunArgs []string
}

// HasConflictingFlags reports whether PEP 517 is both forced and disabled.
func (r BuildRequest) HasConflictingFlags() bool {
	return r.PEP517Force && r.PEP517Disable
}

// NeedsPackage reports whether the built wheel must be assembled into an executable package.
func (r BuildRequest) NeedsPackage() bool {
	return r.OutputPath != "" || len(r.RunArgs) > 0
}
