// Package app implements the application layer for wheelwright.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/wheelwright/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/wheelwright/internal/core/domain"
	"go.trai.ch/wheelwright/internal/core/ports"
	"go.trai.ch/wheelwright/internal/engine/pipeline"
	"go.trai.ch/wheelwright/internal/engine/scheduler"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	descriptor   ports.ProjectDescriptor
	envFactory   ports.EnvironmentFactory
	packager     ports.Packager
	executor     ports.Executor
	logger       ports.Logger

	progressOut    io.Writer
	spanProcessors []sdktrace.SpanProcessor
	getwd          func() (string, error)
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	descriptor ports.ProjectDescriptor,
	envFactory ports.EnvironmentFactory,
	packager ports.Packager,
	executor ports.Executor,
	log ports.Logger,
) *App {
	return &App{
		configLoader: loader,
		descriptor:   descriptor,
		envFactory:   envFactory,
		packager:     packager,
		executor:     executor,
		logger:       log,
		progressOut:  os.Stderr,
		getwd:        os.Getwd,
	}
}

// WithSpanProcessors registers additional span processors on every build's
// tracer provider. This is primarily used for testing to record spans.
func (a *App) WithSpanProcessors(sps ...sdktrace.SpanProcessor) *App {
	a.spanProcessors = append(a.spanProcessors, sps...)
	return a
}

// WithProgressOutput sets where verbose progress lines are written.
func (a *App) WithProgressOutput(w io.Writer) *App {
	a.progressOut = w
	return a
}

// WithWorkingDir pins the directory used for configuration discovery and
// relative paths.
func (a *App) WithWorkingDir(dir string) *App {
	a.getwd = func() (string, error) { return dir, nil }
	return a
}

// BuildOptions configuration for the Build method.
type BuildOptions struct {
	ProjectPath string
	// Interpreters overrides the configured interpreters when non-empty.
	Interpreters     []string
	NoBuildIsolation bool
	UsePEP517        bool
	NoUsePEP517      bool
	ForcePEP517      bool
	OutputPath       string
	RunArgs          []string
	// ReuseEnvironments overrides cache.reuse_environments when set.
	ReuseEnvironments *bool
	Verbose           bool
	// Parallelism bounds concurrent builds; zero uses the number of CPUs.
	Parallelism int
}

// verboser is implemented by loggers with a debug level switch.
type verboser interface {
	SetVerbose(enable bool)
}

// Build builds the project once per interpreter and returns the combined result.
//
// Build failures are reported through the result, never as an error. The
// error is reserved for problems that prevent any request from being made,
// such as an unreadable configuration file.
func (a *App) Build(ctx context.Context, opts BuildOptions) (domain.ExternalResult, error) {
	if v, ok := a.logger.(verboser); ok {
		v.SetVerbose(opts.Verbose)
	}

	// 1. Load settings
	cwd, err := a.getwd()
	if err != nil {
		return domain.ExternalResult{}, zerr.Wrap(err, "failed to determine working directory")
	}
	settings, err := a.configLoader.Load(cwd)
	if err != nil {
		return domain.ExternalResult{}, zerr.Wrap(err, "failed to load configuration")
	}

	interpreters := configuredInterpreters(settings)
	if len(opts.Interpreters) > 0 {
		interpreters = opts.Interpreters
	}
	if len(interpreters) == 0 {
		return domain.ExternalResult{}, domain.ErrNoInterpreters
	}

	envOpts := settings.EnvironmentOptions()
	if opts.ReuseEnvironments != nil {
		envOpts.ReuseEnvironments = *opts.ReuseEnvironments
	}
	a.envFactory.Configure(envOpts)

	// 2. Initialize telemetry
	sps := a.spanProcessors
	if opts.Verbose {
		sps = append(sps, telemetry.NewProgress(a.progressOut))
	}
	tp := newTracerProvider(sps)
	defer func() {
		_ = tp.Shutdown(context.WithoutCancel(ctx))
	}()
	tracer := telemetry.NewOTelTracer(tp, "wheelwright")

	// 3. Plan one request per interpreter
	requests := a.plan(cwd, settings, interpreters, opts)

	// 4. Run
	pipe := pipeline.New(a.descriptor, a.envFactory, a.packager, a.executor, tracer, a.logger, "")
	sched := scheduler.NewScheduler(pipe, tracer)

	results, err := sched.Run(ctx, requests, opts.Parallelism)
	if err != nil {
		a.logger.Debug(fmt.Sprintf("build interrupted: %v", err))
	}

	return combine(results), nil
}

func (a *App) plan(
	cwd string,
	settings domain.Settings,
	interpreters []string,
	opts BuildOptions,
) []domain.BuildRequest {
	requests := make([]domain.BuildRequest, 0, len(interpreters))
	for _, interpreter := range interpreters {
		requests = append(requests, domain.BuildRequest{
			ID:               uuid.NewString(),
			ProjectPath:      absPath(cwd, opts.ProjectPath),
			Interpreter:      interpreter,
			IsolationEnabled: settings.BuildIsolation && !opts.NoBuildIsolation,
			PEP517Force:      opts.ForcePEP517,
			PEP517Disable:    opts.NoUsePEP517,
			PEP517Requested:  opts.UsePEP517,
			OutputPath:       outputPath(cwd, opts.OutputPath, interpreter, len(interpreters) > 1),
			RunArgs:          opts.RunArgs,
		})
	}
	return requests
}

// CleanOptions configuration for the Clean method.
type CleanOptions struct {
	Environments bool
}

// Clean removes cached build environments.
func (a *App) Clean(_ context.Context, options CleanOptions) error {
	if !options.Environments {
		return nil
	}

	cwd, err := a.getwd()
	if err != nil {
		return zerr.Wrap(err, "failed to determine working directory")
	}
	settings, err := a.configLoader.Load(cwd)
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}

	path := domain.EnvCachePath(settings.CacheDir)
	a.logger.Info("removing environment cache...")
	if err := os.RemoveAll(path); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to remove environment cache"), "path", path)
	}
	a.logger.Info("removed environment cache")
	return nil
}

// newTracerProvider creates a TracerProvider reporting to the given processors.
func newTracerProvider(sps []sdktrace.SpanProcessor) *sdktrace.TracerProvider {
	opts := make([]sdktrace.TracerProviderOption, 0, len(sps))
	for _, sp := range sps {
		opts = append(opts, sdktrace.WithSpanProcessor(sp))
	}
	return sdktrace.NewTracerProvider(opts...)
}

// combine folds per-interpreter results into one: it succeeds only when
// every request succeeded and keeps the output in request order.
func combine(results []domain.ExternalResult) domain.ExternalResult {
	combined := domain.ExternalResult{Success: len(results) > 0}
	var stdout, stderr strings.Builder
	for _, res := range results {
		combined.Success = combined.Success && res.Success
		stdout.WriteString(res.Stdout)
		stderr.WriteString(res.Stderr)
	}
	combined.Stdout = stdout.String()
	combined.Stderr = stderr.String()
	return combined
}

// configuredInterpreters anchors interpreter paths from the configuration
// file at the file's directory. Bare names are left for PATH lookup.
func configuredInterpreters(settings domain.Settings) []string {
	interpreters := make([]string, 0, len(settings.Interpreters))
	for _, interpreter := range settings.Interpreters {
		if !filepath.IsAbs(interpreter) && strings.ContainsRune(interpreter, filepath.Separator) {
			interpreter = filepath.Join(settings.Root, interpreter)
		}
		interpreters = append(interpreters, interpreter)
	}
	return interpreters
}

func absPath(cwd, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(cwd, path)
}

// outputPath returns where the package for interpreter is written. Builds
// for several interpreters get the interpreter's name appended to the file
// stem so they do not overwrite each other.
func outputPath(cwd, path, interpreter string, multiple bool) string {
	if path == "" {
		return ""
	}
	path = absPath(cwd, path)
	if !multiple {
		return path
	}
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "-" + filepath.Base(interpreter) + ext
}
