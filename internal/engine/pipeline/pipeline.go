// Package pipeline drives a single build request from manifest to result.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.trai.ch/wheelwright/internal/core/domain"
	"go.trai.ch/wheelwright/internal/core/ports"
	"go.trai.ch/wheelwright/internal/engine/executor"
	"go.trai.ch/wheelwright/internal/engine/provisioner"
	"go.trai.ch/wheelwright/internal/engine/reporter"
	"go.trai.ch/wheelwright/internal/engine/selector"
	"go.trai.ch/zerr"
)

// Pipeline runs the describe, select, provision, execute, package and report
// stages for one request. It holds no per-request state and is safe for
// concurrent use.
type Pipeline struct {
	descriptor  ports.ProjectDescriptor
	provisioner *provisioner.Provisioner
	executor    *executor.Executor
	packager    ports.Packager
	runner      ports.Executor
	tracer      ports.Tracer
	logger      ports.Logger
	tempRoot    string
}

// New creates a Pipeline. Scratch files are placed under tempRoot, or the
// system temporary directory when tempRoot is empty.
func New(
	descriptor ports.ProjectDescriptor,
	factory ports.EnvironmentFactory,
	packager ports.Packager,
	runner ports.Executor,
	tracer ports.Tracer,
	logger ports.Logger,
	tempRoot string,
) *Pipeline {
	return &Pipeline{
		descriptor:  descriptor,
		provisioner: provisioner.New(factory, logger),
		executor:    executor.New(tempRoot),
		packager:    packager,
		runner:      runner,
		tracer:      tracer,
		logger:      logger,
		tempRoot:    tempRoot,
	}
}

// Run executes req and reports its outcome.
func (p *Pipeline) Run(ctx context.Context, req domain.BuildRequest) domain.ExternalResult {
	return reporter.Report(p.Build(ctx, req))
}

// Build executes req and returns its terminal outcome. It never returns an
// error: every failure is folded into the outcome exactly once.
func (p *Pipeline) Build(ctx context.Context, req domain.BuildRequest) domain.BuildOutcome {
	ctx, span := p.tracer.Start(ctx, "build",
		ports.WithAttribute("wheelwright.request_id", req.ID),
		ports.WithAttribute("wheelwright.project", req.ProjectPath),
		ports.WithAttribute("wheelwright.interpreter", req.Interpreter),
	)
	defer span.End()

	outcome := p.build(ctx, req)
	span.SetAttribute("wheelwright.succeeded", outcome.Succeeded)
	if !outcome.Succeeded {
		span.SetAttribute("wheelwright.failure", outcome.Failure.String())
		span.RecordError(outcome.Err())
	}
	return outcome
}

func (p *Pipeline) build(ctx context.Context, req domain.BuildRequest) domain.BuildOutcome {
	// Contract violations resolve before the project is read.
	if req.HasConflictingFlags() {
		return domain.Reject(domain.ConflictingFlags)
	}

	config, err := p.describe(ctx, req)
	if err != nil {
		return domain.Fail(domain.FailureManifestUnreadable, domain.DiagnosticFor(err))
	}

	mode := selector.Select(config, req)
	p.logger.Debug(fmt.Sprintf("%s: building %s with %s", req.Interpreter, req.ProjectPath, mode))
	if rejected, ok := mode.(domain.Rejected); ok {
		return domain.Reject(rejected.Reason)
	}

	env, err := p.provision(ctx, req, config, mode)
	if err != nil {
		return domain.Fail(domain.FailureEnvironmentProvisioning, domain.DiagnosticFor(err))
	}
	defer func() {
		if cerr := env.Close(); cerr != nil {
			p.logger.Warn(fmt.Sprintf("failed to release build environment: %v", cerr))
		}
	}()

	outcome := p.execute(ctx, mode, env, config)
	if !outcome.Succeeded {
		return outcome
	}
	defer func() {
		if cerr := executor.Cleanup(outcome); cerr != nil {
			p.logger.Warn(fmt.Sprintf("failed to remove wheel directory: %v", cerr))
		}
	}()

	if !req.NeedsPackage() {
		outcome.Stdout += fmt.Sprintf("Built %s\n", filepath.Base(outcome.Wheel))
		return outcome
	}

	return p.packageAndRun(ctx, req, outcome)
}

func (p *Pipeline) describe(ctx context.Context, req domain.BuildRequest) (domain.ProjectConfig, error) {
	_, span := p.tracer.Start(ctx, "describe")
	defer span.End()

	config, err := p.descriptor.Describe(req.ProjectPath)
	if err != nil {
		span.RecordError(err)
		return domain.ProjectConfig{}, err
	}
	span.SetAttribute("wheelwright.pep517", config.HasPEP517Declaration)
	span.SetAttribute("wheelwright.legacy_setup", config.HasLegacySetup)
	return config, nil
}

// provision is called once per request; a failed environment is never retried.
func (p *Pipeline) provision(
	ctx context.Context,
	req domain.BuildRequest,
	config domain.ProjectConfig,
	mode domain.BuildMode,
) (ports.Environment, error) {
	ctx, span := p.tracer.Start(ctx, "provision", ports.WithAttribute("wheelwright.mode", mode.String()))
	defer span.End()

	env, err := p.provisioner.Provision(ctx, req.Interpreter, config, mode)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttribute("wheelwright.isolated", env.Isolated())
	return env, nil
}

func (p *Pipeline) execute(
	ctx context.Context,
	mode domain.BuildMode,
	env ports.Environment,
	config domain.ProjectConfig,
) domain.BuildOutcome {
	ctx, span := p.tracer.Start(ctx, "execute", ports.WithAttribute("wheelwright.backend", config.BuildBackend))
	defer span.End()

	outcome := p.executor.Execute(ctx, mode, env, config)
	if !outcome.Succeeded {
		_, _ = span.Write([]byte(outcome.Diagnostic))
		span.RecordError(zerr.With(outcome.Err(), "backend", config.BuildBackend))
	}
	return outcome
}

func (p *Pipeline) packageAndRun(
	ctx context.Context,
	req domain.BuildRequest,
	built domain.BuildOutcome,
) domain.BuildOutcome {
	ctx, span := p.tracer.Start(ctx, "package")
	defer span.End()

	dest := req.OutputPath
	if dest == "" {
		f, err := os.CreateTemp(p.tempRoot, "wheelwright-*.pyz")
		if err != nil {
			span.RecordError(err)
			err = zerr.Wrap(err, "failed to create package file")
			return domain.Fail(domain.FailurePackaging, domain.DiagnosticFor(err))
		}
		dest = f.Name()
		_ = f.Close()
		defer func() { _ = os.Remove(dest) }()
	}

	if err := p.packager.Package(ctx, built.Wheel, req.Interpreter, dest); err != nil {
		span.RecordError(err)
		return domain.Fail(domain.FailurePackaging, domain.DiagnosticFor(err))
	}

	outcome := built
	if req.OutputPath != "" {
		outcome.Artifact = req.OutputPath
	}
	if len(req.RunArgs) == 0 {
		return outcome
	}

	// The package runs in the caller's environment, unfiltered.
	args := append([]string{req.Interpreter, dest}, req.RunArgs...)
	res, err := p.runner.Execute(ctx, domain.Command{Args: args, Dir: req.ProjectPath})
	switch {
	case err == nil:
		outcome.Stdout = res.Stdout
		outcome.Diagnostic = res.Stderr
		return outcome
	case errors.Is(err, domain.ErrCommandFailed):
		failed := domain.Fail(domain.FailureRun, res.Stderr)
		failed.Stdout = res.Stdout
		return failed
	default:
		span.RecordError(err)
		return domain.Fail(domain.FailureRun, domain.DiagnosticFor(err))
	}
}
