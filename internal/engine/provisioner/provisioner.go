// Package provisioner prepares the environment a build runs in.
package provisioner

import (
	"context"
	"fmt"

	"go.trai.ch/wheelwright/internal/core/domain"
	"go.trai.ch/wheelwright/internal/core/ports"
	"go.trai.ch/zerr"
)

// Provisioner turns a selected build mode into a ready environment.
type Provisioner struct {
	factory ports.EnvironmentFactory
	logger  ports.Logger
}

// New creates a Provisioner backed by the given environment factory.
func New(factory ports.EnvironmentFactory, logger ports.Logger) *Provisioner {
	return &Provisioner{
		factory: factory,
		logger:  logger,
	}
}

// Provision returns the environment for mode.
//
// Pep517Isolated gets a fresh environment holding exactly config.BuildRequirements.
// Pep517NonIsolated and LegacySetup get the interpreter's ambient environment as-is;
// missing backend prerequisites are left for the backend invocation to report.
// Rejected modes are never provisioned.
func (p *Provisioner) Provision(
	ctx context.Context,
	interpreter string,
	config domain.ProjectConfig,
	mode domain.BuildMode,
) (ports.Environment, error) {
	if rejected, ok := mode.(domain.Rejected); ok {
		err := zerr.Wrap(domain.ErrProvisionRejected, rejected.Reason.String())
		return nil, zerr.With(err, "reason", rejected.Reason.String())
	}

	if domain.IsIsolated(mode) {
		p.logger.Debug(fmt.Sprintf("creating isolated build environment for %s with %d requirement(s)",
			interpreter, len(config.BuildRequirements)))
		env, err := p.factory.CreateIsolated(ctx, interpreter, config.BuildRequirements)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "isolated environment"), "interpreter", interpreter)
		}
		return env, nil
	}

	env, err := p.factory.Ambient(ctx, interpreter)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "ambient environment"), "interpreter", interpreter)
	}
	return env, nil
}
