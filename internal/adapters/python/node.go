package python

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/wheelwright/internal/adapters/logger"
	"go.trai.ch/wheelwright/internal/adapters/shell"
	"go.trai.ch/wheelwright/internal/core/ports"
)

// EnvFactoryNodeID is the unique identifier for the environment factory Graft node.
const EnvFactoryNodeID graft.ID = "adapter.environment_factory"

func init() {
	graft.Register(graft.Node[ports.EnvironmentFactory]{
		ID:        EnvFactoryNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{shell.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.EnvironmentFactory, error) {
			executor, err := graft.Dep[ports.Executor](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewEnvFactory(executor, log), nil
		},
	})
}
