package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/wheelwright/internal/adapters/config"   //nolint:depguard // Wired in app layer
	"go.trai.ch/wheelwright/internal/adapters/logger"   //nolint:depguard // Wired in app layer
	"go.trai.ch/wheelwright/internal/adapters/manifest" //nolint:depguard // Wired in app layer
	"go.trai.ch/wheelwright/internal/adapters/packager" //nolint:depguard // Wired in app layer
	"go.trai.ch/wheelwright/internal/adapters/python"   //nolint:depguard // Wired in app layer
	"go.trai.ch/wheelwright/internal/adapters/shell"    //nolint:depguard // Wired in app layer
	"go.trai.ch/wheelwright/internal/core/ports"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			manifest.NodeID,
			python.EnvFactoryNodeID,
			packager.NodeID,
			shell.NodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	descriptor, err := graft.Dep[ports.ProjectDescriptor](ctx)
	if err != nil {
		return nil, err
	}

	envFactory, err := graft.Dep[ports.EnvironmentFactory](ctx)
	if err != nil {
		return nil, err
	}

	pkg, err := graft.Dep[ports.Packager](ctx)
	if err != nil {
		return nil, err
	}

	executor, err := graft.Dep[ports.Executor](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, descriptor, envFactory, pkg, executor, log), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	app, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return &Components{
		App:    app,
		Logger: log,
	}, nil
}
