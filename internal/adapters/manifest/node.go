package manifest

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/wheelwright/internal/core/ports"
)

// NodeID is the unique identifier for the project descriptor Graft node.
const NodeID graft.ID = "adapter.manifest"

func init() {
	graft.Register(graft.Node[ports.ProjectDescriptor]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{},
		Run: func(_ context.Context) (ports.ProjectDescriptor, error) {
			return NewDescriptor(), nil
		},
	})
}
