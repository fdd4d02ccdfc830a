package compose

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/navy/internal/core/ports"
)

// NodeID identifies the Compose definition loader node.
const NodeID graft.ID = "adapter.compose"

func init() {
	graft.Register(graft.Node[ports.DefinitionLoader]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.DefinitionLoader, error) {
			return NewLoader(), nil
		},
	})
}
