package environment

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/navy/internal/adapters/compose"   //nolint:depguard // Wired in engine wiring
	"go.trai.ch/navy/internal/adapters/config"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/navy/internal/adapters/docker"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/navy/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/navy/internal/core/domain"
	"go.trai.ch/navy/internal/core/ports"
)

// RegistryNodeID is the unique identifier for the registry Graft node.
const RegistryNodeID graft.ID = "engine.registry"

func init() {
	graft.Register(graft.Node[*Registry]{
		ID:        RegistryNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.ConfigNodeID,
			compose.NodeID,
			docker.NodeID,
			telemetry.TracerNodeID,
		},
		Run: func(ctx context.Context) (*Registry, error) {
			cfg, err := graft.Dep[domain.Config](ctx)
			if err != nil {
				return nil, err
			}

			loader, err := graft.Dep[ports.DefinitionLoader](ctx)
			if err != nil {
				return nil, err
			}

			rt, err := graft.Dep[ports.Runtime](ctx)
			if err != nil {
				return nil, err
			}

			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}

			return NewRegistry(cfg, loader, rt, tracer), nil
		},
	})
}
