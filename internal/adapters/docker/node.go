package docker

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/navy/internal/adapters/config"
	"go.trai.ch/navy/internal/adapters/logger"
	"go.trai.ch/navy/internal/core/domain"
	"go.trai.ch/navy/internal/core/ports"
)

// NodeID identifies the Docker runtime node.
const NodeID graft.ID = "adapter.docker"

func init() {
	graft.Register(graft.Node[ports.Runtime]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.ConfigNodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.Runtime, error) {
			cfg, err := graft.Dep[domain.Config](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			cli, err := NewClient(cfg.DockerHost)
			if err != nil {
				return nil, err
			}
			return NewRuntime(cli, log), nil
		},
	})
}
