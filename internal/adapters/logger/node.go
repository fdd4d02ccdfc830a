package logger

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/navy/internal/adapters/config"
	"go.trai.ch/navy/internal/core/ports"
)

// NodeID identifies the logger node.
const NodeID graft.ID = "adapter.logger"

func init() {
	graft.Register(graft.Node[ports.Logger]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID},
		Run: func(ctx context.Context) (ports.Logger, error) {
			store, err := graft.Dep[ports.ConfigStore](ctx)
			if err != nil {
				return nil, err
			}
			log := New()
			// A broken config file is reported by the config node; logging keeps its defaults.
			if cfg, err := store.Load(); err == nil {
				log.Configure(cfg.LogLevel, cfg.LogFormat)
			}
			return log, nil
		},
	})
}
