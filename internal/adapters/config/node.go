package config

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/navy/internal/core/domain"
	"go.trai.ch/navy/internal/core/ports"
)

const (
	// NodeID identifies the config store node.
	NodeID graft.ID = "adapter.config_store"
	// ConfigNodeID identifies the loaded configuration.
	ConfigNodeID graft.ID = "adapter.config"
)

func init() {
	graft.Register(graft.Node[ports.ConfigStore]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ConfigStore, error) {
			return NewStore(domain.DefaultConfigPath()), nil
		},
	})

	graft.Register(graft.Node[domain.Config]{
		ID:        ConfigNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{NodeID},
		Run: func(ctx context.Context) (domain.Config, error) {
			store, err := graft.Dep[ports.ConfigStore](ctx)
			if err != nil {
				return domain.Config{}, err
			}
			return store.Load()
		},
	})
}
