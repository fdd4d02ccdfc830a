package ports

import "go.trai.ch/navy/internal/core/domain"

// ConfigStore loads and persists the navy configuration.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_store.go -destination=mocks/mock_config_store.go -package=mocks
type ConfigStore interface {
	// Load reads the configuration. A missing file yields the defaults.
	Load() (domain.Config, error)

	// SetDefaultEnvironment persists the default environment name.
	SetDefaultEnvironment(name string) error
}
