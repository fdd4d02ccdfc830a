package ports

import (
	"context"

	"go.trai.ch/navy/internal/core/domain"
)

// DefinitionLoader reads service definitions from a file.
//
//go:generate go run go.uber.org/mock/mockgen -source=definitions.go -destination=mocks/mock_definitions.go -package=mocks
type DefinitionLoader interface {
	// Load parses the definitions file at path.
	Load(ctx context.Context, path string) (domain.ServiceDefinitionSet, error)
}
