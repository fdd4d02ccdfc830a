// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/navy/internal/core/domain"
)

// Runtime is the container engine that runs the services of an environment.
// Every resource it creates is scoped to a single environment name.
//
//go:generate go run go.uber.org/mock/mockgen -source=runtime.go -destination=mocks/mock_runtime.go -package=mocks
type Runtime interface {
	// CreateAndStart creates (or reuses) and starts a container for every service in set.
	CreateAndStart(ctx context.Context, env string, set domain.ServiceDefinitionSet) error

	// Start starts the existing container of a service.
	Start(ctx context.Context, env, service string) error

	// Stop stops the container of a service.
	Stop(ctx context.Context, env, service string) error

	// Restart restarts the container of a service.
	Restart(ctx context.Context, env, service string) error

	// Kill kills the container of a service.
	Kill(ctx context.Context, env, service string) error

	// Remove removes the stopped container of a service.
	// It fails with domain.ErrResourceBusy if the container is still running.
	Remove(ctx context.Context, env, service string) error

	// Pull pulls the image of a service.
	Pull(ctx context.Context, env string, spec *domain.ServiceSpec) error

	// List returns the services of env known to the runtime, running or not.
	List(ctx context.Context, env string) ([]domain.RunningService, error)

	// PortMapping returns the external port bound to an internal port of a service.
	// It returns 0 when nothing is bound.
	PortMapping(ctx context.Context, env, service string, internal int) (int, error)

	// ListEnvironmentNames returns the names of all environments that have resources.
	ListEnvironmentNames(ctx context.Context) ([]string, error)

	// Destroy removes every resource of env. It is a no-op when none exist.
	Destroy(ctx context.Context, env string) error
}
