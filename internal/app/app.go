// Package app implements the application layer for navy.
package app

import (
	"context"
	"strings"

	"go.trai.ch/navy/internal/core/domain"
	"go.trai.ch/navy/internal/core/ports"
	"go.trai.ch/navy/internal/engine/environment"
)

// Operation names a service lifecycle operation.
type Operation string

// Service lifecycle operations.
const (
	OpLaunch  Operation = "launch"
	OpStart   Operation = "start"
	OpStop    Operation = "stop"
	OpRestart Operation = "restart"
	OpKill    Operation = "kill"
	OpRm      Operation = "rm"
	OpPull    Operation = "pull"
)

type serviceFunc func(*environment.Environment, context.Context, []string) error

var operations = map[Operation]struct {
	run  serviceFunc
	verb string
}{
	OpLaunch:  {(*environment.Environment).Launch, "launched"},
	OpStart:   {(*environment.Environment).Start, "started"},
	OpStop:    {(*environment.Environment).Stop, "stopped"},
	OpRestart: {(*environment.Environment).Restart, "restarted"},
	OpKill:    {(*environment.Environment).Kill, "killed"},
	OpRm:      {(*environment.Environment).Rm, "removed"},
	OpPull:    {(*environment.Environment).Pull, "pulled"},
}

// RunOptions controls a service operation.
type RunOptions struct {
	// FailFast cancels in-flight calls after the first failure.
	FailFast bool
}

// EnvironmentStatus summarises one launched environment.
type EnvironmentStatus struct {
	Name     string                  `json:"name"`
	Default  bool                    `json:"default"`
	State    string                  `json:"state"`
	Services []domain.RunningService `json:"services"`
}

// App represents the main application logic.
type App struct {
	registry *environment.Registry
	store    ports.ConfigStore
	logger   ports.Logger
}

// New creates a new App instance.
func New(registry *environment.Registry, store ports.ConfigStore, logger ports.Logger) *App {
	return &App{
		registry: registry,
		store:    store,
		logger:   logger,
	}
}

// ResolveName picks the environment to act on: the given name, then the
// configured default, then domain.DefaultEnvironmentName.
func (a *App) ResolveName(name string) string {
	if name != "" {
		return name
	}
	if def := a.registry.Config().DefaultEnvironment; def != "" {
		return def
	}
	return domain.DefaultEnvironmentName
}

// Run applies op to services of the named environment. No services means all of them.
func (a *App) Run(ctx context.Context, op Operation, name string, services []string, opts RunOptions) error {
	entry, ok := operations[op]
	if !ok {
		return domain.ErrConfiguration.With("operation", string(op))
	}

	var envOpts []environment.Option
	if opts.FailFast {
		envOpts = append(envOpts, environment.WithFailFast())
	}
	env, err := a.registry.Get(a.ResolveName(name), envOpts...)
	if err != nil {
		return err
	}

	if err := entry.run(env, ctx, services); err != nil {
		return err
	}

	target := "all services"
	if len(services) > 0 {
		target = strings.Join(services, ", ")
	}
	a.logger.Info(entry.verb + " " + target + " in " + env.Name())
	return nil
}

// PS lists the services of the named environment.
func (a *App) PS(ctx context.Context, name string) ([]domain.RunningService, error) {
	env, err := a.registry.Get(a.ResolveName(name))
	if err != nil {
		return nil, err
	}
	return env.PS(ctx)
}

// Port returns the external port bound to a service's internal port.
func (a *App) Port(ctx context.Context, name, service string, internal int) (int, error) {
	env, err := a.registry.Get(a.ResolveName(name))
	if err != nil {
		return 0, err
	}
	return env.Port(ctx, service, internal)
}

// Destroy removes every resource of the named environment.
func (a *App) Destroy(ctx context.Context, name string) error {
	env, err := a.registry.Get(a.ResolveName(name))
	if err != nil {
		return err
	}
	if err := env.Destroy(ctx); err != nil {
		return err
	}
	a.logger.Info("destroyed " + env.Name())
	return nil
}

// Status reports every environment with resources on the runtime.
func (a *App) Status(ctx context.Context) ([]EnvironmentStatus, error) {
	envs, err := a.registry.List(ctx)
	if err != nil {
		return nil, err
	}

	def := a.ResolveName("")
	statuses := make([]EnvironmentStatus, 0, len(envs))
	for _, env := range envs {
		services, err := env.PS(ctx)
		if err != nil {
			return nil, err
		}
		statuses = append(statuses, EnvironmentStatus{
			Name:     env.Name(),
			Default:  env.Name() == def,
			State:    domain.StateOf(false, services).String(),
			Services: services,
		})
	}
	return statuses, nil
}

// SetDefault persists name as the default environment.
func (a *App) SetDefault(name string) error {
	if name == "" {
		name = domain.DefaultEnvironmentName
	}
	if _, err := a.registry.Get(name); err != nil {
		return err
	}
	if err := a.store.SetDefaultEnvironment(name); err != nil {
		return err
	}
	a.logger.Info("default environment set to " + name)
	return nil
}
