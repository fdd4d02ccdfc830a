package environment

import (
	"context"
	"regexp"
	"slices"

	"go.trai.ch/navy/internal/core/domain"
	"go.trai.ch/navy/internal/core/ports"
)

var validName = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9_.-]*$`)

// Registry discovers environments on the runtime and builds handles by name.
type Registry struct {
	config  domain.Config
	loader  ports.DefinitionLoader
	runtime ports.Runtime
	tracer  ports.Tracer
	opts    []Option
}

// NewRegistry creates a registry over an immutable configuration.
func NewRegistry(
	config domain.Config,
	loader ports.DefinitionLoader,
	rt ports.Runtime,
	tracer ports.Tracer,
	opts ...Option,
) *Registry {
	return &Registry{
		config:  config,
		loader:  loader,
		runtime: rt,
		tracer:  tracer,
		opts:    opts,
	}
}

// Config returns the configuration the registry was built with.
func (r *Registry) Config() domain.Config {
	return r.config
}

// Get returns the handle for name whether or not it is launched.
// opts are applied after the registry's own options.
func (r *Registry) Get(name string, opts ...Option) (*Environment, error) {
	if name == "" {
		return nil, domain.ErrEnvironmentNameRequired
	}
	if !validName.MatchString(name) {
		return nil, domain.ErrInvalidEnvironmentName.With("environment", name)
	}
	all := append(slices.Clone(r.opts), opts...)
	return New(r.config.Context(name), r.config.ComposeFile(name), r.loader, r.runtime, r.tracer, all...), nil
}

// List returns a handle for every environment that has resources on the runtime,
// ordered by name. An empty runtime yields an empty list.
func (r *Registry) List(ctx context.Context) ([]*Environment, error) {
	ctx, span := r.tracer.Start(ctx, "registry.list")
	defer span.End()

	names, err := r.runtime.ListEnvironmentNames(ctx)
	if err != nil {
		err = runtimeError(err)
		span.RecordError(err)
		return nil, err
	}
	slices.Sort(names)
	names = slices.Compact(names)

	envs := make([]*Environment, 0, len(names))
	for _, name := range names {
		env, err := r.Get(name)
		if err != nil {
			continue
		}
		envs = append(envs, env)
	}
	span.SetAttribute("environments", len(envs))
	return envs, nil
}
