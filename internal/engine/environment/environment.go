// Package environment implements the lifecycle of named service environments.
package environment

import (
	"context"
	"errors"
	"runtime"
	"sync"

	"go.trai.ch/navy/internal/core/domain"
	"go.trai.ch/navy/internal/core/ports"
	"go.trai.ch/navy/internal/engine/pipeline"
	"golang.org/x/sync/errgroup"
)

// Option configures an Environment.
type Option func(*Environment)

// WithFailFast cancels pending per-service calls after the first failure.
func WithFailFast() Option {
	return func(e *Environment) {
		e.failFast = true
	}
}

// WithPipeline replaces the default pipeline applied on launch.
func WithPipeline(p *pipeline.Pipeline) Option {
	return func(e *Environment) {
		e.pipeline = p
	}
}

// Environment is a named collection of service definitions and the pipeline
// applied to them. It delegates lifecycle operations to the runtime.
type Environment struct {
	name     string
	envCtx   domain.EnvironmentContext
	runtime  ports.Runtime
	tracer   ports.Tracer
	pipeline *pipeline.Pipeline
	failFast bool

	loader ports.DefinitionLoader
	path   string

	mu      sync.Mutex
	loaded  bool
	defs    domain.ServiceDefinitionSet
	defsErr error
}

// New creates an environment handle. Definitions are read from path on first use.
func New(
	envCtx domain.EnvironmentContext,
	path string,
	loader ports.DefinitionLoader,
	rt ports.Runtime,
	tracer ports.Tracer,
	opts ...Option,
) *Environment {
	e := &Environment{
		name:     envCtx.Name,
		envCtx:   envCtx,
		runtime:  rt,
		tracer:   tracer,
		pipeline: pipeline.Default(),
		loader:   loader,
		path:     path,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Name returns the environment name.
func (e *Environment) Name() string {
	return e.name
}

// Context returns the pipeline context of the environment.
func (e *Environment) Context() domain.EnvironmentContext {
	return e.envCtx
}

// Definitions returns the declared services, before any transformation.
// They are read on first use with the caller's context. A load interrupted by
// ctx is not remembered, so a later call reads again.
func (e *Environment) Definitions(ctx context.Context) (domain.ServiceDefinitionSet, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.loaded {
		return e.defs, e.defsErr
	}
	defs, err := e.loader.Load(ctx, e.path)
	if err != nil && ctx.Err() != nil {
		return domain.ServiceDefinitionSet{}, err
	}
	e.defs, e.defsErr, e.loaded = defs, err, true
	return defs, err
}

func (e *Environment) selectServices(ctx context.Context, names []string) (domain.ServiceDefinitionSet, error) {
	defs, err := e.Definitions(ctx)
	if err != nil {
		return domain.ServiceDefinitionSet{}, err
	}
	return defs.Select(names)
}

func (e *Environment) startSpan(ctx context.Context, op string) (context.Context, ports.Span) {
	ctx, span := e.tracer.Start(ctx, "environment."+op)
	span.SetAttribute("environment", e.name)
	return ctx, span
}

// Launch applies the pipeline to the selected services and asks the runtime to
// create and start them. No names selects every declared service.
func (e *Environment) Launch(ctx context.Context, names []string) (err error) {
	ctx, span := e.startSpan(ctx, "launch")
	defer func() {
		if err != nil {
			span.RecordError(err)
		}
		span.End()
	}()

	selected, err := e.selectServices(ctx, names)
	if err != nil {
		return err
	}
	transformed, err := e.pipeline.Apply(selected, e.envCtx)
	if err != nil {
		return err
	}
	span.SetAttribute("services", transformed.Len())

	if err := e.runtime.CreateAndStart(ctx, e.name, transformed); err != nil {
		return runtimeError(err)
	}
	return nil
}

// Start starts the selected services.
func (e *Environment) Start(ctx context.Context, names []string) error {
	return e.each(ctx, "start", names, func(ctx context.Context, spec *domain.ServiceSpec) error {
		return e.runtime.Start(ctx, e.name, spec.Name)
	})
}

// Stop stops the selected services.
func (e *Environment) Stop(ctx context.Context, names []string) error {
	return e.each(ctx, "stop", names, func(ctx context.Context, spec *domain.ServiceSpec) error {
		return e.runtime.Stop(ctx, e.name, spec.Name)
	})
}

// Restart restarts the selected services.
func (e *Environment) Restart(ctx context.Context, names []string) error {
	return e.each(ctx, "restart", names, func(ctx context.Context, spec *domain.ServiceSpec) error {
		return e.runtime.Restart(ctx, e.name, spec.Name)
	})
}

// Kill kills the selected services.
func (e *Environment) Kill(ctx context.Context, names []string) error {
	return e.each(ctx, "kill", names, func(ctx context.Context, spec *domain.ServiceSpec) error {
		return e.runtime.Kill(ctx, e.name, spec.Name)
	})
}

// Rm removes the selected services. Running services are not stopped first;
// the runtime's refusal surfaces as domain.ErrResourceBusy.
func (e *Environment) Rm(ctx context.Context, names []string) error {
	return e.each(ctx, "rm", names, func(ctx context.Context, spec *domain.ServiceSpec) error {
		return e.runtime.Remove(ctx, e.name, spec.Name)
	})
}

// Pull pulls the images of the selected services.
func (e *Environment) Pull(ctx context.Context, names []string) error {
	return e.each(ctx, "pull", names, func(ctx context.Context, spec *domain.ServiceSpec) error {
		return e.runtime.Pull(ctx, e.name, spec)
	})
}

// PS returns the services the runtime reports for this environment.
func (e *Environment) PS(ctx context.Context) ([]domain.RunningService, error) {
	ctx, span := e.startSpan(ctx, "ps")
	defer span.End()

	services, err := e.runtime.List(ctx, e.name)
	if err != nil {
		err = runtimeError(err)
		span.RecordError(err)
		return nil, err
	}
	return services, nil
}

// Port returns the external port bound to an internal port of a service.
func (e *Environment) Port(ctx context.Context, service string, internal int) (port int, err error) {
	ctx, span := e.startSpan(ctx, "port")
	defer func() {
		if err != nil {
			span.RecordError(err)
		}
		span.End()
	}()

	if _, err := e.selectServices(ctx, []string{service}); err != nil {
		return 0, err
	}
	port, err = e.runtime.PortMapping(ctx, e.name, service, internal)
	if err != nil {
		return 0, runtimeError(err)
	}
	if port == 0 {
		return 0, domain.ErrServiceNotRunning.
			With("service", service).
			With("port", internal)
	}
	return port, nil
}

// Destroy removes every resource of the environment. Confirmation is the caller's concern.
func (e *Environment) Destroy(ctx context.Context) error {
	ctx, span := e.startSpan(ctx, "destroy")
	defer span.End()

	if err := e.runtime.Destroy(ctx, e.name); err != nil {
		err = runtimeError(err)
		span.RecordError(err)
		return err
	}
	return nil
}

// State derives the lifecycle state from the definitions and the runtime.
func (e *Environment) State(ctx context.Context) (domain.State, error) {
	_, defsErr := e.Definitions(ctx)
	services, err := e.PS(ctx)
	if err != nil {
		return domain.StateUndeclared, err
	}
	return domain.StateOf(defsErr == nil, services), nil
}

// each runs fn concurrently for every selected service and aggregates failures.
func (e *Environment) each(
	ctx context.Context,
	op string,
	names []string,
	fn func(context.Context, *domain.ServiceSpec) error,
) (err error) {
	ctx, span := e.startSpan(ctx, op)
	defer func() {
		if err != nil {
			span.RecordError(err)
		}
		span.End()
	}()

	selected, err := e.selectServices(ctx, names)
	if err != nil {
		return err
	}
	span.SetAttribute("services", selected.Len())

	g, gctx := new(errgroup.Group), ctx
	if e.failFast {
		g, gctx = errgroup.WithContext(ctx)
	}
	g.SetLimit(runtime.NumCPU())

	var (
		mu       sync.Mutex
		failures []domain.ServiceFailure
	)
	record := func(service string, err error) {
		mu.Lock()
		defer mu.Unlock()
		failures = append(failures, domain.ServiceFailure{Service: service, Err: err})
	}

	for spec := range selected.All() {
		g.Go(func() error {
			if gctx.Err() != nil {
				if ctx.Err() == nil {
					// Cancelled by an earlier failure in fail-fast mode.
					return nil
				}
				record(spec.Name, ctx.Err())
				return ctx.Err()
			}
			if err := fn(gctx, spec); err != nil {
				err = runtimeError(err)
				record(spec.Name, err)
				return err
			}
			return nil
		})
	}
	_ = g.Wait()

	if len(failures) == 0 {
		return nil
	}
	return domain.NewAggregateError(failures)
}

// runtimeError tags errors the runtime did not classify.
func runtimeError(err error) error {
	if domain.KindOf(err) != domain.KindUnknown {
		return err
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return domain.ErrRuntime.Wrap(err)
}
