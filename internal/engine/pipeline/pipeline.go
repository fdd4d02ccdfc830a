// Package pipeline transforms service definitions before they are launched.
package pipeline

import (
	"errors"
	"slices"

	"go.trai.ch/navy/internal/core/domain"
)

// Middleware is one transformation step over a set of service definitions.
// Implementations must not mutate the input set or its specs, and must not
// keep references to them between calls.
type Middleware interface {
	Name() string
	Apply(set domain.ServiceDefinitionSet, ctx domain.EnvironmentContext) (domain.ServiceDefinitionSet, error)
}

// ApplyFunc is the signature of a middleware function.
type ApplyFunc func(set domain.ServiceDefinitionSet, ctx domain.EnvironmentContext) (domain.ServiceDefinitionSet, error)

type funcMiddleware struct {
	name string
	fn   ApplyFunc
}

func (m funcMiddleware) Name() string { return m.name }

func (m funcMiddleware) Apply(
	set domain.ServiceDefinitionSet,
	ctx domain.EnvironmentContext,
) (domain.ServiceDefinitionSet, error) {
	return m.fn(set, ctx)
}

// Func adapts a plain function into a named Middleware.
func Func(name string, fn ApplyFunc) Middleware {
	return funcMiddleware{name: name, fn: fn}
}

// Pipeline is an ordered sequence of middleware.
type Pipeline struct {
	steps []Middleware
}

// New creates a pipeline running steps in the given order.
func New(steps ...Middleware) *Pipeline {
	return &Pipeline{steps: slices.Clone(steps)}
}

// Default returns the standard pipeline:
// develop, tag-override, port-override, add-virtual-hosts.
func Default() *Pipeline {
	return New(Develop(), TagOverride(), PortOverride(), VirtualHosts())
}

// Append returns a new pipeline with steps added after the existing ones.
func (p *Pipeline) Append(steps ...Middleware) *Pipeline {
	return &Pipeline{steps: slices.Concat(p.steps, steps)}
}

// Names returns the names of the steps in order.
func (p *Pipeline) Names() []string {
	names := make([]string, 0, len(p.steps))
	for _, step := range p.steps {
		names = append(names, step.Name())
	}
	return names
}

// Apply runs every step in order, feeding each step the previous step's output.
// The first failing step aborts the run.
func (p *Pipeline) Apply(
	set domain.ServiceDefinitionSet,
	ctx domain.EnvironmentContext,
) (domain.ServiceDefinitionSet, error) {
	current := set
	for _, step := range p.steps {
		next, err := step.Apply(current, ctx)
		if err != nil {
			return domain.ServiceDefinitionSet{}, stepError(step.Name(), err)
		}
		current = next
	}
	return current, nil
}

func stepError(name string, err error) error {
	var derr *domain.Error
	if errors.As(err, &derr) {
		if _, ok := derr.Metadata()["middleware"]; ok {
			return err
		}
		if derr.Kind().Is(domain.KindPipeline) {
			return derr.With("middleware", name)
		}
		return err
	}
	return domain.ErrPipeline.With("middleware", name).Wrap(err)
}
