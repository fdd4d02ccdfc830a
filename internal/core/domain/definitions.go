package domain

import (
	"iter"
	"slices"
	"strings"
)

// ServiceDefinitionSet is an immutable collection of service specs keyed by
// name and ordered by name. It is the value threaded through the pipeline.
//
// Specs returned by the accessors are shared with the set and must not be
// mutated; transforms clone a spec and build a new set with With.
type ServiceDefinitionSet struct {
	names []string
	specs map[string]*ServiceSpec
}

// NewServiceDefinitionSet builds a set from specs. Duplicate names are rejected.
func NewServiceDefinitionSet(specs ...*ServiceSpec) (ServiceDefinitionSet, error) {
	set := ServiceDefinitionSet{
		names: make([]string, 0, len(specs)),
		specs: make(map[string]*ServiceSpec, len(specs)),
	}
	for _, spec := range specs {
		if _, ok := set.specs[spec.Name]; ok {
			return ServiceDefinitionSet{}, ErrDuplicateService.With("service", spec.Name)
		}
		set.specs[spec.Name] = spec
		set.names = append(set.names, spec.Name)
	}
	slices.Sort(set.names)
	return set, nil
}

// MustServiceDefinitionSet is like NewServiceDefinitionSet but panics on duplicates.
func MustServiceDefinitionSet(specs ...*ServiceSpec) ServiceDefinitionSet {
	set, err := NewServiceDefinitionSet(specs...)
	if err != nil {
		panic(err)
	}
	return set
}

// Len returns the number of services in the set.
func (s ServiceDefinitionSet) Len() int {
	return len(s.names)
}

// Names returns the service names in order.
func (s ServiceDefinitionSet) Names() []string {
	return slices.Clone(s.names)
}

// Get returns the spec for name.
func (s ServiceDefinitionSet) Get(name string) (*ServiceSpec, bool) {
	spec, ok := s.specs[name]
	return spec, ok
}

// All iterates over the specs in name order.
func (s ServiceDefinitionSet) All() iter.Seq[*ServiceSpec] {
	return func(yield func(*ServiceSpec) bool) {
		for _, name := range s.names {
			if !yield(s.specs[name]) {
				return
			}
		}
	}
}

// With returns a new set where each given spec replaces or adds the spec of the same name.
func (s ServiceDefinitionSet) With(specs ...*ServiceSpec) ServiceDefinitionSet {
	next := ServiceDefinitionSet{
		names: slices.Clone(s.names),
		specs: make(map[string]*ServiceSpec, len(s.specs)+len(specs)),
	}
	for name, spec := range s.specs {
		next.specs[name] = spec
	}
	for _, spec := range specs {
		if _, ok := next.specs[spec.Name]; !ok {
			next.names = append(next.names, spec.Name)
		}
		next.specs[spec.Name] = spec
	}
	slices.Sort(next.names)
	return next
}

// Select returns the subset named by names. A nil or empty list selects every service.
func (s ServiceDefinitionSet) Select(names []string) (ServiceDefinitionSet, error) {
	if len(names) == 0 {
		return s, nil
	}
	var unknown []string
	picked := make([]*ServiceSpec, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true
		spec, ok := s.specs[name]
		if !ok {
			unknown = append(unknown, name)
			continue
		}
		picked = append(picked, spec)
	}
	if len(unknown) > 0 {
		slices.Sort(unknown)
		return ServiceDefinitionSet{}, ErrUnknownService.With("service", strings.Join(unknown, ", "))
	}
	return NewServiceDefinitionSet(picked...)
}
