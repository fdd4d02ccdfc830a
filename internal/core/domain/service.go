package domain

import (
	"maps"
	"slices"
)

// AutoPort marks an external port that the runtime assigns.
const AutoPort = 0

// BuildSpec describes how a service image is built from source.
type BuildSpec struct {
	Context    string
	Dockerfile string
}

// Mount is a bind mount from the host into a service container.
type Mount struct {
	Source   string
	Target   string
	ReadOnly bool
}

// ServiceSpec is the declarative description of one service before launch.
type ServiceSpec struct {
	Name      string
	Image     string
	Tag       string
	TagPinned bool
	Build     *BuildSpec
	// Ports maps internal ports to external ports. AutoPort leaves the choice to the runtime.
	Ports       map[int]int
	Environment map[string]string
	Labels      map[string]string
	Mounts      []Mount
	Command     []string
	Develop     bool
	VirtualHost bool
}

// Clone returns a deep copy of the spec.
func (s *ServiceSpec) Clone() *ServiceSpec {
	if s == nil {
		return nil
	}
	c := *s
	if s.Build != nil {
		b := *s.Build
		c.Build = &b
	}
	c.Ports = maps.Clone(s.Ports)
	c.Environment = maps.Clone(s.Environment)
	c.Labels = maps.Clone(s.Labels)
	c.Mounts = slices.Clone(s.Mounts)
	c.Command = slices.Clone(s.Command)
	return &c
}

// ImageRef returns the image reference the runtime should run.
func (s *ServiceSpec) ImageRef() string {
	if s.Tag == "" {
		return s.Image
	}
	return s.Image + ":" + s.Tag
}

// InternalPorts returns the declared internal ports in ascending order.
func (s *ServiceSpec) InternalPorts() []int {
	return slices.Sorted(maps.Keys(s.Ports))
}
