package domain

// DevelopSource locates the live sources of a service in develop mode.
type DevelopSource struct {
	// Path is the host directory mounted into the container.
	Path string
	// Target is the container path. DefaultDevelopTarget is used when empty.
	Target string
	// Image replaces the service image while developing, if set.
	Image string
}

// Overrides are the per-environment settings the pipeline applies.
type Overrides struct {
	Tag                string
	ServiceTags        map[string]string
	Ports              map[string]map[int]int
	Develop            map[string]DevelopSource
	VirtualHostPattern string
}

// EnvironmentContext is the read-only view of an environment given to middleware.
type EnvironmentContext struct {
	Name      string
	Overrides Overrides
}
