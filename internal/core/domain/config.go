package domain

import (
	"maps"
)

// EnvironmentConfig is the configuration of one named environment.
type EnvironmentConfig struct {
	ComposeFile        string
	Tag                string
	ServiceTags        map[string]string
	Ports              map[string]map[int]int
	Develop            map[string]DevelopSource
	VirtualHostPattern string
}

// Config is the navy configuration. It is loaded once and never mutated.
type Config struct {
	DefaultEnvironment string
	LogLevel           string
	LogFormat          string
	DockerHost         string
	Environments       map[string]EnvironmentConfig
}

// Environment returns the configuration of the named environment.
// Unconfigured environments get the zero value.
func (c Config) Environment(name string) EnvironmentConfig {
	return c.Environments[name]
}

// ComposeFile returns the definitions file for the named environment.
func (c Config) ComposeFile(name string) string {
	if f := c.Environments[name].ComposeFile; f != "" {
		return f
	}
	return DefaultComposeFile
}

// Context builds the pipeline context of the named environment.
func (c Config) Context(name string) EnvironmentContext {
	env := c.Environments[name]
	ports := make(map[string]map[int]int, len(env.Ports))
	for svc, m := range env.Ports {
		ports[svc] = maps.Clone(m)
	}
	pattern := env.VirtualHostPattern
	if pattern == "" {
		pattern = DefaultVirtualHostPattern
	}
	return EnvironmentContext{
		Name: name,
		Overrides: Overrides{
			Tag:                env.Tag,
			ServiceTags:        maps.Clone(env.ServiceTags),
			Ports:              ports,
			Develop:            maps.Clone(env.Develop),
			VirtualHostPattern: pattern,
		},
	}
}
