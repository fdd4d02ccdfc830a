package docker

import (
	"maps"
	"path/filepath"
	"slices"
	"strconv"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/mount"
	"github.com/docker/docker/api/types/network"
	"github.com/docker/go-connections/nat"
	"go.trai.ch/navy/internal/core/domain"
)

// ContainerName returns the name of the container running service in env.
func ContainerName(env, service string) string {
	return "navy-" + env + "-" + service
}

// NetworkName returns the name of the network shared by the services of env.
func NetworkName(env string) string {
	return "navy-" + env
}

func resourceLabels(env string) map[string]string {
	return map[string]string{domain.LabelEnvironment: env}
}

// containerConfig translates a service spec into the Docker create parameters.
func containerConfig(
	env string,
	spec *domain.ServiceSpec,
) (*container.Config, *container.HostConfig, *network.NetworkingConfig) {
	labels := maps.Clone(spec.Labels)
	if labels == nil {
		labels = make(map[string]string, 3)
	}
	labels[domain.LabelEnvironment] = env
	labels[domain.LabelService] = spec.Name
	labels[domain.LabelConfigHash] = ConfigHash(env, spec)

	cfg := &container.Config{
		Image:  spec.ImageRef(),
		Labels: labels,
	}
	if len(spec.Command) > 0 {
		cfg.Cmd = slices.Clone(spec.Command)
	}
	for _, k := range slices.Sorted(maps.Keys(spec.Environment)) {
		cfg.Env = append(cfg.Env, k+"="+spec.Environment[k])
	}

	hostCfg := &container.HostConfig{}
	if len(spec.Ports) > 0 {
		exposed := nat.PortSet{}
		bindings := nat.PortMap{}
		for _, internal := range spec.InternalPorts() {
			port := containerPort(internal)
			exposed[port] = struct{}{}

			hostPort := ""
			if external := spec.Ports[internal]; external != domain.AutoPort {
				hostPort = strconv.Itoa(external)
			}
			bindings[port] = []nat.PortBinding{{HostPort: hostPort}}
		}
		cfg.ExposedPorts = exposed
		hostCfg.PortBindings = bindings
	}

	for _, m := range spec.Mounts {
		source := m.Source
		if abs, err := filepath.Abs(source); err == nil {
			source = abs
		}
		hostCfg.Mounts = append(hostCfg.Mounts, mount.Mount{
			Type:     mount.TypeBind,
			Source:   source,
			Target:   m.Target,
			ReadOnly: m.ReadOnly,
		})
	}

	netCfg := &network.NetworkingConfig{
		EndpointsConfig: map[string]*network.EndpointSettings{
			NetworkName(env): {Aliases: []string{spec.Name}},
		},
	}
	return cfg, hostCfg, netCfg
}

func containerPort(internal int) nat.Port {
	return nat.Port(strconv.Itoa(internal) + "/tcp")
}
