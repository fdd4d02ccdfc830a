package pipeline

import (
	"strings"

	"go.trai.ch/navy/internal/core/domain"
)

// NameVirtualHosts is the name of the add-virtual-hosts middleware.
const NameVirtualHosts = "add-virtual-hosts"

// VirtualHosts derives a routing name for every service flagged for routing
// and writes it to the VIRTUAL_HOST variable and the navy.virtual-host label.
// Existing values are overwritten.
func VirtualHosts() Middleware {
	return Func(NameVirtualHosts, applyVirtualHosts)
}

// VirtualHost expands pattern for a service in an environment.
func VirtualHost(pattern, service, environment string) string {
	if pattern == "" {
		pattern = domain.DefaultVirtualHostPattern
	}
	return strings.NewReplacer(
		"{service}", service,
		"{environment}", environment,
	).Replace(pattern)
}

func applyVirtualHosts(set domain.ServiceDefinitionSet, ctx domain.EnvironmentContext) (domain.ServiceDefinitionSet, error) {
	var changed []*domain.ServiceSpec
	for spec := range set.All() {
		if !spec.VirtualHost {
			continue
		}
		host := VirtualHost(ctx.Overrides.VirtualHostPattern, spec.Name, ctx.Name)
		if spec.Environment[domain.VirtualHostEnvVar] == host && spec.Labels[domain.LabelVirtualHost] == host {
			continue
		}
		next := spec.Clone()
		if next.Environment == nil {
			next.Environment = make(map[string]string, 1)
		}
		if next.Labels == nil {
			next.Labels = make(map[string]string, 1)
		}
		next.Environment[domain.VirtualHostEnvVar] = host
		next.Labels[domain.LabelVirtualHost] = host
		changed = append(changed, next)
	}

	if len(changed) == 0 {
		return set, nil
	}
	return set.With(changed...), nil
}
