package pipeline

import (
	"maps"
	"slices"

	"go.trai.ch/navy/internal/core/domain"
)

// NamePortOverride is the name of the port-override middleware.
const NamePortOverride = "port-override"

// PortOverride leaves every port mapping to the runtime unless the environment
// forces an external port for it. It fails when two services force the same
// external port.
func PortOverride() Middleware {
	return Func(NamePortOverride, applyPortOverride)
}

func applyPortOverride(set domain.ServiceDefinitionSet, ctx domain.EnvironmentContext) (domain.ServiceDefinitionSet, error) {
	changed := make([]*domain.ServiceSpec, 0, set.Len())
	for spec := range set.All() {
		forced := ctx.Overrides.Ports[spec.Name]
		if len(spec.Ports) == 0 && len(forced) == 0 {
			continue
		}
		next := spec.Clone()
		next.Ports = make(map[int]int, len(spec.Ports)+len(forced))
		for internal := range spec.Ports {
			next.Ports[internal] = domain.AutoPort
		}
		maps.Copy(next.Ports, forced)
		changed = append(changed, next)
	}
	if len(changed) == 0 {
		return set, nil
	}

	out := set.With(changed...)
	if err := checkPortCollisions(out); err != nil {
		return domain.ServiceDefinitionSet{}, err
	}
	return out, nil
}

// checkPortCollisions walks services and internal ports in order so that the
// reported pair is stable. A service binding one external port twice collides
// with itself.
func checkPortCollisions(set domain.ServiceDefinitionSet) error {
	owners := make(map[int]string)
	for spec := range set.All() {
		for _, internal := range slices.Sorted(maps.Keys(spec.Ports)) {
			external := spec.Ports[internal]
			if external == domain.AutoPort {
				continue
			}
			if owner, ok := owners[external]; ok {
				return domain.ErrPortCollision.
					With("port", external).
					With("service", owner).
					With("conflicting_service", spec.Name)
			}
			owners[external] = spec.Name
		}
	}
	return nil
}
