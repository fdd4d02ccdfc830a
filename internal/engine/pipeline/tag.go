package pipeline

import (
	"go.trai.ch/navy/internal/core/domain"
)

// NameTagOverride is the name of the tag-override middleware.
const NameTagOverride = "tag-override"

// TagOverride rewrites image tags. A per-service tag wins over the global tag,
// which wins over the service's own tag. Pinned services are left alone.
func TagOverride() Middleware {
	return Func(NameTagOverride, applyTagOverride)
}

func applyTagOverride(set domain.ServiceDefinitionSet, ctx domain.EnvironmentContext) (domain.ServiceDefinitionSet, error) {
	o := ctx.Overrides
	if o.Tag == "" && len(o.ServiceTags) == 0 {
		return set, nil
	}

	var changed []*domain.ServiceSpec
	for spec := range set.All() {
		if spec.TagPinned {
			continue
		}
		tag, ok := o.ServiceTags[spec.Name]
		if !ok || tag == "" {
			tag = o.Tag
		}
		if tag == "" || tag == spec.Tag {
			continue
		}
		next := spec.Clone()
		next.Tag = tag
		changed = append(changed, next)
	}

	if len(changed) == 0 {
		return set, nil
	}
	return set.With(changed...), nil
}
