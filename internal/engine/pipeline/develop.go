package pipeline

import (
	"slices"

	"go.trai.ch/navy/internal/core/domain"
)

// NameDevelop is the name of the develop middleware.
const NameDevelop = "develop"

// Develop mounts the live sources of every service flagged for development
// and pins its tag so that no tag override applies afterwards.
func Develop() Middleware {
	return Func(NameDevelop, applyDevelop)
}

func applyDevelop(set domain.ServiceDefinitionSet, ctx domain.EnvironmentContext) (domain.ServiceDefinitionSet, error) {
	var changed []*domain.ServiceSpec
	for spec := range set.All() {
		if !spec.Develop {
			continue
		}

		src := ctx.Overrides.Develop[spec.Name]
		path := src.Path
		if path == "" && spec.Build != nil {
			path = spec.Build.Context
		}
		if path == "" {
			return domain.ServiceDefinitionSet{}, domain.ErrDevelopSourceMissing.With("service", spec.Name)
		}
		target := src.Target
		if target == "" {
			target = spec.Labels[domain.LabelDevelopTarget]
		}
		if target == "" {
			target = domain.DefaultDevelopTarget
		}

		next := spec.Clone()
		next.Mounts = slices.DeleteFunc(next.Mounts, func(m domain.Mount) bool {
			return m.Target == target
		})
		next.Mounts = append(next.Mounts, domain.Mount{Source: path, Target: target})
		if src.Image != "" {
			next.Image = src.Image
		}
		next.TagPinned = true
		changed = append(changed, next)
	}

	if len(changed) == 0 {
		return set, nil
	}
	return set.With(changed...), nil
}
