// Package compose reads service definitions from Compose files.
package compose

import (
	"context"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strconv"

	"github.com/compose-spec/compose-go/v2/loader"
	"github.com/compose-spec/compose-go/v2/types"
	"github.com/distribution/reference"
	"go.trai.ch/navy/internal/core/domain"
	"go.trai.ch/navy/internal/core/ports"
)

// ProjectName is the Compose project name used while loading definitions.
const ProjectName = "navy"

var _ ports.DefinitionLoader = (*Loader)(nil)

// Loader implements ports.DefinitionLoader for Compose files.
type Loader struct{}

// NewLoader creates a new Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses the Compose file at path. Relative paths in the file resolve
// against the file's directory.
func (l *Loader) Load(ctx context.Context, path string) (domain.ServiceDefinitionSet, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return domain.ServiceDefinitionSet{}, domain.ErrDefinitionsReadFailed.With("path", path).Wrap(err)
	}
	content, err := os.ReadFile(abs) //nolint:gosec // Path comes from the user's configuration
	if err != nil {
		return domain.ServiceDefinitionSet{}, domain.ErrDefinitionsReadFailed.With("path", abs).Wrap(err)
	}

	project, err := loader.LoadWithContext(ctx, types.ConfigDetails{
		WorkingDir:  filepath.Dir(abs),
		ConfigFiles: []types.ConfigFile{{Filename: abs, Content: content}},
		Environment: types.NewMapping(os.Environ()),
	}, func(opts *loader.Options) {
		opts.SetProjectName(ProjectName, true)
	})
	if err != nil {
		return domain.ServiceDefinitionSet{}, domain.ErrDefinitionsParseFailed.With("path", abs).Wrap(err)
	}

	specs := make([]*domain.ServiceSpec, 0, len(project.Services))
	for _, name := range slices.Sorted(maps.Keys(project.Services)) {
		spec, err := convertService(project.Services[name])
		if err != nil {
			return domain.ServiceDefinitionSet{}, err
		}
		specs = append(specs, spec)
	}
	return domain.NewServiceDefinitionSet(specs...)
}

// convertService converts a compose-go service to a navy service spec.
func convertService(svc types.ServiceConfig) (*domain.ServiceSpec, error) {
	spec := &domain.ServiceSpec{
		Name:    svc.Name,
		Command: slices.Clone([]string(svc.Command)),
	}

	if svc.Build != nil {
		spec.Build = &domain.BuildSpec{
			Context:    svc.Build.Context,
			Dockerfile: svc.Build.Dockerfile,
		}
	}

	switch {
	case svc.Image != "":
		image, tag, err := splitImage(svc.Image)
		if err != nil {
			return nil, domain.ErrInvalidImageReference.
				With("service", svc.Name).
				With("image", svc.Image).
				Wrap(err)
		}
		spec.Image, spec.Tag = image, tag
	case spec.Build != nil:
		spec.Image = ProjectName + "-" + svc.Name
		spec.Tag = "latest"
	default:
		return nil, domain.ErrDefinitionsParseFailed.With("service", svc.Name).With("reason", "service has neither image nor build")
	}

	if len(svc.Ports) > 0 {
		spec.Ports = make(map[int]int, len(svc.Ports))
		for _, p := range svc.Ports {
			external := domain.AutoPort
			if p.Published != "" {
				n, err := strconv.Atoi(p.Published)
				if err != nil || n < 0 || n > 65535 {
					return nil, domain.ErrInvalidPort.With("service", svc.Name).With("port", p.Published)
				}
				external = n
			}
			spec.Ports[int(p.Target)] = external
		}
	}

	for k, v := range svc.Environment {
		if v == nil {
			continue
		}
		if spec.Environment == nil {
			spec.Environment = make(map[string]string, len(svc.Environment))
		}
		spec.Environment[k] = *v
	}

	if len(svc.Labels) > 0 {
		spec.Labels = maps.Clone(map[string]string(svc.Labels))
	}

	for _, v := range svc.Volumes {
		if v.Type != types.VolumeTypeBind {
			continue
		}
		spec.Mounts = append(spec.Mounts, domain.Mount{
			Source:   v.Source,
			Target:   v.Target,
			ReadOnly: v.ReadOnly,
		})
	}

	spec.Develop = labelBool(spec.Labels, domain.LabelDevelop, false)
	spec.TagPinned = labelBool(spec.Labels, domain.LabelTagPinned, false)
	spec.VirtualHost = labelBool(spec.Labels, domain.LabelVirtualHostEnabled, len(spec.Ports) > 0)
	return spec, nil
}

// splitImage splits an image reference into its familiar name and tag.
// Untagged references get "latest"; digests are kept in the name.
func splitImage(ref string) (string, string, error) {
	named, err := reference.ParseNormalizedNamed(ref)
	if err != nil {
		return "", "", err
	}
	if _, ok := named.(reference.Digested); ok {
		return reference.FamiliarString(named), "", nil
	}
	named = reference.TagNameOnly(named)
	tagged, ok := named.(reference.Tagged)
	if !ok {
		return reference.FamiliarName(named), "", nil
	}
	return reference.FamiliarName(named), tagged.Tag(), nil
}

func labelBool(labels map[string]string, key string, fallback bool) bool {
	v, ok := labels[key]
	if !ok {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
