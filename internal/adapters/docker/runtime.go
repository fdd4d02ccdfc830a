package docker

import (
	"context"
	"io"
	"maps"
	"slices"
	"strconv"
	"strings"

	cerrdefs "github.com/containerd/errdefs"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/filters"
	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/api/types/network"
	"go.trai.ch/navy/internal/core/domain"
	"go.trai.ch/navy/internal/core/ports"
)

var _ ports.Runtime = (*Runtime)(nil)

// Runtime runs navy environments as labelled Docker containers on one network
// per environment.
type Runtime struct {
	api    API
	logger ports.Logger
}

// NewRuntime creates a runtime over a Docker API client.
func NewRuntime(api API, logger ports.Logger) *Runtime {
	return &Runtime{api: api, logger: logger}
}

// CreateAndStart creates and starts a container for every service in set.
// Containers whose configuration hash is unchanged are reused, the rest are recreated.
func (r *Runtime) CreateAndStart(ctx context.Context, env string, set domain.ServiceDefinitionSet) error {
	if err := r.ensureNetwork(ctx, env); err != nil {
		return err
	}

	existing, err := r.containers(ctx, env)
	if err != nil {
		return err
	}

	for spec := range set.All() {
		if err := r.launch(ctx, env, spec, existing[spec.Name]); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runtime) launch(ctx context.Context, env string, spec *domain.ServiceSpec, current *container.Summary) error {
	cfg, hostCfg, netCfg := containerConfig(env, spec)
	hash := cfg.Labels[domain.LabelConfigHash]

	if current != nil {
		if current.Labels[domain.LabelConfigHash] == hash {
			if current.State == container.StateRunning {
				r.logger.Debug("service " + spec.Name + " is up to date")
				return nil
			}
			r.logger.Debug("starting existing container for " + spec.Name)
			return mapError(r.api.ContainerStart(ctx, current.ID, container.StartOptions{}), opStart, spec.Name)
		}
		r.logger.Debug("configuration of " + spec.Name + " changed, recreating")
		if err := r.api.ContainerRemove(ctx, current.ID, container.RemoveOptions{Force: true}); err != nil &&
			!cerrdefs.IsNotFound(err) {
			return mapError(err, opRemove, spec.Name)
		}
	}

	name := ContainerName(env, spec.Name)
	resp, err := r.api.ContainerCreate(ctx, cfg, hostCfg, netCfg, nil, name)
	if err != nil && cerrdefs.IsNotFound(err) {
		r.logger.Info("pulling " + cfg.Image)
		if pullErr := r.pull(ctx, cfg.Image); pullErr != nil {
			return mapError(pullErr, opPull, spec.Name)
		}
		resp, err = r.api.ContainerCreate(ctx, cfg, hostCfg, netCfg, nil, name)
	}
	if err != nil {
		// A missing image after a pull is a runtime failure, not a stopped service.
		if cerrdefs.IsNotFound(err) {
			return domain.ErrRuntime.With("operation", opCreate).With("service", spec.Name).Wrap(err)
		}
		return mapError(err, opCreate, spec.Name)
	}

	if err := r.api.ContainerStart(ctx, resp.ID, container.StartOptions{}); err != nil {
		return mapError(err, opStart, spec.Name)
	}
	return nil
}

// Start starts the container of service.
func (r *Runtime) Start(ctx context.Context, env, service string) error {
	return mapError(r.api.ContainerStart(ctx, ContainerName(env, service), container.StartOptions{}), opStart, service)
}

// Stop stops the container of service.
func (r *Runtime) Stop(ctx context.Context, env, service string) error {
	return mapError(r.api.ContainerStop(ctx, ContainerName(env, service), container.StopOptions{}), opStop, service)
}

// Restart restarts the container of service.
func (r *Runtime) Restart(ctx context.Context, env, service string) error {
	return mapError(r.api.ContainerRestart(ctx, ContainerName(env, service), container.StopOptions{}), opRestart, service)
}

// Kill sends SIGKILL to the container of service.
func (r *Runtime) Kill(ctx context.Context, env, service string) error {
	return mapError(r.api.ContainerKill(ctx, ContainerName(env, service), "SIGKILL"), opKill, service)
}

// Remove removes the container of service. A running container is refused
// with domain.ErrResourceBusy.
func (r *Runtime) Remove(ctx context.Context, env, service string) error {
	return mapError(r.api.ContainerRemove(ctx, ContainerName(env, service), container.RemoveOptions{}), opRemove, service)
}

// Pull pulls the image of a service. The image of an existing container wins
// over the declared one, so that pulls follow what launch last applied.
func (r *Runtime) Pull(ctx context.Context, env string, spec *domain.ServiceSpec) error {
	ref := spec.ImageRef()
	resp, err := r.api.ContainerInspect(ctx, ContainerName(env, spec.Name))
	switch {
	case err == nil && resp.Config != nil && resp.Config.Image != "":
		ref = resp.Config.Image
	case err != nil && !cerrdefs.IsNotFound(err):
		return mapError(err, opInspect, spec.Name)
	}

	r.logger.Info("pulling " + ref)
	if err := r.pull(ctx, ref); err != nil {
		// A missing image is not a missing service.
		if cerrdefs.IsNotFound(err) {
			return domain.ErrRuntime.With("operation", opPull).With("service", spec.Name).Wrap(err)
		}
		return mapError(err, opPull, spec.Name)
	}
	return nil
}

func (r *Runtime) pull(ctx context.Context, ref string) error {
	rc, err := r.api.ImagePull(ctx, ref, image.PullOptions{})
	if err != nil {
		return err
	}
	defer rc.Close() //nolint:errcheck // Best effort close in defer

	// The pull only completes once the progress stream is drained.
	_, err = io.Copy(io.Discard, rc)
	return err
}

// List returns the services of env, running or not, ordered by name.
func (r *Runtime) List(ctx context.Context, env string) ([]domain.RunningService, error) {
	summaries, err := r.api.ContainerList(ctx, container.ListOptions{
		All:     true,
		Filters: filters.NewArgs(filters.Arg("label", domain.LabelEnvironment+"="+env)),
	})
	if err != nil {
		return nil, mapError(err, opList, "")
	}

	services := make([]domain.RunningService, 0, len(summaries))
	for _, c := range summaries {
		name := c.Labels[domain.LabelService]
		if name == "" && len(c.Names) > 0 {
			name = strings.TrimPrefix(c.Names[0], "/")
		}
		services = append(services, domain.RunningService{
			ID:     shortID(c.ID),
			Name:   name,
			Image:  c.Image,
			Status: c.Status,
			State:  c.State,
		})
	}
	slices.SortFunc(services, func(a, b domain.RunningService) int {
		return strings.Compare(a.Name, b.Name)
	})
	return services, nil
}

// PortMapping returns the host port bound to internal, or 0 when there is none.
func (r *Runtime) PortMapping(ctx context.Context, env, service string, internal int) (int, error) {
	resp, err := r.api.ContainerInspect(ctx, ContainerName(env, service))
	if err != nil {
		return 0, mapError(err, opInspect, service)
	}
	if resp.ContainerJSONBase == nil || resp.State == nil || !resp.State.Running || resp.NetworkSettings == nil {
		return 0, nil
	}

	for _, binding := range resp.NetworkSettings.Ports[containerPort(internal)] {
		if binding.HostPort == "" {
			continue
		}
		port, err := strconv.Atoi(binding.HostPort)
		if err != nil {
			return 0, domain.ErrRuntime.
				With("operation", opInspect).
				With("service", service).
				With("host_port", binding.HostPort).
				Wrap(err)
		}
		return port, nil
	}
	return 0, nil
}

// ListEnvironmentNames returns every environment that owns at least one container.
func (r *Runtime) ListEnvironmentNames(ctx context.Context) ([]string, error) {
	summaries, err := r.api.ContainerList(ctx, container.ListOptions{
		All:     true,
		Filters: filters.NewArgs(filters.Arg("label", domain.LabelEnvironment)),
	})
	if err != nil {
		return nil, mapError(err, opList, "")
	}

	names := make([]string, 0, len(summaries))
	for _, c := range summaries {
		if name := c.Labels[domain.LabelEnvironment]; name != "" {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return slices.Compact(names), nil
}

// Destroy force-removes every container of env and its network.
func (r *Runtime) Destroy(ctx context.Context, env string) error {
	existing, err := r.containers(ctx, env)
	if err != nil {
		return err
	}

	for _, service := range slices.Sorted(maps.Keys(existing)) {
		c := existing[service]
		err := r.api.ContainerRemove(ctx, c.ID, container.RemoveOptions{Force: true, RemoveVolumes: true})
		if err != nil && !cerrdefs.IsNotFound(err) {
			return mapError(err, opRemove, service)
		}
	}

	if err := r.api.NetworkRemove(ctx, NetworkName(env)); err != nil && !cerrdefs.IsNotFound(err) {
		return mapError(err, opNetwork, "")
	}
	return nil
}

// containers returns the containers of env keyed by service name.
func (r *Runtime) containers(ctx context.Context, env string) (map[string]*container.Summary, error) {
	summaries, err := r.api.ContainerList(ctx, container.ListOptions{
		All:     true,
		Filters: filters.NewArgs(filters.Arg("label", domain.LabelEnvironment+"="+env)),
	})
	if err != nil {
		return nil, mapError(err, opList, "")
	}

	byService := make(map[string]*container.Summary, len(summaries))
	for i := range summaries {
		c := &summaries[i]
		if service := c.Labels[domain.LabelService]; service != "" {
			byService[service] = c
		}
	}
	return byService, nil
}

func (r *Runtime) ensureNetwork(ctx context.Context, env string) error {
	name := NetworkName(env)
	_, err := r.api.NetworkInspect(ctx, name, network.InspectOptions{})
	if err == nil {
		return nil
	}
	if !cerrdefs.IsNotFound(err) {
		return mapError(err, opNetwork, "")
	}

	r.logger.Debug("creating network " + name)
	_, err = r.api.NetworkCreate(ctx, name, network.CreateOptions{
		Driver: "bridge",
		Labels: resourceLabels(env),
	})
	if err != nil && !cerrdefs.IsConflict(err) {
		return mapError(err, opNetwork, "")
	}
	return nil
}

func shortID(id string) string {
	if len(id) > 12 {
		return id[:12]
	}
	return id
}
