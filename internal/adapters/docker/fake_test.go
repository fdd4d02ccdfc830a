package docker_test

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	cerrdefs "github.com/containerd/errdefs"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/api/types/network"
	"github.com/docker/go-connections/nat"
	ocispec "github.com/opencontainers/image-spec/specs-go/v1"
	"go.trai.ch/zerr"
)

type fakeContainer struct {
	id       string
	name     string
	config   *container.Config
	host     *container.HostConfig
	running  bool
	assigned nat.PortMap
}

// fakeAPI is an in-memory Docker daemon.
type fakeAPI struct {
	mu         sync.Mutex
	nextID     int
	containers map[string]*fakeContainer
	networks   map[string]map[string]string
	images     map[string]bool
	pulls      []string
	creates    int
	removed    []string

	listErr error
}

func newFakeAPI(images ...string) *fakeAPI {
	f := &fakeAPI{
		containers: make(map[string]*fakeContainer),
		networks:   make(map[string]map[string]string),
		images:     make(map[string]bool),
	}
	for _, img := range images {
		f.images[img] = true
	}
	return f
}

func notFound(what string) error {
	return zerr.Wrap(cerrdefs.ErrNotFound, "no such "+what)
}

func (f *fakeAPI) lookup(idOrName string) *fakeContainer {
	if c, ok := f.containers[idOrName]; ok {
		return c
	}
	for _, c := range f.containers {
		if c.id == idOrName {
			return c
		}
	}
	return nil
}

func (f *fakeAPI) ContainerCreate(
	_ context.Context,
	cfg *container.Config,
	host *container.HostConfig,
	_ *network.NetworkingConfig,
	_ *ocispec.Platform,
	name string,
) (container.CreateResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.images[cfg.Image] {
		return container.CreateResponse{}, notFound("image " + cfg.Image)
	}
	if _, ok := f.containers[name]; ok {
		return container.CreateResponse{}, zerr.Wrap(cerrdefs.ErrConflict, "name in use")
	}
	f.nextID++
	f.creates++
	c := &fakeContainer{
		id:     fmt.Sprintf("%064x", f.nextID),
		name:   name,
		config: cfg,
		host:   host,
	}
	f.containers[name] = c
	return container.CreateResponse{ID: c.id}, nil
}

func (f *fakeAPI) ContainerStart(_ context.Context, id string, _ container.StartOptions) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	c := f.lookup(id)
	if c == nil {
		return notFound("container " + id)
	}
	c.running = true
	c.assigned = nat.PortMap{}
	next := 32768
	for port, bindings := range c.host.PortBindings {
		hostPort := bindings[0].HostPort
		if hostPort == "" {
			hostPort = strconv.Itoa(next)
			next++
		}
		c.assigned[port] = []nat.PortBinding{{HostIP: "0.0.0.0", HostPort: hostPort}}
	}
	return nil
}

func (f *fakeAPI) ContainerStop(_ context.Context, id string, _ container.StopOptions) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	c := f.lookup(id)
	if c == nil {
		return notFound("container " + id)
	}
	c.running = false
	c.assigned = nil
	return nil
}

func (f *fakeAPI) ContainerRestart(ctx context.Context, id string, opts container.StopOptions) error {
	if err := f.ContainerStop(ctx, id, opts); err != nil {
		return err
	}
	return f.ContainerStart(ctx, id, container.StartOptions{})
}

func (f *fakeAPI) ContainerKill(ctx context.Context, id, _ string) error {
	return f.ContainerStop(ctx, id, container.StopOptions{})
}

func (f *fakeAPI) ContainerRemove(_ context.Context, id string, opts container.RemoveOptions) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	c := f.lookup(id)
	if c == nil {
		return notFound("container " + id)
	}
	if c.running && !opts.Force {
		return zerr.Wrap(cerrdefs.ErrConflict, "cannot remove a running container")
	}
	delete(f.containers, c.name)
	f.removed = append(f.removed, c.name)
	return nil
}

func (f *fakeAPI) ContainerList(_ context.Context, opts container.ListOptions) ([]container.Summary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.listErr != nil {
		return nil, f.listErr
	}

	var out []container.Summary
	for _, c := range f.containers {
		if !matchLabels(c.config.Labels, opts.Filters.Get("label")) {
			continue
		}
		state := container.StateExited
		if c.running {
			state = container.StateRunning
		}
		out = append(out, container.Summary{
			ID:     c.id,
			Names:  []string{"/" + c.name},
			Image:  c.config.Image,
			Labels: c.config.Labels,
			State:  state,
			Status: "Up",
		})
	}
	return out, nil
}

func (f *fakeAPI) ContainerInspect(_ context.Context, id string) (container.InspectResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	c := f.lookup(id)
	if c == nil {
		return container.InspectResponse{}, notFound("container " + id)
	}
	return container.InspectResponse{
		ContainerJSONBase: &container.ContainerJSONBase{
			ID:    c.id,
			Name:  "/" + c.name,
			State: &container.State{Running: c.running},
		},
		Config: c.config,
		NetworkSettings: &container.NetworkSettings{
			NetworkSettingsBase: container.NetworkSettingsBase{Ports: c.assigned},
		},
	}, nil
}

func (f *fakeAPI) ImagePull(_ context.Context, ref string, _ image.PullOptions) (io.ReadCloser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.pulls = append(f.pulls, ref)
	if strings.Contains(ref, "missing") {
		return nil, notFound("manifest " + ref)
	}
	f.images[ref] = true
	return io.NopCloser(strings.NewReader(`{"status":"Downloaded"}`)), nil
}

func (f *fakeAPI) NetworkCreate(_ context.Context, name string, opts network.CreateOptions) (network.CreateResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.networks[name] = opts.Labels
	return network.CreateResponse{ID: "net-" + name}, nil
}

func (f *fakeAPI) NetworkInspect(_ context.Context, name string, _ network.InspectOptions) (network.Inspect, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.networks[name]; !ok {
		return network.Inspect{}, notFound("network " + name)
	}
	return network.Inspect{Name: name, ID: "net-" + name}, nil
}

func (f *fakeAPI) NetworkRemove(_ context.Context, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.networks[name]; !ok {
		return notFound("network " + name)
	}
	delete(f.networks, name)
	return nil
}

func matchLabels(labels map[string]string, filters []string) bool {
	for _, filter := range filters {
		key, value, hasValue := strings.Cut(filter, "=")
		got, ok := labels[key]
		if !ok || (hasValue && got != value) {
			return false
		}
	}
	return true
}
