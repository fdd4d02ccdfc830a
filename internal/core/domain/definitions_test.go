package domain_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/navy/internal/core/domain"
)

func TestNewServiceDefinitionSet(t *testing.T) {
	t.Run("orders by name", func(t *testing.T) {
		set, err := domain.NewServiceDefinitionSet(
			&domain.ServiceSpec{Name: "web"},
			&domain.ServiceSpec{Name: "db"},
			&domain.ServiceSpec{Name: "cache"},
		)
		require.NoError(t, err)
		assert.Equal(t, []string{"cache", "db", "web"}, set.Names())
		assert.Equal(t, 3, set.Len())

		var seen []string
		for spec := range set.All() {
			seen = append(seen, spec.Name)
		}
		assert.Equal(t, set.Names(), seen)
	})

	t.Run("rejects duplicates", func(t *testing.T) {
		_, err := domain.NewServiceDefinitionSet(
			&domain.ServiceSpec{Name: "web"},
			&domain.ServiceSpec{Name: "web"},
		)
		require.ErrorIs(t, err, domain.ErrDuplicateService)
		assert.Equal(t, domain.KindConfiguration, domain.KindOf(err))
	})
}

func TestServiceDefinitionSet_Select(t *testing.T) {
	set := domain.MustServiceDefinitionSet(
		&domain.ServiceSpec{Name: "web"},
		&domain.ServiceSpec{Name: "db"},
	)

	tests := []struct {
		name    string
		names   []string
		want    []string
		wantErr error
	}{
		{name: "nil selects all", names: nil, want: []string{"db", "web"}},
		{name: "empty selects all", names: []string{}, want: []string{"db", "web"}},
		{name: "subset", names: []string{"web"}, want: []string{"web"}},
		{name: "duplicates collapse", names: []string{"web", "web"}, want: []string{"web"}},
		{name: "unknown service", names: []string{"web", "queue"}, wantErr: domain.ErrUnknownService},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := set.Select(tt.names)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Names())
		})
	}
}

func TestServiceDefinitionSet_With(t *testing.T) {
	web := &domain.ServiceSpec{Name: "web", Tag: "1"}
	set := domain.MustServiceDefinitionSet(web)

	updated := web.Clone()
	updated.Tag = "2"
	next := set.With(updated, &domain.ServiceSpec{Name: "api"})

	got, ok := set.Get("web")
	require.True(t, ok)
	assert.Equal(t, "1", got.Tag, "original set must be unchanged")

	got, ok = next.Get("web")
	require.True(t, ok)
	assert.Equal(t, "2", got.Tag)
	assert.Equal(t, []string{"api", "web"}, next.Names())
}

func TestServiceSpec_Clone(t *testing.T) {
	spec := &domain.ServiceSpec{
		Name:        "web",
		Build:       &domain.BuildSpec{Context: "./web"},
		Ports:       map[int]int{80: 8080},
		Environment: map[string]string{"A": "1"},
		Mounts:      []domain.Mount{{Source: "/src", Target: "/app"}},
	}

	c := spec.Clone()
	c.Build.Context = "./other"
	c.Ports[80] = 9090
	c.Environment["A"] = "2"
	c.Mounts[0].Source = "/other"

	assert.Equal(t, "./web", spec.Build.Context)
	assert.Equal(t, 8080, spec.Ports[80])
	assert.Equal(t, "1", spec.Environment["A"])
	assert.Equal(t, "/src", spec.Mounts[0].Source)
}

func TestServiceSpec_ImageRef(t *testing.T) {
	assert.Equal(t, "nginx:1.27", (&domain.ServiceSpec{Image: "nginx", Tag: "1.27"}).ImageRef())
	assert.Equal(t, "nginx", (&domain.ServiceSpec{Image: "nginx"}).ImageRef())
}

func TestServiceSpec_InternalPorts(t *testing.T) {
	spec := &domain.ServiceSpec{Ports: map[int]int{443: 0, 80: 0, 8080: 0}}
	assert.True(t, slices.IsSorted(spec.InternalPorts()))
	assert.Equal(t, []int{80, 443, 8080}, spec.InternalPorts())
}
