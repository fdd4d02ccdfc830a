package pipeline_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/navy/internal/core/domain"
	"go.trai.ch/navy/internal/engine/pipeline"
)

func TestTagOverride(t *testing.T) {
	set := domain.MustServiceDefinitionSet(
		&domain.ServiceSpec{Name: "web", Image: "acme/web", Tag: "latest"},
		&domain.ServiceSpec{Name: "db", Image: "postgres", Tag: "13", TagPinned: true},
		&domain.ServiceSpec{Name: "api", Image: "acme/api", Tag: "latest"},
	)

	tests := []struct {
		name      string
		overrides domain.Overrides
		want      map[string]string
	}{
		{
			name:      "global override skips pinned services",
			overrides: domain.Overrides{Tag: "canary"},
			want:      map[string]string{"web": "canary", "db": "13", "api": "canary"},
		},
		{
			name:      "per-service tag wins over global",
			overrides: domain.Overrides{Tag: "canary", ServiceTags: map[string]string{"api": "v2"}},
			want:      map[string]string{"web": "canary", "db": "13", "api": "v2"},
		},
		{
			name:      "per-service tag without global",
			overrides: domain.Overrides{ServiceTags: map[string]string{"web": "v3"}},
			want:      map[string]string{"web": "v3", "db": "13", "api": "latest"},
		},
		{
			name:      "no configuration is a no-op",
			overrides: domain.Overrides{},
			want:      map[string]string{"web": "latest", "db": "13", "api": "latest"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := pipeline.TagOverride().Apply(set, domain.EnvironmentContext{Name: "dev", Overrides: tt.overrides})
			require.NoError(t, err)

			got := make(map[string]string)
			for spec := range out.All() {
				got[spec.Name] = spec.Tag
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTagOverride_NoConfigReturnsSameSet(t *testing.T) {
	web := &domain.ServiceSpec{Name: "web", Tag: "latest"}
	set := domain.MustServiceDefinitionSet(web)

	out, err := pipeline.TagOverride().Apply(set, domain.EnvironmentContext{Name: "dev"})
	require.NoError(t, err)

	got, _ := out.Get("web")
	assert.Same(t, web, got)
}
