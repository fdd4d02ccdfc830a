package pipeline_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/navy/internal/core/domain"
	"go.trai.ch/navy/internal/engine/pipeline"
)

func TestVirtualHost(t *testing.T) {
	assert.Equal(t, "web.dev", pipeline.VirtualHost("", "web", "dev"))
	assert.Equal(t, "web-dev.example.com", pipeline.VirtualHost("{service}-{environment}.example.com", "web", "dev"))
}

func TestVirtualHosts_Idempotent(t *testing.T) {
	set := domain.MustServiceDefinitionSet(
		&domain.ServiceSpec{
			Name:        "web",
			Environment: map[string]string{domain.VirtualHostEnvVar: "stale.example"},
			VirtualHost: true,
		},
		&domain.ServiceSpec{Name: "db"},
	)
	ctx := domain.EnvironmentContext{Name: "staging"}

	once, err := pipeline.VirtualHosts().Apply(set, ctx)
	require.NoError(t, err)
	twice, err := pipeline.VirtualHosts().Apply(once, ctx)
	require.NoError(t, err)

	assert.Equal(t, specs(once), specs(twice))

	web, _ := twice.Get("web")
	assert.Equal(t, "web.staging", web.Environment[domain.VirtualHostEnvVar])
	assert.Equal(t, "web.staging", web.Labels[domain.LabelVirtualHost])
	assert.Len(t, web.Environment, 1)

	db, _ := twice.Get("db")
	assert.Nil(t, db.Environment)
	assert.Nil(t, db.Labels)
}
