package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/navy/internal/core/domain"
)

func TestConfig_Context(t *testing.T) {
	cfg := domain.Config{
		Environments: map[string]domain.EnvironmentConfig{
			"staging": {
				ComposeFile: "staging.yml",
				Tag:         "canary",
				ServiceTags: map[string]string{"db": "13"},
				Ports:       map[string]map[int]int{"web": {80: 8080}},
			},
		},
	}

	ctx := cfg.Context("staging")
	assert.Equal(t, "staging", ctx.Name)
	assert.Equal(t, "canary", ctx.Overrides.Tag)
	assert.Equal(t, "13", ctx.Overrides.ServiceTags["db"])
	assert.Equal(t, 8080, ctx.Overrides.Ports["web"][80])
	assert.Equal(t, domain.DefaultVirtualHostPattern, ctx.Overrides.VirtualHostPattern)

	// The context is a copy.
	ctx.Overrides.Ports["web"][80] = 1
	assert.Equal(t, 8080, cfg.Environments["staging"].Ports["web"][80])

	assert.Equal(t, "staging.yml", cfg.ComposeFile("staging"))
	assert.Equal(t, domain.DefaultComposeFile, cfg.ComposeFile("dev"))
}

func TestStateOf(t *testing.T) {
	running := domain.RunningService{Name: "web", State: "running"}
	exited := domain.RunningService{Name: "db", State: "exited"}

	tests := []struct {
		name     string
		declared bool
		services []domain.RunningService
		want     domain.State
	}{
		{"nothing", false, nil, domain.StateUndeclared},
		{"declared only", true, nil, domain.StateDeclaredNotLaunched},
		{"one running", true, []domain.RunningService{exited, running}, domain.StateLaunched},
		{"all exited", true, []domain.RunningService{exited}, domain.StateStopped},
		{"resources without definitions", false, []domain.RunningService{exited}, domain.StateStopped},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.StateOf(tt.declared, tt.services))
		})
	}
}
