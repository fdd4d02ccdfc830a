package environment_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/navy/internal/core/domain"
	"go.trai.ch/navy/internal/engine/environment"
	"go.uber.org/mock/gomock"
)

func TestRegistry_ListEmpty(t *testing.T) {
	m := newMocks(t)
	m.runtime.EXPECT().ListEnvironmentNames(gomock.Any()).Return(nil, nil)

	r := environment.NewRegistry(domain.Config{}, m.loader, m.runtime, m.tracer)
	envs, err := r.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, envs)
	assert.Empty(t, envs)
}

func TestRegistry_ListSorted(t *testing.T) {
	m := newMocks(t)
	m.runtime.EXPECT().ListEnvironmentNames(gomock.Any()).Return([]string{"staging", "dev", "staging"}, nil)

	r := environment.NewRegistry(domain.Config{}, m.loader, m.runtime, m.tracer)
	envs, err := r.List(context.Background())
	require.NoError(t, err)

	names := make([]string, 0, len(envs))
	for _, env := range envs {
		names = append(names, env.Name())
	}
	assert.Equal(t, []string{"dev", "staging"}, names)
}

func TestRegistry_ListRuntimeError(t *testing.T) {
	m := newMocks(t)
	m.runtime.EXPECT().ListEnvironmentNames(gomock.Any()).Return(nil, errors.New("socket closed"))

	r := environment.NewRegistry(domain.Config{}, m.loader, m.runtime, m.tracer)
	_, err := r.List(context.Background())
	require.ErrorIs(t, err, domain.ErrRuntime)
}

func TestRegistry_Get(t *testing.T) {
	cfg := domain.Config{
		Environments: map[string]domain.EnvironmentConfig{
			"staging": {ComposeFile: "stack.yml", Tag: "canary"},
		},
	}

	tests := []struct {
		name    string
		env     string
		wantErr error
	}{
		{name: "configured", env: "staging"},
		{name: "unconfigured is still a handle", env: "dev"},
		{name: "empty", env: "", wantErr: domain.ErrEnvironmentNameRequired},
		{name: "invalid characters", env: "../etc", wantErr: domain.ErrInvalidEnvironmentName},
		{name: "leading dash", env: "-x", wantErr: domain.ErrInvalidEnvironmentName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newMocks(t)
			r := environment.NewRegistry(cfg, m.loader, m.runtime, m.tracer)

			env, err := r.Get(tt.env)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, domain.KindConfiguration, domain.KindOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.env, env.Name())
		})
	}
}

func TestRegistry_GetUsesEnvironmentConfig(t *testing.T) {
	m := newMocks(t)
	cfg := domain.Config{
		Environments: map[string]domain.EnvironmentConfig{
			"staging": {ComposeFile: "stack.yml", Tag: "canary"},
		},
	}
	m.loader.EXPECT().Load(gomock.Any(), "stack.yml").Return(twoServices(), nil)
	m.runtime.EXPECT().CreateAndStart(gomock.Any(), "staging", gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, set domain.ServiceDefinitionSet) error {
			web, _ := set.Get("web")
			assert.Equal(t, "canary", web.Tag)
			assert.Equal(t, "web.staging", web.Labels[domain.LabelVirtualHost])
			return nil
		},
	)

	r := environment.NewRegistry(cfg, m.loader, m.runtime, m.tracer)
	env, err := r.Get("staging")
	require.NoError(t, err)
	require.NoError(t, env.Launch(context.Background(), nil))
}
