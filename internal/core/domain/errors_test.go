package domain_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/navy/internal/core/domain"
)

func TestKind_Is(t *testing.T) {
	tests := []struct {
		name   string
		kind   domain.Kind
		target domain.Kind
		want   bool
	}{
		{"same kind", domain.KindRuntime, domain.KindRuntime, true},
		{"port collision is a pipeline error", domain.KindPortCollision, domain.KindPipeline, true},
		{"pipeline is not a port collision", domain.KindPipeline, domain.KindPortCollision, false},
		{"unrelated kinds", domain.KindResourceBusy, domain.KindRuntime, false},
		{"unknown matches nothing", domain.KindUnknown, domain.KindUnknown, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.kind.Is(tt.target))
		})
	}
}

func TestError_With(t *testing.T) {
	err := domain.ErrPortCollision.
		With("port", 8080).
		With("service", "api")

	assert.Equal(t, domain.KindPortCollision, err.Kind())
	assert.Equal(t, 8080, err.Metadata()["port"])
	assert.Equal(t, "api", err.Metadata()["service"])
	assert.ErrorIs(t, err, domain.ErrPortCollision)
	assert.ErrorIs(t, err, domain.ErrPipeline)
	assert.NotErrorIs(t, err, domain.ErrRuntime)

	// Sentinels are never modified.
	assert.Empty(t, domain.ErrPortCollision.Metadata())
}

func TestError_Wrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := domain.ErrRuntime.With("service", "db").Wrap(cause)

	require.ErrorIs(t, err, cause)
	assert.Equal(t, domain.KindRuntime, domain.KindOf(err))
	assert.Equal(t, "db", err.Metadata()["service"])
	assert.Contains(t, err.Error(), "connection refused")
	assert.Equal(t, domain.ErrRuntime.Message(), err.Message())
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, domain.KindUnknown, domain.KindOf(errors.New("plain")))
	assert.Equal(t, domain.KindUnknown, domain.KindOf(nil))
	assert.Equal(t, domain.KindConfiguration, domain.KindOf(domain.ErrInvalidEnvironmentName))

	agg := domain.NewAggregateError([]domain.ServiceFailure{
		{Service: "web", Err: domain.ErrRuntime},
	})
	assert.Equal(t, domain.KindAggregate, domain.KindOf(agg))
}

func TestAggregateError(t *testing.T) {
	webErr := domain.ErrRuntime.With("service", "web")
	dbErr := domain.ErrResourceBusy.With("service", "db")

	agg := domain.NewAggregateError([]domain.ServiceFailure{
		{Service: "web", Err: webErr},
		{Service: "db", Err: dbErr},
	})

	assert.Equal(t, []string{"db", "web"}, agg.Services())
	assert.ErrorIs(t, agg, domain.ErrAggregate)
	assert.ErrorIs(t, agg, domain.ErrResourceBusy)
	assert.ErrorIs(t, agg, domain.ErrRuntime)
	assert.NotErrorIs(t, agg, domain.ErrUnknownService)
	assert.Contains(t, agg.Error(), "(db, web)")

	var target *domain.Error
	require.ErrorAs(t, agg, &target)
}

func TestError_IsMatchesOrigin(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		target error
		want   bool
	}{
		{"derived from target", domain.ErrInvalidPort.With("port", "http"), domain.ErrInvalidPort, true},
		{"wrapped keeps origin", domain.ErrConfigParseFailed.With("path", "x").Wrap(errors.New("bad")), domain.ErrConfigParseFailed, true},
		{"sibling sentinels of one kind", domain.ErrConfirmationRequired, domain.ErrDuplicateService, false},
		{"collision is not a missing develop source", domain.ErrPortCollision.With("port", 80), domain.ErrDevelopSourceMissing, false},
		{"leaf matches its kind sentinel", domain.ErrDuplicateService, domain.ErrConfiguration, true},
		{"collision matches pipeline", domain.ErrPortCollision, domain.ErrPipeline, true},
		{"kind sentinel does not match a leaf", domain.ErrConfiguration, domain.ErrInvalidPort, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errors.Is(tt.err, tt.target))
		})
	}
}
