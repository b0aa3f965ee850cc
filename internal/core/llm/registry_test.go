package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kavehram/ganjine/internal/core/domain"
	apperrors "github.com/kavehram/ganjine/internal/core/errors"
)

type fakeProvider struct {
	name      ProviderName
	priority  int
	available bool
	err       error
	calls     int
}

func (p *fakeProvider) Name() ProviderName { return p.name }

func (p *fakeProvider) IsAvailable() bool { return p.available }

func (p *fakeProvider) Priority() int { return p.priority }

func (p *fakeProvider) ExtractCaption(_ context.Context, _ string) (*domain.CaptionExtraction, error) {
	p.calls++

	if p.err != nil {
		return nil, p.err
	}

	return &domain.CaptionExtraction{DatePhrases: []string{string(p.name)}}, nil
}

func (p *fakeProvider) TranslateNames(_ context.Context, names []string) (map[string]string, error) {
	p.calls++

	if p.err != nil {
		return nil, p.err
	}

	out := make(map[string]string, len(names))
	for _, n := range names {
		out[n] = string(p.name)
	}

	return out, nil
}

func newTestRegistry() *Registry {
	logger := zerolog.Nop()
	return NewRegistry(&logger)
}

func TestRegistryPriorityOrder(t *testing.T) {
	reg := newTestRegistry()

	low := &fakeProvider{name: "low", priority: 10, available: true}
	high := &fakeProvider{name: "high", priority: 100, available: true}

	reg.Register(low, DefaultCircuitBreakerConfig())
	reg.Register(high, DefaultCircuitBreakerConfig())

	got, err := reg.ExtractCaption(context.Background(), "caption")
	require.NoError(t, err)

	assert.Equal(t, []string{"high"}, got.DatePhrases)
	assert.Equal(t, 1, high.calls)
	assert.Zero(t, low.calls)
}

func TestRegistryFallsThroughOnError(t *testing.T) {
	reg := newTestRegistry()

	broken := &fakeProvider{name: "broken", priority: 100, available: true, err: errors.New("boom")}
	backup := &fakeProvider{name: "backup", priority: 10, available: true}

	reg.Register(broken, DefaultCircuitBreakerConfig())
	reg.Register(backup, DefaultCircuitBreakerConfig())

	got, err := reg.ExtractCaption(context.Background(), "caption")
	require.NoError(t, err)

	assert.Equal(t, []string{"backup"}, got.DatePhrases)
	assert.Equal(t, 1, broken.calls)
}

func TestRegistrySkipsUnavailable(t *testing.T) {
	reg := newTestRegistry()

	offline := &fakeProvider{name: "offline", priority: 100, available: false}
	online := &fakeProvider{name: "online", priority: 10, available: true}

	reg.Register(offline, DefaultCircuitBreakerConfig())
	reg.Register(online, DefaultCircuitBreakerConfig())

	got, err := reg.TranslateNames(context.Background(), []string{"تهران"})
	require.NoError(t, err)

	assert.Equal(t, "online", got["تهران"])
	assert.Zero(t, offline.calls)
}

func TestRegistryNoProviders(t *testing.T) {
	reg := newTestRegistry()

	_, err := reg.ExtractCaption(context.Background(), "caption")
	assert.ErrorIs(t, err, apperrors.ErrNoProvidersAvailable)
}

func TestRegistryAllProvidersFailed(t *testing.T) {
	reg := newTestRegistry()

	cause := errors.New("boom")
	reg.Register(&fakeProvider{name: "only", priority: 100, available: true, err: cause}, DefaultCircuitBreakerConfig())

	_, err := reg.ExtractCaption(context.Background(), "caption")
	assert.ErrorIs(t, err, apperrors.ErrAllProvidersFailed)
	assert.ErrorIs(t, err, cause)
}

func TestRegistryCircuitBreakerOpens(t *testing.T) {
	reg := newTestRegistry()

	flaky := &fakeProvider{name: "flaky", priority: 100, available: true, err: errors.New("boom")}
	reg.Register(flaky, CircuitBreakerConfig{Threshold: 2, ResetAfter: time.Hour})

	for range 2 {
		_, err := reg.ExtractCaption(context.Background(), "caption")
		require.Error(t, err)
	}

	// Circuit is open now, so the provider is never called again.
	_, err := reg.ExtractCaption(context.Background(), "caption")
	assert.ErrorIs(t, err, apperrors.ErrNoProvidersAvailable)
	assert.Equal(t, 2, flaky.calls)
}

func TestRegistryTranslateEmptyInput(t *testing.T) {
	reg := newTestRegistry()

	got, err := reg.TranslateNames(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}
