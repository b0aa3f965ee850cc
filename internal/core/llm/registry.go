package llm

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/kavehram/ganjine/internal/core/domain"
	apperrors "github.com/kavehram/ganjine/internal/core/errors"
	"github.com/kavehram/ganjine/internal/platform/observability"
)

// Log key constants.
const (
	logKeyProvider = "provider"
	logKeyTask     = "task"
)

// Registry manages LLM providers with priority ordering and fallback.
type Registry struct {
	mu       sync.RWMutex
	order    []ProviderName
	members  map[ProviderName]Provider
	breakers map[ProviderName]*circuitBreaker
	logger   *zerolog.Logger
}

// NewRegistry creates an empty provider registry.
func NewRegistry(logger *zerolog.Logger) *Registry {
	return &Registry{
		members:  make(map[ProviderName]Provider),
		breakers: make(map[ProviderName]*circuitBreaker),
		logger:   logger,
	}
}

// Register adds a provider to the registry.
func (r *Registry) Register(p Provider, cfg CircuitBreakerConfig) {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := p.Name()
	r.members[name] = p
	r.breakers[name] = newCircuitBreaker(cfg, r.logger)
	r.order = append(r.order, name)

	sort.SliceStable(r.order, func(i, j int) bool {
		return r.members[r.order[i]].Priority() > r.members[r.order[j]].Priority()
	})

	available := float64(observability.MetricValueUnavailable)
	if p.IsAvailable() {
		available = observability.MetricValueAvailable
	}

	observability.LLMProviderAvailable.WithLabelValues(string(name)).Set(available)

	r.logger.Info().
		Str(logKeyProvider, string(name)).
		Int("priority", p.Priority()).
		Msg("registered LLM provider")
}

// ProviderCount returns the number of registered providers.
func (r *Registry) ProviderCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.members)
}

// ExtractCaption tries each available provider in priority order.
func (r *Registry) ExtractCaption(ctx context.Context, caption string) (*domain.CaptionExtraction, error) {
	var result *domain.CaptionExtraction

	err := r.fallthru(ctx, TaskExtract, func(ctx context.Context, p Provider) error {
		extraction, err := p.ExtractCaption(ctx, caption)
		if err != nil {
			return err
		}

		result = extraction

		return nil
	})

	return result, err
}

// TranslateNames tries each available provider in priority order.
func (r *Registry) TranslateNames(ctx context.Context, names []string) (map[string]string, error) {
	if len(names) == 0 {
		return map[string]string{}, nil
	}

	var result map[string]string

	err := r.fallthru(ctx, TaskTranslate, func(ctx context.Context, p Provider) error {
		translations, err := p.TranslateNames(ctx, names)
		if err != nil {
			return err
		}

		result = translations

		return nil
	})

	return result, err
}

// fallthru walks the priority-ordered provider chain, skipping unavailable
// providers and open circuits, until one call succeeds.
func (r *Registry) fallthru(ctx context.Context, task string, call func(context.Context, Provider) error) error {
	r.mu.RLock()
	order := make([]ProviderName, len(r.order))
	copy(order, r.order)
	r.mu.RUnlock()

	if len(order) == 0 {
		return apperrors.ErrNoProvidersAvailable
	}

	var lastErr error

	for _, name := range order {
		r.mu.RLock()
		p := r.members[name]
		cb := r.breakers[name]
		r.mu.RUnlock()

		if !p.IsAvailable() {
			continue
		}

		if err := cb.check(); err != nil {
			r.logger.Debug().Str(logKeyProvider, string(name)).Msg("skipping provider, circuit open")
			continue
		}

		start := time.Now()
		err := call(ctx, p)

		observability.LLMRequestDuration.WithLabelValues(string(name), task).Observe(time.Since(start).Seconds())

		if err != nil {
			cb.recordFailure(name)
			lastErr = err

			r.logger.Warn().Err(err).
				Str(logKeyProvider, string(name)).
				Str(logKeyTask, task).
				Msg("provider call failed, falling through")

			continue
		}

		cb.recordSuccess()

		return nil
	}

	if lastErr != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrAllProvidersFailed, lastErr)
	}

	return apperrors.ErrNoProvidersAvailable
}
