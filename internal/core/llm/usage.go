package llm

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/kavehram/ganjine/internal/platform/observability"
)

const usageStorageTimeout = 5 * time.Second

// UsageStore persists per-day token usage counters.
type UsageStore interface {
	IncrementLLMUsage(ctx context.Context, provider, model, task string, promptTokens, completionTokens int) error
}

// UsageRecorder records token usage for LLM requests. Providers call it
// after every completed request.
type UsageRecorder interface {
	RecordTokenUsage(provider ProviderName, model, task string, promptTokens, completionTokens int)
}

type usageRecorder struct {
	store  UsageStore
	logger *zerolog.Logger
}

// NewUsageRecorder creates a recorder that feeds Prometheus counters and,
// when a store is given, persists daily usage rows.
func NewUsageRecorder(store UsageStore, logger *zerolog.Logger) UsageRecorder {
	return &usageRecorder{store: store, logger: logger}
}

func (r *usageRecorder) RecordTokenUsage(provider ProviderName, model, task string, promptTokens, completionTokens int) {
	if promptTokens > 0 {
		observability.LLMTokensUsed.WithLabelValues(string(provider), "prompt").Add(float64(promptTokens))
	}

	if completionTokens > 0 {
		observability.LLMTokensUsed.WithLabelValues(string(provider), "completion").Add(float64(completionTokens))
	}

	if r.store == nil {
		return
	}

	// Fire-and-forget: usage accounting must never fail or slow the request.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), usageStorageTimeout)
		defer cancel()

		if err := r.store.IncrementLLMUsage(ctx, string(provider), model, task, promptTokens, completionTokens); err != nil {
			r.logger.Debug().Err(err).Str(logKeyProvider, string(provider)).Msg("failed to persist llm usage")
		}
	}()
}

type noopUsageRecorder struct{}

// NoopUsageRecorder returns a recorder that discards everything.
func NoopUsageRecorder() UsageRecorder {
	return noopUsageRecorder{}
}

func (noopUsageRecorder) RecordTokenUsage(ProviderName, string, string, int, int) {}
