// Package llm provides the multi-provider AI layer used to extract date
// phrases and location hints from Farsi captions and to batch-translate
// place names. Providers are tried in priority order with per-provider
// circuit breakers; any provider failure falls through to the next.
package llm

import (
	"context"

	"github.com/kavehram/ganjine/internal/core/domain"
)

// ProviderName identifies an LLM provider.
type ProviderName string

// Provider name constants.
const (
	ProviderOpenAI     ProviderName = "openai"
	ProviderAnthropic  ProviderName = "anthropic"
	ProviderOpenRouter ProviderName = "openrouter"
	ProviderMock       ProviderName = "mock"
)

// Priority constants for provider ordering (higher = preferred).
const (
	PriorityPrimary        = 100
	PriorityFallback       = 50
	PrioritySecondFallback = 25
	PriorityMock           = 0
)

// Task label constants for metrics.
const (
	TaskExtract   = "extract"
	TaskTranslate = "translate"
)

// Provider defines the interface all LLM providers implement.
type Provider interface {
	// Name returns the provider identifier.
	Name() ProviderName

	// IsAvailable returns true if the provider is configured and usable.
	IsAvailable() bool

	// Priority returns the provider priority (higher = preferred).
	Priority() int

	// ExtractCaption returns Jalali date-phrase strings and an optional
	// sparse location candidate found in a Farsi caption.
	ExtractCaption(ctx context.Context, caption string) (*domain.CaptionExtraction, error)

	// TranslateNames translates Farsi place names to English in one batch
	// call. The result maps each input name to its translation; names the
	// model could not translate are absent from the map.
	TranslateNames(ctx context.Context, names []string) (map[string]string, error)
}

// Client is the surface the pipeline consumes.
type Client interface {
	ExtractCaption(ctx context.Context, caption string) (*domain.CaptionExtraction, error)
	TranslateNames(ctx context.Context, names []string) (map[string]string, error)
}
