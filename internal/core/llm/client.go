package llm

import (
	"github.com/rs/zerolog"

	"github.com/kavehram/ganjine/internal/platform/config"
)

// New builds the provider registry from configuration. Every provider with
// an API key is registered; with no keys at all the mock provider is used
// so the deterministic parts of the pipeline still run. Token usage flows
// through the recorder into metrics and the usage store.
func New(cfg *config.Config, usageStore UsageStore, logger *zerolog.Logger) Client {
	registry := NewRegistry(logger)
	breaker := DefaultCircuitBreakerConfig()
	usage := NewUsageRecorder(usageStore, logger)

	if cfg.OpenAIAPIKey != "" {
		registry.Register(NewOpenAIProvider(cfg, usage, logger), breaker)
	}

	if cfg.AnthropicAPIKey != "" {
		registry.Register(NewAnthropicProvider(cfg, usage, logger), breaker)
	}

	if cfg.OpenRouterAPIKey != "" {
		registry.Register(NewOpenRouterProvider(cfg, usage, logger), breaker)
	}

	if registry.ProviderCount() == 0 {
		logger.Warn().Msg("no LLM provider configured, using mock provider")
		registry.Register(NewMockProvider(), breaker)
	}

	return registry
}
