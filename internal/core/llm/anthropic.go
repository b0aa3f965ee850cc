package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/kavehram/ganjine/internal/core/domain"
	"github.com/kavehram/ganjine/internal/platform/config"
)

const anthropicMaxTokens = 1024

type anthropicProvider struct {
	cfg         *config.Config
	client      anthropic.Client
	usage       UsageRecorder
	logger      *zerolog.Logger
	rateLimiter *rate.Limiter
}

// NewAnthropicProvider creates the Anthropic provider.
func NewAnthropicProvider(cfg *config.Config, usage UsageRecorder, logger *zerolog.Logger) Provider {
	rps := cfg.RateLimitRPS
	if rps < 1 {
		rps = 1
	}

	return &anthropicProvider{
		cfg:         cfg,
		client:      anthropic.NewClient(option.WithAPIKey(cfg.AnthropicAPIKey)),
		usage:       usage,
		logger:      logger,
		rateLimiter: rate.NewLimiter(rate.Limit(float64(rps)), rateLimiterBurst),
	}
}

func (p *anthropicProvider) Name() ProviderName { return ProviderAnthropic }

func (p *anthropicProvider) IsAvailable() bool { return p.cfg.AnthropicAPIKey != "" }

func (p *anthropicProvider) Priority() int { return PriorityFallback }

func (p *anthropicProvider) ExtractCaption(ctx context.Context, caption string) (*domain.CaptionExtraction, error) {
	content, err := p.complete(ctx, TaskExtract, buildExtractionPrompt(caption))
	if err != nil {
		return nil, err
	}

	return parseExtraction(content)
}

func (p *anthropicProvider) TranslateNames(ctx context.Context, names []string) (map[string]string, error) {
	content, err := p.complete(ctx, TaskTranslate, buildTranslationPrompt(names))
	if err != nil {
		return nil, err
	}

	return parseTranslations(content)
}

func (p *anthropicProvider) complete(ctx context.Context, task, prompt string) (string, error) {
	if err := p.rateLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf(errRateLimiter, err)
	}

	resp, err := p.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(p.cfg.AnthropicModel),
		MaxTokens: anthropicMaxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("anthropic message: %w", err)
	}

	p.usage.RecordTokenUsage(ProviderAnthropic, p.cfg.AnthropicModel, task, int(resp.Usage.InputTokens), int(resp.Usage.OutputTokens))

	var sb strings.Builder

	for _, block := range resp.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}

	return strings.TrimSpace(sb.String()), nil
}
