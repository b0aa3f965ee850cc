package llm

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"

	"github.com/kavehram/ganjine/internal/core/domain"
	apperrors "github.com/kavehram/ganjine/internal/core/errors"
	"github.com/kavehram/ganjine/internal/platform/config"
)

const (
	rateLimiterBurst = 5
	errRateLimiter   = "rate limiter: %w"
)

type openaiProvider struct {
	cfg         *config.Config
	client      *openai.Client
	usage       UsageRecorder
	logger      *zerolog.Logger
	rateLimiter *rate.Limiter
}

// NewOpenAIProvider creates the OpenAI provider.
func NewOpenAIProvider(cfg *config.Config, usage UsageRecorder, logger *zerolog.Logger) Provider {
	rps := cfg.RateLimitRPS
	if rps < 1 {
		rps = 1
	}

	return &openaiProvider{
		cfg:         cfg,
		client:      openai.NewClient(cfg.OpenAIAPIKey),
		usage:       usage,
		logger:      logger,
		rateLimiter: rate.NewLimiter(rate.Limit(float64(rps)), rateLimiterBurst),
	}
}

func (p *openaiProvider) Name() ProviderName { return ProviderOpenAI }

func (p *openaiProvider) IsAvailable() bool { return p.cfg.OpenAIAPIKey != "" }

func (p *openaiProvider) Priority() int { return PriorityPrimary }

func (p *openaiProvider) ExtractCaption(ctx context.Context, caption string) (*domain.CaptionExtraction, error) {
	content, err := p.complete(ctx, TaskExtract, buildExtractionPrompt(caption))
	if err != nil {
		return nil, err
	}

	return parseExtraction(content)
}

func (p *openaiProvider) TranslateNames(ctx context.Context, names []string) (map[string]string, error) {
	content, err := p.complete(ctx, TaskTranslate, buildTranslationPrompt(names))
	if err != nil {
		return nil, err
	}

	return parseTranslations(content)
}

func (p *openaiProvider) complete(ctx context.Context, task, prompt string) (string, error) {
	if err := p.rateLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf(errRateLimiter, err)
	}

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.cfg.OpenAIModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai chat completion: %w", err)
	}

	p.usage.RecordTokenUsage(ProviderOpenAI, p.cfg.OpenAIModel, task, resp.Usage.PromptTokens, resp.Usage.CompletionTokens)

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai: %w", apperrors.ErrEmptyResponse)
	}

	return resp.Choices[0].Message.Content, nil
}
