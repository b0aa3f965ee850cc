package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/kavehram/ganjine/internal/core/domain"
	apperrors "github.com/kavehram/ganjine/internal/core/errors"
	"github.com/kavehram/ganjine/internal/platform/config"
)

const openRouterEndpoint = "https://openrouter.ai/api/v1/chat/completions"

type openRouterProvider struct {
	cfg         *config.Config
	httpClient  *http.Client
	usage       UsageRecorder
	logger      *zerolog.Logger
	rateLimiter *rate.Limiter
}

type openRouterRequest struct {
	Model    string              `json:"model"`
	Messages []openRouterMessage `json:"messages"`
}

type openRouterMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openRouterResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
	} `json:"usage"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// NewOpenRouterProvider creates the OpenRouter provider. OpenRouter speaks
// the OpenAI chat completions wire format over plain HTTP.
func NewOpenRouterProvider(cfg *config.Config, usage UsageRecorder, logger *zerolog.Logger) Provider {
	rps := cfg.RateLimitRPS
	if rps < 1 {
		rps = 1
	}

	return &openRouterProvider{
		cfg:         cfg,
		httpClient:  &http.Client{Timeout: cfg.LLMTimeout},
		usage:       usage,
		logger:      logger,
		rateLimiter: rate.NewLimiter(rate.Limit(float64(rps)), rateLimiterBurst),
	}
}

func (p *openRouterProvider) Name() ProviderName { return ProviderOpenRouter }

func (p *openRouterProvider) IsAvailable() bool { return p.cfg.OpenRouterAPIKey != "" }

func (p *openRouterProvider) Priority() int { return PrioritySecondFallback }

func (p *openRouterProvider) ExtractCaption(ctx context.Context, caption string) (*domain.CaptionExtraction, error) {
	content, err := p.complete(ctx, TaskExtract, buildExtractionPrompt(caption))
	if err != nil {
		return nil, err
	}

	return parseExtraction(content)
}

func (p *openRouterProvider) TranslateNames(ctx context.Context, names []string) (map[string]string, error) {
	content, err := p.complete(ctx, TaskTranslate, buildTranslationPrompt(names))
	if err != nil {
		return nil, err
	}

	return parseTranslations(content)
}

func (p *openRouterProvider) complete(ctx context.Context, task, prompt string) (string, error) {
	if err := p.rateLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf(errRateLimiter, err)
	}

	body, err := json.Marshal(openRouterRequest{
		Model: p.cfg.OpenRouterModel,
		Messages: []openRouterMessage{
			{Role: "user", Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal openrouter request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, openRouterEndpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build openrouter request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+p.cfg.OpenRouterAPIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("openrouter request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read openrouter response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("openrouter status %d: %s", resp.StatusCode, string(raw))
	}

	var parsed openRouterResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("decode openrouter response: %w", err)
	}

	if parsed.Error != nil {
		return "", fmt.Errorf("openrouter error: %s", parsed.Error.Message)
	}

	p.usage.RecordTokenUsage(ProviderOpenRouter, p.cfg.OpenRouterModel, task, parsed.Usage.PromptTokens, parsed.Usage.CompletionTokens)

	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("openrouter: %w", apperrors.ErrEmptyResponse)
	}

	return parsed.Choices[0].Message.Content, nil
}
