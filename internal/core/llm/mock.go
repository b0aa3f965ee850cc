package llm

import (
	"context"

	"github.com/kavehram/ganjine/internal/core/domain"
)

// MockProvider is a deterministic provider used in tests and dry runs. It
// returns canned extractions and echo translations without network access.
type MockProvider struct {
	Extraction   *domain.CaptionExtraction
	Translations map[string]string
	ExtractErr   error
	TranslateErr error
	Calls        int
}

// NewMockProvider creates a mock provider with empty canned responses.
func NewMockProvider() *MockProvider {
	return &MockProvider{
		Extraction:   &domain.CaptionExtraction{},
		Translations: map[string]string{},
	}
}

func (p *MockProvider) Name() ProviderName { return ProviderMock }

func (p *MockProvider) IsAvailable() bool { return true }

func (p *MockProvider) Priority() int { return PriorityMock }

func (p *MockProvider) ExtractCaption(_ context.Context, _ string) (*domain.CaptionExtraction, error) {
	p.Calls++

	if p.ExtractErr != nil {
		return nil, p.ExtractErr
	}

	return p.Extraction, nil
}

func (p *MockProvider) TranslateNames(_ context.Context, names []string) (map[string]string, error) {
	p.Calls++

	if p.TranslateErr != nil {
		return nil, p.TranslateErr
	}

	out := make(map[string]string, len(names))

	for _, name := range names {
		if en, ok := p.Translations[name]; ok {
			out[name] = en
		}
	}

	return out, nil
}
