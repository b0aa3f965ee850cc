package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kavehram/ganjine/internal/core/domain"
	apperrors "github.com/kavehram/ganjine/internal/core/errors"
)

// extractJSON pulls a JSON object or array out of a response that may be
// wrapped in prose or a markdown fence.
func extractJSON(text string) string {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")

	if start != -1 && end != -1 && end > start {
		return text[start : end+1]
	}

	start = strings.Index(text, "[")
	end = strings.LastIndex(text, "]")

	if start != -1 && end != -1 && end > start {
		return text[start : end+1]
	}

	return text
}

// parseExtraction decodes a model response into a CaptionExtraction.
func parseExtraction(text string) (*domain.CaptionExtraction, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperrors.ErrEmptyResponse
	}

	var extraction domain.CaptionExtraction
	if err := json.Unmarshal([]byte(extractJSON(text)), &extraction); err != nil {
		return nil, fmt.Errorf("parse extraction response: %w", err)
	}

	if extraction.Location.IsEmpty() {
		extraction.Location = nil
	}

	return &extraction, nil
}

// parseTranslations decodes a model response into a name translation map.
func parseTranslations(text string) (map[string]string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperrors.ErrEmptyResponse
	}

	translations := make(map[string]string)
	if err := json.Unmarshal([]byte(extractJSON(text)), &translations); err != nil {
		return nil, fmt.Errorf("parse translation response: %w", err)
	}

	return translations, nil
}
