package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/kavehram/ganjine/internal/core/errors"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "bare object",
			input: `{"a":1}`,
			want:  `{"a":1}`,
		},
		{
			name:  "markdown fence",
			input: "```json\n{\"a\":1}\n```",
			want:  `{"a":1}`,
		},
		{
			name:  "prose around object",
			input: `Here is the result: {"a":1} hope that helps`,
			want:  `{"a":1}`,
		},
		{
			name:  "array fallback",
			input: "the phrases are [\"x\",\"y\"]",
			want:  `["x","y"]`,
		},
		{
			name:  "no json at all",
			input: "nothing here",
			want:  "nothing here",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractJSON(tt.input))
		})
	}
}

func TestParseExtraction(t *testing.T) {
	t.Run("full response", func(t *testing.T) {
		got, err := parseExtraction(`{"date_phrases":["۱۸ دی"],"location":{"city_fa":"تهران","area_fa":"نارمک"}}`)
		require.NoError(t, err)

		require.Len(t, got.DatePhrases, 1)
		assert.Equal(t, "۱۸ دی", got.DatePhrases[0])
		require.NotNil(t, got.Location)
		assert.Equal(t, "تهران", got.Location.CityFa)
		assert.Equal(t, "نارمک", got.Location.AreaFa)
	})

	t.Run("empty location nilled out", func(t *testing.T) {
		got, err := parseExtraction(`{"date_phrases":[],"location":{}}`)
		require.NoError(t, err)
		assert.Nil(t, got.Location)
	})

	t.Run("markdown wrapped", func(t *testing.T) {
		got, err := parseExtraction("```json\n{\"date_phrases\":[\"دیروز\"]}\n```")
		require.NoError(t, err)
		require.Len(t, got.DatePhrases, 1)
	})

	t.Run("empty response", func(t *testing.T) {
		_, err := parseExtraction("   ")
		assert.ErrorIs(t, err, apperrors.ErrEmptyResponse)
	})

	t.Run("invalid json", func(t *testing.T) {
		_, err := parseExtraction("{not json")
		assert.Error(t, err)
	})
}

func TestParseTranslations(t *testing.T) {
	got, err := parseTranslations(`Sure: {"تهران":"Tehran","نارمک":"Narmak"}`)
	require.NoError(t, err)

	assert.Equal(t, "Tehran", got["تهران"])
	assert.Equal(t, "Narmak", got["نارمک"])

	_, err = parseTranslations("")
	assert.ErrorIs(t, err, apperrors.ErrEmptyResponse)
}
