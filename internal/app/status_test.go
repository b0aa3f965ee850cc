package app

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kavehram/ganjine/internal/core/domain"
	db "github.com/kavehram/ganjine/internal/storage"
)

type fakeStatusStore struct {
	counts map[string]int64
	items  []domain.MediaItem
	usage  []db.LLMUsage
}

func (s *fakeStatusStore) CountByStatus(_ context.Context) (map[string]int64, error) {
	return s.counts, nil
}

func (s *fakeStatusStore) RecentItems(_ context.Context, _ time.Time, _ int) ([]domain.MediaItem, error) {
	return s.items, nil
}

func (s *fakeStatusStore) GetLLMUsageDetails(_ context.Context, _ time.Time) ([]db.LLMUsage, error) {
	return s.usage, nil
}

func TestStatusHandler(t *testing.T) {
	store := &fakeStatusStore{
		counts: map[string]int64{domain.StatusPending: 3, domain.StatusArchived: 12},
		items: []domain.MediaItem{
			{
				TGMessageID: 42,
				MediaType:   "photo",
				Status:      domain.StatusArchived,
				ArchivePath: "/archive/Tehran - تهران/2025-01-07 (1403-10-18)/42.jpg",
				Date: &domain.ResolvedDate{
					Gregorian: time.Date(2025, 1, 7, 0, 0, 0, 0, time.UTC),
					Jalali:    "1403/10/18",
					Source:    domain.SourceNumericJalali,
				},
				Location: &domain.LocationResolution{
					LocationCandidate: domain.LocationCandidate{CityFa: "تهران"},
				},
			},
			{TGMessageID: 43, MediaType: "video", Status: domain.StatusPending},
		},
		usage: []db.LLMUsage{
			{Date: "2026-08-23", Provider: "openai", Model: "gpt-4o-mini", Task: "extract", PromptTokens: 500, CompletionTokens: 80, RequestCount: 4},
		},
	}

	logger := zerolog.Nop()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/statusz", nil)

	statusHandler(store, &logger).ServeHTTP(rec, req)

	require.Equal(t, 200, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp statusResponse

	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(3), resp.Counts[domain.StatusPending])

	require.Len(t, resp.Recent, 2)
	assert.Equal(t, int64(42), resp.Recent[0].TGMessageID)
	assert.Equal(t, "2025-01-07", resp.Recent[0].Date)
	assert.Equal(t, string(domain.SourceNumericJalali), resp.Recent[0].DateSource)
	assert.Equal(t, "تهران", resp.Recent[0].City)
	assert.Empty(t, resp.Recent[1].Date)

	require.Len(t, resp.Usage, 1)
	assert.Equal(t, "openai", resp.Usage[0].Provider)
	assert.Equal(t, 500, resp.Usage[0].PromptTokens)
}
