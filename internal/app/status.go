package app

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/kavehram/ganjine/internal/core/domain"
	db "github.com/kavehram/ganjine/internal/storage"
)

const (
	statusRecentWindow = 24 * time.Hour
	statusRecentLimit  = 20
	statusUsageWindow  = 7 * 24 * time.Hour
)

// statusStore is the read-only slice of storage the status endpoint needs.
type statusStore interface {
	CountByStatus(ctx context.Context) (map[string]int64, error)
	RecentItems(ctx context.Context, since time.Time, limit int) ([]domain.MediaItem, error)
	GetLLMUsageDetails(ctx context.Context, since time.Time) ([]db.LLMUsage, error)
}

type statusItem struct {
	TGMessageID int64  `json:"tg_message_id"`
	MediaType   string `json:"media_type"`
	Status      string `json:"status"`
	Date        string `json:"date,omitempty"`
	DateSource  string `json:"date_source,omitempty"`
	City        string `json:"city,omitempty"`
	ArchivePath string `json:"archive_path,omitempty"`
}

type statusUsage struct {
	Date             string `json:"date"`
	Provider         string `json:"provider"`
	Model            string `json:"model"`
	Task             string `json:"task"`
	PromptTokens     int    `json:"prompt_tokens"`
	CompletionTokens int    `json:"completion_tokens"`
	RequestCount     int    `json:"request_count"`
}

type statusResponse struct {
	Counts map[string]int64 `json:"counts"`
	Recent []statusItem     `json:"recent"`
	Usage  []statusUsage    `json:"llm_usage"`
}

// statusHandler serves a JSON snapshot of the archive: item counts by
// status, the most recently ingested items, and LLM usage for the past week.
func statusHandler(store statusStore, logger *zerolog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		counts, err := store.CountByStatus(ctx)
		if err != nil {
			writeStatusError(w, logger, err)

			return
		}

		items, err := store.RecentItems(ctx, time.Now().Add(-statusRecentWindow), statusRecentLimit)
		if err != nil {
			writeStatusError(w, logger, err)

			return
		}

		usage, err := store.GetLLMUsageDetails(ctx, time.Now().Add(-statusUsageWindow))
		if err != nil {
			writeStatusError(w, logger, err)

			return
		}

		resp := statusResponse{
			Counts: counts,
			Recent: make([]statusItem, 0, len(items)),
			Usage:  make([]statusUsage, 0, len(usage)),
		}

		for _, item := range items {
			resp.Recent = append(resp.Recent, toStatusItem(item))
		}

		for _, u := range usage {
			resp.Usage = append(resp.Usage, statusUsage(u))
		}

		w.Header().Set("Content-Type", "application/json")

		if err := json.NewEncoder(w).Encode(resp); err != nil {
			logger.Error().Err(err).Msg("encode status response")
		}
	})
}

func toStatusItem(item domain.MediaItem) statusItem {
	si := statusItem{
		TGMessageID: item.TGMessageID,
		MediaType:   item.MediaType,
		Status:      item.Status,
		ArchivePath: item.ArchivePath,
	}

	if item.Date != nil {
		si.Date = item.Date.Gregorian.Format("2006-01-02")
		si.DateSource = string(item.Date.Source)
	}

	if item.Location != nil {
		si.City = item.Location.CityFa
	}

	return si
}

func writeStatusError(w http.ResponseWriter, logger *zerolog.Logger, err error) {
	logger.Error().Err(err).Msg("status endpoint query failed")
	http.Error(w, "status query failed", http.StatusInternalServerError)
}
