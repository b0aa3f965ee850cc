package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	MessagesIngested = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ganjine_messages_ingested_total",
		Help: "The total number of ingested channel messages",
	}, []string{"media_type"})

	MediaDownloaded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ganjine_media_downloaded_total",
		Help: "The total number of downloaded media files",
	}, []string{"status"})

	ItemsProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ganjine_pipeline_items_total",
		Help: "The total number of items processed by the resolution pipeline",
	}, []string{"status"})

	DatesResolved = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ganjine_dates_resolved_total",
		Help: "Resolved dates by provenance source",
	}, []string{"source"})

	LocationsResolved = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ganjine_locations_resolved_total",
		Help: "Location resolutions by outcome",
	}, []string{"outcome"})

	GeocodeCacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ganjine_geocode_cache_total",
		Help: "Geocode cache lookups by result",
	}, []string{"result"})

	UntranslatedNames = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "ganjine_untranslated_names",
		Help: "Number of distinct untranslated place names pending batch translation",
	})

	LLMRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ganjine_llm_request_duration_seconds",
		Help:    "Duration of LLM requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"provider", "task"})

	LLMProviderAvailable = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "ganjine_llm_provider_available",
		Help: "Whether an LLM provider is configured and available (1/0)",
	}, []string{"provider"})

	LLMTokensUsed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ganjine_llm_tokens_total",
		Help: "LLM token usage by provider and direction",
	}, []string{"provider", "direction"})

	PipelineBacklog = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "ganjine_pipeline_backlog_size",
		Help: "Number of pending items in the database",
	})

	ItemsArchived = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ganjine_items_archived_total",
		Help: "Items filed into the archive tree",
	}, []string{"status"})
)

// Metric label values.
const (
	MetricValueAvailable   = 1
	MetricValueUnavailable = 0
)
