// Package pipeline resolves pending media items: AI caption extraction,
// deterministic date-phrase resolution, location normalization against the
// gazetteer, and batched translation of leftover place names.
package pipeline

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/kavehram/ganjine/internal/core/caption"
	"github.com/kavehram/ganjine/internal/core/dates"
	"github.com/kavehram/ganjine/internal/core/domain"
	apperrors "github.com/kavehram/ganjine/internal/core/errors"
	"github.com/kavehram/ganjine/internal/core/geo"
	"github.com/kavehram/ganjine/internal/core/jalali"
	"github.com/kavehram/ganjine/internal/core/llm"
	"github.com/kavehram/ganjine/internal/platform/config"
	"github.com/kavehram/ganjine/internal/platform/observability"
	"github.com/kavehram/ganjine/internal/platform/worker"
)

// Store is the storage surface the pipeline needs.
type Store interface {
	GetPendingItems(ctx context.Context, limit int) ([]domain.MediaItem, error)
	UpdateResolution(ctx context.Context, id string, date *domain.ResolvedDate, location *domain.LocationResolution) error
	MarkFailed(ctx context.Context, id, reason string) error
	CountByStatus(ctx context.Context) (map[string]int64, error)

	GetCachedLocation(ctx context.Context, key string) (*domain.LocationResolution, error)
	PutCachedLocation(ctx context.Context, key string, resolution *domain.LocationResolution) error

	AddUntranslatedNames(ctx context.Context, names []string) error
	GetPendingUntranslated(ctx context.Context, limit int) ([]string, error)
	StoreTranslations(ctx context.Context, translations map[string]string) error
	LookupTranslations(ctx context.Context, names []string) (map[string]string, error)
	CountPendingUntranslated(ctx context.Context) (int64, error)
}

// Pipeline turns pending items into resolved ones.
type Pipeline struct {
	cfg       *config.Config
	store     Store
	ai        llm.Client
	parser    *dates.Parser
	extractor *caption.Extractor
	resolver  *geo.Resolver
	logger    *zerolog.Logger
}

// New wires the pipeline together.
func New(cfg *config.Config, store Store, ai llm.Client, gaz *geo.Gazetteer, logger *zerolog.Logger) *Pipeline {
	parser := dates.NewParser(cfg.DefaultJalaliYear)

	places := append(geo.KnownPlaceNames(), gaz.LocalNames()...)

	return &Pipeline{
		cfg:       cfg,
		store:     store,
		ai:        ai,
		parser:    parser,
		extractor: caption.NewExtractor(parser, places, cfg.CaptionWindowRadius),
		resolver:  geo.NewResolver(gaz, cfg.HomeCityFa, cfg.HomeCityEn),
		logger:    logger,
	}
}

// Run polls for pending items until the context is canceled.
func (p *Pipeline) Run(ctx context.Context) error {
	return worker.Loop(ctx, worker.Config{
		Name:         "pipeline",
		PollInterval: p.cfg.WorkerPollInterval,
		Process:      p.ProcessBatch,
		Logger:       p.logger,
	})
}

// ProcessBatch resolves one batch of pending items, then flushes the
// untranslated-name backlog in a single translation call.
func (p *Pipeline) ProcessBatch(ctx context.Context) error {
	items, err := p.store.GetPendingItems(ctx, p.cfg.WorkerBatchSize)
	if err != nil {
		return err
	}

	p.updateBacklogGauge(ctx)

	for i := range items {
		if err := ctx.Err(); err != nil {
			return err
		}

		p.resolveItem(ctx, &items[i])
	}

	return p.flushTranslations(ctx)
}

func (p *Pipeline) resolveItem(ctx context.Context, item *domain.MediaItem) {
	defer worker.RecoverPanic(p.logger, "resolve item")

	extraction := p.extract(ctx, item)

	date := p.resolveDate(item, extraction)
	location := p.resolveLocation(ctx, item, extraction)

	if err := p.store.UpdateResolution(ctx, item.ID, date, location); err != nil {
		p.logger.Error().Err(err).Str("item_id", item.ID).Msg("failed to store resolution")
		observability.ItemsProcessed.WithLabelValues("error").Inc()

		return
	}

	observability.ItemsProcessed.WithLabelValues("resolved").Inc()
	observability.DatesResolved.WithLabelValues(string(date.Source)).Inc()

	p.logger.Debug().
		Str("item_id", item.ID).
		Str("date", date.Gregorian.Format("2006-01-02")).
		Str("source", string(date.Source)).
		Msg("resolved item")
}

// extract asks the AI layer for date phrases and a location candidate. A
// failed call degrades to the deterministic caption fallback rather than
// failing the item.
func (p *Pipeline) extract(ctx context.Context, item *domain.MediaItem) *domain.CaptionExtraction {
	if strings.TrimSpace(item.Caption) == "" {
		return &domain.CaptionExtraction{}
	}

	extraction, err := p.ai.ExtractCaption(ctx, item.Caption)
	if err != nil {
		p.logger.Warn().Err(err).Str("item_id", item.ID).Msg("AI extraction failed, falling back to caption scan")

		return &domain.CaptionExtraction{}
	}

	return extraction
}

// resolveDate applies the resolution ladder: AI-extracted phrases first,
// then a direct caption scan, then the message's own timestamp. The first
// rung that produces a date wins and stamps its provenance.
func (p *Pipeline) resolveDate(item *domain.MediaItem, extraction *domain.CaptionExtraction) *domain.ResolvedDate {
	for _, phrase := range extraction.DatePhrases {
		if d := p.parser.Parse(phrase, item.TGDate); d != nil {
			return d
		}
	}

	if d := p.extractor.ExtractDate(item.Caption, item.TGDate); d != nil {
		// A date recovered by scanning the raw caption is less trustworthy
		// than one from an isolated phrase; tag it accordingly.
		d.Source = domain.SourceCaptionFallback

		return d
	}

	return originDate(item.TGDate)
}

func originDate(ref time.Time) *domain.ResolvedDate {
	u := ref.UTC()
	g := time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)

	d := &domain.ResolvedDate{Gregorian: g, Source: domain.SourceOriginTimestamp}

	if js, err := jalali.Format(g); err == nil {
		d.Jalali = js
	}

	return d
}

func (p *Pipeline) resolveLocation(ctx context.Context, item *domain.MediaItem, extraction *domain.CaptionExtraction) *domain.LocationResolution {
	cand := extraction.Location
	if cand.IsEmpty() {
		cand = p.extractor.ExtractLocation(item.Caption)
	}

	if cand.IsEmpty() {
		observability.LocationsResolved.WithLabelValues("none").Inc()

		return nil
	}

	key := cacheKey(cand)

	if cached, err := p.store.GetCachedLocation(ctx, key); err == nil {
		observability.GeocodeCacheHits.WithLabelValues("hit").Inc()

		return cached
	} else if !apperrors.Is(err, apperrors.ErrCacheNotFound) {
		p.logger.Warn().Err(err).Str("item_id", item.ID).Msg("geocode cache lookup failed")
	}

	observability.GeocodeCacheHits.WithLabelValues("miss").Inc()

	res := p.resolver.Resolve(*cand)

	p.applyTranslationMemory(ctx, res)

	if len(res.Untranslated) > 0 {
		if err := p.store.AddUntranslatedNames(ctx, res.Untranslated); err != nil {
			p.logger.Warn().Err(err).Msg("failed to queue untranslated names")
		}
	}

	if err := p.store.PutCachedLocation(ctx, key, res); err != nil {
		p.logger.Warn().Err(err).Str("item_id", item.ID).Msg("failed to cache location")
	}

	observability.LocationsResolved.WithLabelValues("resolved").Inc()

	return res
}

// applyTranslationMemory fills foreign names from previously stored AI
// translations, so each unique name costs at most one translation call ever.
func (p *Pipeline) applyTranslationMemory(ctx context.Context, res *domain.LocationResolution) {
	if len(res.Untranslated) == 0 {
		return
	}

	known, err := p.store.LookupTranslations(ctx, res.Untranslated)
	if err != nil {
		p.logger.Warn().Err(err).Msg("translation memory lookup failed")

		return
	}

	if len(known) == 0 {
		return
	}

	if en, ok := known[res.CityFa]; ok && res.CityEn == "" {
		res.CityEn = en
	}

	if en, ok := known[res.AreaFa]; ok && res.AreaEn == "" {
		res.AreaEn = en
	}

	if en, ok := known[res.ProvinceFa]; ok && res.ProvinceEn == "" {
		res.ProvinceEn = en
	}

	var remaining []string

	for _, name := range res.Untranslated {
		if _, ok := known[name]; !ok {
			remaining = append(remaining, name)
		}
	}

	res.Untranslated = remaining
}

// flushTranslations sends the accumulated untranslated names to the AI
// layer in one batch and stores the results as translation memory.
func (p *Pipeline) flushTranslations(ctx context.Context) error {
	names, err := p.store.GetPendingUntranslated(ctx, p.cfg.WorkerBatchSize)
	if err != nil {
		return err
	}

	if len(names) == 0 {
		observability.UntranslatedNames.Set(0)

		return nil
	}

	translations, err := p.ai.TranslateNames(ctx, names)
	if err != nil {
		p.logger.Warn().Err(err).Int("names", len(names)).Msg("batch translation failed")
	} else if len(translations) > 0 {
		if err := p.store.StoreTranslations(ctx, translations); err != nil {
			return err
		}
	}

	if pending, err := p.store.CountPendingUntranslated(ctx); err == nil {
		observability.UntranslatedNames.Set(float64(pending))
	}

	return nil
}

func (p *Pipeline) updateBacklogGauge(ctx context.Context) {
	counts, err := p.store.CountByStatus(ctx)
	if err != nil {
		return
	}

	observability.PipelineBacklog.Set(float64(counts[domain.StatusPending]))
}

// cacheKey builds the normalized geocode cache key from the local-script
// fields of a candidate.
func cacheKey(cand *domain.LocationCandidate) string {
	parts := []string{cand.CountryFa, cand.ProvinceFa, cand.CityFa, cand.AreaFa}

	if cand.Foreign {
		parts = append(parts, "foreign")
	}

	return strings.Join(parts, "|")
}
