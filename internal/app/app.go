// Package app provides the main application bootstrap and runtime
// orchestration.
//
// The App type wires together all dependencies and exposes methods to run
// different operational modes:
//
//   - Reader mode: MTProto client that ingests media posts from the channel
//   - Worker mode: Resolution pipeline plus the archive organizer
//   - All mode: Everything in one process
//
// Each mode can be run independently or combined based on deployment needs.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/kavehram/ganjine/internal/core/geo"
	"github.com/kavehram/ganjine/internal/core/llm"
	"github.com/kavehram/ganjine/internal/ingest/telegram"
	"github.com/kavehram/ganjine/internal/output/organize"
	"github.com/kavehram/ganjine/internal/platform/config"
	"github.com/kavehram/ganjine/internal/platform/observability"
	"github.com/kavehram/ganjine/internal/process/pipeline"
	db "github.com/kavehram/ganjine/internal/storage"
)

const msgOrganizerStopped = "organizer stopped"

// App holds the application dependencies and provides methods to run
// different modes.
type App struct {
	cfg      *config.Config
	database *db.DB
	logger   *zerolog.Logger
}

// New creates a new App instance with the given dependencies.
func New(cfg *config.Config, database *db.DB, logger *zerolog.Logger) *App {
	return &App{
		cfg:      cfg,
		database: database,
		logger:   logger,
	}
}

// StartHealthServer starts the health check and metrics server, plus the
// archive status endpoint.
func (a *App) StartHealthServer(ctx context.Context) error {
	srv := observability.NewServer(a.database, a.cfg.HealthPort, a.logger)
	srv.Handle("/statusz", statusHandler(a.database, a.logger))

	if err := srv.Start(ctx); err != nil {
		return fmt.Errorf("health server start: %w", err)
	}

	return nil
}

// RunReader runs the reader mode.
func (a *App) RunReader(ctx context.Context) error {
	a.logger.Info().Msg("Starting reader mode")

	r := telegram.New(a.cfg, a.database, a.logger)

	if err := r.Run(ctx); err != nil {
		return fmt.Errorf("reader run: %w", err)
	}

	return nil
}

// RunWorker runs the worker mode: the resolution pipeline plus the archive
// organizer.
func (a *App) RunWorker(ctx context.Context) error {
	a.logger.Info().Msg("Starting worker mode")

	gaz, err := a.loadGazetteer(ctx)
	if err != nil {
		return err
	}

	llmClient := llm.New(a.cfg, a.database, a.logger)

	p := pipeline.New(a.cfg, a.database, llmClient, gaz, a.logger)

	go a.runOrganizer(ctx)

	if err := p.Run(ctx); err != nil {
		return fmt.Errorf("pipeline run: %w", err)
	}

	return nil
}

// RunAll runs reader and worker in one process.
func (a *App) RunAll(ctx context.Context) error {
	errCh := make(chan error, 2)

	go func() { errCh <- a.RunReader(ctx) }()
	go func() { errCh <- a.RunWorker(ctx) }()

	return <-errCh
}

func (a *App) runOrganizer(ctx context.Context) {
	o := organize.New(a.cfg, a.database, a.logger)

	if err := o.Run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			a.logger.Info().Msg(msgOrganizerStopped)

			return
		}

		a.logger.Warn().Err(err).Msg(msgOrganizerStopped)
	}
}

// loadGazetteer builds the in-memory place-name index from the database.
// An empty gazetteer is not fatal: the static tables still cover the
// common cases, and the offline ingestion command can be run later.
func (a *App) loadGazetteer(ctx context.Context) (*geo.Gazetteer, error) {
	entries, err := a.database.LoadGazetteer(ctx)
	if err != nil {
		return nil, fmt.Errorf("load gazetteer: %w", err)
	}

	gaz := geo.NewGazetteer(entries)

	if gaz.Len() == 0 {
		a.logger.Warn().Msg("gazetteer is empty, run the gazetteer ingestion command")
	} else {
		a.logger.Info().Int("names", gaz.Len()).Msg("gazetteer loaded")
	}

	return gaz, nil
}
