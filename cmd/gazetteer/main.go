// Command gazetteer ingests a GeoNames country dump into the database. Run
// it offline once (and again when the dump updates); the pipeline loads the
// result into memory on startup.
//
// Usage:
//
//	gazetteer --main IR.txt --alternates alternateNamesV2.txt
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/kavehram/ganjine/internal/ingest/geonames"
	"github.com/kavehram/ganjine/internal/platform/config"
	db "github.com/kavehram/ganjine/internal/storage"
)

var errMissingFlags = errors.New("both --main and --alternates are required")

func main() {
	mainPath := flag.String("main", "", "Path to the GeoNames country dump (e.g. IR.txt)")
	altPath := flag.String("alternates", "", "Path to the GeoNames alternate names file")

	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).With().Timestamp().Logger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, &logger, *mainPath, *altPath); err != nil {
		logger.Fatal().Err(err).Msg("gazetteer ingestion failed")
	}
}

func run(ctx context.Context, cfg *config.Config, logger *zerolog.Logger, mainPath, altPath string) error {
	if mainPath == "" || altPath == "" {
		return errMissingFlags
	}

	mainFile, err := os.Open(mainPath)
	if err != nil {
		return fmt.Errorf("open dump: %w", err)
	}
	defer mainFile.Close()

	altFile, err := os.Open(altPath)
	if err != nil {
		return fmt.Errorf("open alternate names: %w", err)
	}
	defer altFile.Close()

	logger.Info().Str("main", mainPath).Str("alternates", altPath).Msg("parsing GeoNames dump")

	entries, err := geonames.Parse(mainFile, altFile, geonames.Options{
		MinPopulation: cfg.GazetteerMinPopulation,
	})
	if err != nil {
		return fmt.Errorf("parse dump: %w", err)
	}

	logger.Info().Int("entries", len(entries)).Msg("parsed gazetteer entries")

	database, err := db.New(ctx, cfg.PostgresDSN, logger)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer database.Close()

	if err := database.Migrate(ctx); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	if err := database.ReplaceGazetteer(ctx, entries); err != nil {
		return fmt.Errorf("store gazetteer: %w", err)
	}

	count, err := database.CountGazetteer(ctx)
	if err != nil {
		return fmt.Errorf("count gazetteer: %w", err)
	}

	logger.Info().Int64("rows", count).Msg("gazetteer stored")

	return nil
}
