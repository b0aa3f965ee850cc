// Package organize files resolved media into the bilingual archive tree:
//
//	<archive root>/<CityEn> - <CityFa>/<YYYY-MM-DD> (<jalali>)/<area>/<file>
//
// Moves are rename-first with a copy fallback for cross-device archive
// roots, and name collisions get a numeric suffix.
package organize

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/kavehram/ganjine/internal/core/domain"
	"github.com/kavehram/ganjine/internal/platform/config"
	"github.com/kavehram/ganjine/internal/platform/observability"
	"github.com/kavehram/ganjine/internal/platform/worker"
)

// unsortedDir receives items that resolved without any location.
const unsortedDir = "Unsorted"

// Store is the storage surface the organizer needs.
type Store interface {
	GetItemsByStatus(ctx context.Context, status string, limit int) ([]domain.MediaItem, error)
	MarkArchived(ctx context.Context, id, archivePath string) error
	MarkFailed(ctx context.Context, id, reason string) error
}

// Organizer moves resolved items into the archive tree.
type Organizer struct {
	cfg    *config.Config
	store  Store
	logger *zerolog.Logger
}

// New creates an organizer.
func New(cfg *config.Config, store Store, logger *zerolog.Logger) *Organizer {
	return &Organizer{cfg: cfg, store: store, logger: logger}
}

// Run polls for resolved items until the context is canceled.
func (o *Organizer) Run(ctx context.Context) error {
	return worker.Loop(ctx, worker.Config{
		Name:         "organizer",
		PollInterval: o.cfg.WorkerPollInterval,
		Process:      o.ProcessBatch,
		Logger:       o.logger,
	})
}

// ProcessBatch files one batch of resolved items.
func (o *Organizer) ProcessBatch(ctx context.Context) error {
	items, err := o.store.GetItemsByStatus(ctx, domain.StatusResolved, o.cfg.WorkerBatchSize)
	if err != nil {
		return err
	}

	for i := range items {
		if err := ctx.Err(); err != nil {
			return err
		}

		o.fileItem(ctx, &items[i])
	}

	return nil
}

func (o *Organizer) fileItem(ctx context.Context, item *domain.MediaItem) {
	if item.FilePath == "" {
		// Media download has not finished yet; leave the item for the
		// next pass.
		return
	}

	dest := filepath.Join(o.cfg.ArchiveDir, DestinationDir(item))

	if o.cfg.OrganizeDryRun {
		o.logger.Info().
			Str("item_id", item.ID).
			Str("from", item.FilePath).
			Str("to", dest).
			Msg("dry run, not moving")

		return
	}

	target, err := MoveFile(item.FilePath, dest)
	if err != nil {
		o.logger.Error().Err(err).Str("item_id", item.ID).Msg("failed to file item")
		observability.ItemsArchived.WithLabelValues("error").Inc()

		if err := o.store.MarkFailed(ctx, item.ID, err.Error()); err != nil {
			o.logger.Error().Err(err).Str("item_id", item.ID).Msg("failed to mark item failed")
		}

		return
	}

	if err := o.store.MarkArchived(ctx, item.ID, target); err != nil {
		o.logger.Error().Err(err).Str("item_id", item.ID).Msg("failed to mark item archived")

		return
	}

	observability.ItemsArchived.WithLabelValues("ok").Inc()

	o.logger.Info().
		Str("item_id", item.ID).
		Str("path", target).
		Msg("archived item")
}

// DestinationDir computes the relative archive directory for an item from
// its resolved date and location.
func DestinationDir(item *domain.MediaItem) string {
	parts := []string{cityDir(item.Location), dateDir(item.Date)}

	if area := areaDir(item.Location); area != "" {
		parts = append(parts, area)
	}

	return filepath.Join(parts...)
}

// cityDir renders "<CityEn> - <CityFa>", degrading to whichever side is
// known. Items with no location at all go to the unsorted directory.
func cityDir(loc *domain.LocationResolution) string {
	if loc == nil {
		return unsortedDir
	}

	name := bilingual(loc.CityEn, loc.CityFa)
	if name == "" {
		name = bilingual(loc.CountryEn, loc.CountryFa)
	}

	if name == "" {
		return unsortedDir
	}

	return sanitizeComponent(name)
}

// dateDir renders "<YYYY-MM-DD> (<jalali>)", with the Jalali slashes made
// filesystem safe.
func dateDir(date *domain.ResolvedDate) string {
	if date == nil {
		return "undated"
	}

	gregorian := date.Gregorian.Format("2006-01-02")

	if date.Jalali == "" {
		return gregorian
	}

	return fmt.Sprintf("%s (%s)", gregorian, strings.ReplaceAll(date.Jalali, "/", "-"))
}

func areaDir(loc *domain.LocationResolution) string {
	if loc == nil {
		return ""
	}

	return sanitizeComponent(bilingual(loc.AreaEn, loc.AreaFa))
}

func bilingual(en, fa string) string {
	switch {
	case en != "" && fa != "":
		return en + " - " + fa
	case en != "":
		return en
	default:
		return fa
	}
}

// sanitizeComponent strips characters that are unsafe in a single path
// component.
func sanitizeComponent(name string) string {
	name = strings.TrimSpace(name)

	replacer := strings.NewReplacer(
		"/", "-",
		"\\", "-",
		":", "-",
		"\x00", "",
		"..", ".",
	)

	return replacer.Replace(name)
}

// MoveFile moves src into destDir, creating the directory as needed. It
// renames when possible and falls back to copy-and-remove across devices.
// Name collisions get " (n)" appended before the extension. Returns the
// final path.
func MoveFile(src, destDir string) (string, error) {
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", fmt.Errorf("create archive dir: %w", err)
	}

	target, err := availableName(destDir, filepath.Base(src))
	if err != nil {
		return "", err
	}

	if err := os.Rename(src, target); err == nil {
		return target, nil
	}

	// Rename failed (likely EXDEV); copy then remove.
	if err := copyFile(src, target); err != nil {
		return "", err
	}

	if err := os.Remove(src); err != nil {
		return "", fmt.Errorf("remove source after copy: %w", err)
	}

	return target, nil
}

// availableName returns the first non-colliding path for base in dir.
func availableName(dir, base string) (string, error) {
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	candidate := filepath.Join(dir, base)

	for n := 1; ; n++ {
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate, nil
		} else if err != nil {
			return "", fmt.Errorf("stat archive target: %w", err)
		}

		candidate = filepath.Join(dir, fmt.Sprintf("%s (%d)%s", stem, n, ext))
	}
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open source file: %w", err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create archive file: %w", err)
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		_ = os.Remove(dst)

		return fmt.Errorf("copy file: %w", err)
	}

	if err := out.Close(); err != nil {
		return fmt.Errorf("close archive file: %w", err)
	}

	return nil
}
