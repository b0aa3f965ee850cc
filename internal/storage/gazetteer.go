package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/kavehram/ganjine/internal/core/domain"
)

// ReplaceGazetteer atomically replaces the stored gazetteer with the given
// entries. The offline ingestion command calls this after parsing a dump.
func (db *DB) ReplaceGazetteer(ctx context.Context, entries []domain.GazetteerEntry) error {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin gazetteer replace: %w", err)
	}

	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if _, err := tx.Exec(ctx, `TRUNCATE gazetteer`); err != nil {
		return fmt.Errorf("truncate gazetteer: %w", err)
	}

	rows := make([][]any, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []any{
			SanitizeUTF8(e.LocalName), SanitizeUTF8(e.ForeignName),
			e.Latitude, e.Longitude, e.Population, e.AdminLevel, e.ProvinceCode,
		})
	}

	_, err = tx.CopyFrom(ctx,
		pgx.Identifier{"gazetteer"},
		[]string{"local_name", "foreign_name", "latitude", "longitude", "population", "admin_level", "province_code"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return fmt.Errorf("copy gazetteer rows: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit gazetteer replace: %w", err)
	}

	return nil
}

// LoadGazetteer returns all stored gazetteer entries. Ordering is left to
// the in-memory index, which sorts by population on load.
func (db *DB) LoadGazetteer(ctx context.Context) ([]domain.GazetteerEntry, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT local_name, foreign_name, latitude, longitude, population, admin_level, province_code
		FROM gazetteer
	`)
	if err != nil {
		return nil, fmt.Errorf("load gazetteer: %w", err)
	}
	defer rows.Close()

	var entries []domain.GazetteerEntry

	for rows.Next() {
		var e domain.GazetteerEntry

		if err := rows.Scan(&e.LocalName, &e.ForeignName, &e.Latitude, &e.Longitude,
			&e.Population, &e.AdminLevel, &e.ProvinceCode); err != nil {
			return nil, fmt.Errorf("scan gazetteer row: %w", err)
		}

		entries = append(entries, e)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate gazetteer rows: %w", rows.Err())
	}

	return entries, nil
}

// CountGazetteer returns the number of stored gazetteer entries.
func (db *DB) CountGazetteer(ctx context.Context) (int64, error) {
	var count int64

	err := db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM gazetteer`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count gazetteer: %w", err)
	}

	return count, nil
}
