package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/kavehram/ganjine/internal/core/domain"
	apperrors "github.com/kavehram/ganjine/internal/core/errors"
)

// GetCachedLocation returns a previously resolved location for the given
// normalized cache key. Returns ErrCacheNotFound on a miss.
func (db *DB) GetCachedLocation(ctx context.Context, key string) (*domain.LocationResolution, error) {
	var raw []byte

	err := db.Pool.QueryRow(ctx, `
		SELECT resolution FROM geocode_cache WHERE cache_key = $1
	`, key).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrCacheNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("get cached location: %w", err)
	}

	var resolution domain.LocationResolution
	if err := json.Unmarshal(raw, &resolution); err != nil {
		return nil, fmt.Errorf("decode cached location: %w", err)
	}

	return &resolution, nil
}

// PutCachedLocation stores a resolved location under the given key,
// overwriting any previous entry.
func (db *DB) PutCachedLocation(ctx context.Context, key string, resolution *domain.LocationResolution) error {
	raw, err := json.Marshal(resolution)
	if err != nil {
		return fmt.Errorf("encode cached location: %w", err)
	}

	_, err = db.Pool.Exec(ctx, `
		INSERT INTO geocode_cache (cache_key, resolution)
		VALUES ($1, $2)
		ON CONFLICT (cache_key) DO UPDATE SET resolution = EXCLUDED.resolution, updated_at = now()
	`, key, raw)
	if err != nil {
		return fmt.Errorf("put cached location: %w", err)
	}

	return nil
}
