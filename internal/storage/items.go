package db

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/kavehram/ganjine/internal/core/domain"
)

// UpsertItem records a downloaded media post. Re-ingesting the same Telegram
// message is a no-op so history re-scans are idempotent. It returns the item
// ID and whether a new row was inserted.
func (db *DB) UpsertItem(ctx context.Context, item *domain.MediaItem) (string, bool, error) {
	id := item.ID
	if id == "" {
		id = uuid.NewString()
	}

	var (
		storedID string
		inserted bool
	)

	err := db.Pool.QueryRow(ctx, `
		INSERT INTO media_items (id, tg_message_id, tg_date, caption, media_type, file_path, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (tg_message_id) DO UPDATE SET tg_message_id = EXCLUDED.tg_message_id
		RETURNING id, (xmax = 0)
	`, id, item.TGMessageID, item.TGDate, SanitizeUTF8(item.Caption), item.MediaType, item.FilePath, domain.StatusPending).
		Scan(&storedID, &inserted)
	if err != nil {
		return "", false, fmt.Errorf("upsert media item: %w", err)
	}

	return storedID, inserted, nil
}

// GetPendingItems returns up to limit items awaiting resolution, oldest first.
func (db *DB) GetPendingItems(ctx context.Context, limit int) ([]domain.MediaItem, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT id, tg_message_id, tg_date, caption, media_type, file_path,
		       COALESCE(archive_path, ''), status,
		       date_gregorian, date_jalali, date_source, location, created_at
		FROM media_items
		WHERE status = $1
		ORDER BY tg_message_id ASC
		LIMIT $2
	`, domain.StatusPending, limit)
	if err != nil {
		return nil, fmt.Errorf("get pending items: %w", err)
	}
	defer rows.Close()

	return scanItems(rows)
}

// GetItemsByStatus returns up to limit items in the given status, oldest first.
func (db *DB) GetItemsByStatus(ctx context.Context, status string, limit int) ([]domain.MediaItem, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT id, tg_message_id, tg_date, caption, media_type, file_path,
		       COALESCE(archive_path, ''), status,
		       date_gregorian, date_jalali, date_source, location, created_at
		FROM media_items
		WHERE status = $1
		ORDER BY tg_message_id ASC
		LIMIT $2
	`, status, limit)
	if err != nil {
		return nil, fmt.Errorf("get items by status: %w", err)
	}
	defer rows.Close()

	return scanItems(rows)
}

type pgxRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanItems(rows pgxRows) ([]domain.MediaItem, error) {
	var items []domain.MediaItem

	for rows.Next() {
		var (
			item       domain.MediaItem
			gregorian  pgtype.Date
			jalali     pgtype.Text
			dateSource pgtype.Text
			location   []byte
		)

		if err := rows.Scan(&item.ID, &item.TGMessageID, &item.TGDate, &item.Caption, &item.MediaType,
			&item.FilePath, &item.ArchivePath, &item.Status,
			&gregorian, &jalali, &dateSource, &location, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan media item row: %w", err)
		}

		if gregorian.Valid {
			item.Date = &domain.ResolvedDate{
				Gregorian: gregorian.Time.UTC(),
				Jalali:    fromText(jalali),
				Source:    domain.DateSource(fromText(dateSource)),
			}
		}

		if len(location) > 0 {
			var resolution domain.LocationResolution
			if err := json.Unmarshal(location, &resolution); err != nil {
				return nil, fmt.Errorf("decode item location: %w", err)
			}

			item.Location = &resolution
		}

		items = append(items, item)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate media item rows: %w", rows.Err())
	}

	return items, nil
}

// UpdateResolution stores the resolved date and location for an item and
// moves it to the resolved status.
func (db *DB) UpdateResolution(ctx context.Context, id string, date *domain.ResolvedDate, location *domain.LocationResolution) error {
	var (
		gregorian pgtype.Date
		jalali    pgtype.Text
		source    pgtype.Text
	)

	if date != nil {
		gregorian = toDate(date.Gregorian)
		jalali = toText(date.Jalali)
		source = toText(string(date.Source))
	}

	var locationJSON []byte

	if location != nil {
		encoded, err := json.Marshal(location)
		if err != nil {
			return fmt.Errorf("encode item location: %w", err)
		}

		locationJSON = encoded
	}

	_, err := db.Pool.Exec(ctx, `
		UPDATE media_items
		SET date_gregorian = $2, date_jalali = $3, date_source = $4,
		    location = $5, status = $6, updated_at = now()
		WHERE id = $1
	`, id, gregorian, jalali, source, locationJSON, domain.StatusResolved)
	if err != nil {
		return fmt.Errorf("update item resolution: %w", err)
	}

	return nil
}

// MarkArchived records the final archive path for an item.
func (db *DB) MarkArchived(ctx context.Context, id, archivePath string) error {
	_, err := db.Pool.Exec(ctx, `
		UPDATE media_items
		SET archive_path = $2, status = $3, updated_at = now()
		WHERE id = $1
	`, id, archivePath, domain.StatusArchived)
	if err != nil {
		return fmt.Errorf("mark item archived: %w", err)
	}

	return nil
}

// MarkFailed moves an item to the failed status with a reason.
func (db *DB) MarkFailed(ctx context.Context, id, reason string) error {
	_, err := db.Pool.Exec(ctx, `
		UPDATE media_items
		SET status = $2, fail_reason = $3, updated_at = now()
		WHERE id = $1
	`, id, domain.StatusFailed, SanitizeUTF8(reason))
	if err != nil {
		return fmt.Errorf("mark item failed: %w", err)
	}

	return nil
}

// LastMessageID returns the highest ingested Telegram message ID, or zero
// when nothing has been ingested yet.
func (db *DB) LastMessageID(ctx context.Context) (int64, error) {
	var id int64

	err := db.Pool.QueryRow(ctx, `
		SELECT COALESCE(MAX(tg_message_id), 0) FROM media_items
	`).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("get last message id: %w", err)
	}

	return id, nil
}

// CountByStatus returns the number of items in each status.
func (db *DB) CountByStatus(ctx context.Context) (map[string]int64, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT status, COUNT(*) FROM media_items GROUP BY status
	`)
	if err != nil {
		return nil, fmt.Errorf("count items by status: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int64)

	for rows.Next() {
		var (
			status string
			count  int64
		)

		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("scan status count row: %w", err)
		}

		counts[status] = count
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate status count rows: %w", rows.Err())
	}

	return counts, nil
}

// RecentItems returns the newest items regardless of status, for inspection.
func (db *DB) RecentItems(ctx context.Context, since time.Time, limit int) ([]domain.MediaItem, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT id, tg_message_id, tg_date, caption, media_type, file_path,
		       COALESCE(archive_path, ''), status,
		       date_gregorian, date_jalali, date_source, location, created_at
		FROM media_items
		WHERE created_at >= $1
		ORDER BY tg_message_id DESC
		LIMIT $2
	`, since, limit)
	if err != nil {
		return nil, fmt.Errorf("get recent items: %w", err)
	}
	defer rows.Close()

	return scanItems(rows)
}
