package db

import (
	"context"
	"fmt"
)

// AddUntranslatedNames queues Farsi place names with no known English
// translation. Names already queued or already translated are left alone.
func (db *DB) AddUntranslatedNames(ctx context.Context, names []string) error {
	if len(names) == 0 {
		return nil
	}

	for _, name := range names {
		if name == "" {
			continue
		}

		_, err := db.Pool.Exec(ctx, `
			INSERT INTO untranslated_names (name_fa)
			VALUES ($1)
			ON CONFLICT (name_fa) DO NOTHING
		`, SanitizeUTF8(name))
		if err != nil {
			return fmt.Errorf("add untranslated name: %w", err)
		}
	}

	return nil
}

// GetPendingUntranslated returns up to limit queued names with no
// translation yet, oldest first.
func (db *DB) GetPendingUntranslated(ctx context.Context, limit int) ([]string, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT name_fa FROM untranslated_names
		WHERE name_en IS NULL
		ORDER BY created_at ASC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("get pending untranslated names: %w", err)
	}
	defer rows.Close()

	var names []string

	for rows.Next() {
		var name string

		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan untranslated name row: %w", err)
		}

		names = append(names, name)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate untranslated name rows: %w", rows.Err())
	}

	return names, nil
}

// StoreTranslations records translations obtained from the AI layer. The
// stored pairs become the translation memory consulted before any new
// AI call.
func (db *DB) StoreTranslations(ctx context.Context, translations map[string]string) error {
	for fa, en := range translations {
		if fa == "" || en == "" {
			continue
		}

		_, err := db.Pool.Exec(ctx, `
			INSERT INTO untranslated_names (name_fa, name_en, translated_at)
			VALUES ($1, $2, now())
			ON CONFLICT (name_fa) DO UPDATE SET name_en = EXCLUDED.name_en, translated_at = now()
		`, SanitizeUTF8(fa), SanitizeUTF8(en))
		if err != nil {
			return fmt.Errorf("store translation: %w", err)
		}
	}

	return nil
}

// LookupTranslations returns the known translations among the given names.
func (db *DB) LookupTranslations(ctx context.Context, names []string) (map[string]string, error) {
	if len(names) == 0 {
		return map[string]string{}, nil
	}

	rows, err := db.Pool.Query(ctx, `
		SELECT name_fa, name_en FROM untranslated_names
		WHERE name_fa = ANY($1) AND name_en IS NOT NULL
	`, names)
	if err != nil {
		return nil, fmt.Errorf("lookup translations: %w", err)
	}
	defer rows.Close()

	translations := make(map[string]string)

	for rows.Next() {
		var fa, en string

		if err := rows.Scan(&fa, &en); err != nil {
			return nil, fmt.Errorf("scan translation row: %w", err)
		}

		translations[fa] = en
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate translation rows: %w", rows.Err())
	}

	return translations, nil
}

// CountPendingUntranslated returns the size of the untranslated backlog.
func (db *DB) CountPendingUntranslated(ctx context.Context) (int64, error) {
	var count int64

	err := db.Pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM untranslated_names WHERE name_en IS NULL
	`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count pending untranslated names: %w", err)
	}

	return count, nil
}
