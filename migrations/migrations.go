// Package migrations carries the goose SQL schema for the archive database,
// embedded so every binary can migrate on startup without shipping files.
// New migrations are named YYYYMMDDHHMMSS_description.sql so goose applies
// them in order.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
