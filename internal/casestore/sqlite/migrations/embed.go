package migrations

import "embed"

// FS contains embedded SQLite migrations for case storage.
//
//go:embed *.sql
var FS embed.FS
