package migrations

import "embed"

// FS holds the schema files applied at startup by database.RunMigrations.
//
//go:embed *.sql
var FS embed.FS
