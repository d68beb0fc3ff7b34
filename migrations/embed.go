// Package migrations holds the SQL schema applied with sql-migrate.
package migrations

import "embed"

// FS contains every migration file in this directory
//
//go:embed *.sql
var FS embed.FS
