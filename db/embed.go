// Package db holds the SQL schema migrations applied by `vidzelctl db migrate`.
package db

import "embed"

// Migrations is only read by binaries built with the embed_migrations tag.
//
//go:embed migrations/*.sql
var Migrations embed.FS
