// Package migrations embeds the goose SQL migrations for both supported
// databases. Each dialect has its own directory because column types differ:
// PostgreSQL stores timestamps as TIMESTAMPTZ, SQLite as unix milliseconds.
package migrations

import "embed"

//go:embed postgres/*.sql
var Postgres embed.FS

//go:embed sqlite/*.sql
var SQLite embed.FS
