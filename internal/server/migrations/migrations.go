// Package migrations embeds the PostgreSQL schema applied by goose on startup.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
