// Package migrations embeds the goose SQL migrations shared by the MySQL
// and SQLite stores.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
