// Package migrations embeds the goose migrations for the directory database.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
