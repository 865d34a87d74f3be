// Package migrations embeds the SQL migration files for the catalog service.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
