// Package migrations embeds the SQL schema files executed at startup.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
