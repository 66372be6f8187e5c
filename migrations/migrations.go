// Package migrations embeds the SQL schema files applied by the migrator.
package migrations

import "embed"

//go:embed *.sql
var Files embed.FS
