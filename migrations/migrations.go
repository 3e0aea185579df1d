// Package migrations embeds the goose SQL migrations so binaries can apply
// them without a migrations directory on disk.
package migrations

import "embed"

// FS holds the embedded migration files.
//
//go:embed *.sql
var FS embed.FS
