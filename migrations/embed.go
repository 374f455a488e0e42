// Package migrations embeds the SQL migrations applied at startup.
package migrations

import "embed"

// FS holds every migration file so the binary can create its own schema.
//
//go:embed *.sql
var FS embed.FS
