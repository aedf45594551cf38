// Package migrations embeds the Postgres schema. Every statement is
// idempotent, so the files are applied in name order on each start.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
