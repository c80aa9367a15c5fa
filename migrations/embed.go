// Package migrations holds the goose SQL migrations of the pudiya schema.
package migrations

import "embed"

// FS contains every *.sql migration in this directory.
//
//go:embed *.sql
var FS embed.FS
