// Package migrations embeds the travel journal schema migrations so goose
// can apply them from the binary in tests and server bootstrap.
package migrations

import "embed"

// FS holds the *.sql migration files embedded at compile time.
// Hand it to a goose provider instead of a filesystem path.
//
//go:embed *.sql
var FS embed.FS
