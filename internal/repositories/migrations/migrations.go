// Package migrations embeds the SQL schema migrations so the binary can
// bring its own database up to date at startup.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
