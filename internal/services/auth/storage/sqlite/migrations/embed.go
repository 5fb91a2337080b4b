// Package migrations holds the users and web_sessions schema.
package migrations

import "embed"

// FS is applied in file name order by sqlitemigrate.
//
//go:embed *.sql
var FS embed.FS
