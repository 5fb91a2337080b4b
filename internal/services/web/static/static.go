// Package static embeds the dashboard stylesheet.
package static

import "embed"

// FS holds the files served under /static/.
//
//go:embed *.css
var FS embed.FS
