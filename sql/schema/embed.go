// Package schema embeds the goose migrations so the binaries can apply them without the sql directory.
package schema

import "embed"

//go:embed *.sql
var FS embed.FS
