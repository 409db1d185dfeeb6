// Package assets embeds static data shipped with the binaries.
package assets

import "embed"

//go:embed arenas/*.tmx
var Arenas embed.FS
