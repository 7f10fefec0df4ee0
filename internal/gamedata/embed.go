// Package gamedata provides the embedded creature definitions and the
// helpers for loading and spawning them.
package gamedata

import "embed"

// dataFS embeds all JSON files from this directory at build time.
//
//go:embed *.json
var dataFS embed.FS
