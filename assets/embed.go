// Package assets embeds the built-in puzzle fixtures.
package assets

import (
	"embed"
)

//go:embed puzzles.toml
var FS embed.FS

// PuzzlesFile is the name of the embedded fixture file.
const PuzzlesFile = "puzzles.toml"

// Puzzles returns the raw TOML of the built-in puzzle rotation.
func Puzzles() ([]byte, error) {
	return FS.ReadFile(PuzzlesFile)
}
