// internal/puzzle/puzzle.go
//
// Puzzle fixtures for the daily game.
//
// Responsibilities:
//   - Define the Puzzle triple (root, extras, solutions).
//   - Load the rotation from a TOML file or fall back to the embedded defaults.
//   - Normalize every field to uppercase so comparisons use a single case.
//
// File format:
//
//	[[puzzle]]
//	root = "GRAPH"
//	extras = "SICOLE"
//	solutions = ["GRAPHS", "GRAPHIC"]
//
// Loading behavior (Load):
//  1. If a path is given, decode that file.
//  2. Otherwise decode the embedded assets/puzzles.toml.
//
// Fixtures are never corrected on load; use Check to report problems.

package puzzle

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/robalobadob/rooted/assets"
)

// MinWordLength is the shortest word the game accepts.
const MinWordLength = 5

// ErrEmpty is returned when a fixture source holds no puzzles.
var ErrEmpty = errors.New("puzzle: list is empty")

// Puzzle is one day's challenge. All fields are uppercase after Normalize.
type Puzzle struct {
	Root      string   `toml:"root" json:"root"`
	Extras    string   `toml:"extras" json:"extras"`
	Solutions []string `toml:"solutions" json:"-"`
}

// file mirrors the on-disk TOML layout.
type file struct {
	Puzzles []Puzzle `toml:"puzzle"`
}

// Letters returns root followed by extras.
func (p Puzzle) Letters() string {
	return p.Root + p.Extras
}

// Normalize returns a copy with every field trimmed and uppercased.
// The solutions slice is copied so fixture data is never shared.
func (p Puzzle) Normalize() Puzzle {
	out := Puzzle{
		Root:      strings.ToUpper(strings.TrimSpace(p.Root)),
		Extras:    strings.ToUpper(strings.TrimSpace(p.Extras)),
		Solutions: make([]string, 0, len(p.Solutions)),
	}
	for _, s := range p.Solutions {
		out.Solutions = append(out.Solutions, strings.ToUpper(strings.TrimSpace(s)))
	}
	return out
}

// Default decodes the embedded puzzle rotation.
func Default() ([]Puzzle, error) {
	raw, err := assets.Puzzles()
	if err != nil {
		return nil, fmt.Errorf("read embedded puzzles: %w", err)
	}
	return Parse(string(raw))
}

// LoadFile decodes a TOML puzzle file.
func LoadFile(path string) ([]Puzzle, error) {
	var f file
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return finish(f)
}

// Load reads puzzles from path, or the embedded defaults when path is empty.
func Load(path string) ([]Puzzle, error) {
	if path == "" {
		return Default()
	}
	return LoadFile(path)
}

// Parse decodes puzzles from TOML text.
func Parse(text string) ([]Puzzle, error) {
	var f file
	if _, err := toml.Decode(text, &f); err != nil {
		return nil, fmt.Errorf("decode puzzles: %w", err)
	}
	return finish(f)
}

func finish(f file) ([]Puzzle, error) {
	if len(f.Puzzles) == 0 {
		return nil, ErrEmpty
	}
	out := make([]Puzzle, 0, len(f.Puzzles))
	for i, p := range f.Puzzles {
		p = p.Normalize()
		if p.Root == "" {
			return nil, fmt.Errorf("puzzle %d: root is empty", i)
		}
		out = append(out, p)
	}
	return out, nil
}
