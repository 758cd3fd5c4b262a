// internal/game/engine.go
//
// Core state machine for a single day's puzzle.
// Responsibilities:
//   - Select the day's puzzle from the rotation (dayIndex mod len).
//   - Validate submitted words in a fixed order and track found words.
//   - Track per-length progress and report when a length completes.
//   - Produce shuffled extra letters for display.
//
// Notes:
//   - A Session is owned by one caller at a time; it has no locks.
//   - No method returns an error for player input: rejections are Result kinds.
//   - Fixture data passed to Start is copied, never mutated.
package game

import (
	"crypto/rand"
	"encoding/hex"
	mrand "math/rand/v2"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/robalobadob/rooted/internal/puzzle"
)

// MinWordLength is the shortest word accepted by Submit.
const MinWordLength = puzzle.MinWordLength

// Session is the state of one player's run at one puzzle.
type Session struct {
	ID  string // random hex identifier
	Day int    // day index the puzzle was selected with

	puzzle      puzzle.Puzzle
	allowed     map[rune]struct{}
	solutions   map[string]struct{}
	found       []string
	foundSet    map[string]struct{}
	progress    map[int]*LengthProgress
	requireRoot bool
	rng         *mrand.Rand
}

// Option configures a Session at Start.
type Option func(*Session)

// WithRootCheck toggles the rule that a word must contain the root.
// Enabled by default.
func WithRootCheck(on bool) Option {
	return func(s *Session) { s.requireRoot = on }
}

// WithRand sets the source used by ShuffleExtras.
func WithRand(r *mrand.Rand) Option {
	return func(s *Session) { s.rng = r }
}

// Start selects puzzles[dayIndex mod len(puzzles)] and returns a fresh session.
// An empty rotation is a *ConfigError wrapping ErrNoPuzzles.
func Start(puzzles []puzzle.Puzzle, dayIndex int, opts ...Option) (*Session, error) {
	if len(puzzles) == 0 {
		return nil, &ConfigError{Err: ErrNoPuzzles}
	}
	idx := dayIndex % len(puzzles)
	if idx < 0 {
		idx += len(puzzles)
	}
	p := puzzles[idx].Normalize()

	s := &Session{
		ID:          randomID(),
		Day:         dayIndex,
		puzzle:      p,
		allowed:     puzzle.LetterSet(p.Letters()),
		solutions:   make(map[string]struct{}, len(p.Solutions)),
		foundSet:    make(map[string]struct{}),
		progress:    make(map[int]*LengthProgress),
		requireRoot: true,
	}
	for _, o := range opts {
		o(s)
	}

	for _, w := range p.Solutions {
		if _, dup := s.solutions[w]; dup {
			continue
		}
		s.solutions[w] = struct{}{}
		n := utf8.RuneCountInString(w)
		lp, ok := s.progress[n]
		if !ok {
			lp = &LengthProgress{Length: n}
			s.progress[n] = lp
		}
		lp.Total++
	}
	return s, nil
}

// Puzzle returns a copy of the selected puzzle.
func (s *Session) Puzzle() puzzle.Puzzle {
	return s.puzzle.Normalize()
}

// Allowed reports whether r may appear in a submitted word.
func (s *Session) Allowed(r rune) bool {
	_, ok := s.allowed[r]
	return ok
}

// Submit validates a word and, if it is a new solution, records it.
//
// Checks run in this order and the first failure wins:
//  1. fewer than MinWordLength letters → KindTooShort
//  2. root not contained (when enabled) → KindMissingRoot
//  3. a letter outside root+extras     → KindInvalidLetters
//  4. already found                    → KindAlreadyFound
//  5. not in the solution list         → KindNotASolution
func (s *Session) Submit(raw string) Result {
	word := strings.ToUpper(strings.TrimSpace(raw))
	res := Result{Word: word, root: s.puzzle.Root}
	n := utf8.RuneCountInString(word)

	if n < MinWordLength {
		res.Kind = KindTooShort
		return res
	}
	if s.requireRoot && !strings.Contains(word, s.puzzle.Root) {
		res.Kind = KindMissingRoot
		return res
	}
	for _, r := range word {
		if !s.Allowed(r) {
			res.Kind = KindInvalidLetters
			return res
		}
	}
	if _, ok := s.foundSet[word]; ok {
		res.Kind = KindAlreadyFound
		return res
	}
	if _, ok := s.solutions[word]; !ok {
		res.Kind = KindNotASolution
		return res
	}

	s.found = append(s.found, word)
	s.foundSet[word] = struct{}{}
	lp := s.progress[n]
	lp.Found++

	res.Kind = KindAccepted
	res.Length = n
	res.FoundAtLength = lp.Found
	res.TotalAtLength = lp.Total
	res.LengthCompleted = lp.Found == lp.Total
	res.PuzzleCompleted = len(s.found) == len(s.solutions)
	return res
}

// ShuffleExtras returns the extra letters in a uniformly random order.
// The session is not modified.
func (s *Session) ShuffleExtras() []rune {
	out := []rune(s.puzzle.Extras)
	swap := func(i, j int) { out[i], out[j] = out[j], out[i] }
	if s.rng != nil {
		s.rng.Shuffle(len(out), swap)
	} else {
		mrand.Shuffle(len(out), swap)
	}
	return out
}

// Progress returns found/total per word length, shortest first.
func (s *Session) Progress() []LengthProgress {
	out := make([]LengthProgress, 0, len(s.progress))
	for _, lp := range s.progress {
		out = append(out, *lp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Length < out[j].Length })
	return out
}

// Summary returns the overall found/total count.
func (s *Session) Summary() Summary {
	return Summary{FoundCount: len(s.found), TotalCount: len(s.solutions)}
}

// Found returns the found words in the order they were found.
func (s *Session) Found() []string {
	return append([]string(nil), s.found...)
}

// FoundSorted returns the found words alphabetically, as the word list shows them.
func (s *Session) FoundSorted() []string {
	out := s.Found()
	sort.Strings(out)
	return out
}

// Completed reports whether every solution has been found.
func (s *Session) Completed() bool {
	return len(s.found) == len(s.solutions)
}

// randomID returns a compact 16‑hex‑char identifier.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
