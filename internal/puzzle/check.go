package puzzle

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// ProblemKind classifies a fixture defect.
type ProblemKind string

const (
	ProblemTooShort       ProblemKind = "too_short"
	ProblemMissingRoot    ProblemKind = "missing_root"
	ProblemInvalidLetters ProblemKind = "invalid_letters"
	ProblemDuplicate      ProblemKind = "duplicate"
)

// Problem is a solution that breaks the fixture invariant: every solution
// contains the root and uses only letters from root+extras.
type Problem struct {
	Puzzle   int         // index in the rotation (set by CheckAll)
	Root     string      // root of the offending puzzle
	Solution string      // offending entry
	Kind     ProblemKind // what is wrong with it
	Detail   string      // human-readable explanation
}

func (p Problem) String() string {
	return fmt.Sprintf("%s: %s (%s)", p.Root, p.Solution, p.Detail)
}

// Check reports every solution of p that violates the fixture invariant.
// p is expected to be normalized.
func (p Puzzle) Check() []Problem {
	allowed := LetterSet(p.Letters())
	seen := make(map[string]struct{}, len(p.Solutions))
	var out []Problem
	add := func(sol string, kind ProblemKind, detail string) {
		out = append(out, Problem{Root: p.Root, Solution: sol, Kind: kind, Detail: detail})
	}
	for _, sol := range p.Solutions {
		if _, dup := seen[sol]; dup {
			add(sol, ProblemDuplicate, "listed more than once")
			continue
		}
		seen[sol] = struct{}{}

		if utf8.RuneCountInString(sol) < MinWordLength {
			add(sol, ProblemTooShort, fmt.Sprintf("shorter than %d letters", MinWordLength))
		}
		if !strings.Contains(sol, p.Root) {
			add(sol, ProblemMissingRoot, "does not contain "+p.Root)
		}
		if bad := outside(sol, allowed); bad != "" {
			add(sol, ProblemInvalidLetters, "uses "+bad+" outside "+p.Letters())
		}
	}
	return out
}

// CheckAll runs Check over the whole rotation.
func CheckAll(puzzles []Puzzle) []Problem {
	var out []Problem
	for i, p := range puzzles {
		for _, pr := range p.Check() {
			pr.Puzzle = i
			out = append(out, pr)
		}
	}
	return out
}

// LetterSet returns the set of runes in s.
func LetterSet(s string) map[rune]struct{} {
	set := make(map[rune]struct{}, len(s))
	for _, r := range s {
		set[r] = struct{}{}
	}
	return set
}

// outside returns the distinct runes of w missing from allowed, in order.
func outside(w string, allowed map[rune]struct{}) string {
	var b strings.Builder
	reported := map[rune]bool{}
	for _, r := range w {
		if _, ok := allowed[r]; ok || reported[r] {
			continue
		}
		reported[r] = true
		b.WriteRune(r)
	}
	return b.String()
}
