// internal/game/types.go
//
// Core type definitions for the puzzle session.
// Defines:
//   - Kind: outcome of a submitted word (accepted or a rejection reason).
//   - Result: everything the UI needs to render a submission.
//   - LengthProgress / Summary: read-only progress snapshots.

package game

import "fmt"

// Kind is the outcome of a submission. Rejection kinds are listed in the
// order the checks run.
type Kind string

const (
	KindAccepted       Kind = "accepted"
	KindTooShort       Kind = "too_short"
	KindMissingRoot    Kind = "missing_root"
	KindInvalidLetters Kind = "invalid_letters"
	KindAlreadyFound   Kind = "already_found"
	KindNotASolution   Kind = "not_a_solution"
)

// Result describes one call to Session.Submit.
// The length/progress fields are only set when Kind is KindAccepted.
type Result struct {
	Kind            Kind   `json:"kind"`
	Word            string `json:"word"`                      // normalized (uppercase) input
	Length          int    `json:"length,omitempty"`          // letters in Word
	FoundAtLength   int    `json:"foundAtLength,omitempty"`   // found count for Length after this submission
	TotalAtLength   int    `json:"totalAtLength,omitempty"`   // solutions of Length
	LengthCompleted bool   `json:"lengthCompleted,omitempty"` // this submission found the last word of Length
	PuzzleCompleted bool   `json:"puzzleCompleted,omitempty"` // this submission found the last word overall

	root string
}

// Accepted reports whether the word was new and correct.
func (r Result) Accepted() bool { return r.Kind == KindAccepted }

// Message returns the text shown to the player for this result.
// Accepted words that complete nothing have no message.
func (r Result) Message() string {
	switch r.Kind {
	case KindAccepted:
		switch {
		case r.PuzzleCompleted:
			return "Amazing! You found every word!"
		case r.LengthCompleted:
			return fmt.Sprintf("All %d-letter words found!", r.Length)
		}
		return ""
	case KindTooShort:
		return fmt.Sprintf("Word must be at least %d letters long.", MinWordLength)
	case KindMissingRoot:
		if r.root == "" {
			return "Word must contain the root."
		}
		return fmt.Sprintf("Word must contain %s.", r.root)
	case KindInvalidLetters:
		return "Word uses letters that aren't in the puzzle."
	case KindAlreadyFound:
		return "Already found!"
	case KindNotASolution:
		return "Not in the word list."
	}
	return ""
}

// LengthProgress is the found/total count for one word length.
type LengthProgress struct {
	Length int `json:"length"`
	Found  int `json:"found"`
	Total  int `json:"total"`
}

// Complete reports whether every word of this length has been found.
func (p LengthProgress) Complete() bool { return p.Found == p.Total }

// Summary is the overall found/total count.
type Summary struct {
	FoundCount int `json:"foundCount"`
	TotalCount int `json:"totalCount"`
}
