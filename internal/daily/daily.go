// internal/daily/daily.go
//
// Calendar helpers for the daily rotation.
// The puzzle of the day is puzzles[DayIndex(now) % len(puzzles)], computed in
// the player's local time so the puzzle flips at local midnight.

package daily

import "time"

// DayIndex returns the 1-based day of the year for t in t's location.
// Jan 1 is 1, Dec 31 is 365 (366 in leap years).
func DayIndex(t time.Time) int {
	return t.YearDay()
}

// DateKey returns YYYY-MM-DD in t's location.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// NextRollover returns the start of the day after t, in t's location.
// Daily sessions expire at this instant.
func NextRollover(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, t.Location())
}
