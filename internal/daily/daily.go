// Package daily maps wall-clock time to the puzzle of the day. The
// mapping is deterministic within a reference-zone calendar day so every
// player sees the same puzzle, flipping exactly at that zone's midnight.
package daily

import (
	"crypto/rand"
	"log"
	"math/big"
	"time"

	"klarvorto/internal/puzzle"
)

const secondsPerDay = 86400

// DayKey returns the calendar date in the reference zone, e.g.
// "2025-08-14". Used to detect "already played today".
func DayKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("2006-01-02")
}

// DayNumber returns the count of elapsed 24-hour periods since the Unix
// epoch, shifted by the reference zone's UTC offset so the number
// increments at the zone's local midnight.
func DayNumber(t time.Time, loc *time.Location) int {
	local := t.In(loc)
	_, offset := local.Zone()
	return int((t.Unix() + int64(offset)) / secondsPerDay)
}

// Index maps a day number and configured offset onto [0, n). The double
// modulo keeps the result non-negative even when the sum is negative.
// n must be positive.
func Index(dayNumber, offset, n int) int {
	return ((dayNumber+offset)%n + n) % n
}

// Selection is the puzzle chosen for a given instant. Derived, never
// stored; recompute it whenever the current day is queried.
type Selection struct {
	DayNumber int
	DayKey    string
	Puzzle    puzzle.Record
}

// Selector picks the daily puzzle from the store's eligible subset.
type Selector struct {
	store  *puzzle.Store
	loc    *time.Location
	offset int
	random bool
	now    func() time.Time
}

// NewSelector constructs a Selector. offset decorrelates the visible
// sequence from the raw day number. random enables the non-deterministic
// dev mode and must only ever be set from startup configuration.
func NewSelector(store *puzzle.Store, loc *time.Location, offset int, random bool) *Selector {
	return &Selector{
		store:  store,
		loc:    loc,
		offset: offset,
		random: random,
		now:    time.Now,
	}
}

// SetClock overrides the time source. Intended for tests.
func (s *Selector) SetClock(now func() time.Time) {
	s.now = now
}

// Today returns the selection for the current instant. Fails with
// puzzle.ErrNoPuzzles when the eligible subset is empty; that is a
// configuration fault, not a transient condition.
func (s *Selector) Today() (Selection, error) {
	eligible := s.store.Eligible()
	n := len(eligible)
	if n == 0 {
		return Selection{}, puzzle.ErrNoPuzzles
	}

	now := s.now()
	dayNumber := DayNumber(now, s.loc)

	index := Index(dayNumber, s.offset, n)
	if s.random {
		index = randomIndex(n)
	}

	return Selection{
		DayNumber: dayNumber,
		DayKey:    DayKey(now, s.loc),
		Puzzle:    eligible[index],
	}, nil
}

// randomIndex returns a uniform index in [0, n) for the dev mode.
func randomIndex(n int) int {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		log.Printf("[WARN] Error generating random index: %v, using fallback", err)
		return 0
	}
	return int(v.Int64())
}
