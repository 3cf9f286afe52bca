// Package engine implements the client-held guess/streak state machine.
// It owns the session for the current day, consults a verification
// oracle for correctness, and persists terminal results through a
// swappable progress store.
package engine

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"
)

// MaxAttempts is the default attempt budget per day.
const MaxAttempts = 6

// Status is the session lifecycle state.
type Status string

const (
	StatusNotLoaded  Status = "not-loaded"
	StatusInProgress Status = "in-progress"
	StatusWon        Status = "won"
	StatusLost       Status = "lost"
)

// ErrEmptyGuess is returned for a guess that is empty after trimming.
// The session is left untouched.
var ErrEmptyGuess = errors.New("guess is empty")

// Verifier decides whether a guess matches the answer for a puzzle id.
// Implementations must be side-effect free; an error means the check
// could not be performed and the caller may retry.
type Verifier interface {
	Verify(ctx context.Context, id int, guess string) (bool, error)
}

// Today identifies the puzzle selected for the current reference-zone
// day, as seen by the client. The answer is never part of it.
type Today struct {
	DayKey    string
	DayNumber int
	PuzzleID  int
	Clue      string
}

// Session is a snapshot of the in-memory game state for the day.
type Session struct {
	PuzzleID  int
	Clue      string
	DayKey    string
	DayNumber int
	Attempts  []bool
	Status    Status
}

// Outcome describes the result of a single guess submission.
type Outcome struct {
	Ignored   bool // submission arrived outside InProgress and was dropped
	Correct   bool
	Status    Status
	Attempts  []bool
	Remaining int
	Streak    int
}

// Engine is the guess/streak state machine. A mutex serializes every
// mutation so overlapping submissions cannot double-append attempts.
type Engine struct {
	mu          sync.Mutex
	verifier    Verifier
	progress    ProgressStore
	maxAttempts int

	session Session
	streak  int
}

// New constructs an Engine. maxAttempts <= 0 selects the default budget.
func New(v Verifier, ps ProgressStore, maxAttempts int) *Engine {
	if maxAttempts <= 0 {
		maxAttempts = MaxAttempts
	}
	return &Engine{
		verifier:    v,
		progress:    ps,
		maxAttempts: maxAttempts,
		session:     Session{Status: StatusNotLoaded},
	}
}

// LoadToday points the session at today's puzzle and reconciles it with
// persisted progress. If progress records a terminal result for this
// exact day and puzzle, the terminal state is restored without
// re-submitting guesses; loading is idempotent and side-effect free.
// Otherwise the session starts fresh in progress, carrying the streak
// over for display.
func (e *Engine) LoadToday(t Today) Session {
	e.mu.Lock()
	defer e.mu.Unlock()

	prog := e.loadProgress()
	e.streak = prog.Streak

	e.session = Session{
		PuzzleID:  t.PuzzleID,
		Clue:      t.Clue,
		DayKey:    t.DayKey,
		DayNumber: t.DayNumber,
		Attempts:  []bool{},
		Status:    StatusInProgress,
	}

	if prog.DayKey == t.DayKey && prog.PuzzleID == t.PuzzleID && isTerminal(prog.Status) {
		e.session.Status = Status(prog.Status)
		if prog.Attempts != nil {
			e.session.Attempts = slices.Clone(prog.Attempts)
		}
	}

	return e.snapshot()
}

// SubmitGuess runs one transition of the state machine. Submissions
// outside InProgress are silently ignored. An empty-after-trim guess is
// rejected without mutation. A verifier failure leaves the session
// unchanged so the user can retry; it is never recorded as a wrong
// guess. Terminal transitions persist progress atomically: if the save
// fails, the in-memory state does not advance either.
func (e *Engine) SubmitGuess(ctx context.Context, rawGuess string) (Outcome, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.session.Status != StatusInProgress {
		return Outcome{Ignored: true, Status: e.session.Status, Attempts: slices.Clone(e.session.Attempts), Streak: e.streak}, nil
	}
	if isBlank(rawGuess) {
		return Outcome{}, ErrEmptyGuess
	}

	correct, err := e.verifier.Verify(ctx, e.session.PuzzleID, rawGuess)
	if err != nil {
		return Outcome{}, err
	}

	next := append(slices.Clone(e.session.Attempts), correct)

	switch {
	case correct:
		// A redundant same-day win confirmation keeps the streak as is.
		newStreak := e.streak + 1
		if e.loadProgress().DayKey == e.session.DayKey {
			newStreak = e.streak
		}
		if err := e.progress.Save(Progress{
			DayKey:   e.session.DayKey,
			PuzzleID: e.session.PuzzleID,
			Status:   string(StatusWon),
			Attempts: next,
			Streak:   newStreak,
		}); err != nil {
			return Outcome{}, err
		}
		e.session.Attempts = next
		e.session.Status = StatusWon
		e.streak = newStreak

	case len(next) >= e.maxAttempts:
		if err := e.progress.Save(Progress{
			DayKey:   e.session.DayKey,
			PuzzleID: e.session.PuzzleID,
			Status:   string(StatusLost),
			Attempts: next,
			Streak:   0,
		}); err != nil {
			return Outcome{}, err
		}
		e.session.Attempts = next
		e.session.Status = StatusLost
		e.streak = 0

	default:
		e.session.Attempts = next
	}

	return Outcome{
		Correct:   correct,
		Status:    e.session.Status,
		Attempts:  slices.Clone(e.session.Attempts),
		Remaining: e.maxAttempts - len(e.session.Attempts),
		Streak:    e.streak,
	}, nil
}

// ResetToday clears the persisted per-day record but preserves the
// streak, returning the session to InProgress for the same puzzle as if
// newly loaded. Support and testing utility.
func (e *Engine) ResetToday() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	prog := e.loadProgress()
	if err := e.progress.Save(Progress{Streak: prog.Streak}); err != nil {
		return err
	}
	e.streak = prog.Streak
	e.session.Attempts = []bool{}
	if e.session.Status != StatusNotLoaded {
		e.session.Status = StatusInProgress
	}
	return nil
}

// Session returns a snapshot of the current session.
func (e *Engine) Session() Session {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshot()
}

// Streak returns the current streak counter.
func (e *Engine) Streak() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.streak
}

// MaxAttemptsAllowed returns the configured attempt budget.
func (e *Engine) MaxAttemptsAllowed() int {
	return e.maxAttempts
}

// loadProgress reads persisted progress, degrading to the zero value on
// any failure. Callers must hold the mutex.
func (e *Engine) loadProgress() Progress {
	prog, err := e.progress.Load()
	if err != nil {
		return Progress{}
	}
	return prog.sanitized()
}

func (e *Engine) snapshot() Session {
	s := e.session
	s.Attempts = slices.Clone(e.session.Attempts)
	return s
}

func isTerminal(status string) bool {
	return status == string(StatusWon) || status == string(StatusLost)
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
