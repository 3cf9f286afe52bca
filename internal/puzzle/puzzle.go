// Package puzzle holds the read-only puzzle collection and answers
// verification against it.
package puzzle

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/samber/lo"
)

var (
	// ErrNotFound is returned when a puzzle id does not resolve.
	ErrNotFound = errors.New("puzzle not found")
	// ErrNoPuzzles is returned when the eligible subset is empty.
	ErrNoPuzzles = errors.New("no eligible puzzles available")
)

// Record is a single clue/answer pair. Answers are normalized to
// lowercase at load time.
type Record struct {
	ID     int    `json:"id"`
	Clue   string `json:"clue"`
	Answer string `json:"answer"`
}

// File represents the JSON structure of the puzzle data file.
type File struct {
	Puzzles []Record `json:"puzzles"`
}

// Store is an immutable view over the loaded puzzle collection. The
// eligible subset is computed once so every caller agrees on its length
// and ordering.
type Store struct {
	all      []Record
	eligible []Record
	byID     map[int]Record
}

// New builds a Store from an in-memory record list. Records whose
// answer length differs from answerLength are kept in the collection
// but excluded from the eligible subset, preserving original order.
func New(records []Record, answerLength int) *Store {
	all := lo.Map(records, func(r Record, _ int) Record {
		r.Answer = Normalize(r.Answer)
		return r
	})
	eligible := lo.Filter(all, func(r Record, _ int) bool {
		return len(r.Answer) == answerLength
	})
	byID := lo.Associate(eligible, func(r Record) (int, Record) {
		return r.ID, r
	})
	return &Store{all: all, eligible: eligible, byID: byID}
}

// Load reads the puzzle data file and builds the Store.
func Load(path string, answerLength int) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read puzzle file: %w", err)
	}
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse puzzle file %s: %w", path, err)
	}
	return New(f.Puzzles, answerLength), nil
}

// Len returns the size of the full collection.
func (s *Store) Len() int {
	return len(s.all)
}

// Eligible returns the cached ordered subset of records playable under
// the active ruleset. Callers must not mutate the returned slice.
func (s *Store) Eligible() []Record {
	return s.eligible
}

// EligibleCount returns the size of the eligible subset.
func (s *Store) EligibleCount() int {
	return len(s.eligible)
}

// FindByID looks up an eligible puzzle by id.
func (s *Store) FindByID(id int) (Record, error) {
	r, ok := s.byID[id]
	if !ok {
		return Record{}, ErrNotFound
	}
	return r, nil
}

// Verify reports whether a raw guess matches the stored answer for the
// given puzzle id. Both sides are trimmed and case-folded before an
// exact comparison. Pure lookup and compare, no side effects.
func (s *Store) Verify(id int, rawGuess string) (bool, error) {
	r, err := s.FindByID(id)
	if err != nil {
		return false, err
	}
	return Normalize(rawGuess) == r.Answer, nil
}

// Normalize trims surrounding whitespace and lowercases a word for
// comparison.
func Normalize(word string) string {
	return strings.ToLower(strings.TrimSpace(word))
}
