package engine

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// Share markers, one row per attempt in order.
const (
	shareMarkCorrect = "🟩"
	shareMarkWrong   = "🟥"
)

// BuildShareText renders the fixed-format shareable summary for a
// session: title and day number, streak, attempt count, one marker row
// per attempt, and a trailing reference URL. The answer never appears.
func BuildShareText(s Session, streak int, maxAttempts int, siteName, siteURL string) string {
	if maxAttempts <= 0 {
		maxAttempts = MaxAttempts
	}

	attempts := s.Attempts
	if len(attempts) > maxAttempts {
		attempts = attempts[:maxAttempts]
	}
	rows := lo.Map(attempts, func(ok bool, _ int) string {
		if ok {
			return shareMarkCorrect
		}
		return shareMarkWrong
	})

	attemptsLine := fmt.Sprintf("Attempts: X/%d", maxAttempts)
	if s.Status == StatusWon {
		attemptsLine = fmt.Sprintf("Attempts: %d/%d", len(attempts), maxAttempts)
	}

	lines := []string{
		fmt.Sprintf("%s #%d", siteName, s.DayNumber),
		fmt.Sprintf("Streak: %d", streak),
		attemptsLine,
	}
	lines = append(lines, rows...)
	lines = append(lines, siteURL)
	return strings.Join(lines, "\n")
}

// ShareText renders the shareable summary for the engine's current
// session and streak.
func (e *Engine) ShareText(siteName, siteURL string) string {
	e.mu.Lock()
	s := e.snapshot()
	streak := e.streak
	e.mu.Unlock()
	return BuildShareText(s, streak, e.maxAttempts, siteName, siteURL)
}
