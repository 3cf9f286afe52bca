package main

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"klarvorto/internal/puzzle"
)

// todayHandler returns the id and clue of today's puzzle. The answer is
// never serialized here.
func (app *App) todayHandler(c *gin.Context) {
	sel, err := app.Selector.Today()
	if err != nil {
		if errors.Is(err, puzzle.ErrNoPuzzles) {
			logWarn("Daily selection failed: %v", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": ErrorNoPuzzles})
			return
		}
		logWarn("Daily selection failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "selection failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":   sel.Puzzle.ID,
		"clue": sel.Puzzle.Clue,
	})
}

// guessRequest is the /api/guess payload. Pointer fields distinguish
// missing keys from zero values.
type guessRequest struct {
	ID    *int    `json:"id"`
	Guess *string `json:"guess"`
}

// guessHandler verifies a guess against the stored answer for a puzzle
// id. Unknown ids are a client-visible "invalid puzzle" condition, not a
// server fault.
func (app *App) guessHandler(c *gin.Context) {
	var req guessRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ID == nil || req.Guess == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": ErrorInvalidRequest})
		return
	}

	correct, err := app.Store.Verify(*req.ID, *req.Guess)
	if err != nil {
		if errors.Is(err, puzzle.ErrNotFound) {
			logWarn("Guess for unknown puzzle id %d", *req.ID)
			c.JSON(http.StatusNotFound, gin.H{"error": ErrorInvalidPuzzle})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "verification failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"correct": correct})
}

// healthzHandler returns a JSON health check with server stats.
func (app *App) healthzHandler(c *gin.Context) {
	uptime := time.Since(app.StartTime)
	c.JSON(http.StatusOK, gin.H{
		"status":           "ok",
		"env":              map[bool]string{true: "production", false: "development"}[app.IsProduction],
		"puzzles_loaded":   app.Store.Len(),
		"eligible_puzzles": app.Store.EligibleCount(),
		"uptime":           formatUptime(uptime),
		"timestamp":        time.Now().UTC().Format(time.RFC3339),
	})
}
