// Command play is a terminal client for the daily puzzle. It fetches
// today's clue from the server, runs guesses through the local game
// engine, and keeps progress and the streak in a JSON file under the
// user config directory.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/joho/godotenv"

	"klarvorto/internal/daily"
	"klarvorto/internal/engine"
)

const (
	siteName           = "Klarvorto"
	defaultServerURL   = "http://localhost:8080"
	defaultReferenceTZ = "Australia/Perth"
)

func main() {
	_ = godotenv.Load()

	serverURL := flag.String("server", envOr("SERVER_URL", defaultServerURL), "base URL of the puzzle server")
	progressPath := flag.String("progress", "", "path of the progress file (default: user config dir)")
	shareOnly := flag.Bool("share", false, "print the share text for today and exit")
	reset := flag.Bool("reset", false, "clear today's result, keeping the streak")
	flag.Parse()

	loc, err := time.LoadLocation(envOr("REFERENCE_TZ", defaultReferenceTZ))
	if err != nil {
		log.Fatalf("invalid reference timezone: %v", err)
	}

	path := *progressPath
	if path == "" {
		path = defaultProgressPath()
	}

	ctx := context.Background()
	api := engine.NewAPIClient(*serverURL)

	id, clue, err := api.Today(ctx)
	if err != nil {
		log.Fatalf("could not fetch today's puzzle from %s: %v", *serverURL, err)
	}

	eng := engine.New(api, engine.NewFileStore(path), envInt("MAX_ATTEMPTS", engine.MaxAttempts))
	now := time.Now()
	sess := eng.LoadToday(engine.Today{
		DayKey:    daily.DayKey(now, loc),
		DayNumber: daily.DayNumber(now, loc),
		PuzzleID:  id,
		Clue:      clue,
	})

	if *reset {
		if err := eng.ResetToday(); err != nil {
			log.Fatalf("could not reset today's progress: %v", err)
		}
		fmt.Println("Today's result cleared. Streak preserved.")
		sess = eng.Session()
	}

	if *shareOnly {
		share(eng)
		return
	}

	fmt.Printf("%s — daily word-from-definition puzzle\n\n", siteName)
	fmt.Printf("Clue: %s\n", sess.Clue)
	fmt.Printf("Streak: %d\n", eng.Streak())

	switch sess.Status {
	case engine.StatusWon:
		fmt.Println("Already solved today! Type 'share' to copy your result.")
	case engine.StatusLost:
		fmt.Println("Out of tries today. Come back tomorrow, or type 'share'.")
	default:
		fmt.Printf("You have %d attempts. Type a word and press enter.\n", eng.MaxAttemptsAllowed()-len(sess.Attempts))
	}

	runLoop(ctx, eng)
}

func runLoop(ctx context.Context, eng *engine.Engine) {
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())

		switch strings.ToLower(line) {
		case "quit", "exit":
			return
		case "share":
			share(eng)
			continue
		}

		out, err := eng.SubmitGuess(ctx, line)
		switch {
		case errors.Is(err, engine.ErrEmptyGuess):
			fmt.Println("Type a 5-letter word.")
		case err != nil:
			fmt.Printf("Could not check your guess (%v). Nothing was recorded, try again.\n", err)
		case out.Ignored:
			fmt.Println("Today's game is over. Type 'share' or 'quit'.")
		case out.Correct:
			fmt.Printf("Correct! Streak: %d. Type 'share' to copy your result.\n", out.Streak)
		case out.Status == engine.StatusLost:
			fmt.Println("Out of tries today. Streak reset. Type 'share' or 'quit'.")
		default:
			fmt.Printf("Wrong, try again (%d/%d used).\n", len(out.Attempts), eng.MaxAttemptsAllowed())
		}
	}
}

// share copies the result block to the clipboard; if the clipboard is
// unavailable the text is printed for manual copying instead.
func share(eng *engine.Engine) {
	text := eng.ShareText(siteName, envOr("SITE_URL", "https://klarvorto.example"))
	if err := clipboard.WriteAll(text); err != nil {
		fmt.Println("Clipboard unavailable, copy your result below:")
		fmt.Println(text)
		return
	}
	fmt.Println("Copied results to clipboard!")
}

func defaultProgressPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "progress.json"
	}
	return filepath.Join(dir, "klarvorto", "progress.json")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	var i int
	if _, err := fmt.Sscanf(v, "%d", &i); err != nil {
		return fallback
	}
	return i
}
