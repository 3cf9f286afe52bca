package main

// Site identity, used in share text and logs
const (
	SiteName = "Klarvorto"
	SiteURL  = "https://klarvorto.example"
)

// Game configuration defaults
const (
	DefaultAnswerLength = 5
	DefaultDayOffset    = 713
	DefaultReferenceTZ  = "Australia/Perth"
	DefaultPuzzleFile   = "data/puzzles.json"
)

// Route constants
const (
	RouteToday  = "/api/today"
	RouteGuess  = "/api/guess"
	RouteHealth = "/healthz"
)

// Error message constants
const (
	ErrorNoPuzzles      = "No puzzles available."
	ErrorInvalidPuzzle  = "Invalid puzzle."
	ErrorInvalidRequest = "Request must include id and guess."
)

type contextKey string

// Context key constants
const (
	requestIDKey contextKey = "request_id"
)
