package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"golang.org/x/time/rate"

	ginGzip "github.com/gin-contrib/gzip"

	"klarvorto/internal/daily"
	"klarvorto/internal/puzzle"
)

// App holds the server's shared state and configuration.
type App struct {
	Store    *puzzle.Store
	Selector *daily.Selector

	IsProduction   bool
	RateLimitRPS   int
	RateLimitBurst int

	LimiterMap   map[string]*rate.Limiter
	LimiterMutex sync.Mutex
	StartTime    time.Time
}

func main() {
	_ = godotenv.Load()

	isProduction := os.Getenv("GIN_MODE") == "release" || os.Getenv("ENV") == "production"
	logInfo("Starting %s in %s mode", SiteName, map[bool]string{true: "production", false: "development"}[isProduction])

	answerLength := getEnvInt("ANSWER_LENGTH", DefaultAnswerLength)
	puzzleFile := getEnvStr("PUZZLE_FILE", DefaultPuzzleFile)
	store, err := puzzle.Load(puzzleFile, answerLength)
	if err != nil {
		logFatal("Failed to load puzzles: %v", err)
	}
	logInfo("Loaded %d puzzles (%d eligible with %d-letter answers)", store.Len(), store.EligibleCount(), answerLength)
	if store.EligibleCount() == 0 {
		logWarn("No eligible puzzles configured; %s will answer 503", RouteToday)
	}

	tzName := getEnvStr("REFERENCE_TZ", DefaultReferenceTZ)
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		logFatal("Invalid reference timezone %q: %v", tzName, err)
	}

	dayOffset := getEnvInt("DAY_OFFSET", DefaultDayOffset)
	randomMode := getEnvBool("DAILY_RANDOM", false)
	if randomMode {
		logWarn("Random daily selection enabled; players will NOT share a common puzzle")
	}

	app := &App{
		Store:          store,
		Selector:       daily.NewSelector(store, loc, dayOffset, randomMode),
		IsProduction:   isProduction,
		RateLimitRPS:   getEnvInt("RATE_LIMIT_RPS", 5),
		RateLimitBurst: getEnvInt("RATE_LIMIT_BURST", 10),
		LimiterMap:     make(map[string]*rate.Limiter),
		StartTime:      time.Now(),
	}

	startServer(app.setupRouter())
}

// setupRouter builds the gin engine with middleware and routes.
func (app *App) setupRouter() *gin.Engine {
	router := gin.Default()

	router.Use(ginGzip.Gzip(ginGzip.DefaultCompression))

	if err := router.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logWarn("Failed to set trusted proxies: %v", err)
	}

	router.Use(noStoreMiddleware())
	router.Use(requestIDMiddleware())

	router.GET(RouteToday, app.todayHandler)
	router.POST(RouteGuess, app.rateLimitMiddleware(), app.guessHandler)
	router.GET(RouteHealth, app.healthzHandler)

	return router
}

func startServer(router *gin.Engine) {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	idleConnsClosed := make(chan struct{})
	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, syscall.SIGINT, syscall.SIGTERM)
		<-sigint
		logInfo("Shutdown signal received, shutting down server gracefully...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logWarn("HTTP server Shutdown: %v", err)
		}
		close(idleConnsClosed)
	}()

	logInfo("Server starting on http://localhost:%s", port)
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		logFatal("Server failed to start: %v", err)
	}
	<-idleConnsClosed
	logInfo("Server shutdown complete")
}
