/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the shift scheduling server. Handles
  configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Load .env (if present) and parse command-line flags
  2. Initialize SQLite store
  3. Create API handler with dependencies
  4. Start the coverage gap watcher
  5. Start server with graceful shutdown

COMMAND-LINE FLAGS:
  -port              HTTP server port (default: 8080)
  -db                SQLite database path (default: shifts.db)
                     Use ":memory:" for in-memory database
  -watcher-interval  Coverage scan interval (default: 15m)
  -watcher-horizon   Days ahead to scan for gaps (default: 7)
  -no-watcher        Disable the coverage watcher

ENVIRONMENT:
  PORT, SHIFTS_DB, WATCHER_INTERVAL, WATCHER_HORIZON set flag defaults;
  a .env file in the working directory is loaded first. Flags win over
  environment.

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop the coverage watcher
  2. Stop accepting new connections
  3. Wait for active requests to complete (30s timeout)
  4. Close database connection
  5. Exit

EXAMPLES:
  # Run with file database
  ./server -db="./data/shifts.db"

  # Run with in-memory database, fast watcher for demos
  ./server -db=":memory:" -watcher-interval=30s

SEE ALSO:
  - api/server.go: Router configuration
  - api/watcher.go: Coverage gap watcher
  - store/sqlite/sqlite.go: Database implementation
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/warp/shift-engine/api"
	"github.com/warp/shift-engine/store/sqlite"
)

func main() {
	// .env sets environment defaults; missing file is fine.
	_ = godotenv.Load()

	// Flags, with environment fallbacks
	port := flag.Int("port", envInt("PORT", 8080), "HTTP server port")
	dbPath := flag.String("db", envStr("SHIFTS_DB", "shifts.db"), "SQLite database path")
	watcherInterval := flag.Duration("watcher-interval", envDuration("WATCHER_INTERVAL", 15*time.Minute), "coverage scan interval")
	watcherHorizon := flag.Int("watcher-horizon", envInt("WATCHER_HORIZON", 7), "days ahead to scan for coverage gaps")
	noWatcher := flag.Bool("no-watcher", false, "disable the coverage watcher")
	flag.Parse()

	// Initialize store
	store, err := sqlite.New(*dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer store.Close()

	// Initialize handler and router
	handler := api.NewHandler(store)
	router := api.NewRouter(handler)

	// Coverage gap watcher
	watcher := api.NewCoverageWatcher(store)
	watcher.CheckInterval = *watcherInterval
	watcher.Horizon = *watcherHorizon
	watcher.Enabled = !*noWatcher
	watcher.Start()

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", *port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("🚀 Server starting on http://localhost:%d", *port)
		log.Printf("📊 API available at http://localhost:%d/api", *port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	watcher.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
