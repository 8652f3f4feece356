/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the leave workflow server. Handles
  configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Parse command-line flags
  2. Initialize SQLite store
  3. Load the working calendar (file or Monday-Friday default)
  4. Create API handler with dependencies
  5. Start server with graceful shutdown

COMMAND-LINE FLAGS:
  -port      HTTP server port (default: 8080)
  -db        SQLite database path (default: leave.db)
             Use ":memory:" for in-memory database
  -calendar  Optional JSON calendar file (see factory/calendar.go)

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Close database connection
  4. Exit

EXAMPLES:
  # Run with file database
  ./server -db="./data/leave.db"

  # Run with a custom working week
  ./server -calendar="./config/calendar.json"

SEE ALSO:
  - api/server.go: Router configuration
  - api/handlers.go: HTTP handlers
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
	"syscall"
	"time"

	"github.com/warp/leave-engine/api"
	"github.com/warp/leave-engine/engine"
	"github.com/warp/leave-engine/factory"
	"github.com/warp/leave-engine/store/sqlite"
)

func main() {
	// Flags
	port := flag.Int("port", 8080, "HTTP server port")
	dbPath := flag.String("db", "leave.db", "SQLite database path")
	calendarPath := flag.String("calendar", "", "JSON calendar file (optional)")
	flag.Parse()

	// Initialize store
	store, err := sqlite.New(*dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer store.Close()

	// Working calendar: configured file or Monday-Friday default. The
	// same file may declare leave types, upserted at startup.
	calendar := engine.NewWorkingCalendar()
	if *calendarPath != "" {
		var leaveTypes []factory.LeaveTypeJSON
		calendar, leaveTypes, err = factory.NewCalendarFactory().LoadConfig(*calendarPath)
		if err != nil {
			log.Fatalf("Failed to load calendar: %v", err)
		}
		for _, lt := range leaveTypes {
			err := store.SaveLeaveType(context.Background(), sqlite.LeaveType{
				ID: lt.ID, Name: lt.Name, ExcludesHolidays: lt.ExcludesHolidays,
			})
			if err != nil {
				log.Fatalf("Failed to save leave type %s: %v", lt.ID, err)
			}
		}
	}

	// Initialize handler and router
	handler := api.NewHandler(store, calendar, api.LogNotifier{})
	router := api.NewRouter(handler)

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
		log.Printf("Server starting on http://localhost:%d", *port)
		log.Printf("API available at http://localhost:%d/api", *port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}
