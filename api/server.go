/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

ROUTER: chi
  Chi was chosen for:
  - Lightweight and fast
  - Context-based
  - Middleware support
  - RESTful route patterns

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for frontend

ROUTE GROUPS:
  /api/shifts/*       Shift request lifecycle
  /api/periods/*      Schedule period management
  /api/coverage/*     Coverage reads
  /api/calendar/*     Month/week/day views
  /api/pas/*          PA registry
  /api/events         Event feed
  /api/demo/*         Demo seeding (dev only)

IDENTITY:
  X-Actor and X-Actor-Role headers are trusted as-is; an upstream
  gateway is expected to authenticate and set them.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Actor", "X-Actor-Role"},
		AllowCredentials: true,
	}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Shift routes
		r.Route("/shifts", func(r chi.Router) {
			r.Get("/", h.ListShifts)
			r.Post("/", h.CreateShift)
			r.Get("/pending", h.ListPendingShifts)
			r.Get("/{id}", h.GetShift)
			r.Patch("/{id}", h.EditShift)
			r.Delete("/{id}", h.CancelShift)
			r.Post("/{id}/approve", h.ApproveShift)
			r.Post("/{id}/reject", h.RejectShift)
		})

		// Period routes
		r.Route("/periods", func(r chi.Router) {
			r.Get("/", h.ListPeriods)
			r.Post("/", h.CreatePeriod)
			r.Get("/{id}", h.GetPeriod)
			r.Post("/{id}/lock", h.LockPeriod)
			r.Post("/{id}/finalize", h.FinalizePeriod)
		})

		// Coverage routes
		r.Route("/coverage", func(r chi.Router) {
			r.Get("/", h.GetCoverage)
			r.Get("/weekly", h.GetWeeklyCoverage)
		})

		// Calendar routes
		r.Route("/calendar", func(r chi.Router) {
			r.Get("/month/{year}/{month}", h.CalendarMonth)
			r.Get("/week/{year}/{week}", h.CalendarWeek)
			r.Get("/day/{date}", h.CalendarDay)
		})

		// PA routes
		r.Route("/pas", func(r chi.Router) {
			r.Get("/", h.ListPAs)
			r.Post("/", h.CreatePA)
			r.Get("/{id}", h.GetPA)
		})

		// Event feed
		r.Get("/events", h.ListEvents)

		// Demo routes (dev only)
		r.Route("/demo", func(r chi.Router) {
			r.Post("/seed", h.SeedDemo)
			r.Post("/reset", h.ResetDatabase)
		})
	})

	return r
}
