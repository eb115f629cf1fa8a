package api

import (
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/RAKESHKUSHWAHA7518/project-chatter/internal/api/middleware"
	"github.com/RAKESHKUSHWAHA7518/project-chatter/internal/handlers"
)

// base applies the middleware chain shared by both services.
func base(r *chi.Mux, logger zerolog.Logger, limits map[string]middleware.RateLimit) {
	// Metrics middleware (first to capture all requests)
	r.Use(middleware.Metrics)

	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.MaxBodySize(8 * 1024)) // 8KB max body

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(chimw.Recoverer)

	limiter := middleware.NewRateLimiter(limits, logger)
	r.Use(limiter.Middleware)

	// CORS - the dashboard frontend is served from its own origin
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		ExposedHeaders:   []string{"X-RateLimit-Limit", "Retry-After"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
}

// NewHashRouter configures the token issuance service.
func NewHashRouter(logger zerolog.Logger) *chi.Mux {
	r := chi.NewRouter()
	base(r, logger, middleware.HashLimits())

	h := handlers.NewHashHandler(logger)

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/health", h.Health)
	r.Post("/generate-hash", h.GenerateHash)

	return r
}

// NewDashboardRouter configures the monitor's dashboard API.
func NewDashboardRouter(h *handlers.Handler, logger zerolog.Logger) *chi.Mux {
	r := chi.NewRouter()
	base(r, logger, middleware.DashboardLimits())

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/health", h.Health)

	r.Get("/chatters", h.Chatters)
	r.Get("/alerts", h.Alerts)
	r.Get("/stats", h.Stats)
	r.Post("/chatters/{id}/message", h.SendMessage)
	r.Post("/alerts/reset", h.ResetAlerts)

	return r
}
