// Package router assembles the HTTP route table and middleware chain.
package router

import (
	"net/http"

	"orders-service/internal/handler"
	"orders-service/internal/metrics"
	"orders-service/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// New creates the HTTP router with all routes and middleware configured.
func New(
	orderHandler *handler.OrderHandler,
	apiKey string,
	m *metrics.Metrics,
	logger zerolog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Outermost first: recovery wraps everything, auth runs last before
	// the handlers.
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Instrument(logger, m))
	r.Use(middleware.CORS)
	r.Use(middleware.APIKeyAuth(apiKey, logger))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/api", orderHandler.RegisterRoutes)

	return r
}
