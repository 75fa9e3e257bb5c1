package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"macropulse/internal/config"
	apierrors "macropulse/internal/errors"
	"macropulse/internal/middleware"
	"macropulse/internal/services"
)

// RouterDeps carries everything the router needs to assemble the API
// surface.
type RouterDeps struct {
	Config   *config.Config
	Logger   *slog.Logger
	Service  *services.AnalyticsService
	Version  string
	Registry *prometheus.Registry
}

// NewRouter assembles the middleware chain and mounts the API routes.
func NewRouter(deps RouterDeps) http.Handler {
	errorHandler := apierrors.NewErrorHandler(deps.Logger)

	registry := deps.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	metrics := middleware.NewRequestMetrics(registry)

	r := chi.NewRouter()

	// Order matters: request IDs first so every later log line and error
	// body carries the trace ID.
	r.Use(middleware.RequestID)
	r.Use(middleware.StructuredLogger(deps.Logger))
	r.Use(middleware.Recoverer(deps.Logger))
	r.Use(metrics.Handler)
	if deps.Config != nil && deps.Config.Security.RateLimit.Enabled {
		r.Use(middleware.RateLimit(deps.Config.Security.RateLimit.RPS, deps.Config.Security.RateLimit.Burst))
	}

	analytics := NewAnalyticsHandler(deps.Service, deps.Logger, errorHandler)
	health := NewHealthHandler(deps.Version)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", health.Health)
		r.Mount("/analytics", analytics.Routes())
	})

	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	return r
}
