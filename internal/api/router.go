package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/sungwon/mailcheck/internal/auth"
	"github.com/sungwon/mailcheck/internal/validator"
)

// defaultMaxBodyBytes bounds request bodies when no limit is configured.
// A validation request carries one address, so 4 KiB is generous.
const defaultMaxBodyBytes = 4096

// RouterConfig carries the dependencies for NewRouter. Keyring and
// RateLimiter are optional; when nil the corresponding middleware is not
// installed.
type RouterConfig struct {
	Validator    *validator.Validator
	Log          zerolog.Logger
	Keyring      *auth.Keyring
	RateLimiter  *auth.RateLimiter
	MaxBodyBytes int64
}

// NewRouter creates a chi.Mux with all routes, middleware, and handlers
// configured. Health and metrics endpoints are unauthenticated; the
// /api/v1 surface sits behind API-key auth and rate limiting when those
// are configured.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(CorrelationIDMiddleware)
	r.Use(LoggingMiddleware(cfg.Log))
	r.Use(RecoverMiddleware(cfg.Log))
	r.Use(MetricsMiddleware)

	// Health endpoints (no auth required)
	r.Get("/healthz", HealthzHandler())
	r.Get("/readyz", ReadyzHandler(readinessDep(cfg.RateLimiter)))

	// Prometheus metrics (no auth required)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	maxBody := cfg.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = defaultMaxBodyBytes
	}

	r.Route("/api/v1", func(r chi.Router) {
		if cfg.Keyring != nil {
			r.Use(auth.BearerAuth(cfg.Keyring))
		}
		if cfg.RateLimiter != nil {
			r.Use(auth.RateLimit(cfg.RateLimiter))
		}

		r.Post("/validate", ValidateHandler(cfg.Validator, maxBody))
	})

	return r
}

// readinessDep adapts an optional rate limiter to the Pinger interface
// without handing ReadyzHandler a typed nil.
func readinessDep(limiter *auth.RateLimiter) Pinger {
	if limiter == nil {
		return nil
	}
	return limiter
}
