package api

import (
	"context"
	"net/http"
	"time"
)

// Pinger reports whether a backing dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthzHandler handles GET /healthz. It always returns 200, indicating
// the process is alive.
func HealthzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// ReadyzHandler handles GET /readyz. It pings the given dependency (the
// rate-limiter's Redis when configured) with a short timeout; a failure
// returns 503 with a Retry-After header. A nil pinger means the service has
// no backing dependencies and is always ready.
func ReadyzHandler(dep Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if dep != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()

			if err := dep.Ping(ctx); err != nil {
				w.Header().Set("Retry-After", "30")
				respondError(w, http.StatusServiceUnavailable, "rate limiter backend unavailable")
				return
			}
		}

		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
