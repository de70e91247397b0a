package auth

import (
	"net"
	"net/http"
	"strings"

	"github.com/sungwon/mailcheck/internal/metrics"
)

// BearerAuth returns an HTTP middleware that validates API keys presented
// as "Authorization: Bearer <key>" against the given keyring. Requests with
// a missing, malformed, or unrecognized key receive a 401 response.
func BearerAuth(keyring *Keyring) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				metrics.APIAuthFailuresTotal.Inc()
				writeAuthError(w, `{"error":"authorization header required"}`)
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				metrics.APIAuthFailuresTotal.Inc()
				writeAuthError(w, `{"error":"invalid authorization format, expected Bearer <key>"}`)
				return
			}

			apiKey := parts[1]
			if apiKey == "" {
				metrics.APIAuthFailuresTotal.Inc()
				writeAuthError(w, `{"error":"empty API key"}`)
				return
			}

			if err := keyring.Verify(apiKey); err != nil {
				metrics.APIAuthFailuresTotal.Inc()
				writeAuthError(w, `{"error":"invalid API key"}`)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RateLimit returns an HTTP middleware that rejects requests over the
// limiter's per-caller window with a 429 response. Callers are identified
// by remote host. A nil limiter disables rate limiting.
func RateLimit(limiter *RateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if limiter == nil {
				next.ServeHTTP(w, r)
				return
			}

			caller := remoteHost(r)
			if err := limiter.Allow(r.Context(), caller); err != nil {
				metrics.APIRateLimitedTotal.Inc()
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("Retry-After", limiter.RetryAfter())
				w.WriteHeader(http.StatusTooManyRequests)
				w.Write([]byte(`{"error":"rate limit exceeded"}`))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// remoteHost extracts the host portion of the request's remote address,
// falling back to the raw value when it carries no port.
func remoteHost(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func writeAuthError(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(body))
}
