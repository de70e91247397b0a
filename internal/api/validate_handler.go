package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/sungwon/mailcheck/internal/metrics"
	"github.com/sungwon/mailcheck/internal/scoring"
	"github.com/sungwon/mailcheck/internal/validator"
)

// validateRequest is the JSON body for a validation call.
type validateRequest struct {
	Email string `json:"email"`
}

// ValidateHandler handles POST /api/v1/validate. The response body is the
// validation result itself; an address that fails validation is still a 200
// with is_valid=false, since invalid input is a normal outcome, not a
// transport error. Only an undecodable request body yields a 400.
func ValidateHandler(v *validator.Validator, maxBodyBytes int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

		var req validateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		start := time.Now()
		result := v.Validate(req.Email)
		metrics.ValidationDuration.Observe(time.Since(start).Seconds())

		if result.IsValid {
			metrics.ValidationsTotal.WithLabelValues("valid").Inc()
			metrics.ValidationTierTotal.WithLabelValues(scoring.TierName(*result.DomainScore)).Inc()
		} else {
			metrics.ValidationsTotal.WithLabelValues("invalid").Inc()
		}

		respondJSON(w, http.StatusOK, result)
	}
}
