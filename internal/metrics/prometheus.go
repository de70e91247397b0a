package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Validation metrics
var (
	ValidationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "email_validations_total",
			Help: "Total number of email validations",
		},
		[]string{"outcome"}, // valid, invalid
	)

	ValidationTierTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "email_validation_tier_total",
			Help: "Total number of valid emails by domain trust tier",
		},
		[]string{"tier"}, // trusted, disposable, default
	)

	ValidationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "email_validation_duration_seconds",
			Help:    "Duration of email validation calls",
			Buckets: prometheus.DefBuckets,
		},
	)
)

// API metrics
var (
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "path", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "Duration of API requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	APIAuthFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "api_auth_failures_total",
			Help: "Total number of API authentication failures",
		},
	)

	APIRateLimitedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "api_rate_limited_total",
			Help: "Total number of requests rejected by rate limiting",
		},
	)
)
