// internal/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RegistrationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "registrations_total",
			Help: "Total number of accepted registrations",
		},
		[]string{"event"},
	)

	SubmissionFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "submission_failures_total",
			Help: "Submission failures by taxonomy kind and code",
		},
		[]string{"kind", "code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path", "method", "status"},
	)
)
