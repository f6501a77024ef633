// Package metrics provides Prometheus metrics for the summarization pipeline.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// External services.
const (
	ServiceYouTube = "youtube"
	ServiceGemini  = "gemini"
)

// Call results.
const (
	ResultSuccess  = "success"
	ResultFailure  = "failure"
	ResultCacheHit = "cache_hit"
	ResultSkipped  = "skipped"
)

var (
	// SubmissionsTotal counts link submissions by outcome or error kind.
	SubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ytsummary",
			Name:      "submissions_total",
			Help:      "Total number of link submissions",
		},
		[]string{"outcome"},
	)

	// ExternalCallsTotal counts calls to external APIs.
	ExternalCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ytsummary",
			Name:      "external_calls_total",
			Help:      "Total number of external API calls",
		},
		[]string{"service", "result"},
	)

	// ExternalCallDuration measures external API latency.
	ExternalCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "ytsummary",
			Name:      "external_call_duration_seconds",
			Help:      "Duration of external API calls in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"service"},
	)

	// FavoriteTogglesTotal counts favorite toggles by outcome.
	FavoriteTogglesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ytsummary",
			Name:      "favorite_toggles_total",
			Help:      "Total number of favorite toggle requests",
		},
		[]string{"outcome"},
	)

	// EventsPublishedTotal counts submission events sent to the broker.
	EventsPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ytsummary",
			Name:      "events_published_total",
			Help:      "Total number of submission events published",
		},
		[]string{"status"},
	)
)

// RecordSubmission records the outcome of a submission.
func RecordSubmission(outcome string) {
	SubmissionsTotal.WithLabelValues(outcome).Inc()
}

// RecordExternalCall records one external API call.
func RecordExternalCall(service, result string, duration time.Duration) {
	ExternalCallsTotal.WithLabelValues(service, result).Inc()
	if result == ResultSuccess || result == ResultFailure {
		ExternalCallDuration.WithLabelValues(service).Observe(duration.Seconds())
	}
}

// RecordToggle records a favorite toggle outcome.
func RecordToggle(outcome string) {
	FavoriteTogglesTotal.WithLabelValues(outcome).Inc()
}

// RecordPublish records a broker publish attempt.
func RecordPublish(status string) {
	EventsPublishedTotal.WithLabelValues(status).Inc()
}
