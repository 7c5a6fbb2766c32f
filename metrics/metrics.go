package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestCounter counts HTTP requests by status code, method, and path
	RequestCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chessexp_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"status", "method", "path"},
	)

	// RequestDuration measures HTTP request duration
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "chessexp_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"status", "method", "path"},
	)

	// RequestInProgress counts HTTP requests currently being processed
	RequestInProgress = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "chessexp_http_requests_in_progress",
			Help: "Number of HTTP requests currently being processed",
		},
		[]string{"method", "path"},
	)

	// RateLimiterRejections counts rejected requests due to rate limiting
	RateLimiterRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chessexp_rate_limiter_rejections_total",
			Help: "Total number of requests rejected by rate limiter",
		},
		[]string{"ip"},
	)

	// SessionsAssigned counts created player sessions by experiment id
	SessionsAssigned = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chessexp_sessions_assigned_total",
			Help: "Total number of player sessions assigned a condition order",
		},
		[]string{"experiment"},
	)

	// ResponsesRecorded counts stored puzzle responses by experiment id
	ResponsesRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chessexp_responses_recorded_total",
			Help: "Total number of puzzle responses recorded",
		},
		[]string{"experiment", "skipped"},
	)

	// DuplicateConflicts counts duplicate session or response submissions
	DuplicateConflicts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chessexp_duplicate_conflicts_total",
			Help: "Total number of duplicate submissions resolved as conflicts",
		},
		[]string{"resource"},
	)

	// MemoryStats tracks process memory usage
	MemoryStats = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "chessexp_memory_stats_bytes",
			Help: "Memory statistics in bytes",
		},
		[]string{"type"},
	)

	// GoroutineCount tracks the number of running goroutines
	GoroutineCount = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "chessexp_goroutines",
			Help: "Number of running goroutines",
		},
	)
)
