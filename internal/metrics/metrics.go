package metrics

import (
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// RequestDuration tracks HTTP request duration in seconds by method, path, status.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// RequestTotal counts HTTP requests by method, path, status.
	RequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// AuthEvents counts register/login/password events by outcome (ok, invalid, duplicate, ...).
	AuthEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_events_total",
			Help: "Authentication events by event and outcome",
		},
		[]string{"event", "outcome"},
	)

	// TaskOps counts task operations by op (create, toggle, delete, list) and outcome.
	TaskOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "task_operations_total",
			Help: "Task operations by op and outcome",
		},
		[]string{"op", "outcome"},
	)

	// SessionsActive is the number of live sessions held by the in-memory store.
	SessionsActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "sessions_active",
			Help: "Number of sessions currently held in memory",
		},
	)
)

var initOnce sync.Once

func init() {
	initOnce.Do(func() {
		prometheus.MustRegister(RequestDuration, RequestTotal, AuthEvents, TaskOps, SessionsActive)
	})
}

// knownPaths bounds label cardinality: anything outside the route table is reported as "other".
var knownPaths = map[string]bool{
	"/": true, "/login": true, "/register": true, "/logout": true,
	"/dashboard": true, "/add": true, "/toggle": true, "/delete": true,
	"/change-password": true, "/forgot-password": true, "/health": true,
	"/static/*": true,
}

// NormalizePath maps a request path to a metrics label.
func NormalizePath(path string) string {
	if knownPaths[path] {
		return path
	}
	return "other"
}

// RecordRequest records duration and count for an HTTP request. Call from middleware with method, path, statusCode, duration.
func RecordRequest(method, path string, statusCode int, durationSeconds float64) {
	path = NormalizePath(path)
	status := strconv.Itoa(statusCode)
	RequestDuration.WithLabelValues(method, path, status).Observe(durationSeconds)
	RequestTotal.WithLabelValues(method, path, status).Inc()
}

// RecordAuthEvent increments the auth counter for event and outcome.
func RecordAuthEvent(event, outcome string) {
	AuthEvents.WithLabelValues(event, outcome).Inc()
}

// RecordTaskOp increments the task operation counter.
func RecordTaskOp(op, outcome string) {
	TaskOps.WithLabelValues(op, outcome).Inc()
}

// SetSessionsActive sets the live session gauge.
func SetSessionsActive(n int) {
	SessionsActive.Set(float64(n))
}
