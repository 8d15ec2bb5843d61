package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "residencia_http_requests_total",
			Help: "Total HTTP requests by method, path and status code",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "residencia_http_request_duration_seconds",
			Help:    "HTTP request latency by method and path",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	ActionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "residencia_engine_actions_total",
			Help: "State engine dispatches by action kind",
		},
		[]string{"action"},
	)

	// PersistenceFailures counts fire-and-forget gateway calls that came
	// back with an error. The in-memory state is not rolled back on
	// failure, so this is the drift indicator to watch.
	PersistenceFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "residencia_persistence_failures_total",
			Help: "Failed asynchronous persistence calls by table and op kind",
		},
		[]string{"table", "op"},
	)
)
