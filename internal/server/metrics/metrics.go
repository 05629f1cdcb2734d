// Package metrics defines the Prometheus collectors exported on /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// RequestsTotal counts handled requests by transport, method and result code.
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tasktracker_requests_total",
		Help: "Handled requests by transport, method and code",
	}, []string{"transport", "method", "code"})

	// RequestDuration tracks request latency.
	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "tasktracker_request_duration_seconds",
		Help:    "Request duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.0005, 2, 14), // 0.5ms to ~4s
	}, []string{"transport", "method"})

	// AuthFailures counts rejected sessions by reason (missing, invalid, expired).
	AuthFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tasktracker_auth_failures_total",
		Help: "Rejected session tokens by reason",
	}, []string{"reason"})

	// TaskMutations counts successful task writes by operation.
	TaskMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tasktracker_task_mutations_total",
		Help: "Task writes by operation",
	}, []string{"operation"})

	// OwnershipDenials counts requests that touched another user's task.
	OwnershipDenials = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tasktracker_ownership_denials_total",
		Help: "Requests rejected by the ownership guard",
	})
)

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
