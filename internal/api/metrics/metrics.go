// Package metrics defines and registers all custom Prometheus metrics for the
// user-directory API. It is the single source of truth for metric names,
// labels, and help strings. Metrics register with the default registry at
// package init via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "directory"

// UserOperationsTotal counts directory operations by outcome.
// Labels:
//   - operation: "list", "search", "get", "create", "update", "delete"
//   - outcome: "success", "denied", "invalid", "not_found", "error"
var UserOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "user_operations_total",
		Help:      "Total number of user directory operations, by operation and outcome.",
	},
	[]string{"operation", "outcome"},
)

// LoginsTotal counts login attempts.
// Label:
//   - outcome: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by outcome.",
	},
	[]string{"outcome"},
)

// UpstreamRequestsTotal counts calls to the escalation-policy upstream.
// Label:
//   - result: "success", "status_error", "transport_error"
var UpstreamRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upstream_requests_total",
		Help:      "Total number of upstream escalation-policy requests, by result.",
	},
	[]string{"result"},
)

// UpstreamRequestDuration measures upstream call latency end-to-end.
var UpstreamRequestDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upstream_request_duration_seconds",
		Help:      "Duration of upstream escalation-policy requests.",
		Buckets:   prometheus.DefBuckets,
	},
)
