// internal/pkg/apiclient/metrics.go
package apiclient

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	upstreamRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "console_upstream_requests_total",
			Help: "Total number of calls made to the backend API.",
		},
		[]string{"method", "endpoint", "outcome"},
	)

	upstreamRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "console_upstream_request_duration_seconds",
			Help:    "Backend API call latencies in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)
)

// RegisterMetrics registers the upstream collectors. Call once at startup.
func RegisterMetrics(reg prometheus.Registerer) {
	reg.MustRegister(upstreamRequestsTotal, upstreamRequestDuration)
}

// endpointRoot keeps label cardinality low: "/Role/123" ⇒ "/Role".
func endpointRoot(path string) string {
	trimmed := strings.TrimPrefix(path, "/")
	if i := strings.IndexAny(trimmed, "/?"); i >= 0 {
		trimmed = trimmed[:i]
	}
	return "/" + trimmed
}
