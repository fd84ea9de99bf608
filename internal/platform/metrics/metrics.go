package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the platform-level Prometheus metrics for the gateway.
type Metrics struct {
	RequestLatency *prometheus.HistogramVec
}

// New creates and registers all platform metrics.
func New() *Metrics {
	return &Metrics{
		RequestLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "lexgate_http_request_duration_seconds",
			Help:    "Latency of ingestion gateway HTTP requests",
			Buckets: prometheus.DefBuckets,
		}, []string{"path"}),
	}
}

// ObserveRequestLatency records one request's latency.
func (m *Metrics) ObserveRequestLatency(path string, d time.Duration) {
	m.RequestLatency.WithLabelValues(path).Observe(d.Seconds())
}
