package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	// RequestsTotal counts handled API requests by endpoint and outcome.
	RequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "productfinder",
		Subsystem: "api",
		Name:      "requests_total",
		Help:      "Total number of API requests handled, labeled by endpoint and result.",
	}, []string{"endpoint", "result"})

	// UpstreamDurationSeconds measures end-to-end latency of hosted model
	// calls per operation.
	UpstreamDurationSeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "productfinder",
		Subsystem: "upstream",
		Name:      "duration_seconds",
		Help:      "Time spent waiting on the hosted model, labeled by operation.",
		Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 20, 30, 60},
	}, []string{"operation"})

	// AnalysisFallbackTotal counts analyses where the model reply could not
	// be parsed and the fixed fallback result was served instead.
	AnalysisFallbackTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "productfinder",
		Subsystem: "analyzer",
		Name:      "fallback_total",
		Help:      "Total number of analyses served with the fallback result due to unparseable model output.",
	})
)

// Register registers all metrics with the default Prometheus registry.
// Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(
			RequestsTotal,
			UpstreamDurationSeconds,
			AnalysisFallbackTotal,
		)
	})
}
