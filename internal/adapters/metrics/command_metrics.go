package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// RequestMetricsCollector handles mediator request execution metrics
type RequestMetricsCollector struct {
	requestDuration *prometheus.HistogramVec
	requestsTotal   *prometheus.CounterVec
}

// NewRequestMetricsCollector creates a new request metrics collector
func NewRequestMetricsCollector(namespace string) *RequestMetricsCollector {
	return &RequestMetricsCollector{
		// Request execution duration histogram
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "request_duration_seconds",
				Help:      "Request execution duration distribution",
				Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
			},
			[]string{"request", "status"},
		),

		// Request execution counter
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "requests_total",
				Help:      "Total number of requests executed by type and status",
			},
			[]string{"request", "status"},
		),
	}
}

// Register registers all request metrics with the given registry
func (c *RequestMetricsCollector) Register(registry prometheus.Registerer) error {
	return registerAll(registry, c.requestDuration, c.requestsTotal)
}

// RecordRequestExecution records request execution metrics
func (c *RequestMetricsCollector) RecordRequestExecution(
	requestName string,
	duration float64,
	success bool,
) {
	status := "success"
	if !success {
		status = "error"
	}

	c.requestDuration.WithLabelValues(requestName, status).Observe(duration)
	c.requestsTotal.WithLabelValues(requestName, status).Inc()
}
