package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Request outcomes recorded by the generate handler.
const (
	outcomeSuccess         = "success"
	outcomeInvalidRequest  = "invalid_request"
	outcomeMalformed       = "malformed_response"
	outcomeGenerationError = "generation_error"
)

// metrics holds the gateway collectors. They live on a registry owned by the
// server so that several servers (tests) can coexist in one process.
type metrics struct {
	registry  *prometheus.Registry
	requests  *prometheus.CounterVec
	duration  prometheus.Histogram
	generated prometheus.Counter
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "testcasegenie",
			Name:      "generate_requests_total",
			Help:      "Generate requests by outcome.",
		}, []string{"outcome"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "testcasegenie",
			Name:      "generate_duration_seconds",
			Help:      "Time spent serving generate requests, model call included.",
			Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 20, 40, 60, 120},
		}),
		generated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "testcasegenie",
			Name:      "generated_test_cases_total",
			Help:      "Test cases returned to clients.",
		}),
	}

	m.registry.MustRegister(
		m.requests,
		m.duration,
		m.generated,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	// Pre-create outcome series so dashboards see zeros.
	for _, outcome := range []string{outcomeSuccess, outcomeInvalidRequest, outcomeMalformed, outcomeGenerationError} {
		m.requests.WithLabelValues(outcome)
	}
	return m
}
