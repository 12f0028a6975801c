package server

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/rpgo/policy-irr/internal/domain"
)

// Metrics holds the Prometheus collectors for the HTTP service.
type Metrics struct {
	Registry     *prometheus.Registry
	Calculations *prometheus.CounterVec
	Duration     prometheus.Histogram
}

// NewMetrics creates the collectors on a dedicated registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		Calculations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "policyirr_calculations_total",
				Help: "Total number of IRR evaluations by outcome",
			},
			[]string{"outcome"},
		),
		Duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "policyirr_calculation_duration_seconds",
				Help:    "Time spent building timelines and solving IRR per request",
				Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
			},
		),
	}
	m.Registry.MustRegister(m.Calculations, m.Duration)
	return m
}

// ObserveResult counts one IRR evaluation.
func (m *Metrics) ObserveResult(r domain.IRRResult) {
	outcome := "no_solution"
	if r.Solved {
		outcome = "solved"
	}
	m.Calculations.WithLabelValues(outcome).Inc()
}

// ObserveDuration records how long a request spent calculating.
func (m *Metrics) ObserveDuration(d time.Duration) {
	m.Duration.Observe(d.Seconds())
}
