package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// EstimatorMetrics counts yield estimates and times optimizer runs
type EstimatorMetrics struct {
	estimatesTotal    *prometheus.CounterVec
	optimizerDuration *prometheus.HistogramVec
	optimizerFallback *prometheus.CounterVec
	financialTotal    *prometheus.CounterVec
}

// NewEstimatorMetrics creates and registers the estimator collectors
func NewEstimatorMetrics(registry *prometheus.Registry) (*EstimatorMetrics, error) {
	m := &EstimatorMetrics{}
	m.initMetrics()
	if err := registry.Register(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *EstimatorMetrics) initMetrics() {
	m.estimatesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "solar_yield_estimates_total",
			Help: "Total number of yield estimates by model and the tier that produced them",
		},
		[]string{"model", "tier"},
	)
	m.optimizerDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "solar_optimizer_duration_seconds",
			Help:    "Duration of angle optimizer runs",
			Buckets: prometheus.ExponentialBuckets(0.0005, 4, 10),
		},
		[]string{"method"},
	)
	m.optimizerFallback = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "solar_optimizer_fallbacks_total",
			Help: "Optimizer runs that fell back to the heuristic angles",
		},
		[]string{"method"},
	)
	m.financialTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "solar_financial_analyses_total",
			Help: "Total number of financial analyses by revenue model and outcome",
		},
		[]string{"revenue_model", "status"},
	)
}

// RecordEstimate counts one yield estimate
func (m *EstimatorMetrics) RecordEstimate(model, tier string) {
	if m == nil {
		return
	}
	m.estimatesTotal.WithLabelValues(model, tier).Inc()
}

// RecordOptimizer records an optimizer run and whether it converged
func (m *EstimatorMetrics) RecordOptimizer(method string, elapsed time.Duration, converged bool) {
	if m == nil {
		return
	}
	m.optimizerDuration.WithLabelValues(method).Observe(elapsed.Seconds())
	if !converged {
		m.optimizerFallback.WithLabelValues(method).Inc()
	}
}

// RecordFinancial counts one financial analysis
func (m *EstimatorMetrics) RecordFinancial(revenueModel string, err error) {
	if m == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	m.financialTotal.WithLabelValues(revenueModel, status).Inc()
}

// Describe implements the prometheus.Collector interface.
func (m *EstimatorMetrics) Describe(ch chan<- *prometheus.Desc) {
	m.estimatesTotal.Describe(ch)
	m.optimizerDuration.Describe(ch)
	m.optimizerFallback.Describe(ch)
	m.financialTotal.Describe(ch)
}

// Collect implements the prometheus.Collector interface.
func (m *EstimatorMetrics) Collect(ch chan<- prometheus.Metric) {
	m.estimatesTotal.Collect(ch)
	m.optimizerDuration.Collect(ch)
	m.optimizerFallback.Collect(ch)
	m.financialTotal.Collect(ch)
}
