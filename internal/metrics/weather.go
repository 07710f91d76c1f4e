package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// WeatherMetrics tracks climatology lookups
type WeatherMetrics struct {
	lookupsTotal  *prometheus.CounterVec
	fetchErrors   *prometheus.CounterVec
	fetchDuration *prometheus.HistogramVec
}

// NewWeatherMetrics creates and registers the weather collectors
func NewWeatherMetrics(registry *prometheus.Registry) (*WeatherMetrics, error) {
	m := &WeatherMetrics{}
	m.initMetrics()
	if err := registry.Register(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *WeatherMetrics) initMetrics() {
	m.lookupsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "solar_ghi_lookups_total",
			Help: "Annual GHI lookups by the source that answered (live, store, cache, fallback)",
		},
		[]string{"source"},
	)
	m.fetchErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "solar_climatology_fetch_errors_total",
			Help: "Failed requests to the climatology service by reason",
		},
		[]string{"parameter", "reason"},
	)
	m.fetchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "solar_climatology_fetch_duration_seconds",
			Help:    "Duration of requests to the climatology service",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
		},
		[]string{"parameter"},
	)
}

// RecordLookup counts a GHI lookup answered by source
func (m *WeatherMetrics) RecordLookup(source string) {
	if m == nil {
		return
	}
	m.lookupsTotal.WithLabelValues(source).Inc()
}

// RecordFetch records one request to the climatology service. reason is
// empty on success.
func (m *WeatherMetrics) RecordFetch(parameter string, elapsed time.Duration, reason string) {
	if m == nil {
		return
	}
	m.fetchDuration.WithLabelValues(parameter).Observe(elapsed.Seconds())
	if reason != "" {
		m.fetchErrors.WithLabelValues(parameter, reason).Inc()
	}
}

// Describe implements the prometheus.Collector interface.
func (m *WeatherMetrics) Describe(ch chan<- *prometheus.Desc) {
	m.lookupsTotal.Describe(ch)
	m.fetchErrors.Describe(ch)
	m.fetchDuration.Describe(ch)
}

// Collect implements the prometheus.Collector interface.
func (m *WeatherMetrics) Collect(ch chan<- prometheus.Metric) {
	m.lookupsTotal.Collect(ch)
	m.fetchErrors.Collect(ch)
	m.fetchDuration.Collect(ch)
}
