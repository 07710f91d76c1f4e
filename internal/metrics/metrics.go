// Package metrics provides the Prometheus collectors of the estimation service.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles every collector the service exposes. All methods on a nil
// *Metrics, or on its nil members, are no-ops.
type Metrics struct {
	Registry  *prometheus.Registry
	Estimator *EstimatorMetrics
	Weather   *WeatherMetrics
	HTTP      *HTTPMetrics
}

// New creates a registry and registers all collectors on it
func New() (*Metrics, error) {
	registry := prometheus.NewRegistry()

	est, err := NewEstimatorMetrics(registry)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize estimator metrics: %w", err)
	}
	weather, err := NewWeatherMetrics(registry)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize weather metrics: %w", err)
	}
	httpm, err := NewHTTPMetrics(registry)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize HTTP metrics: %w", err)
	}

	return &Metrics{
		Registry:  registry,
		Estimator: est,
		Weather:   weather,
		HTTP:      httpm,
	}, nil
}
