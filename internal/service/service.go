// Package service ties irradiance lookup, yield estimation, angle optimization
// and financial analysis together behind the operations the API exposes.
package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/chrissnell/solarestimate/internal/finance"
	"github.com/chrissnell/solarestimate/internal/metrics"
	"github.com/chrissnell/solarestimate/internal/optimizer"
	"github.com/chrissnell/solarestimate/internal/solarerr"
	"github.com/chrissnell/solarestimate/internal/types"
	"github.com/chrissnell/solarestimate/internal/weather"
	"github.com/chrissnell/solarestimate/internal/yield"
	"go.uber.org/zap"
)

// Model selects the yield estimator
type Model string

const (
	ModelEmpirical Model = "empirical"
	ModelDetailed  Model = "detailed"
)

// IrradianceSource resolves the annual GHI of a location
type IrradianceSource interface {
	Irradiance(ctx context.Context, lat, lon float64) (types.Irradiance, error)
}

// Preset is a named system template
type Preset struct {
	ID               string             `json:"id"`
	Name             string             `json:"name"`
	SystemSize       float64            `json:"system_size"`
	ModuleType       string             `json:"module_type"`
	TrackingType     types.TrackingType `json:"tracking_type"`
	BifacialFactor   float64            `json:"bifacial_factor,omitempty"`
	InstallCostPerKw float64            `json:"install_cost_per_kw"`
	Description      string             `json:"description,omitempty"`
}

// Options configures a Service. Zero values fall back to package defaults.
type Options struct {
	Model            Model
	Empirical        yield.EmpiricalParams
	System           types.SystemConfig
	GeometryCacheTTL time.Duration
	OptimizerWorkers int

	Prices           finance.PriceParams
	InstallCostPerKw float64
	DegradationRate  float64
	LifetimeYears    int
	DiscountRate     float64
	Farmland         finance.FarmlandParams

	Presets []Preset
}

// Service is safe for concurrent use
type Service struct {
	irradiance IrradianceSource
	empirical  *yield.EmpiricalEstimator
	detailed   *yield.DetailedEstimator
	system     types.SystemConfig
	model      Model
	optimizers map[Model]*optimizer.Optimizer

	prices           finance.PriceParams
	installCostPerKw float64
	degradationRate  float64
	lifetimeYears    int
	discountRate     float64
	farmland         finance.FarmlandParams
	presets          []Preset

	metrics *metrics.EstimatorMetrics
	logger  *zap.SugaredLogger
}

// New builds a Service. m may be nil.
func New(src IrradianceSource, opts Options, m *metrics.Metrics, logger *zap.SugaredLogger) (*Service, error) {
	if src == nil {
		return nil, fmt.Errorf("service requires an irradiance source")
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	if opts.Model == "" {
		opts.Model = ModelEmpirical
	}
	if err := checkModel(opts.Model); err != nil {
		return nil, err
	}

	system := opts.System
	if system == (types.SystemConfig{}) {
		system = types.DefaultSystemConfig()
	}
	system = system.WithDefaults()
	if err := system.Validate(); err != nil {
		return nil, fmt.Errorf("invalid system configuration: %w", err)
	}

	if opts.Prices == (finance.PriceParams{}) {
		opts.Prices = finance.DefaultPriceParams()
	}
	if opts.InstallCostPerKw == 0 {
		opts.InstallCostPerKw = finance.DefaultInstallCostPerKw
	}
	if opts.DegradationRate == 0 {
		opts.DegradationRate = finance.DefaultDegradationRate
	}
	if opts.LifetimeYears == 0 {
		opts.LifetimeYears = finance.DefaultLifetimeYears
	}
	if opts.DiscountRate == 0 {
		opts.DiscountRate = finance.DefaultDiscountRate
	}
	if opts.Farmland == (finance.FarmlandParams{}) {
		opts.Farmland = finance.DefaultFarmlandParams()
	}

	empirical := yield.NewEmpiricalEstimator(opts.Empirical.WithDefaults(), logger)
	detailed := yield.NewDetailedEstimator(empirical, opts.GeometryCacheTTL, logger)

	s := &Service{
		irradiance: src,
		empirical:  empirical,
		detailed:   detailed,
		system:     system,
		model:      opts.Model,
		optimizers: map[Model]*optimizer.Optimizer{
			ModelEmpirical: optimizer.New(empirical, opts.OptimizerWorkers, logger),
			ModelDetailed:  optimizer.New(detailed.WithConfig(system), opts.OptimizerWorkers, logger),
		},
		prices:           opts.Prices,
		installCostPerKw: opts.InstallCostPerKw,
		degradationRate:  opts.DegradationRate,
		lifetimeYears:    opts.LifetimeYears,
		discountRate:     opts.DiscountRate,
		farmland:         opts.Farmland,
		presets:          opts.Presets,
		logger:           logger,
	}
	if m != nil {
		s.metrics = m.Estimator
	}
	return s, nil
}

// DefaultModel is the estimator used when a request names none
func (s *Service) DefaultModel() Model {
	return s.model
}

// SystemConfig is the default detailed-model configuration
func (s *Service) SystemConfig() types.SystemConfig {
	return s.system
}

func checkModel(m Model) error {
	switch m {
	case ModelEmpirical, ModelDetailed:
		return nil
	}
	return solarerr.Invalid("model", 0, fmt.Sprintf("unknown model %q", m))
}

func (s *Service) resolveModel(m Model) (Model, error) {
	if m == "" {
		return s.model, nil
	}
	return m, checkModel(m)
}

// lookup validates coordinates and resolves irradiance
func (s *Service) lookup(ctx context.Context, lat, lon float64) (types.Irradiance, error) {
	if err := weather.ValidateCoordinates(lat, lon); err != nil {
		return types.Irradiance{}, err
	}
	irr, err := s.irradiance.Irradiance(ctx, lat, lon)
	if err != nil {
		return types.Irradiance{}, err
	}
	irr.GHIAnnual = round1(irr.GHIAnnual)
	return irr, nil
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
