package app

import (
	"context"
	"fmt"

	"github.com/chrissnell/solarestimate/internal/finance"
	"github.com/chrissnell/solarestimate/internal/metrics"
	"github.com/chrissnell/solarestimate/internal/service"
	"github.com/chrissnell/solarestimate/internal/types"
	"github.com/chrissnell/solarestimate/internal/weather"
	"github.com/chrissnell/solarestimate/internal/yield"
	"github.com/chrissnell/solarestimate/pkg/config"
	"go.uber.org/zap"
)

// Deps are the long-lived components built from configuration
type Deps struct {
	Weather *weather.Client
	Store   *weather.Store
	Service *service.Service
}

// Close releases the climatology store
func (d *Deps) Close() error {
	if d.Store != nil {
		return d.Store.Close()
	}
	return nil
}

// Build creates the climatology client, its optional store and the service.
// m may be nil.
func Build(cfg *config.ConfigData, m *metrics.Metrics, logger *zap.SugaredLogger) (*Deps, error) {
	deps := &Deps{}

	if cfg.Weather.StorePath != "" {
		store, err := weather.NewStore(cfg.Weather.StorePath, cfg.Weather.StoreMaxAge)
		if err != nil {
			return nil, fmt.Errorf("error opening climatology store: %w", err)
		}
		deps.Store = store
		logger.Infof("climatology store: %s", cfg.Weather.StorePath)

		if n, err := store.Prune(context.Background()); err != nil {
			logger.Warnf("could not prune climatology store: %v", err)
		} else if n > 0 {
			logger.Infof("pruned %d stale climatology entries", n)
		}
	}

	var wm *metrics.WeatherMetrics
	if m != nil {
		wm = m.Weather
	}
	deps.Weather = weather.NewClient(WeatherConfig(cfg.Weather), deps.Store, wm, logger)

	svc, err := service.New(deps.Weather, ServiceOptions(cfg), m, logger)
	if err != nil {
		deps.Close()
		return nil, fmt.Errorf("error creating estimation service: %w", err)
	}
	deps.Service = svc
	return deps, nil
}

// WeatherConfig converts the weather section
func WeatherConfig(w config.WeatherData) weather.Config {
	return weather.Config{
		BaseURL:   w.BaseURL,
		Community: w.Community,
		Parameter: w.Parameter,
		Timeout:   w.Timeout,
		CacheTTL:  w.CacheTTL,
	}
}

// ServiceOptions converts the yield, finance and preset sections
func ServiceOptions(cfg *config.ConfigData) service.Options {
	e := cfg.Yield.Empirical
	opts := service.Options{
		Model: service.Model(cfg.Yield.Model),
		Empirical: yield.EmpiricalParams{
			ModuleEfficiency:   e.ModuleEfficiency,
			InverterEfficiency: e.InverterEfficiency,
			SystemLosses:       e.SystemLosses,
			TiltSlope:          e.TiltSlope,
			AzimuthSlope:       e.AzimuthSlope,
			TemperatureFactor:  e.TemperatureFactor,
		},
		GeometryCacheTTL: cfg.Yield.GeometryCacheTTL,
		OptimizerWorkers: cfg.Yield.OptimizerWorkers,
		Prices: finance.PriceParams{
			Model:            types.RevenueModel(cfg.Finance.RevenueModel),
			ElectricityPrice: cfg.Finance.ElectricityPrice,
			SMPPrice:         cfg.Finance.SMPPrice,
			RECPrice:         cfg.Finance.RECPrice,
			RECWeight:        cfg.Finance.RECWeight,
		},
		InstallCostPerKw: cfg.Finance.InstallCostPerKw,
		DegradationRate:  cfg.Finance.DegradationRate,
		LifetimeYears:    cfg.Finance.LifetimeYears,
		DiscountRate:     cfg.Finance.DiscountRate,
	}

	if s := cfg.Yield.System; s != (config.SystemData{}) {
		opts.System = types.SystemConfig{
			Albedo:             s.Albedo,
			Efficiency:         s.Efficiency,
			InverterEfficiency: s.InverterEfficiency,
			Losses:             s.Losses,
			TrackingType:       types.TrackingType(s.TrackingType),
			BifacialFactor:     s.BifacialFactor,
			TemperatureModel:   types.TemperatureModel(s.TemperatureModel),
			RackingModel:       s.RackingModel,
			SkyModel:           types.SkyModel(s.SkyModel),
		}
	}

	for _, p := range cfg.Presets {
		opts.Presets = append(opts.Presets, service.Preset{
			ID:               p.ID,
			Name:             p.Name,
			SystemSize:       p.SystemSize,
			ModuleType:       p.ModuleType,
			TrackingType:     types.TrackingType(p.TrackingType),
			BifacialFactor:   p.BifacialFactor,
			InstallCostPerKw: p.InstallCostPerKw,
			Description:      p.Description,
		})
	}
	return opts
}
