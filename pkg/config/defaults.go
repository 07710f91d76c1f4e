package config

import "time"

// Defaults applied by ApplyDefaults
const (
	DefaultListenAddr       = "0.0.0.0"
	DefaultPort             = 8080
	DefaultReadTimeout      = 30 * time.Second
	DefaultWriteTimeout     = 60 * time.Second
	DefaultWeatherBaseURL   = "https://power.larc.nasa.gov/api/temporal/climatology/point"
	DefaultWeatherCommunity = "RE"
	DefaultWeatherParameter = "ALLSKY_SFC_SW_DWN"
	DefaultWeatherTimeout   = 10 * time.Second
	DefaultWeatherCacheTTL  = 24 * time.Hour
	DefaultBatchDelay       = time.Second
	DefaultYieldModel       = "empirical"
	DefaultGeometryCacheTTL = 10 * time.Minute
	DefaultRevenueModel     = "smp_rec"
	DefaultInstallCostPerKw = 1800000
	DefaultSMPPrice         = 180
	DefaultRECPrice         = 40
	DefaultRECWeight        = 1.0
	DefaultElectricityPrice = 120
	DefaultDegradationRate  = 0.005
	DefaultLifetimeYears    = 25
	DefaultDiscountRate     = 0.03
	DefaultLogMaxSizeMB     = 100
	DefaultLogMaxBackups    = 5
	DefaultLogMaxAgeDays    = 30
)

// DefaultPresets are served when the configuration defines none
func DefaultPresets() []PresetData {
	return []PresetData{
		{
			ID:               "residential_small",
			Name:             "Small residential (3 kWp)",
			SystemSize:       3.0,
			ModuleType:       "standard",
			TrackingType:     "fixed",
			InstallCostPerKw: 1500000,
			Description:      "Typical small household rooftop",
		},
		{
			ID:               "residential_medium",
			Name:             "Medium residential (5 kWp)",
			SystemSize:       5.0,
			ModuleType:       "premium",
			TrackingType:     "fixed",
			InstallCostPerKw: 1400000,
			Description:      "House with a large roof",
		},
		{
			ID:               "commercial_small",
			Name:             "Small commercial (10 kWp)",
			SystemSize:       10.0,
			ModuleType:       "standard",
			TrackingType:     "fixed",
			InstallCostPerKw: 1300000,
			Description:      "Small commercial building",
		},
		{
			ID:               "commercial_large",
			Name:             "Large commercial (100 kWp)",
			SystemSize:       100.0,
			ModuleType:       "bifacial",
			TrackingType:     "single_axis",
			BifacialFactor:   0.7,
			InstallCostPerKw: 1200000,
			Description:      "Commercial or industrial site",
		},
	}
}

// ApplyDefaults fills every unset field with its default
func (c *ConfigData) ApplyDefaults() {
	s := &c.Server
	if s.ListenAddr == "" {
		s.ListenAddr = DefaultListenAddr
	}
	if s.Port == 0 {
		s.Port = DefaultPort
	}
	if s.ReadTimeout == 0 {
		s.ReadTimeout = DefaultReadTimeout
	}
	if s.WriteTimeout == 0 {
		s.WriteTimeout = DefaultWriteTimeout
	}

	w := &c.Weather
	if w.BaseURL == "" {
		w.BaseURL = DefaultWeatherBaseURL
	}
	if w.Community == "" {
		w.Community = DefaultWeatherCommunity
	}
	if w.Parameter == "" {
		w.Parameter = DefaultWeatherParameter
	}
	if w.Timeout == 0 {
		w.Timeout = DefaultWeatherTimeout
	}
	if w.CacheTTL == 0 {
		w.CacheTTL = DefaultWeatherCacheTTL
	}
	if w.BatchDelay == 0 {
		w.BatchDelay = DefaultBatchDelay
	}

	y := &c.Yield
	if y.Model == "" {
		y.Model = DefaultYieldModel
	}
	if y.GeometryCacheTTL == 0 {
		y.GeometryCacheTTL = DefaultGeometryCacheTTL
	}

	f := &c.Finance
	if f.RevenueModel == "" {
		f.RevenueModel = DefaultRevenueModel
	}
	if f.InstallCostPerKw == 0 {
		f.InstallCostPerKw = DefaultInstallCostPerKw
	}
	if f.SMPPrice == 0 {
		f.SMPPrice = DefaultSMPPrice
	}
	if f.RECPrice == 0 {
		f.RECPrice = DefaultRECPrice
	}
	if f.RECWeight == 0 {
		f.RECWeight = DefaultRECWeight
	}
	if f.ElectricityPrice == 0 {
		f.ElectricityPrice = DefaultElectricityPrice
	}
	if f.DegradationRate == 0 {
		f.DegradationRate = DefaultDegradationRate
	}
	if f.LifetimeYears == 0 {
		f.LifetimeYears = DefaultLifetimeYears
	}
	if f.DiscountRate == 0 {
		f.DiscountRate = DefaultDiscountRate
	}

	if len(c.Presets) == 0 {
		c.Presets = DefaultPresets()
	}

	l := &c.Logging
	if l.File != "" {
		if l.MaxSizeMB == 0 {
			l.MaxSizeMB = DefaultLogMaxSizeMB
		}
		if l.MaxBackups == 0 {
			l.MaxBackups = DefaultLogMaxBackups
		}
		if l.MaxAgeDays == 0 {
			l.MaxAgeDays = DefaultLogMaxAgeDays
		}
	}
}
