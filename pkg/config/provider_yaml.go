package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// YAMLProvider implements ConfigProvider for YAML configuration files
type YAMLProvider struct {
	filename string
	config   *ConfigData
}

// NewYAMLProvider creates a new YAML configuration provider
func NewYAMLProvider(filename string) *YAMLProvider {
	return &YAMLProvider{
		filename: filename,
	}
}

// LoadConfig loads the complete configuration from YAML file and applies defaults
func (y *YAMLProvider) LoadConfig() (*ConfigData, error) {
	cfgFile, err := os.ReadFile(y.filename)
	if err != nil {
		return nil, err
	}

	config, err := ParseYAML(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("error parsing %s: %w", y.filename, err)
	}

	y.config = config
	return config, nil
}

// ParseYAML converts a YAML document into ConfigData with defaults applied
func ParseYAML(data []byte) (*ConfigData, error) {
	var yamlConfig struct {
		Server  ServerYAML   `yaml:"server,omitempty"`
		Weather WeatherYAML  `yaml:"weather,omitempty"`
		Yield   YieldYAML    `yaml:"yield,omitempty"`
		Finance FinanceYAML  `yaml:"finance,omitempty"`
		Presets []PresetYAML `yaml:"presets,omitempty"`
		Logging LoggingYAML  `yaml:"logging,omitempty"`
	}

	if err := yaml.Unmarshal(data, &yamlConfig); err != nil {
		return nil, err
	}

	// Convert to our internal format
	config := &ConfigData{
		Server: ServerData{
			ListenAddr:   yamlConfig.Server.ListenAddr,
			Port:         yamlConfig.Server.Port,
			Cert:         yamlConfig.Server.Cert,
			Key:          yamlConfig.Server.Key,
			EnableCORS:   yamlConfig.Server.EnableCORS,
			ReadTimeout:  yamlConfig.Server.ReadTimeout,
			WriteTimeout: yamlConfig.Server.WriteTimeout,
		},
		Weather: WeatherData{
			BaseURL:     yamlConfig.Weather.BaseURL,
			Community:   yamlConfig.Weather.Community,
			Parameter:   yamlConfig.Weather.Parameter,
			Timeout:     yamlConfig.Weather.Timeout,
			CacheTTL:    yamlConfig.Weather.CacheTTL,
			StorePath:   yamlConfig.Weather.StorePath,
			StoreMaxAge: yamlConfig.Weather.StoreMaxAge,
			BatchDelay:  yamlConfig.Weather.BatchDelay,
		},
		Yield: YieldData{
			Model:            yamlConfig.Yield.Model,
			GeometryCacheTTL: yamlConfig.Yield.GeometryCacheTTL,
			OptimizerWorkers: yamlConfig.Yield.OptimizerWorkers,
			Empirical: EmpiricalData{
				ModuleEfficiency:   yamlConfig.Yield.Empirical.ModuleEfficiency,
				InverterEfficiency: yamlConfig.Yield.Empirical.InverterEfficiency,
				SystemLosses:       yamlConfig.Yield.Empirical.SystemLosses,
				TiltSlope:          yamlConfig.Yield.Empirical.TiltSlope,
				AzimuthSlope:       yamlConfig.Yield.Empirical.AzimuthSlope,
				TemperatureFactor:  yamlConfig.Yield.Empirical.TemperatureFactor,
			},
		},
		Finance: FinanceData{
			RevenueModel:     yamlConfig.Finance.RevenueModel,
			InstallCostPerKw: yamlConfig.Finance.InstallCostPerKw,
			SMPPrice:         yamlConfig.Finance.SMPPrice,
			RECPrice:         yamlConfig.Finance.RECPrice,
			RECWeight:        yamlConfig.Finance.RECWeight,
			ElectricityPrice: yamlConfig.Finance.ElectricityPrice,
			DegradationRate:  yamlConfig.Finance.DegradationRate,
			LifetimeYears:    yamlConfig.Finance.LifetimeYears,
			DiscountRate:     yamlConfig.Finance.DiscountRate,
		},
		Logging: LoggingData{
			Debug:      yamlConfig.Logging.Debug,
			File:       yamlConfig.Logging.File,
			MaxSizeMB:  yamlConfig.Logging.MaxSizeMB,
			MaxBackups: yamlConfig.Logging.MaxBackups,
			MaxAgeDays: yamlConfig.Logging.MaxAgeDays,
		},
	}

	if s := yamlConfig.Yield.System; s != nil {
		config.Yield.System = SystemData{
			Albedo:             s.Albedo,
			Efficiency:         s.Efficiency,
			InverterEfficiency: s.InverterEfficiency,
			Losses:             s.Losses,
			TrackingType:       s.TrackingType,
			BifacialFactor:     s.BifacialFactor,
			TemperatureModel:   s.TemperatureModel,
			RackingModel:       s.RackingModel,
			SkyModel:           s.SkyModel,
		}
	}

	// Convert presets
	for _, p := range yamlConfig.Presets {
		if p.ID == "" {
			return nil, fmt.Errorf("preset %q has no id", p.Name)
		}
		config.Presets = append(config.Presets, PresetData{
			ID:               p.ID,
			Name:             p.Name,
			SystemSize:       p.SystemSize,
			ModuleType:       p.ModuleType,
			TrackingType:     p.TrackingType,
			BifacialFactor:   p.BifacialFactor,
			InstallCostPerKw: p.InstallCostPerKw,
			Description:      p.Description,
		})
	}

	config.ApplyDefaults()
	return config, nil
}

func (y *YAMLProvider) ensureLoaded() error {
	if y.config == nil {
		_, err := y.LoadConfig()
		return err
	}
	return nil
}

// GetServerConfig returns the REST listener configuration
func (y *YAMLProvider) GetServerConfig() (*ServerData, error) {
	if err := y.ensureLoaded(); err != nil {
		return nil, err
	}
	return &y.config.Server, nil
}

// GetWeatherConfig returns the climatology client configuration
func (y *YAMLProvider) GetWeatherConfig() (*WeatherData, error) {
	if err := y.ensureLoaded(); err != nil {
		return nil, err
	}
	return &y.config.Weather, nil
}

// GetPresets returns the configured system presets
func (y *YAMLProvider) GetPresets() ([]PresetData, error) {
	if err := y.ensureLoaded(); err != nil {
		return nil, err
	}
	return y.config.Presets, nil
}

// IsReadOnly returns true since YAML files are read-only through this interface
func (y *YAMLProvider) IsReadOnly() bool {
	return true
}

// Close is a no-op for YAML provider
func (y *YAMLProvider) Close() error {
	return nil
}

// YAML-specific structs with proper YAML tags for parsing the file format
type ServerYAML struct {
	ListenAddr   string        `yaml:"listen-addr,omitempty"`
	Port         int           `yaml:"port,omitempty"`
	Cert         string        `yaml:"cert,omitempty"`
	Key          string        `yaml:"key,omitempty"`
	EnableCORS   bool          `yaml:"enable-cors,omitempty"`
	ReadTimeout  time.Duration `yaml:"read-timeout,omitempty"`
	WriteTimeout time.Duration `yaml:"write-timeout,omitempty"`
}

type WeatherYAML struct {
	BaseURL     string        `yaml:"base-url,omitempty"`
	Community   string        `yaml:"community,omitempty"`
	Parameter   string        `yaml:"parameter,omitempty"`
	Timeout     time.Duration `yaml:"timeout,omitempty"`
	CacheTTL    time.Duration `yaml:"cache-ttl,omitempty"`
	StorePath   string        `yaml:"store-path,omitempty"`
	StoreMaxAge time.Duration `yaml:"store-max-age,omitempty"`
	BatchDelay  time.Duration `yaml:"batch-delay,omitempty"`
}

type YieldYAML struct {
	Model            string        `yaml:"model,omitempty"`
	GeometryCacheTTL time.Duration `yaml:"geometry-cache-ttl,omitempty"`
	OptimizerWorkers int           `yaml:"optimizer-workers,omitempty"`
	Empirical        EmpiricalYAML `yaml:"empirical,omitempty"`
	System           *SystemYAML   `yaml:"system,omitempty"`
}

type EmpiricalYAML struct {
	ModuleEfficiency   float64 `yaml:"module-efficiency,omitempty"`
	InverterEfficiency float64 `yaml:"inverter-efficiency,omitempty"`
	SystemLosses       float64 `yaml:"system-losses,omitempty"`
	TiltSlope          float64 `yaml:"tilt-slope,omitempty"`
	AzimuthSlope       float64 `yaml:"azimuth-slope,omitempty"`
	TemperatureFactor  float64 `yaml:"temperature-factor,omitempty"`
}

type SystemYAML struct {
	Albedo             float64 `yaml:"albedo"`
	Efficiency         float64 `yaml:"efficiency"`
	InverterEfficiency float64 `yaml:"inverter-efficiency"`
	Losses             float64 `yaml:"losses"`
	TrackingType       string  `yaml:"tracking-type,omitempty"`
	BifacialFactor     float64 `yaml:"bifacial-factor,omitempty"`
	TemperatureModel   string  `yaml:"temp-model,omitempty"`
	RackingModel       string  `yaml:"racking-model,omitempty"`
	SkyModel           string  `yaml:"sky-model,omitempty"`
}

type FinanceYAML struct {
	RevenueModel     string  `yaml:"revenue-model,omitempty"`
	InstallCostPerKw float64 `yaml:"install-cost-per-kw,omitempty"`
	SMPPrice         float64 `yaml:"smp-price,omitempty"`
	RECPrice         float64 `yaml:"rec-price,omitempty"`
	RECWeight        float64 `yaml:"rec-weight,omitempty"`
	ElectricityPrice float64 `yaml:"electricity-price,omitempty"`
	DegradationRate  float64 `yaml:"degradation-rate,omitempty"`
	LifetimeYears    int     `yaml:"lifetime,omitempty"`
	DiscountRate     float64 `yaml:"discount-rate,omitempty"`
}

type PresetYAML struct {
	ID               string  `yaml:"id"`
	Name             string  `yaml:"name"`
	SystemSize       float64 `yaml:"system-size"`
	ModuleType       string  `yaml:"module-type,omitempty"`
	TrackingType     string  `yaml:"tracking-type,omitempty"`
	BifacialFactor   float64 `yaml:"bifacial-factor,omitempty"`
	InstallCostPerKw float64 `yaml:"install-cost-per-kw"`
	Description      string  `yaml:"description,omitempty"`
}

type LoggingYAML struct {
	Debug      bool   `yaml:"debug,omitempty"`
	File       string `yaml:"file,omitempty"`
	MaxSizeMB  int    `yaml:"max-size-mb,omitempty"`
	MaxBackups int    `yaml:"max-backups,omitempty"`
	MaxAgeDays int    `yaml:"max-age-days,omitempty"`
}
