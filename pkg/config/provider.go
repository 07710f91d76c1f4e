package config

import "time"

// ConfigProvider defines the interface for configuration data sources
type ConfigProvider interface {
	// Load complete configuration
	LoadConfig() (*ConfigData, error)

	// Get specific configuration sections
	GetServerConfig() (*ServerData, error)
	GetWeatherConfig() (*WeatherData, error)
	GetPresets() ([]PresetData, error)

	IsReadOnly() bool
	Close() error
}

// ConfigData represents the complete configuration structure
type ConfigData struct {
	Server  ServerData   `json:"server"`
	Weather WeatherData  `json:"weather"`
	Yield   YieldData    `json:"yield"`
	Finance FinanceData  `json:"finance"`
	Presets []PresetData `json:"presets,omitempty"`
	Logging LoggingData  `json:"logging"`
}

// ServerData configures the REST listener
type ServerData struct {
	ListenAddr   string        `json:"listen_addr,omitempty"`
	Port         int           `json:"port,omitempty"`
	Cert         string        `json:"cert,omitempty"`
	Key          string        `json:"key,omitempty"`
	EnableCORS   bool          `json:"enable_cors,omitempty"`
	ReadTimeout  time.Duration `json:"read_timeout,omitempty"`
	WriteTimeout time.Duration `json:"write_timeout,omitempty"`
}

// WeatherData configures the climatology client and its persistent store
type WeatherData struct {
	BaseURL     string        `json:"base_url,omitempty"`
	Community   string        `json:"community,omitempty"`
	Parameter   string        `json:"parameter,omitempty"`
	Timeout     time.Duration `json:"timeout,omitempty"`
	CacheTTL    time.Duration `json:"cache_ttl,omitempty"`
	StorePath   string        `json:"store_path,omitempty"`
	StoreMaxAge time.Duration `json:"store_max_age,omitempty"`
	BatchDelay  time.Duration `json:"batch_delay,omitempty"`
}

// YieldData selects the estimator and carries its parameters
type YieldData struct {
	Model            string        `json:"model,omitempty"`
	GeometryCacheTTL time.Duration `json:"geometry_cache_ttl,omitempty"`
	OptimizerWorkers int           `json:"optimizer_workers,omitempty"`
	Empirical        EmpiricalData `json:"empirical"`
	System           SystemData    `json:"system"`
}

// EmpiricalData overrides the empirical model constants. Zero fields keep
// their built-in defaults.
type EmpiricalData struct {
	ModuleEfficiency   float64 `json:"module_efficiency,omitempty"`
	InverterEfficiency float64 `json:"inverter_efficiency,omitempty"`
	SystemLosses       float64 `json:"system_losses,omitempty"`
	TiltSlope          float64 `json:"tilt_slope,omitempty"`
	AzimuthSlope       float64 `json:"azimuth_slope,omitempty"`
	TemperatureFactor  float64 `json:"temperature_factor,omitempty"`
}

// SystemData is the default detailed-model system configuration
type SystemData struct {
	Albedo             float64 `json:"albedo,omitempty"`
	Efficiency         float64 `json:"efficiency,omitempty"`
	InverterEfficiency float64 `json:"inverter_efficiency,omitempty"`
	Losses             float64 `json:"losses,omitempty"`
	TrackingType       string  `json:"tracking_type,omitempty"`
	BifacialFactor     float64 `json:"bifacial_factor,omitempty"`
	TemperatureModel   string  `json:"temp_model,omitempty"`
	RackingModel       string  `json:"racking_model,omitempty"`
	SkyModel           string  `json:"sky_model,omitempty"`
}

// FinanceData holds tariff and cost defaults for the financial analyzer
type FinanceData struct {
	RevenueModel     string  `json:"revenue_model,omitempty"`
	InstallCostPerKw float64 `json:"install_cost_per_kw,omitempty"`
	SMPPrice         float64 `json:"smp_price,omitempty"`
	RECPrice         float64 `json:"rec_price,omitempty"`
	RECWeight        float64 `json:"rec_weight,omitempty"`
	ElectricityPrice float64 `json:"electricity_price,omitempty"`
	DegradationRate  float64 `json:"degradation_rate,omitempty"`
	LifetimeYears    int     `json:"lifetime,omitempty"`
	DiscountRate     float64 `json:"discount_rate,omitempty"`
}

// PresetData is a named system template offered to clients
type PresetData struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	SystemSize       float64 `json:"system_size"`
	ModuleType       string  `json:"module_type"`
	TrackingType     string  `json:"tracking_type"`
	BifacialFactor   float64 `json:"bifacial_factor,omitempty"`
	InstallCostPerKw float64 `json:"install_cost_per_kw"`
	Description      string  `json:"description,omitempty"`
}

// LoggingData configures the zap logger and optional file rotation
type LoggingData struct {
	Debug      bool   `json:"debug,omitempty"`
	File       string `json:"file,omitempty"`
	MaxSizeMB  int    `json:"max_size_mb,omitempty"`
	MaxBackups int    `json:"max_backups,omitempty"`
	MaxAgeDays int    `json:"max_age_days,omitempty"`
}
