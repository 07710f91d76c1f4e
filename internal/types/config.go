package types

import (
	"github.com/chrissnell/solarestimate/internal/solarerr"
)

// TrackingType selects how the module plane follows the sun
type TrackingType string

const (
	TrackingFixed      TrackingType = "fixed"
	TrackingSingleAxis TrackingType = "single_axis"
)

// TemperatureModel selects the cell temperature model of the detailed estimator
type TemperatureModel string

const (
	TemperatureSimple TemperatureModel = "simple"
	TemperatureSAPM   TemperatureModel = "sapm"
)

// SkyModel selects the plane-of-array sky diffuse transposition
type SkyModel string

const (
	SkyPerez     SkyModel = "perez"
	SkyHayDavies SkyModel = "haydavies"
	SkyIsotropic SkyModel = "isotropic"
)

// Location is a point on the earth in decimal degrees
type Location struct {
	Latitude  float64 `json:"lat" yaml:"latitude"`
	Longitude float64 `json:"lon" yaml:"longitude"`
}

// Validate rejects coordinates that are out of range or not finite
func (l Location) Validate() error {
	if err := solarerr.CheckRange("latitude", l.Latitude, -90, 90); err != nil {
		return err
	}
	return solarerr.CheckRange("longitude", l.Longitude, -180, 180)
}

// Geometry is the installed orientation of the module plane.
// Azimuth is measured clockwise from north: 90=east, 180=south, 270=west.
type Geometry struct {
	Tilt    float64 `json:"tilt" yaml:"tilt"`
	Azimuth float64 `json:"azimuth" yaml:"azimuth"`
}

// Validate enforces tilt in [0,90] and azimuth in [0,360]
func (g Geometry) Validate() error {
	if err := solarerr.CheckRange("tilt", g.Tilt, 0, 90); err != nil {
		return err
	}
	return solarerr.CheckRange("azimuth", g.Azimuth, 0, 360)
}

// SystemConfig holds the parameters of the detailed physical model
type SystemConfig struct {
	Albedo             float64          `json:"albedo" yaml:"albedo"`
	Efficiency         float64          `json:"efficiency" yaml:"efficiency"`
	InverterEfficiency float64          `json:"inverter_efficiency" yaml:"inverter_efficiency"`
	Losses             float64          `json:"losses" yaml:"losses"`
	TrackingType       TrackingType     `json:"tracking_type" yaml:"tracking_type"`
	BifacialFactor     float64          `json:"bifacial_factor" yaml:"bifacial_factor"`
	TemperatureModel   TemperatureModel `json:"temp_model" yaml:"temp_model"`
	RackingModel       string           `json:"racking_model" yaml:"racking_model"`
	SkyModel           SkyModel         `json:"sky_model" yaml:"sky_model"`
}

// DefaultSystemConfig returns the stock detailed-model configuration
func DefaultSystemConfig() SystemConfig {
	return SystemConfig{
		Albedo:             0.2,
		Efficiency:         0.85,
		InverterEfficiency: 0.96,
		Losses:             0.14,
		TrackingType:       TrackingFixed,
		BifacialFactor:     0,
		TemperatureModel:   TemperatureSAPM,
		RackingModel:       "open_rack",
		SkyModel:           SkyPerez,
	}
}

// WithDefaults fills zero-valued enum fields from DefaultSystemConfig.
// Numeric fields are left untouched so that an explicit 0 survives.
func (c SystemConfig) WithDefaults() SystemConfig {
	d := DefaultSystemConfig()
	if c.TrackingType == "" {
		c.TrackingType = d.TrackingType
	}
	if c.TemperatureModel == "" {
		c.TemperatureModel = d.TemperatureModel
	}
	if c.RackingModel == "" {
		c.RackingModel = d.RackingModel
	}
	if c.SkyModel == "" {
		c.SkyModel = d.SkyModel
	}
	return c
}

// Validate checks ranges and enum values
func (c SystemConfig) Validate() error {
	if err := solarerr.CheckRange("albedo", c.Albedo, 0, 1); err != nil {
		return err
	}
	if err := solarerr.CheckRange("efficiency", c.Efficiency, 0, 1); err != nil {
		return err
	}
	if err := solarerr.CheckRange("inverter_efficiency", c.InverterEfficiency, 0, 1); err != nil {
		return err
	}
	if err := solarerr.CheckRange("losses", c.Losses, 0, 1); err != nil {
		return err
	}
	if err := solarerr.CheckRange("bifacial_factor", c.BifacialFactor, 0, 1); err != nil {
		return err
	}
	switch c.TrackingType {
	case TrackingFixed, TrackingSingleAxis:
	default:
		return solarerr.Invalid("tracking_type", 0, "unknown tracking type "+string(c.TrackingType))
	}
	switch c.TemperatureModel {
	case TemperatureSimple, TemperatureSAPM:
	default:
		return solarerr.Invalid("temp_model", 0, "unknown temperature model "+string(c.TemperatureModel))
	}
	switch c.SkyModel {
	case SkyPerez, SkyHayDavies, SkyIsotropic:
	default:
		return solarerr.Invalid("sky_model", 0, "unknown sky model "+string(c.SkyModel))
	}
	return nil
}
