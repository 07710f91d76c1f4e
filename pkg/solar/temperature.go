package solar

import (
	"math"
	"strings"
)

// SAPMParams are Sandia Array Performance Model thermal coefficients
type SAPMParams struct {
	A      float64
	B      float64
	DeltaT float64
}

// sapmRacking maps racking names to SAPM coefficients
var sapmRacking = map[string]SAPMParams{
	"open_rack_glass_glass":        {A: -3.47, B: -0.0594, DeltaT: 3},
	"close_mount_glass_glass":      {A: -2.98, B: -0.0471, DeltaT: 1},
	"open_rack_glass_polymer":      {A: -3.56, B: -0.0750, DeltaT: 3},
	"insulated_back_glass_polymer": {A: -2.81, B: -0.0455, DeltaT: 0},
}

// SAPMRacking returns the coefficients for a racking model. Short names such
// as "open_rack" or "close_mount" resolve to their glass/glass variant and an
// unknown name falls back to open rack.
func SAPMRacking(name string) SAPMParams {
	name = strings.ToLower(strings.TrimSpace(name))
	if p, ok := sapmRacking[name]; ok {
		return p
	}
	if p, ok := sapmRacking[name+"_glass_glass"]; ok {
		return p
	}
	return sapmRacking["open_rack_glass_glass"]
}

// SAPMCellTemperature returns the cell temperature in °C for a plane-of-array
// irradiance (W/m²), ambient temperature (°C) and wind speed (m/s)
func SAPMCellTemperature(poa, airTemp, windSpeed float64, p SAPMParams) float64 {
	module := poa*math.Exp(p.A+p.B*windSpeed) + airTemp
	return module + poa/1000*p.DeltaT
}

// SimpleCellTemperature is a linear NOCT-style approximation
func SimpleCellTemperature(poa, airTemp float64) float64 {
	return airTemp + 0.035*poa
}

// TemperatureFactor derates output by 0.4%/°C above 25 °C, clamped to [0.7, 1.1]
func TemperatureFactor(cellTemp float64) float64 {
	return math.Max(0.7, math.Min(1.1, 1-0.004*(cellTemp-25)))
}
