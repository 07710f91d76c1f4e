package yield

import (
	"math"

	"github.com/chrissnell/solarestimate/internal/solarerr"
	"github.com/chrissnell/solarestimate/internal/types"
	"go.uber.org/zap"
)

// EmpiricalParams holds the tunable constants of the closed-form model
type EmpiricalParams struct {
	ModuleEfficiency   float64 `json:"module_efficiency" yaml:"module_efficiency"`
	InverterEfficiency float64 `json:"inverter_efficiency" yaml:"inverter_efficiency"`
	SystemLosses       float64 `json:"system_losses" yaml:"system_losses"`
	TiltSlope          float64 `json:"tilt_slope" yaml:"tilt_slope"`
	AzimuthSlope       float64 `json:"azimuth_slope" yaml:"azimuth_slope"`
	TemperatureFactor  float64 `json:"temperature_factor" yaml:"temperature_factor"`
	LatitudeBandMin    float64 `json:"latitude_band_min" yaml:"latitude_band_min"`
	LatitudeBandMax    float64 `json:"latitude_band_max" yaml:"latitude_band_max"`
	LatitudePivot      float64 `json:"latitude_pivot" yaml:"latitude_pivot"`
	LatitudeSlope      float64 `json:"latitude_slope" yaml:"latitude_slope"`
}

// DefaultEmpiricalParams returns the constants tuned for Korean sites
func DefaultEmpiricalParams() EmpiricalParams {
	return EmpiricalParams{
		ModuleEfficiency:   0.20,
		InverterEfficiency: 0.96,
		SystemLosses:       0.14,
		TiltSlope:          0.008,
		AzimuthSlope:       0.002,
		TemperatureFactor:  0.94,
		LatitudeBandMin:    33,
		LatitudeBandMax:    38,
		LatitudePivot:      35.5,
		LatitudeSlope:      0.01,
	}
}

// WithDefaults replaces unset (zero) fields with the defaults
func (p EmpiricalParams) WithDefaults() EmpiricalParams {
	d := DefaultEmpiricalParams()
	fill := func(v *float64, def float64) {
		if *v == 0 {
			*v = def
		}
	}
	fill(&p.ModuleEfficiency, d.ModuleEfficiency)
	fill(&p.InverterEfficiency, d.InverterEfficiency)
	fill(&p.SystemLosses, d.SystemLosses)
	fill(&p.TiltSlope, d.TiltSlope)
	fill(&p.AzimuthSlope, d.AzimuthSlope)
	fill(&p.TemperatureFactor, d.TemperatureFactor)
	if p.LatitudeBandMin == 0 && p.LatitudeBandMax == 0 {
		p.LatitudeBandMin, p.LatitudeBandMax = d.LatitudeBandMin, d.LatitudeBandMax
	}
	fill(&p.LatitudePivot, d.LatitudePivot)
	fill(&p.LatitudeSlope, d.LatitudeSlope)
	return p
}

// TotalEfficiency is module × inverter × (1 - losses)
func (p EmpiricalParams) TotalEfficiency() float64 {
	return p.ModuleEfficiency * p.InverterEfficiency * (1 - p.SystemLosses)
}

// Coarser constants of the fallback tier
const (
	fallbackTiltSlope  = 0.01
	fallbackEfficiency = 0.85 * 0.96 * (1 - 0.14)
	fallbackTempEffect = -5.0

	lastResortYieldRatio = 0.15
	lastResortTilt       = 30
	lastResortAzimuth    = 180
)

// TiltFactor derates a module tilted away from the optimum, clamped to [0.8, 1.1]
func TiltFactor(tilt, optimalTilt, slope float64) float64 {
	return clamp(1.0-math.Abs(tilt-optimalTilt)*slope, 0.8, 1.1)
}

// AzimuthFactor derates a module facing away from the equator, clamped to [0.7, 1.0]
func AzimuthFactor(azimuth, optimalAzimuth, slope float64) float64 {
	return clamp(1.0-AzimuthDifference(azimuth, optimalAzimuth)*slope, 0.7, 1.0)
}

// LatitudeFactor applies the regional correction inside the latitude band only
func (p EmpiricalParams) LatitudeFactor(lat float64) float64 {
	if lat >= p.LatitudeBandMin && lat <= p.LatitudeBandMax {
		return 1.0 + (lat-p.LatitudePivot)*p.LatitudeSlope
	}
	return 1.0
}

// EmpiricalEstimator is the fast closed-form yield model. It is safe for
// concurrent use; it holds no mutable state.
type EmpiricalEstimator struct {
	params EmpiricalParams
	logger *zap.SugaredLogger
}

// NewEmpiricalEstimator builds an estimator. A nil logger discards output.
func NewEmpiricalEstimator(params EmpiricalParams, logger *zap.SugaredLogger) *EmpiricalEstimator {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &EmpiricalEstimator{params: params.WithDefaults(), logger: logger}
}

// Params returns the constants in use
func (e *EmpiricalEstimator) Params() EmpiricalParams {
	return e.params
}

// Estimate never fails. It walks the tiers Primary, Fallback and LastResort
// and reports the tier that produced the result.
func (e *EmpiricalEstimator) Estimate(lat, lon, tilt, azimuth, ghi float64) types.YieldResult {
	res, err := e.Primary(lat, lon, tilt, azimuth, ghi)
	if err == nil {
		return res
	}
	e.logger.Warnf("primary yield tier rejected (%.4f, %.4f): %v", lat, lon, err)

	res, err = e.Fallback(lat, lon, tilt, azimuth, ghi)
	if err == nil {
		return res
	}
	e.logger.Warnf("fallback yield tier rejected (%.4f, %.4f): %v", lat, lon, err)

	return LastResort(ghi)
}

// Primary is the full empirical formula
func (e *EmpiricalEstimator) Primary(lat, lon, tilt, azimuth, ghi float64) (types.YieldResult, error) {
	if err := checkInputs(lat, lon, tilt, azimuth, ghi); err != nil {
		return types.YieldResult{}, err
	}
	p := e.params

	optTilt := OptimalTilt(lat)
	optAz := OptimalAzimuth(lat)

	annual := ghi *
		p.TotalEfficiency() *
		TiltFactor(tilt, math.Abs(lat)*0.76+3.1, p.TiltSlope) *
		AzimuthFactor(azimuth, float64(optAz), p.AzimuthSlope) *
		p.LatitudeFactor(lat) *
		p.TemperatureFactor

	if err := checkOutput(annual); err != nil {
		return types.YieldResult{}, err
	}

	return types.YieldResult{
		AnnualEnergy:   annual,
		MonthlyEnergy:  splitMonthly(annual, empiricalSeasonal),
		TempEffect:     -6.0 + (lat-36)*0.3,
		OptimalTilt:    optTilt,
		OptimalAzimuth: optAz,
		Tier:           types.TierPrimary,
	}, nil
}

// Fallback drops the latitude and temperature corrections and uses coarser slopes
func (e *EmpiricalEstimator) Fallback(lat, lon, tilt, azimuth, ghi float64) (types.YieldResult, error) {
	if err := solarerr.CheckFinite("ghi", ghi); err != nil {
		return types.YieldResult{}, err
	}
	if err := solarerr.CheckNonNegative("ghi", ghi); err != nil {
		return types.YieldResult{}, err
	}

	// Unusable geometry is treated as the reference orientation.
	if math.IsNaN(lat) || math.IsInf(lat, 0) {
		lat = 0
	}
	if math.IsNaN(tilt) || math.IsInf(tilt, 0) {
		tilt = lastResortTilt
	}
	if math.IsNaN(azimuth) || math.IsInf(azimuth, 0) {
		azimuth = float64(OptimalAzimuth(lat))
	}

	optTilt := math.Abs(lat)*0.76 + 3.1
	optAz := OptimalAzimuth(lat)
	annual := ghi *
		fallbackEfficiency *
		TiltFactor(tilt, optTilt, fallbackTiltSlope) *
		AzimuthFactor(azimuth, float64(optAz), e.params.AzimuthSlope)

	if err := checkOutput(annual); err != nil {
		return types.YieldResult{}, err
	}

	return types.YieldResult{
		AnnualEnergy:   annual,
		MonthlyEnergy:  splitMonthly(annual, monthlyGHIRatio),
		TempEffect:     fallbackTempEffect,
		OptimalTilt:    round1(optTilt),
		OptimalAzimuth: optAz,
		Tier:           types.TierFallback,
	}, nil
}

// LastResort is a fixed fraction of GHI spread evenly over the year.
// Non-finite or negative GHI is treated as zero.
func LastResort(ghi float64) types.YieldResult {
	if math.IsNaN(ghi) || math.IsInf(ghi, 0) || ghi < 0 {
		ghi = 0
	}
	annual := ghi * lastResortYieldRatio
	var monthly [12]float64
	for i := range monthly {
		monthly[i] = annual / 12
	}
	return types.YieldResult{
		AnnualEnergy:   annual,
		MonthlyEnergy:  monthly,
		TempEffect:     fallbackTempEffect,
		OptimalTilt:    lastResortTilt,
		OptimalAzimuth: lastResortAzimuth,
		Tier:           types.TierLastResort,
	}
}

func checkInputs(lat, lon, tilt, azimuth, ghi float64) error {
	for _, c := range []struct {
		name string
		v    float64
	}{{"lat", lat}, {"lon", lon}, {"tilt", tilt}, {"azimuth", azimuth}, {"ghi", ghi}} {
		if err := solarerr.CheckFinite(c.name, c.v); err != nil {
			return err
		}
	}
	return solarerr.CheckNonNegative("ghi", ghi)
}

func checkOutput(annual float64) error {
	if math.IsNaN(annual) || math.IsInf(annual, 0) || annual < 0 {
		return solarerr.ErrNumericDegeneracy
	}
	return nil
}
