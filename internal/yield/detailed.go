package yield

import (
	"fmt"
	"math"
	"time"

	"github.com/chrissnell/solarestimate/internal/solarerr"
	"github.com/chrissnell/solarestimate/internal/types"
	"github.com/chrissnell/solarestimate/pkg/solar"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
)

const (
	referenceYear   = 2023
	hoursPerYear    = 8760
	defaultWindMS   = 1.0
	defaultCacheTTL = 10 * time.Minute
)

// Reference-year timestamps are Korean standard time
var referenceZone = time.FixedZone("KST", 9*60*60)

// ReferenceHour is the timestamp of hour i of the simulated reference year
func ReferenceHour(i int) time.Time {
	return time.Date(referenceYear, time.January, 1, 0, 0, 0, 0, referenceZone).Add(time.Duration(i) * time.Hour)
}

// Estimator produces a per-kWp yield for one location and module geometry
type Estimator interface {
	Estimate(lat, lon, tilt, azimuth, ghi float64) types.YieldResult
}

// skyHour is the location- and irradiance-dependent state of one hour,
// independent of module orientation
type skyHour struct {
	month          int
	zenith         float64
	apparentZenith float64
	azimuth        float64
	dniExtra       float64
	airmass        float64
	ghi            float64
	dni            float64
	dhi            float64
}

// DetailedEstimator runs an hourly simulation over a synthetic reference year.
// Sky states are cached per location and GHI so repeated evaluations for
// different orientations only pay for the transposition.
type DetailedEstimator struct {
	empirical *EmpiricalEstimator
	sky       *cache.Cache
	logger    *zap.SugaredLogger
}

// NewDetailedEstimator builds a detailed estimator that falls back to the
// given empirical estimator on degenerate results
func NewDetailedEstimator(empirical *EmpiricalEstimator, cacheTTL time.Duration, logger *zap.SugaredLogger) *DetailedEstimator {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	if empirical == nil {
		empirical = NewEmpiricalEstimator(DefaultEmpiricalParams(), logger)
	}
	if cacheTTL <= 0 {
		cacheTTL = defaultCacheTTL
	}
	return &DetailedEstimator{
		empirical: empirical,
		sky:       cache.New(cacheTTL, 2*cacheTTL),
		logger:    logger,
	}
}

// WithConfig binds a system configuration, giving an Estimator
func (d *DetailedEstimator) WithConfig(cfg types.SystemConfig) Estimator {
	return boundDetailed{d: d, cfg: cfg}
}

type boundDetailed struct {
	d   *DetailedEstimator
	cfg types.SystemConfig
}

func (b boundDetailed) Estimate(lat, lon, tilt, azimuth, ghi float64) types.YieldResult {
	return b.d.Estimate(lat, lon, tilt, azimuth, ghi, b.cfg)
}

// Estimate never fails. Invalid inputs and NaN/Inf integrations return the
// empirical estimate tagged as fallback_empirical.
func (d *DetailedEstimator) Estimate(lat, lon, tilt, azimuth, ghi float64, cfg types.SystemConfig) types.YieldResult {
	cfg = cfg.WithDefaults()

	res, err := d.simulate(lat, lon, tilt, azimuth, ghi, cfg)
	if err != nil {
		d.logger.Warnf("detailed model failed for (%.4f, %.4f) tilt=%.1f az=%.1f: %v; using empirical model",
			lat, lon, tilt, azimuth, err)
		res = d.empirical.Estimate(lat, lon, tilt, azimuth, ghi)
		res.Tier = types.TierFallbackEmpirical
		return res
	}
	return res
}

func (d *DetailedEstimator) simulate(lat, lon, tilt, azimuth, ghi float64, cfg types.SystemConfig) (types.YieldResult, error) {
	if err := checkInputs(lat, lon, tilt, azimuth, ghi); err != nil {
		return types.YieldResult{}, err
	}
	if err := (types.Location{Latitude: lat, Longitude: lon}).Validate(); err != nil {
		return types.YieldResult{}, err
	}
	if err := (types.Geometry{Tilt: tilt, Azimuth: azimuth}).Validate(); err != nil {
		return types.YieldResult{}, err
	}
	if err := cfg.Validate(); err != nil {
		return types.YieldResult{}, err
	}

	hours := d.skyYear(lat, lon, ghi)
	for _, h := range hours {
		if !isFinite(h.ghi) || !isFinite(h.dni) || !isFinite(h.dhi) {
			return types.YieldResult{}, fmt.Errorf("synthetic irradiance: %w", solarerr.ErrNumericDegeneracy)
		}
	}

	sapm := solar.SAPMRacking(cfg.RackingModel)
	baseEff := cfg.Efficiency * cfg.InverterEfficiency * (1 - cfg.Losses)

	hourly := make([]float64, len(hours))
	factors := make([]float64, len(hours))
	var monthly [12]float64

	for i, h := range hours {
		surfTilt, surfAz := tilt, azimuth
		if cfg.TrackingType == types.TrackingSingleAxis {
			o := solar.DefaultTracker.Orientation(h.apparentZenith, h.azimuth)
			surfTilt, surfAz = o.SurfaceTilt, o.SurfaceAzimuth
		}

		var skyDiffuse float64
		switch cfg.SkyModel {
		case types.SkyHayDavies:
			skyDiffuse = solar.HayDavies(surfTilt, surfAz, h.dhi, h.dni, h.dniExtra, h.zenith, h.azimuth)
		case types.SkyIsotropic:
			skyDiffuse = solar.IsotropicSky(surfTilt, h.dhi)
		default:
			skyDiffuse = solar.Perez(surfTilt, surfAz, h.dhi, h.dni, h.dniExtra, h.zenith, h.azimuth, h.airmass)
		}

		poa := solar.POAComponents(
			solar.AOI(surfTilt, surfAz, h.zenith, h.azimuth),
			h.dni,
			skyDiffuse,
			solar.GroundDiffuse(surfTilt, h.ghi, cfg.Albedo),
		)
		global := poa.Global
		if cfg.BifacialFactor > 0 {
			global += poa.GroundDiffuse * cfg.BifacialFactor
		}

		ambient := monthlyTempKorea[h.month]
		var cell float64
		if cfg.TemperatureModel == types.TemperatureSimple {
			cell = solar.SimpleCellTemperature(global, ambient)
		} else {
			cell = solar.SAPMCellTemperature(global, ambient, defaultWindMS, sapm)
		}
		factors[i] = solar.TemperatureFactor(cell)

		hourly[i] = global * baseEff * factors[i] / 1000
		monthly[h.month] += hourly[i]
	}

	annual := floats.Sum(hourly)
	if math.IsNaN(annual) || math.IsInf(annual, 0) {
		return types.YieldResult{}, fmt.Errorf("hourly integration: %w", solarerr.ErrNumericDegeneracy)
	}

	return types.YieldResult{
		AnnualEnergy:   annual,
		MonthlyEnergy:  monthly,
		TempEffect:     (floats.Sum(factors)/float64(len(factors)) - 1) * 100,
		OptimalTilt:    OptimalTilt(lat),
		OptimalAzimuth: OptimalAzimuth(lat),
		Tier:           types.TierDetailed,
		HourlyEnergy:   hourly,
	}, nil
}

// skyYear returns the cached sky states for a location and annual GHI,
// building them on a miss
func (d *DetailedEstimator) skyYear(lat, lon, ghi float64) []skyHour {
	key := fmt.Sprintf("%.4f:%.4f:%.2f", lat, lon, ghi)
	if v, found := d.sky.Get(key); found {
		return v.([]skyHour)
	}
	hours := buildSkyYear(lat, lon, ghi)
	d.sky.Set(key, hours, cache.DefaultExpiration)
	return hours
}

// SyntheticHourlyGHI returns the 8760 hourly GHI values (W/m²) of the
// reference year at a location. Each day integrates to ghiAnnual/365 kWh/m²
// times the monthly ratio.
func SyntheticHourlyGHI(lat, lon, ghiAnnual float64) []float64 {
	positions := make([]solar.Position, hoursPerYear)
	for i := range positions {
		positions[i] = solar.SunPosition(hourMidpoint(i), lat, lon)
	}
	return syntheticGHI(positions, ghiAnnual)
}

// hourMidpoint is the instant an hourly average is evaluated at
func hourMidpoint(i int) time.Time {
	return ReferenceHour(i).Add(30 * time.Minute)
}

// syntheticGHI spreads each day's irradiation over its daylight hours with
// weight cos(zenith)·sin²(π·solarTime/24), so the profile peaks at local solar
// noon and is zero while the sun is below the horizon. A day without daylight
// hours gets nothing.
func syntheticGHI(positions []solar.Position, ghiAnnual float64) []float64 {
	ratio := normalizeMean(monthlyGHIRatio)
	dailyWh := ghiAnnual * 1000 / 365

	out := make([]float64, len(positions))
	for day := 0; day*24 < len(positions); day++ {
		start := day * 24
		end := min(start+24, len(positions))

		var total float64
		for i := start; i < end; i++ {
			out[i] = diurnalWeight(positions[i])
			total += out[i]
		}
		if total == 0 {
			continue
		}

		dayWh := dailyWh * ratio[int(ReferenceHour(start).Month())-1]
		for i := start; i < end; i++ {
			out[i] *= dayWh / total
		}
	}
	return out
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func diurnalWeight(p solar.Position) float64 {
	cosZ := math.Cos(p.Zenith * math.Pi / 180)
	if cosZ <= 0 {
		return 0
	}
	// Hour angle is 0 at solar noon, so solar time is 12 + H/15
	s := math.Sin(math.Pi * (12 + p.HourAngle/15) / 24)
	return cosZ * s * s
}

func buildSkyYear(lat, lon, ghiAnnual float64) []skyHour {
	positions := make([]solar.Position, hoursPerYear)
	for i := range positions {
		positions[i] = solar.SunPosition(hourMidpoint(i), lat, lon)
	}
	ghi := syntheticGHI(positions, ghiAnnual)

	hours := make([]skyHour, hoursPerYear)
	for i := range hours {
		t := ReferenceHour(i)
		pos := positions[i]
		dniExtra := solar.ExtraterrestrialDNI(t)
		split := solar.Erbs(ghi[i], pos.Zenith, dniExtra)

		hours[i] = skyHour{
			month:          int(t.Month()) - 1,
			zenith:         pos.Zenith,
			apparentZenith: pos.ApparentZenith,
			azimuth:        pos.Azimuth,
			dniExtra:       dniExtra,
			airmass:        solar.RelativeAirmass(pos.ApparentZenith),
			ghi:            ghi[i],
			dni:            split.DNI,
			dhi:            split.DHI,
		}
	}
	return hours
}
