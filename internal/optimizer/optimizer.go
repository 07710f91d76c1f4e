// Package optimizer searches module orientations for maximum annual yield.
package optimizer

import (
	"math"
	"runtime"

	"github.com/chrissnell/solarestimate/internal/yield"
	"go.uber.org/zap"
)

// Method selects the angle search strategy
type Method string

const (
	MethodHeuristic Method = "heuristic"
	MethodLBFGS     Method = "lbfgs"
	MethodGlobal    Method = "global"
)

// Bounds of the search space, degrees
const (
	MinTilt    = 0.0
	MaxTilt    = 90.0
	MinAzimuth = 0.0
	MaxAzimuth = 360.0

	// Returned for evaluations outside the tilt bounds
	outOfBoundsPenalty = 10000.0
)

// Angles is an optimizer result. MaxEnergy is kWh/kWp at the reported angles.
type Angles struct {
	Tilt      float64 `json:"optimal_tilt"`
	Azimuth   float64 `json:"optimal_azimuth"`
	MaxEnergy float64 `json:"max_energy"`
	Method    Method  `json:"method"`
	Converged bool    `json:"converged"`
}

// Heuristic is the closed-form optimum: a latitude regression for tilt and
// an equator-facing azimuth. It always succeeds.
func Heuristic(lat float64) Angles {
	return Angles{
		Tilt:      yield.OptimalTilt(lat),
		Azimuth:   float64(yield.OptimalAzimuth(lat)),
		Method:    MethodHeuristic,
		Converged: true,
	}
}

// Optimizer evaluates orientations through a yield estimator
type Optimizer struct {
	estimator yield.Estimator
	workers   int
	logger    *zap.SugaredLogger
}

// New returns an Optimizer. workers bounds the parallelism of grid
// evaluations; zero means GOMAXPROCS.
func New(estimator yield.Estimator, workers int, logger *zap.SugaredLogger) *Optimizer {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Optimizer{
		estimator: estimator,
		workers:   workers,
		logger:    logger,
	}
}

// HeuristicWithEnergy returns the heuristic angles with their yield filled in
func (o *Optimizer) HeuristicWithEnergy(lat, lon, ghi float64) Angles {
	a := Heuristic(lat)
	a.MaxEnergy = round1(o.energy(lat, lon, a.Tilt, a.Azimuth, ghi))
	return a
}

func (o *Optimizer) energy(lat, lon, tilt, azimuth, ghi float64) float64 {
	return o.estimator.Estimate(lat, lon, tilt, azimuth, ghi).AnnualEnergy
}

func tiltInBounds(tilt float64) bool {
	return tilt >= MinTilt && tilt <= MaxTilt
}

// wrapAzimuth maps any azimuth onto [0, 360)
func wrapAzimuth(az float64) float64 {
	az = math.Mod(az, MaxAzimuth)
	if az < 0 {
		az += MaxAzimuth
	}
	if az >= MaxAzimuth {
		az = MinAzimuth
	}
	return az
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
