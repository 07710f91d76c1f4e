package optimizer

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/chrissnell/solarestimate/internal/solarerr"
	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/optimize"
)

const globalSeed = 42

// Detailed minimises -annual_energy over the bounded (tilt, azimuth) plane.
// MethodLBFGS starts from the heuristic; MethodGlobal runs a seeded CMA-ES.
// A failed search returns the heuristic angles with Converged=false and a nil
// error. Errors are reserved for an unknown method or a cancelled context.
func (o *Optimizer) Detailed(ctx context.Context, lat, lon, ghi float64, method Method) (Angles, error) {
	switch method {
	case "":
		method = MethodLBFGS
	case MethodLBFGS, MethodGlobal:
	case MethodHeuristic:
		return o.HeuristicWithEnergy(lat, lon, ghi), nil
	default:
		return Angles{}, fmt.Errorf("optimizer method %q: %w", method, solarerr.ErrInvalidInput)
	}

	seed := Heuristic(lat)
	objective := o.objective(ctx, lat, lon, ghi)

	var (
		res *optimize.Result
		err error
	)
	if method == MethodGlobal {
		res, err = minimizeGlobal(objective, seed)
	} else {
		res, err = minimizeLocal(objective, []float64{seed.Tilt, seed.Azimuth})
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return o.fallback(lat, lon, ghi, method), ctxErr
	}
	if err != nil || res == nil || len(res.X) != 2 || math.IsNaN(res.F) || !tiltInBounds(res.X[0]) {
		o.logger.Warnf("angle optimizer (%s) did not converge for (%.4f, %.4f): %v; using heuristic",
			method, lat, lon, err)
		return o.fallback(lat, lon, ghi, method), nil
	}

	best := Angles{
		Tilt:      round1(res.X[0]),
		Azimuth:   wrapAzimuth(round1(wrapAzimuth(res.X[1]))),
		Method:    method,
		Converged: true,
	}
	best.MaxEnergy = round1(o.energy(lat, lon, best.Tilt, best.Azimuth, ghi))

	// A non-smooth objective can leave the search below its own seed.
	if h := o.HeuristicWithEnergy(lat, lon, ghi); h.MaxEnergy > best.MaxEnergy {
		h.Method = method
		return h, nil
	}
	return best, nil
}

func (o *Optimizer) fallback(lat, lon, ghi float64, method Method) Angles {
	a := o.HeuristicWithEnergy(lat, lon, ghi)
	a.Method = method
	a.Converged = false
	return a
}

// objective returns -energy, or the penalty outside the tilt bounds or once
// the context is done. Azimuth is circular, so the search may step across
// north in either direction.
func (o *Optimizer) objective(ctx context.Context, lat, lon, ghi float64) func(x []float64) float64 {
	return func(x []float64) float64 {
		if ctx.Err() != nil || !tiltInBounds(x[0]) {
			return outOfBoundsPenalty
		}
		e := o.energy(lat, lon, x[0], wrapAzimuth(x[1]), ghi)
		if math.IsNaN(e) || math.IsInf(e, 0) {
			return outOfBoundsPenalty
		}
		return -e
	}
}

func minimizeLocal(f func([]float64) float64, x0 []float64) (*optimize.Result, error) {
	problem := optimize.Problem{
		Func: f,
		Grad: func(grad, x []float64) {
			fd.Gradient(grad, f, x, &fd.Settings{Formula: fd.Central, Step: 0.25})
		},
	}
	settings := &optimize.Settings{
		GradientThreshold: 1e-4,
		FuncEvaluations:   400,
		Converger: &optimize.FunctionConverge{
			Absolute:   1e-4,
			Iterations: 20,
		},
	}
	return optimize.Minimize(problem, x0, settings, &optimize.LBFGS{})
}

func minimizeGlobal(f func([]float64) float64, seed Angles) (*optimize.Result, error) {
	method := &optimize.CmaEsChol{
		InitStepSize: 15,
		Population:   12,
		Src:          rand.NewPCG(globalSeed, globalSeed),
	}
	settings := &optimize.Settings{
		FuncEvaluations: 600,
		Converger: &optimize.FunctionConverge{
			Absolute:   1e-3,
			Iterations: 40,
		},
	}
	return optimize.Minimize(optimize.Problem{Func: f}, []float64{seed.Tilt, seed.Azimuth}, settings, method)
}
