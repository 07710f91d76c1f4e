package optimizer

import (
	"context"
	"fmt"
	"math"

	"github.com/chrissnell/solarestimate/internal/solarerr"
)

// Objective is one term of the multi-objective weighted sum
type Objective string

const (
	ObjectiveEnergy    Objective = "energy"
	ObjectiveCost      Objective = "cost"
	ObjectiveAesthetic Objective = "aesthetic"
)

// DefaultObjectives trades yield against racking cost and a low profile
var DefaultObjectives = []Objective{ObjectiveEnergy, ObjectiveCost, ObjectiveAesthetic}

// ParetoSolution is the optimum for one weight vector
type ParetoSolution struct {
	Tilt    float64   `json:"tilt"`
	Azimuth float64   `json:"azimuth"`
	Energy  float64   `json:"energy"`
	Weights []float64 `json:"weights"`
}

// MultiObjectiveResult approximates a Pareto front by weighted-sum scalarisation
type MultiObjectiveResult struct {
	Objectives []Objective      `json:"objectives"`
	Solutions  []ParetoSolution `json:"pareto_solutions"`
}

// MultiObjective minimises a weighted sum of the objectives for each vector
// of a fixed weight grid. Cost grows by up to 20% with tilt; the aesthetic
// score prefers 15°.
func (o *Optimizer) MultiObjective(ctx context.Context, lat, lon, ghi float64, objectives []Objective) (*MultiObjectiveResult, error) {
	if len(objectives) == 0 {
		objectives = DefaultObjectives
	}
	for _, obj := range objectives {
		switch obj {
		case ObjectiveEnergy, ObjectiveCost, ObjectiveAesthetic:
		default:
			return nil, fmt.Errorf("objective %q: %w", obj, solarerr.ErrInvalidInput)
		}
	}

	res := &MultiObjectiveResult{Objectives: objectives}
	for _, weights := range weightGrid(len(objectives)) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		f := func(x []float64) float64 {
			tilt, az := x[0], wrapAzimuth(x[1])
			if !tiltInBounds(tilt) {
				return outOfBoundsPenalty
			}
			var sum float64
			for k, obj := range objectives {
				sum += weights[k] * o.objectiveValue(obj, lat, lon, tilt, az, ghi)
			}
			return sum
		}

		r, err := minimizeLocal(f, []float64{30, 180})
		if err != nil || r == nil || !tiltInBounds(r.X[0]) {
			o.logger.Debugf("multi-objective weights %v: no solution: %v", weights, err)
			continue
		}
		res.Solutions = append(res.Solutions, ParetoSolution{
			Tilt:    round1(r.X[0]),
			Azimuth: wrapAzimuth(round1(wrapAzimuth(r.X[1]))),
			Energy:  o.energy(lat, lon, r.X[0], wrapAzimuth(r.X[1]), ghi),
			Weights: weights,
		})
	}
	return res, nil
}

func (o *Optimizer) objectiveValue(obj Objective, lat, lon, tilt, azimuth, ghi float64) float64 {
	switch obj {
	case ObjectiveEnergy:
		return -o.energy(lat, lon, tilt, azimuth, ghi)
	case ObjectiveCost:
		return 1 + (tilt/90)*0.2
	case ObjectiveAesthetic:
		return math.Abs(tilt-15) / 75
	}
	return 0
}

// weightGrid enumerates weight vectors summing to one. Duplicate vectors are
// dropped.
func weightGrid(n int) [][]float64 {
	var grid [][]float64
	switch n {
	case 2:
		for _, w := range linspace(0, 1, 11) {
			grid = append(grid, []float64{1 - w, w})
		}
	case 3:
		seen := make(map[[3]float64]bool)
		for _, w1 := range linspace(0, 1, 6) {
			for _, w2 := range linspace(0, 1-w1, 6) {
				w3 := 1 - w1 - w2
				if w3 < -1e-12 {
					continue
				}
				w3 = math.Max(w3, 0)
				key := [3]float64{round6(w1), round6(w2), round6(w3)}
				if seen[key] {
					continue
				}
				seen[key] = true
				grid = append(grid, []float64{w1, w2, w3})
			}
		}
	default:
		w := make([]float64, n)
		for i := range w {
			w[i] = 1 / float64(n)
		}
		grid = append(grid, w)
	}
	return grid
}

func linspace(start, stop float64, n int) []float64 {
	if n == 1 {
		return []float64{start}
	}
	out := make([]float64, n)
	step := (stop - start) / float64(n-1)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	out[n-1] = stop
	return out
}

func round6(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}
