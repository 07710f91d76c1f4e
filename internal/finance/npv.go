package finance

import "math"

const (
	irrTolerance  = 1000.0
	irrIterations = 100
)

// incremental converts a cumulative cash position into yearly net flows.
// Year 0 is the initial position.
func incremental(cumulative []float64) []float64 {
	out := make([]float64, len(cumulative))
	for i := range cumulative {
		if i == 0 {
			out[i] = cumulative[0]
			continue
		}
		out[i] = cumulative[i] - cumulative[i-1]
	}
	return out
}

// NPV discounts the yearly flows behind a cumulative cash position
func NPV(cumulative []float64, rate float64) float64 {
	var npv float64
	for year, cf := range incremental(cumulative) {
		npv += cf / math.Pow(1+rate, float64(year))
	}
	return npv
}

// IRR bisects the discount rate in [0, 1] until NPV is within 1000 currency
// units of zero. The result is a percentage, nil when no root lies in range.
func IRR(cumulative []float64) *float64 {
	if len(cumulative) < 2 {
		return nil
	}

	lo, hi := 0.0, 1.0
	npvLo, npvHi := NPV(cumulative, lo), NPV(cumulative, hi)
	if math.Abs(npvLo) < irrTolerance {
		r := 0.0
		return &r
	}
	if math.Abs(npvHi) < irrTolerance {
		r := 100.0
		return &r
	}
	if (npvLo > 0) == (npvHi > 0) {
		return nil
	}

	for i := 0; i < irrIterations; i++ {
		mid := (lo + hi) / 2
		npv := NPV(cumulative, mid)
		if math.Abs(npv) < irrTolerance {
			r := mid * 100
			return &r
		}
		if (npv > 0) == (npvLo > 0) {
			lo, npvLo = mid, npv
		} else {
			hi = mid
		}
	}
	// The root is bracketed; report the midpoint once bisection is exhausted.
	r := (lo + hi) / 2 * 100
	return &r
}
