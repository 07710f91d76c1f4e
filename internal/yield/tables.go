// Package yield estimates photovoltaic energy yield per installed kWp.
//
// Two models are provided. EmpiricalEstimator applies closed-form correction
// factors to annual GHI and is what the service uses by default.
// DetailedEstimator synthesises an hourly year, transposes it onto the module
// plane and integrates a temperature-derated output.
package yield

import (
	"gonum.org/v1/gonum/floats"
)

// Seasonal distribution of Korean irradiance used by the primary empirical tier
var empiricalSeasonal = [12]float64{
	0.45, 0.55, 0.75, 0.95, 1.10, 1.15,
	1.05, 1.10, 0.95, 0.75, 0.55, 0.40,
}

// Coarser monthly GHI ratio used by the fallback tier and the hourly model
var monthlyGHIRatio = [12]float64{0.6, 0.7, 0.9, 1.1, 1.2, 1.1, 1.0, 1.1, 1.0, 0.9, 0.7, 0.6}

// Monthly mean ambient temperature for Korea, °C
var monthlyTempKorea = [12]float64{-2.4, 0.4, 5.7, 12.5, 17.8, 22.2, 24.9, 25.7, 21.2, 14.8, 7.2, -0.1}

// MonthlyAmbientTemperature returns a copy of the Korean monthly climatology
func MonthlyAmbientTemperature() [12]float64 {
	return monthlyTempKorea
}

// normalizeMean scales a 12-month vector so that its mean is 1
func normalizeMean(v [12]float64) [12]float64 {
	mean := floats.Sum(v[:]) / float64(len(v))
	if mean == 0 {
		return [12]float64{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1}
	}
	var out [12]float64
	for i, r := range v {
		out[i] = r / mean
	}
	return out
}

// splitMonthly distributes annual energy over the months by a ratio vector.
// The ratio is normalised first so the months always sum back to annual.
func splitMonthly(annual float64, ratio [12]float64) [12]float64 {
	norm := normalizeMean(ratio)
	var monthly [12]float64
	for i, r := range norm {
		monthly[i] = annual / 12.0 * r
	}
	return monthly
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
