package solar

import "math"

const (
	erbsMaxZenith     = 87.0
	minCosZenith      = 0.065
	maxClearnessIndex = 2.0
)

// Components is a horizontal irradiance split into its beam and diffuse parts (W/m²)
type Components struct {
	GHI float64
	DNI float64
	DHI float64
	Kt  float64
}

// ClearnessIndex returns the ratio of GHI to extraterrestrial horizontal irradiance
func ClearnessIndex(ghi, zenith, dniExtra float64) float64 {
	cosZ := math.Max(math.Cos(degToRad(zenith)), minCosZenith)
	kt := ghi / (dniExtra * cosZ)
	return math.Max(0, math.Min(kt, maxClearnessIndex))
}

// Erbs decomposes GHI into DNI and DHI with the Erbs, Klein & Duffie (1982)
// diffuse-fraction correlation. Hours with the sun near or below the horizon
// are treated as fully diffuse. DNI never exceeds dniExtra; any beam above
// that limit is returned as diffuse so that DNI·cos(zenith) + DHI = GHI.
func Erbs(ghi, zenith, dniExtra float64) Components {
	kt := ClearnessIndex(ghi, zenith, dniExtra)
	cosZ := math.Cos(degToRad(zenith))

	var df float64
	switch {
	case kt <= 0.22:
		df = 1 - 0.09*kt
	case kt <= 0.8:
		df = 0.9511 - 0.1604*kt + 4.388*kt*kt - 16.638*math.Pow(kt, 3) + 12.336*math.Pow(kt, 4)
	default:
		df = 0.165
	}

	dhi := df * ghi
	dni := (ghi - dhi) / cosZ

	if zenith > erbsMaxZenith || ghi < 0 || dni < 0 || math.IsNaN(dni) || math.IsInf(dni, 0) {
		dni = 0
		dhi = math.Max(ghi, 0)
	} else if dni > dniExtra {
		dni = math.Max(dniExtra, 0)
		dhi = ghi - dni*cosZ
	}

	return Components{GHI: ghi, DNI: dni, DHI: dhi, Kt: kt}
}
