package yield

import "math"

// OptimalTilt is the latitude regression for a fixed-tilt optimum, rounded
// to one decimal place
func OptimalTilt(latitude float64) float64 {
	return round1(math.Abs(latitude)*0.76 + 3.1)
}

// OptimalAzimuth faces the equator: south in the northern hemisphere
func OptimalAzimuth(latitude float64) int {
	if latitude >= 0 {
		return 180
	}
	return 0
}

// AzimuthDifference is the smallest angle between two compass bearings
func AzimuthDifference(a, b float64) float64 {
	d := math.Abs(a - b)
	return math.Min(d, 360-d)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
