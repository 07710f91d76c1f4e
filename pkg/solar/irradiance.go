package solar

import (
	"math"
	"time"
)

// Constants
const (
	solarConstant = 1367.0 // W/m² at one astronomical unit
)

// degToRad converts an angle from degrees to radians for trigonometric calculations
func degToRad(deg float64) float64 {
	return deg * (math.Pi / 180.0)
}

// radToDeg converts an angle from radians to degrees for human-readable output
func radToDeg(rad float64) float64 {
	return rad * (180.0 / math.Pi)
}

// fixAngle normalizes an angle to the range [0, 360) degrees
func fixAngle(angle float64) float64 {
	return angle - 360.0*math.Floor(angle/360.0)
}

// equationOfTime calculates the Equation of Time (EoT) in minutes from
// Julian centuries since J2000.0, the difference between apparent and mean solar time
func equationOfTime(T float64) float64 {
	L0 := fixAngle(280.46646 + T*(36000.76983+T*0.0003032))            // Mean longitude of the Sun (degrees)
	M := fixAngle(357.52911 + T*(35999.05029-T*0.0001537))             // Mean anomaly of the Sun (degrees)
	e := 0.016708634 - T*(0.000042037+T*0.0000001267)                  // Eccentricity of Earth's orbit
	eps0 := 23 + (26+(21.448-T*(46.815+T*(0.00059-T*0.001813)))/60)/60 // Mean obliquity of the ecliptic (degrees)

	// y approximates the effect of Earth's tilt; terms adjust for orbital variations
	y := math.Tan(degToRad(eps0)/2) * math.Tan(degToRad(eps0)/2)
	eqTimeMin := radToDeg(y*math.Sin(degToRad(2*L0))-
		2*e*math.Sin(degToRad(M))+
		4*e*y*math.Sin(degToRad(M))*math.Cos(degToRad(2*L0))-
		0.5*y*y*math.Sin(degToRad(4*L0))-
		1.25*e*e*math.Sin(degToRad(2*M))) * 4 // Convert to minutes (4 min/degree)

	return eqTimeMin
}

// ExtraterrestrialDNI returns the direct normal irradiance at the top of the
// atmosphere in W/m², adjusted for the Earth-Sun distance on the given date
func ExtraterrestrialDNI(t time.Time) float64 {
	n := float64(t.YearDay())
	return solarConstant * (1 + 0.033*math.Cos(degToRad(360.0*n/365.0)))
}

// RelativeAirmass returns the Kasten-Young (1989) relative optical air mass for
// an apparent zenith angle in degrees. NaN is returned when the sun is at or
// below the horizon.
func RelativeAirmass(apparentZenith float64) float64 {
	if apparentZenith >= 90 || math.IsNaN(apparentZenith) {
		return math.NaN()
	}
	return 1.0 / (math.Cos(degToRad(apparentZenith)) + 0.50572*math.Pow(96.07995-apparentZenith, -1.6364))
}
