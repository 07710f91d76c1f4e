package solar

import (
	"math"
	"time"

	"github.com/soniakeys/meeus/v3/julian"
)

// Position is the sun position seen from a point on the ground.
// All angles are in degrees; azimuth is clockwise from north.
type Position struct {
	Zenith         float64
	ApparentZenith float64
	Elevation      float64
	Azimuth        float64
	HourAngle      float64
	DeclinationDeg float64
	EqOfTimeMin    float64
}

// SunPosition computes the NOAA low-precision solar position for t at the
// given latitude and longitude. Accuracy is well under 0.1° for the years
// this service deals with, which is far below what an hourly model can resolve.
func SunPosition(t time.Time, latitude, longitude float64) Position {
	t = t.UTC()
	jd := julian.TimeToJD(t)
	T := (jd - 2451545.0) / 36525.0

	L0 := fixAngle(280.46646 + T*(36000.76983+T*0.0003032))
	M := fixAngle(357.52911 + T*(35999.05029-T*0.0001537))
	C := math.Sin(degToRad(M))*(1.914602-T*(0.004817+T*0.000014)) +
		math.Sin(degToRad(2*M))*(0.019993-T*0.000101) +
		math.Sin(degToRad(3*M))*0.000289
	sunLong := L0 + C
	omega := 125.04 - 1934.136*T
	lambda := sunLong - 0.00569 - 0.00478*math.Sin(degToRad(omega))
	eps0 := 23 + (26+(21.448-T*(46.815+T*(0.00059-T*0.001813)))/60)/60
	eps := eps0 + 0.00256*math.Cos(degToRad(omega))
	decRad := math.Asin(math.Sin(degToRad(eps)) * math.Sin(degToRad(lambda)))

	eqTimeMin := equationOfTime(T)

	// True solar time and hour angle (noon = 0°, afternoon positive)
	utcMin := float64(t.Hour()*60+t.Minute()) + float64(t.Second())/60.0
	tst := utcMin + 4*longitude + eqTimeMin
	ha := tst/4 - 180
	if ha < -180 {
		ha += 360
	} else if ha > 180 {
		ha -= 360
	}
	haRad := degToRad(ha)

	latRad := degToRad(latitude)
	cosZen := math.Sin(latRad)*math.Sin(decRad) + math.Cos(latRad)*math.Cos(decRad)*math.Cos(haRad)
	cosZen = math.Max(-1, math.Min(1, cosZen))
	zenith := radToDeg(math.Acos(cosZen))
	elevation := 90 - zenith

	azimuth := fixAngle(radToDeg(math.Atan2(
		math.Sin(haRad),
		math.Cos(haRad)*math.Sin(latRad)-math.Tan(decRad)*math.Cos(latRad),
	)) + 180)

	apparentElevation := elevation + refraction(elevation)

	return Position{
		Zenith:         zenith,
		ApparentZenith: 90 - apparentElevation,
		Elevation:      apparentElevation,
		Azimuth:        azimuth,
		HourAngle:      ha,
		DeclinationDeg: radToDeg(decRad),
		EqOfTimeMin:    eqTimeMin,
	}
}

// refraction returns the NOAA atmospheric refraction correction in degrees
// for a geometric elevation in degrees
func refraction(elevation float64) float64 {
	var arcsec float64
	switch {
	case elevation > 85:
		return 0
	case elevation > 5:
		te := math.Tan(degToRad(elevation))
		arcsec = 58.1/te - 0.07/math.Pow(te, 3) + 0.000086/math.Pow(te, 5)
	case elevation > -0.575:
		arcsec = 1735 + elevation*(-518.2+elevation*(103.4+elevation*(-12.79+elevation*0.711)))
	default:
		arcsec = -20.772 / math.Tan(degToRad(elevation))
	}
	return arcsec / 3600
}
