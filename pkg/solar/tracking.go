package solar

import "math"

// Tracker describes a single-axis tracker with a horizontal north-south axis
type Tracker struct {
	MaxAngle  float64 // maximum rotation from horizontal, degrees
	Backtrack bool
	GCR       float64 // ground coverage ratio
}

// DefaultTracker is a ±60° backtracking tracker at 0.4 ground coverage
var DefaultTracker = Tracker{MaxAngle: 60, Backtrack: true, GCR: 0.4}

// TrackerAngles is the instantaneous surface orientation of a tracker row
type TrackerAngles struct {
	Theta          float64 // rotation angle, positive toward west
	SurfaceTilt    float64
	SurfaceAzimuth float64
	Stowed         bool
}

// Orientation returns the tracker rotation for a sun position. With the sun
// at or below the horizon the row is stowed flat.
func (tr Tracker) Orientation(apparentZenith, azimuth float64) TrackerAngles {
	if apparentZenith >= 90 || math.IsNaN(apparentZenith) {
		return TrackerAngles{SurfaceAzimuth: 180, Stowed: true}
	}

	z := degToRad(apparentZenith)
	a := degToRad(azimuth)

	// Sun vector projected onto the plane perpendicular to a south-pointing axis
	xp := -math.Sin(z) * math.Sin(a)
	zp := math.Cos(z)
	theta := radToDeg(math.Atan2(xp, zp))

	if tr.Backtrack && tr.GCR > 0 {
		temp := math.Abs(math.Cos(degToRad(theta)) / tr.GCR)
		if temp < 1 {
			theta -= math.Copysign(radToDeg(math.Acos(temp)), theta)
		}
	}

	theta = math.Max(-tr.MaxAngle, math.Min(tr.MaxAngle, theta))

	surfaceAzimuth := 180.0
	switch {
	case theta > 0:
		surfaceAzimuth = 270
	case theta < 0:
		surfaceAzimuth = 90
	}

	return TrackerAngles{
		Theta:          theta,
		SurfaceTilt:    math.Abs(theta),
		SurfaceAzimuth: surfaceAzimuth,
	}
}
