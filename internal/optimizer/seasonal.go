package optimizer

import "math"

// SeasonalAngles is the recommended orientation for one season
type SeasonalAngles struct {
	Season  string  `json:"season"`
	Tilt    float64 `json:"tilt"`
	Azimuth float64 `json:"azimuth"`
	Energy  float64 `json:"energy"`
}

var seasonTiltOffsets = []struct {
	season string
	offset float64
}{
	{"winter", 15},
	{"spring", 0},
	{"summer", -15},
	{"fall", 0},
}

// Seasonal returns per-season tilts for a manually adjusted rack: steeper in
// winter, flatter in summer
func (o *Optimizer) Seasonal(lat, lon, ghi float64) []SeasonalAngles {
	out := make([]SeasonalAngles, 0, len(seasonTiltOffsets))
	for _, s := range seasonTiltOffsets {
		tilt := math.Max(MinTilt, math.Min(MaxTilt, lat+s.offset))
		out = append(out, SeasonalAngles{
			Season:  s.season,
			Tilt:    tilt,
			Azimuth: 180,
			Energy:  o.energy(lat, lon, tilt, 180, ghi),
		})
	}
	return out
}
