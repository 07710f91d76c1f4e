package weather

import (
	"github.com/chrissnell/solarestimate/internal/solarerr"
)

// Bounding box treated as the Korean peninsula for regional defaults
const (
	koreaLatMin = 33.0
	koreaLatMax = 38.0
	koreaLonMin = 126.0
	koreaLonMax = 130.0
)

// Regional annual GHI defaults, kWh/m²/year
const (
	ghiJeju     = 1350
	ghiSouthern = 1280
	ghiCentral  = 1220
	ghiNorthern = 1180
	ghiWorld    = 1200
)

// IsKoreaRegion reports whether a point lies inside the Korean bounding box
func IsKoreaRegion(lat, lon float64) bool {
	return lat >= koreaLatMin && lat <= koreaLatMax && lon >= koreaLonMin && lon <= koreaLonMax
}

// FallbackGHI is the static regional annual GHI used when the climatology
// service cannot answer. Korea is banded by latitude; elsewhere a world
// average applies.
func FallbackGHI(lat, lon float64) float64 {
	if !IsKoreaRegion(lat, lon) {
		return ghiWorld
	}
	switch {
	case lat < 34.5:
		return ghiJeju
	case lat < 36.0:
		return ghiSouthern
	case lat < 37.5:
		return ghiCentral
	default:
		return ghiNorthern
	}
}

// ValidateCoordinates rejects non-finite or out-of-range coordinates
func ValidateCoordinates(lat, lon float64) error {
	if err := solarerr.CheckRange("lat", lat, -90, 90); err != nil {
		return err
	}
	return solarerr.CheckRange("lon", lon, -180, 180)
}
