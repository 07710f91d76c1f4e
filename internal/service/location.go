package service

import (
	"github.com/chrissnell/solarestimate/internal/weather"
)

// LocationCheck is the outcome of ValidateLocation
type LocationCheck struct {
	Valid       bool   `json:"valid"`
	KoreaRegion bool   `json:"korea_region"`
	Message     string `json:"message"`
	Warning     string `json:"warning,omitempty"`
}

// ValidateLocation checks coordinates and warns about points outside Korea,
// where the empirical constants are less accurate
func (s *Service) ValidateLocation(lat, lon float64) LocationCheck {
	if err := weather.ValidateCoordinates(lat, lon); err != nil {
		return LocationCheck{Message: err.Error()}
	}
	check := LocationCheck{
		Valid:       true,
		KoreaRegion: weather.IsKoreaRegion(lat, lon),
		Message:     "valid coordinates",
	}
	if !check.KoreaRegion {
		check.Warning = "location is outside Korea; estimates may be less accurate"
	}
	return check
}

// Presets returns the configured system presets
func (s *Service) Presets() []Preset {
	return s.presets
}

// Preset looks up a preset by ID
func (s *Service) Preset(id string) (Preset, bool) {
	for _, p := range s.presets {
		if p.ID == id {
			return p, true
		}
	}
	return Preset{}, false
}
