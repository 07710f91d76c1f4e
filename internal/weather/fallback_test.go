package weather

import (
	"math"
	"testing"
)

func TestFallbackGHI(t *testing.T) {
	tests := []struct {
		name     string
		lat, lon float64
		want     float64
	}{
		{"jeju", 33.5, 126.5, 1350},
		{"busan", 35.18, 129.07, 1280},
		{"daejeon", 36.35, 127.38, 1220},
		{"seoul", 37.57, 126.98, 1180},
		{"tokyo", 35.68, 139.69, 1200},
		{"west_of_box", 37.0, 125.5, 1200},
		{"madrid", 40.4, -3.7, 1200},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FallbackGHI(tt.lat, tt.lon); got != tt.want {
				t.Errorf("FallbackGHI(%v, %v) = %v, want %v", tt.lat, tt.lon, got, tt.want)
			}
		})
	}
}

func TestValidateCoordinates(t *testing.T) {
	tests := []struct {
		lat, lon float64
		ok       bool
	}{
		{37.5, 127, true},
		{-90, -180, true},
		{90.1, 0, false},
		{0, 180.5, false},
		{math.NaN(), 0, false},
		{0, math.Inf(1), false},
	}
	for _, tt := range tests {
		err := ValidateCoordinates(tt.lat, tt.lon)
		if (err == nil) != tt.ok {
			t.Errorf("ValidateCoordinates(%v, %v) = %v, want ok=%v", tt.lat, tt.lon, err, tt.ok)
		}
	}
}
