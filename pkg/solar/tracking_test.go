package solar

import (
	"math"
	"testing"
)

func TestTrackerOrientation(t *testing.T) {
	noBacktrack := Tracker{MaxAngle: 60, GCR: 0.4}

	tests := []struct {
		name        string
		tracker     Tracker
		zenith      float64
		azimuth     float64
		wantTilt    float64
		wantAzimuth float64
		tolerance   float64
	}{
		{"sun overhead", DefaultTracker, 0, 180, 0, 180, 1e-6},
		{"morning sun east", noBacktrack, 30, 90, 30, 90, 1e-6},
		{"afternoon sun west", noBacktrack, 45, 270, 45, 270, 1e-6},
		{"low sun clipped at max angle", noBacktrack, 80, 90, 60, 90, 1e-6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.tracker.Orientation(tt.zenith, tt.azimuth)
			if math.Abs(got.SurfaceTilt-tt.wantTilt) > tt.tolerance {
				t.Errorf("tilt = %.3f, want %.3f", got.SurfaceTilt, tt.wantTilt)
			}
			if got.SurfaceTilt > 0 && got.SurfaceAzimuth != tt.wantAzimuth {
				t.Errorf("azimuth = %.1f, want %.1f", got.SurfaceAzimuth, tt.wantAzimuth)
			}
		})
	}
}

func TestTrackerBacktracking(t *testing.T) {
	// Low morning sun: backtracking rotates the row back toward flat
	plain := Tracker{MaxAngle: 60, GCR: 0.4}.Orientation(80, 90)
	back := DefaultTracker.Orientation(80, 90)
	if back.SurfaceTilt >= plain.SurfaceTilt {
		t.Errorf("backtracked tilt %.2f should be below true-tracking tilt %.2f", back.SurfaceTilt, plain.SurfaceTilt)
	}
}

func TestTrackerStowedAtNight(t *testing.T) {
	got := DefaultTracker.Orientation(100, 300)
	if !got.Stowed || got.SurfaceTilt != 0 {
		t.Errorf("expected stowed flat row, got %+v", got)
	}
}

func TestTemperatureFactorClamp(t *testing.T) {
	for _, cell := range []float64{-100, -20, 25, 60, 200} {
		f := TemperatureFactor(cell)
		if f < 0.7 || f > 1.1 {
			t.Errorf("TemperatureFactor(%v) = %v out of [0.7, 1.1]", cell, f)
		}
	}
	if f := TemperatureFactor(25); f != 1 {
		t.Errorf("TemperatureFactor(25) = %v, want 1", f)
	}
}

func TestSAPMRacking(t *testing.T) {
	if got := SAPMRacking("open_rack"); got != sapmRacking["open_rack_glass_glass"] {
		t.Errorf("open_rack alias resolved to %+v", got)
	}
	if got := SAPMRacking("bogus"); got != sapmRacking["open_rack_glass_glass"] {
		t.Errorf("unknown racking should fall back to open rack, got %+v", got)
	}
	cell := SAPMCellTemperature(1000, 25, 1, SAPMRacking("open_rack"))
	if cell < 45 || cell > 65 {
		t.Errorf("open rack cell temp at 1000 W/m² = %.1f, want roughly 50-60", cell)
	}
}
