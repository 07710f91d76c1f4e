package solar

import (
	"math"
	"testing"
	"time"
)

func TestSunPosition(t *testing.T) {
	tests := []struct {
		name        string
		time        time.Time
		latitude    float64
		longitude   float64
		wantZenith  float64
		wantAzimuth float64
		tolerance   float64
	}{
		{
			name:        "Equator at March equinox solar noon",
			time:        time.Date(2023, 3, 20, 12, 7, 0, 0, time.UTC),
			latitude:    0,
			longitude:   0,
			wantZenith:  0.5,
			wantAzimuth: -1, // azimuth is ill-defined overhead
			tolerance:   1.0,
		},
		{
			name:        "Daejeon summer solstice local noon",
			time:        time.Date(2023, 6, 21, 3, 30, 0, 0, time.UTC),
			latitude:    36.35,
			longitude:   127.38,
			wantZenith:  36.35 - 23.44,
			wantAzimuth: 180,
			tolerance:   2.5,
		},
		{
			name:        "Daejeon winter solstice local noon",
			time:        time.Date(2023, 12, 21, 3, 30, 0, 0, time.UTC),
			latitude:    36.35,
			longitude:   127.38,
			wantZenith:  36.35 + 23.44,
			wantAzimuth: 180,
			tolerance:   2.5,
		},
		{
			name:        "Sydney summer local noon faces north",
			time:        time.Date(2023, 12, 21, 2, 0, 0, 0, time.UTC),
			latitude:    -33.87,
			longitude:   151.21,
			wantZenith:  -33.87 + 23.44 + 20.86, // |lat - dec|
			wantAzimuth: 0,
			tolerance:   3.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos := SunPosition(tt.time, tt.latitude, tt.longitude)
			want := math.Abs(tt.latitude - pos.DeclinationDeg)
			if math.Abs(pos.Zenith-want) > tt.tolerance {
				t.Errorf("zenith = %.2f, want about %.2f", pos.Zenith, want)
			}
			if tt.wantAzimuth >= 0 {
				diff := math.Abs(pos.Azimuth - tt.wantAzimuth)
				if diff > 180 {
					diff = 360 - diff
				}
				if diff > 15 {
					t.Errorf("azimuth = %.2f, want about %.2f", pos.Azimuth, tt.wantAzimuth)
				}
			}
			// Refraction is zero near the zenith, so allow rounding noise there
			if pos.ApparentZenith > pos.Zenith+1e-9 {
				t.Errorf("refraction should raise the sun: apparent %.3f > geometric %.3f", pos.ApparentZenith, pos.Zenith)
			}
		})
	}
}

func TestSunPositionMorningEast(t *testing.T) {
	// 08:00 KST in April: sun is in the eastern sky
	pos := SunPosition(time.Date(2023, 4, 15, 23, 0, 0, 0, time.UTC), 37.57, 126.98)
	if pos.Azimuth < 60 || pos.Azimuth > 130 {
		t.Errorf("expected eastern azimuth, got %.2f", pos.Azimuth)
	}
	if pos.Elevation <= 0 {
		t.Errorf("expected sun above horizon, elevation %.2f", pos.Elevation)
	}
}

func TestSunPositionNight(t *testing.T) {
	// Midnight KST
	pos := SunPosition(time.Date(2023, 7, 1, 15, 0, 0, 0, time.UTC), 37.57, 126.98)
	if pos.ApparentZenith < 90 {
		t.Errorf("expected sun below horizon at midnight, zenith %.2f", pos.ApparentZenith)
	}
	if !math.IsNaN(RelativeAirmass(pos.ApparentZenith)) {
		t.Errorf("air mass should be NaN below the horizon")
	}
}

func TestRelativeAirmass(t *testing.T) {
	if am := RelativeAirmass(0); math.Abs(am-1.0) > 0.01 {
		t.Errorf("airmass at zenith = %.4f, want 1.0", am)
	}
	if am := RelativeAirmass(60); math.Abs(am-2.0) > 0.05 {
		t.Errorf("airmass at 60° = %.4f, want about 2.0", am)
	}
}

func TestSunPositionHourAngle(t *testing.T) {
	// Solar noon at the prime meridian on the March equinox is about 12:07 UTC
	noon := SunPosition(time.Date(2023, 3, 20, 12, 7, 0, 0, time.UTC), 0, 0)
	if math.Abs(noon.HourAngle) > 1 {
		t.Errorf("hour angle at solar noon = %.2f, want ~0", noon.HourAngle)
	}

	morning := SunPosition(time.Date(2023, 3, 20, 9, 7, 0, 0, time.UTC), 0, 0)
	if math.Abs(morning.HourAngle+45) > 1 {
		t.Errorf("hour angle three hours before noon = %.2f, want ~-45", morning.HourAngle)
	}
}
