package yield

import (
	"math"
	"testing"

	"github.com/chrissnell/solarestimate/internal/types"
)

func monthlySum(r types.YieldResult) float64 {
	var s float64
	for _, m := range r.MonthlyEnergy {
		s += m
	}
	return s
}

func TestEmpiricalEstimateIsTotal(t *testing.T) {
	e := NewEmpiricalEstimator(DefaultEmpiricalParams(), nil)

	for lat := -90.0; lat <= 90.0; lat += 2.5 {
		for _, ghi := range []float64{0, 900, 1300, 2400} {
			r := e.Estimate(lat, 127.0, 30, 180, ghi)
			if r.AnnualEnergy < 0 {
				t.Fatalf("lat=%v ghi=%v: negative annual energy %v", lat, ghi, r.AnnualEnergy)
			}
			for m, v := range r.MonthlyEnergy {
				if v < 0 {
					t.Fatalf("lat=%v ghi=%v: negative energy in month %d", lat, ghi, m+1)
				}
			}
			if r.AnnualEnergy > 0 {
				if rel := math.Abs(monthlySum(r)-r.AnnualEnergy) / r.AnnualEnergy; rel > 1e-9 {
					t.Errorf("lat=%v ghi=%v: monthly sum off by %v", lat, ghi, rel)
				}
			}
		}
	}
}

func TestEmpiricalPrimary(t *testing.T) {
	e := NewEmpiricalEstimator(DefaultEmpiricalParams(), nil)

	r := e.Estimate(36.5, 127.8, 30.8, 180, 1300)
	if r.Tier != types.TierPrimary {
		t.Fatalf("tier = %s, want primary", r.Tier)
	}

	optTilt := 36.5*0.76 + 3.1
	want := 1300 * (0.20 * 0.96 * 0.86) * (1 - math.Abs(30.8-optTilt)*0.008) * (1 + (36.5-35.5)*0.01) * 0.94
	if math.Abs(r.AnnualEnergy-want) > 1e-9 {
		t.Errorf("annual = %v, want %v", r.AnnualEnergy, want)
	}
	if r.OptimalTilt != 30.8 {
		t.Errorf("optimal tilt = %v, want 30.8", r.OptimalTilt)
	}
	if r.OptimalAzimuth != 180 {
		t.Errorf("optimal azimuth = %d, want 180", r.OptimalAzimuth)
	}
	if wantTE := -6.0 + 0.5*0.3; math.Abs(r.TempEffect-wantTE) > 1e-12 {
		t.Errorf("temp effect = %v, want %v", r.TempEffect, wantTE)
	}

	// The seasonal vector peaks in June and bottoms out in December.
	if r.MonthlyEnergy[5] <= r.MonthlyEnergy[11] {
		t.Errorf("june %v should exceed december %v", r.MonthlyEnergy[5], r.MonthlyEnergy[11])
	}
}

func TestEmpiricalLatitudeBand(t *testing.T) {
	p := DefaultEmpiricalParams()

	tests := []struct {
		lat  float64
		want float64
	}{
		{lat: 32.9, want: 1.0},
		{lat: 33, want: 0.975},
		{lat: 35.5, want: 1.0},
		{lat: 38, want: 1.025},
		{lat: 38.1, want: 1.0},
		{lat: -35.5, want: 1.0},
	}

	for _, tt := range tests {
		if got := p.LatitudeFactor(tt.lat); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("LatitudeFactor(%v) = %v, want %v", tt.lat, got, tt.want)
		}
	}
}

func TestTiltFactorClamp(t *testing.T) {
	for tilt := -400.0; tilt <= 400; tilt += 7.3 {
		f := TiltFactor(tilt, 30.8, 0.008)
		if f < 0.8 || f > 1.1 {
			t.Fatalf("TiltFactor(%v) = %v outside [0.8, 1.1]", tilt, f)
		}
	}
	if f := TiltFactor(30.8, 30.8, 0.008); f != 1.0 {
		t.Errorf("TiltFactor at optimum = %v, want 1", f)
	}
}

func TestAzimuthFactorClamp(t *testing.T) {
	for az := -720.0; az <= 720; az += 11.7 {
		f := AzimuthFactor(az, 180, 0.002)
		if f < 0.7 || f > 1.0 {
			t.Fatalf("AzimuthFactor(%v) = %v outside [0.7, 1.0]", az, f)
		}
	}

	tests := []struct {
		az, opt float64
		want    float64
	}{
		{az: 180, opt: 180, want: 1.0},
		{az: 90, opt: 180, want: 0.82},
		{az: 350, opt: 0, want: 0.98},
		{az: 0, opt: 180, want: 0.7},
	}
	for _, tt := range tests {
		if got := AzimuthFactor(tt.az, tt.opt, 0.002); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("AzimuthFactor(%v, %v) = %v, want %v", tt.az, tt.opt, got, tt.want)
		}
	}
}

func TestEmpiricalZeroGHI(t *testing.T) {
	e := NewEmpiricalEstimator(DefaultEmpiricalParams(), nil)
	r := e.Estimate(36.35, 127.38, 30, 180, 0)

	if r.AnnualEnergy != 0 {
		t.Errorf("annual = %v, want 0", r.AnnualEnergy)
	}
	for m, v := range r.MonthlyEnergy {
		if v != 0 {
			t.Errorf("month %d = %v, want 0", m+1, v)
		}
	}
}

func TestEmpiricalTierTransitions(t *testing.T) {
	e := NewEmpiricalEstimator(DefaultEmpiricalParams(), nil)

	tests := []struct {
		name       string
		lat        float64
		tilt       float64
		ghi        float64
		wantTier   types.Tier
		wantAnnual float64
	}{
		{
			name:     "non-finite latitude drops to fallback",
			lat:      math.NaN(),
			tilt:     30,
			ghi:      1000,
			wantTier: types.TierFallback,
			// lat treated as 0: optimum 3.1°, tilt factor clamps to 0.8
			wantAnnual: 1000 * 0.85 * 0.96 * 0.86 * 0.8,
		},
		{
			name:       "non-finite tilt drops to fallback",
			lat:        3.0,
			tilt:       math.Inf(1),
			ghi:        1000,
			wantTier:   types.TierFallback,
			wantAnnual: 1000 * 0.85 * 0.96 * 0.86 * 0.8,
		},
		{
			name:       "negative ghi ends at last resort",
			lat:        36,
			tilt:       30,
			ghi:        -5,
			wantTier:   types.TierLastResort,
			wantAnnual: 0,
		},
		{
			name:       "nan ghi ends at last resort",
			lat:        36,
			tilt:       30,
			ghi:        math.NaN(),
			wantTier:   types.TierLastResort,
			wantAnnual: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := e.Estimate(tt.lat, 127, tt.tilt, 180, tt.ghi)
			if r.Tier != tt.wantTier {
				t.Fatalf("tier = %s, want %s", r.Tier, tt.wantTier)
			}
			if math.Abs(r.AnnualEnergy-tt.wantAnnual) > 1e-9 {
				t.Errorf("annual = %v, want %v", r.AnnualEnergy, tt.wantAnnual)
			}
		})
	}
}

func TestFallbackTierDirect(t *testing.T) {
	e := NewEmpiricalEstimator(DefaultEmpiricalParams(), nil)

	r, err := e.Fallback(36, 127, 30, 180, 1200)
	if err != nil {
		t.Fatalf("Fallback: %v", err)
	}
	if r.TempEffect != -5.0 {
		t.Errorf("temp effect = %v, want -5", r.TempEffect)
	}
	if math.Abs(monthlySum(r)-r.AnnualEnergy) > 1e-9 {
		t.Errorf("monthly sum %v != annual %v", monthlySum(r), r.AnnualEnergy)
	}

	if _, err := e.Fallback(36, 127, 30, 180, math.Inf(1)); err == nil {
		t.Error("Fallback accepted infinite ghi")
	}
}

func TestLastResort(t *testing.T) {
	r := LastResort(1200)
	if r.AnnualEnergy != 180 {
		t.Errorf("annual = %v, want 180", r.AnnualEnergy)
	}
	for m, v := range r.MonthlyEnergy {
		if v != 15 {
			t.Errorf("month %d = %v, want 15", m+1, v)
		}
	}
	if r.OptimalTilt != 30 || r.OptimalAzimuth != 180 || r.TempEffect != -5.0 {
		t.Errorf("unexpected defaults: %+v", r)
	}
}

func TestEmpiricalIdempotent(t *testing.T) {
	e := NewEmpiricalEstimator(DefaultEmpiricalParams(), nil)
	a := e.Estimate(35.1, 129.0, 25, 200, 1350)
	b := e.Estimate(35.1, 129.0, 25, 200, 1350)
	if a.AnnualEnergy != b.AnnualEnergy || a.MonthlyEnergy != b.MonthlyEnergy || a.TempEffect != b.TempEffect {
		t.Errorf("repeated estimates differ: %+v vs %+v", a, b)
	}
}

func TestParamsWithDefaults(t *testing.T) {
	p := EmpiricalParams{ModuleEfficiency: 0.22}.WithDefaults()
	if p.ModuleEfficiency != 0.22 {
		t.Errorf("explicit efficiency overwritten: %v", p.ModuleEfficiency)
	}
	if p.TemperatureFactor != 0.94 || p.LatitudeBandMax != 38 {
		t.Errorf("defaults not applied: %+v", p)
	}
}
