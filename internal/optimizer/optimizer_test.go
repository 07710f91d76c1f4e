package optimizer

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/chrissnell/solarestimate/internal/solarerr"
	"github.com/chrissnell/solarestimate/internal/yield"
)

func inBounds(tilt, azimuth float64) bool {
	return tiltInBounds(tilt) && azimuth >= MinAzimuth && azimuth < MaxAzimuth
}

func newTestOptimizer() *Optimizer {
	est := yield.NewEmpiricalEstimator(yield.DefaultEmpiricalParams(), nil)
	return New(est, 4, nil)
}

func TestHeuristic(t *testing.T) {
	tests := []struct {
		name        string
		lat         float64
		wantTilt    float64
		wantAzimuth float64
	}{
		{name: "central korea", lat: 36.5, wantTilt: 30.8, wantAzimuth: 180},
		{name: "sydney", lat: -33.9, wantTilt: 28.9, wantAzimuth: 0},
		{name: "equator", lat: 0, wantTilt: 3.1, wantAzimuth: 180},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := Heuristic(tt.lat)
			if math.Abs(a.Tilt-tt.wantTilt) > 1e-9 {
				t.Errorf("tilt = %v, want %v", a.Tilt, tt.wantTilt)
			}
			if a.Azimuth != tt.wantAzimuth {
				t.Errorf("azimuth = %v, want %v", a.Azimuth, tt.wantAzimuth)
			}
		})
	}
}

func TestDetailedFindsOptimum(t *testing.T) {
	o := newTestOptimizer()
	h := o.HeuristicWithEnergy(36.5, 127.8, 1200)

	for _, method := range []Method{MethodLBFGS, MethodGlobal} {
		t.Run(string(method), func(t *testing.T) {
			a, err := o.Detailed(context.Background(), 36.5, 127.8, 1200, method)
			if err != nil {
				t.Fatalf("Detailed: %v", err)
			}
			if a.Method != method {
				t.Errorf("method = %s, want %s", a.Method, method)
			}
			if !inBounds(a.Tilt, a.Azimuth) {
				t.Fatalf("angles out of bounds: %+v", a)
			}
			if a.MaxEnergy < h.MaxEnergy {
				t.Errorf("max energy %v below heuristic %v", a.MaxEnergy, h.MaxEnergy)
			}
			if math.Abs(a.Tilt-30.84) > 1.5 || math.Abs(a.Azimuth-180) > 10 {
				t.Errorf("optimum = %v/%v, want near 30.8/180", a.Tilt, a.Azimuth)
			}
		})
	}
}

func TestDetailedSouthernHemisphere(t *testing.T) {
	o := newTestOptimizer()
	h := o.HeuristicWithEnergy(-33.9, 151.2, 1600)

	for _, method := range []Method{MethodLBFGS, MethodGlobal} {
		t.Run(string(method), func(t *testing.T) {
			a, err := o.Detailed(context.Background(), -33.9, 151.2, 1600, method)
			if err != nil {
				t.Fatalf("Detailed: %v", err)
			}
			if method == MethodLBFGS && !a.Converged {
				t.Fatalf("search did not converge: %+v", a)
			}
			if !inBounds(a.Tilt, a.Azimuth) {
				t.Fatalf("angles out of bounds: %+v", a)
			}
			if d := yield.AzimuthDifference(a.Azimuth, 0); d > 10 {
				t.Errorf("azimuth = %v, want within 10° of north", a.Azimuth)
			}
			if a.MaxEnergy < h.MaxEnergy {
				t.Errorf("max energy %v below heuristic %v", a.MaxEnergy, h.MaxEnergy)
			}
		})
	}
}

func TestWrapAzimuth(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0}, {180, 180}, {-0.25, 359.75}, {-90, 270}, {360, 0}, {361, 1}, {725, 5},
	}
	for _, tt := range tests {
		if got := wrapAzimuth(tt.in); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("wrapAzimuth(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestDetailedHeuristicMethod(t *testing.T) {
	o := newTestOptimizer()
	a, err := o.Detailed(context.Background(), -33.9, 151.2, 1600, MethodHeuristic)
	if err != nil {
		t.Fatalf("Detailed: %v", err)
	}
	if a.Azimuth != 0 || a.MaxEnergy <= 0 {
		t.Errorf("unexpected heuristic result: %+v", a)
	}
}

func TestDetailedUnknownMethod(t *testing.T) {
	o := newTestOptimizer()
	_, err := o.Detailed(context.Background(), 36.5, 127.8, 1200, "simplex")
	if !errors.Is(err, solarerr.ErrInvalidInput) {
		t.Errorf("err = %v, want ErrInvalidInput", err)
	}
}

func TestDetailedCancelled(t *testing.T) {
	o := newTestOptimizer()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	a, err := o.Detailed(ctx, 36.5, 127.8, 1200, MethodLBFGS)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if a.Converged || a.Tilt != 30.8 {
		t.Errorf("cancelled search should return the heuristic, got %+v", a)
	}
}

func TestObjectivePenalty(t *testing.T) {
	o := newTestOptimizer()
	f := o.objective(context.Background(), 36.5, 127.8, 1200)

	for _, x := range [][]float64{{-1, 180}, {91, 180}} {
		if got := f(x); got != outOfBoundsPenalty {
			t.Errorf("f(%v) = %v, want penalty", x, got)
		}
	}
	// Azimuth wraps rather than hitting the penalty
	if a, b := f([]float64{30, -5}), f([]float64{30, 355}); a != b || a == outOfBoundsPenalty {
		t.Errorf("f(30,-5) = %v, f(30,355) = %v, want equal energies", a, b)
	}
	if a, b := f([]float64{30, 361}), f([]float64{30, 1}); a != b || a == outOfBoundsPenalty {
		t.Errorf("f(30,361) = %v, f(30,1) = %v, want equal energies", a, b)
	}
	if got := f([]float64{30, 180}); got >= 0 {
		t.Errorf("f(in bounds) = %v, want negative energy", got)
	}
}

func TestSensitivity(t *testing.T) {
	o := newTestOptimizer()
	s := o.Sensitivity(36.5, 127.8, 1200, 30.8, 180)

	if len(s.Tilt) != 11 {
		t.Errorf("tilt points = %d, want 11", len(s.Tilt))
	}
	if len(s.Azimuth) != 13 {
		t.Errorf("azimuth points = %d, want 13", len(s.Azimuth))
	}
	if s.Tilt[0].Angle != 20.8 || s.Azimuth[0].Angle != 150 || s.Azimuth[12].Angle != 210 {
		t.Errorf("unexpected sweep bounds: tilt from %v, azimuth %v..%v",
			s.Tilt[0].Angle, s.Azimuth[0].Angle, s.Azimuth[12].Angle)
	}
	if s.Tilt[5].LossPercent != 0 || s.Azimuth[6].LossPercent != 0 {
		t.Errorf("loss at the optimum should be zero")
	}
	for _, p := range append(s.Tilt, s.Azimuth...) {
		if p.LossPercent < 0 {
			t.Errorf("angle %v has negative loss %v", p.Angle, p.LossPercent)
		}
	}
}

func TestSensitivityClampsAtBounds(t *testing.T) {
	o := newTestOptimizer()
	s := o.Sensitivity(5, 127.8, 1200, 5, 10)

	if s.Tilt[0].Angle != 0 || len(s.Tilt) != 8 {
		t.Errorf("tilt sweep = %d points from %v, want 8 from 0", len(s.Tilt), s.Tilt[0].Angle)
	}
	if s.Azimuth[0].Angle != 0 {
		t.Errorf("azimuth sweep starts at %v, want 0", s.Azimuth[0].Angle)
	}
}

func TestSensitivityZeroGHI(t *testing.T) {
	o := newTestOptimizer()
	s := o.Sensitivity(36.5, 127.8, 0, 30.8, 180)
	for _, p := range s.Tilt {
		if p.LossPercent != 0 || math.IsNaN(p.LossPercent) {
			t.Fatalf("loss with zero yield = %v, want 0", p.LossPercent)
		}
	}
}

func TestAngleMatrix(t *testing.T) {
	o := newTestOptimizer()
	m, err := o.AngleMatrix(context.Background(), 36.5, 127.8, 1200)
	if err != nil {
		t.Fatalf("AngleMatrix: %v", err)
	}

	if len(m.Tilts) != 19 || len(m.Azimuths) != 19 {
		t.Fatalf("grid = %dx%d, want 19x19", len(m.Tilts), len(m.Azimuths))
	}
	if m.Tilts[0] != 0 || m.Tilts[18] != 90 || m.Azimuths[0] != 90 || m.Azimuths[18] != 270 {
		t.Errorf("grid axes = %v / %v", m.Tilts, m.Azimuths)
	}
	if len(m.Energy) != 19 {
		t.Fatalf("rows = %d", len(m.Energy))
	}
	for i, row := range m.Energy {
		if len(row) != 19 {
			t.Fatalf("row %d has %d columns", i, len(row))
		}
	}

	tilt, az, e := m.Best()
	if tilt != 30 || az != 180 || e <= 0 {
		t.Errorf("best cell = %v/%v (%v), want 30/180", tilt, az, e)
	}
}

func TestAngleMatrixCancelled(t *testing.T) {
	o := newTestOptimizer()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := o.AngleMatrix(ctx, 36.5, 127.8, 1200); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestSeasonal(t *testing.T) {
	o := newTestOptimizer()

	got := o.Seasonal(36.5, 127.8, 1200)
	want := map[string]float64{"winter": 51.5, "spring": 36.5, "summer": 21.5, "fall": 36.5}
	if len(got) != 4 {
		t.Fatalf("seasons = %d", len(got))
	}
	for _, s := range got {
		if s.Tilt != want[s.Season] {
			t.Errorf("%s tilt = %v, want %v", s.Season, s.Tilt, want[s.Season])
		}
		if s.Azimuth != 180 || s.Energy <= 0 {
			t.Errorf("%s: %+v", s.Season, s)
		}
	}

	if high := o.Seasonal(80, 0, 1000); high[0].Tilt != 90 {
		t.Errorf("winter tilt at 80N = %v, want clamp to 90", high[0].Tilt)
	}
	if low := o.Seasonal(5, 0, 1000); low[2].Tilt != 0 {
		t.Errorf("summer tilt at 5N = %v, want clamp to 0", low[2].Tilt)
	}
}

func TestWeightGrid(t *testing.T) {
	tests := []struct {
		n    int
		want int
	}{
		{n: 1, want: 1},
		{n: 2, want: 11},
		{n: 3, want: 31},
		{n: 4, want: 1},
	}

	for _, tt := range tests {
		grid := weightGrid(tt.n)
		if len(grid) != tt.want {
			t.Errorf("weightGrid(%d) has %d vectors, want %d", tt.n, len(grid), tt.want)
		}
		for _, w := range grid {
			var sum float64
			for _, v := range w {
				if v < 0 {
					t.Errorf("negative weight in %v", w)
				}
				sum += v
			}
			if math.Abs(sum-1) > 1e-9 {
				t.Errorf("weights %v sum to %v", w, sum)
			}
		}
	}
}

func TestMultiObjective(t *testing.T) {
	o := newTestOptimizer()

	res, err := o.MultiObjective(context.Background(), 36.5, 127.8, 1200, nil)
	if err != nil {
		t.Fatalf("MultiObjective: %v", err)
	}
	if len(res.Objectives) != 3 {
		t.Errorf("objectives = %v", res.Objectives)
	}
	if len(res.Solutions) == 0 {
		t.Fatal("no solutions")
	}
	for _, s := range res.Solutions {
		if !inBounds(s.Tilt, s.Azimuth) {
			t.Errorf("solution out of bounds: %+v", s)
		}
	}

	if _, err := o.MultiObjective(context.Background(), 36.5, 127.8, 1200, []Objective{"beauty"}); !errors.Is(err, solarerr.ErrInvalidInput) {
		t.Errorf("unknown objective err = %v", err)
	}
}
