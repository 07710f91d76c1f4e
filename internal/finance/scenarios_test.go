package finance

import (
	"errors"
	"math"
	"testing"

	"github.com/chrissnell/solarestimate/internal/solarerr"
)

func TestCompareScenarios(t *testing.T) {
	cheap := referenceInput()
	cheap.InstallCostPerKw = 1300000
	pricey := referenceInput()
	pricey.InstallCostPerKw = 2500000
	hopeless := referenceInput()
	hopeless.YieldPerKwp = 10

	cmp, err := CompareScenarios([]Scenario{
		{Name: "premium", Input: pricey},
		{Input: cheap},
		{Name: "shaded", Input: hopeless},
	})
	if err != nil {
		t.Fatalf("CompareScenarios: %v", err)
	}

	if len(cmp.Scenarios) != 3 {
		t.Fatalf("scenarios = %d", len(cmp.Scenarios))
	}
	if cmp.Scenarios[1].Name != "scenario 2" {
		t.Errorf("unnamed scenario = %q", cmp.Scenarios[1].Name)
	}
	if cmp.BestROI == nil || cmp.BestROI.Name != "scenario 2" {
		t.Errorf("best roi = %+v", cmp.BestROI)
	}
	if cmp.BestPayback == nil || cmp.BestPayback.Name != "scenario 2" {
		t.Errorf("best payback = %+v", cmp.BestPayback)
	}
}

func TestCompareScenariosErrors(t *testing.T) {
	if _, err := CompareScenarios(nil); !errors.Is(err, solarerr.ErrInvalidInput) {
		t.Errorf("empty: err = %v", err)
	}

	bad := referenceInput()
	bad.SystemSizeKw = math.NaN()
	if _, err := CompareScenarios([]Scenario{{Input: bad}}); !errors.Is(err, solarerr.ErrInvalidInput) {
		t.Errorf("invalid scenario: err = %v", err)
	}
}

func TestSensitivitySweep(t *testing.T) {
	points, err := SensitivitySweep(referenceInput(), SweepInstallCost, 1000000, 2000000, 500000)
	if err != nil {
		t.Fatalf("SensitivitySweep: %v", err)
	}
	if len(points) != 3 {
		t.Fatalf("points = %d, want 3", len(points))
	}
	for i, p := range points {
		if want := 1000000 + float64(i)*500000; p.Value != want {
			t.Errorf("point %d value = %v, want %v", i, p.Value, want)
		}
		if i > 0 && p.Result.ROI >= points[i-1].Result.ROI {
			t.Errorf("roi should fall as cost rises: %v then %v", points[i-1].Result.ROI, p.Result.ROI)
		}
	}
}

func TestSensitivitySweepInclusiveEnd(t *testing.T) {
	points, err := SensitivitySweep(referenceInput(), SweepRECWeight, 1.0, 1.5, 0.1)
	if err != nil {
		t.Fatalf("SensitivitySweep: %v", err)
	}
	if len(points) != 6 {
		t.Errorf("points = %d, want 6", len(points))
	}
}

func TestSensitivitySweepErrors(t *testing.T) {
	tests := []struct {
		name             string
		variable         SweepVariable
		start, end, step float64
	}{
		{"unknown variable", "tax_rate", 0, 1, 0.5},
		{"zero step", SweepSMPPrice, 100, 200, 0},
		{"reversed range", SweepSMPPrice, 200, 100, 10},
		{"too many points", SweepSMPPrice, 0, 1e9, 1},
		{"negative value", SweepSMPPrice, -100, 0, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SensitivitySweep(referenceInput(), tt.variable, tt.start, tt.end, tt.step)
			if !errors.Is(err, solarerr.ErrInvalidInput) {
				t.Errorf("err = %v, want ErrInvalidInput", err)
			}
		})
	}
}
