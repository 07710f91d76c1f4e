package finance

import (
	"fmt"
	"math"

	"github.com/chrissnell/solarestimate/internal/solarerr"
	"github.com/chrissnell/solarestimate/internal/types"
)

// Scenario is a named Input
type Scenario struct {
	Name  string `json:"name"`
	Input Input  `json:"input"`
}

// ScenarioResult pairs a scenario name with its analysis
type ScenarioResult struct {
	Name   string                 `json:"scenario_name"`
	Result *types.FinancialResult `json:"result"`
}

// Comparison ranks analysed scenarios. BestPayback is nil when no scenario
// pays back within its lifetime.
type Comparison struct {
	Scenarios   []ScenarioResult `json:"scenarios"`
	BestROI     *ScenarioResult  `json:"best_roi"`
	BestPayback *ScenarioResult  `json:"best_payback"`
}

// CompareScenarios analyses each scenario and picks the best by ROI and by
// payback period
func CompareScenarios(scenarios []Scenario) (*Comparison, error) {
	if len(scenarios) == 0 {
		return nil, fmt.Errorf("no scenarios: %w", solarerr.ErrInvalidInput)
	}

	cmp := &Comparison{Scenarios: make([]ScenarioResult, 0, len(scenarios))}
	for i, sc := range scenarios {
		res, err := Analyze(sc.Input)
		if err != nil {
			return nil, fmt.Errorf("scenario %d: %w", i+1, err)
		}
		name := sc.Name
		if name == "" {
			name = fmt.Sprintf("scenario %d", i+1)
		}
		cmp.Scenarios = append(cmp.Scenarios, ScenarioResult{Name: name, Result: res})
	}

	for i := range cmp.Scenarios {
		s := &cmp.Scenarios[i]
		if cmp.BestROI == nil || s.Result.ROI > cmp.BestROI.Result.ROI {
			cmp.BestROI = s
		}
		if s.Result.PaybackPeriod == nil {
			continue
		}
		if cmp.BestPayback == nil || *s.Result.PaybackPeriod < *cmp.BestPayback.Result.PaybackPeriod {
			cmp.BestPayback = s
		}
	}
	return cmp, nil
}

// SweepVariable names an Input field that SensitivitySweep can vary
type SweepVariable string

const (
	SweepYield            SweepVariable = "yield_per_kwp"
	SweepSystemSize       SweepVariable = "system_size"
	SweepInstallCost      SweepVariable = "install_cost_per_kw"
	SweepElectricityPrice SweepVariable = "electricity_price"
	SweepSMPPrice         SweepVariable = "smp_price"
	SweepRECPrice         SweepVariable = "rec_price"
	SweepRECWeight        SweepVariable = "rec_weight"
	SweepDegradation      SweepVariable = "degradation_rate"
)

// SweepPoint is the analysis at one value of the swept variable
type SweepPoint struct {
	Value  float64                `json:"value"`
	Result *types.FinancialResult `json:"result"`
}

const maxSweepPoints = 1000

// SensitivitySweep re-runs Analyze with one variable stepped from start to
// end inclusive
func SensitivitySweep(base Input, variable SweepVariable, start, end, step float64) ([]SweepPoint, error) {
	if err := solarerr.CheckFinite("start", start); err != nil {
		return nil, err
	}
	if err := solarerr.CheckFinite("end", end); err != nil {
		return nil, err
	}
	if step <= 0 || math.IsNaN(step) || math.IsInf(step, 0) {
		return nil, solarerr.Invalid("step", step, "must be a positive number")
	}
	if end < start {
		return nil, solarerr.Invalid("end", end, "must not be below start")
	}
	n := int(math.Floor((end-start)/step+1e-9)) + 1
	if n > maxSweepPoints {
		return nil, solarerr.Invalid("step", step, fmt.Sprintf("sweep would exceed %d points", maxSweepPoints))
	}

	points := make([]SweepPoint, 0, n)
	for i := 0; i < n; i++ {
		v := start + float64(i)*step
		in := base
		if err := setVariable(&in, variable, v); err != nil {
			return nil, err
		}
		res, err := Analyze(in)
		if err != nil {
			return nil, err
		}
		points = append(points, SweepPoint{Value: v, Result: res})
	}
	return points, nil
}

func setVariable(in *Input, variable SweepVariable, v float64) error {
	switch variable {
	case SweepYield:
		in.YieldPerKwp = v
	case SweepSystemSize:
		in.SystemSizeKw = v
	case SweepInstallCost:
		in.InstallCostPerKw = v
	case SweepElectricityPrice:
		in.Prices.ElectricityPrice = v
	case SweepSMPPrice:
		in.Prices.SMPPrice = v
	case SweepRECPrice:
		in.Prices.RECPrice = v
	case SweepRECWeight:
		in.Prices.RECWeight = v
	case SweepDegradation:
		in.DegradationRate = v
	default:
		return fmt.Errorf("sweep variable %q: %w", variable, solarerr.ErrInvalidInput)
	}
	return nil
}
