package service

import (
	"github.com/chrissnell/solarestimate/internal/finance"
	"github.com/chrissnell/solarestimate/internal/types"
)

// FinancialInput returns an Input carrying the configured tariffs, costs and
// lifetime for the given yield and system size
func (s *Service) FinancialInput(yieldPerKwp, systemSizeKw float64) finance.Input {
	in := finance.NewInput(yieldPerKwp, systemSizeKw, s.installCostPerKw, s.prices)
	in.DegradationRate = s.degradationRate
	in.LifetimeYears = s.lifetimeYears
	in.DiscountRate = s.discountRate
	return in
}

// AnalyzeFinancials runs the cash-flow analysis
func (s *Service) AnalyzeFinancials(in finance.Input) (*types.FinancialResult, error) {
	res, err := finance.Analyze(in)
	s.metrics.RecordFinancial(string(in.Prices.Model), err)
	if err != nil {
		return nil, err
	}
	return res, nil
}

// CompareScenarios analyses and ranks several inputs
func (s *Service) CompareScenarios(scenarios []finance.Scenario) (*finance.Comparison, error) {
	cmp, err := finance.CompareScenarios(scenarios)
	for _, sc := range scenarios {
		s.metrics.RecordFinancial(string(sc.Input.Prices.Model), err)
	}
	return cmp, err
}

// FinancialSweep steps one input variable and analyses each value
func (s *Service) FinancialSweep(base finance.Input, variable finance.SweepVariable, start, end, step float64) ([]finance.SweepPoint, error) {
	return finance.SensitivitySweep(base, variable, start, end, step)
}

// Farmland estimates an agrivoltaic installation on a plot of farmland
func (s *Service) Farmland(areaPyeong, lat, lon float64) (*finance.FarmlandResult, error) {
	return finance.Farmland(areaPyeong, lat, lon, s.farmland)
}
