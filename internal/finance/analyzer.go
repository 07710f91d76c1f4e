// Package finance models the cash flows of a PV investment.
package finance

import (
	"fmt"
	"math"

	"github.com/chrissnell/solarestimate/internal/solarerr"
	"github.com/chrissnell/solarestimate/internal/types"
)

// Defaults for an Input built with NewInput
const (
	DefaultDegradationRate  = 0.005
	DefaultLifetimeYears    = 25
	DefaultDiscountRate     = 0.03
	DefaultRECWeight        = 1.0
	DefaultSMPPrice         = 180.0
	DefaultRECPrice         = 40.0
	DefaultElectricityPrice = 120.0
	DefaultInstallCostPerKw = 1800000.0
)

// PriceParams selects the revenue model and its tariffs. Prices are per kWh
// except RECPrice, which is per certificate (one MWh times RECWeight).
type PriceParams struct {
	Model            types.RevenueModel `json:"revenue_model" yaml:"revenue_model"`
	ElectricityPrice float64            `json:"electricity_price" yaml:"electricity_price"`
	SMPPrice         float64            `json:"smp_price" yaml:"smp_price"`
	RECPrice         float64            `json:"rec_price" yaml:"rec_price"`
	RECWeight        float64            `json:"rec_weight" yaml:"rec_weight"`
}

// DefaultPriceParams is the SMP+REC market at the default tariffs
func DefaultPriceParams() PriceParams {
	return PriceParams{
		Model:            types.RevenueSMPREC,
		ElectricityPrice: DefaultElectricityPrice,
		SMPPrice:         DefaultSMPPrice,
		RECPrice:         DefaultRECPrice,
		RECWeight:        DefaultRECWeight,
	}
}

// Input is everything Analyze needs
type Input struct {
	YieldPerKwp      float64     `json:"yield_per_kwp"`
	SystemSizeKw     float64     `json:"system_size"`
	InstallCostPerKw float64     `json:"install_cost_per_kw"`
	Prices           PriceParams `json:"prices"`
	DegradationRate  float64     `json:"degradation_rate"`
	LifetimeYears    int         `json:"lifetime"`

	// Extended adds NPV and IRR to the result
	Extended     bool    `json:"extended"`
	DiscountRate float64 `json:"discount_rate"`
}

// NewInput fills degradation, lifetime and discount rate with their defaults
func NewInput(yieldPerKwp, systemSizeKw, installCostPerKw float64, prices PriceParams) Input {
	return Input{
		YieldPerKwp:      yieldPerKwp,
		SystemSizeKw:     systemSizeKw,
		InstallCostPerKw: installCostPerKw,
		Prices:           prices,
		DegradationRate:  DefaultDegradationRate,
		LifetimeYears:    DefaultLifetimeYears,
		DiscountRate:     DefaultDiscountRate,
	}
}

// Validate rejects non-finite and negative values
func (in Input) Validate() error {
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"yield_per_kwp", in.YieldPerKwp},
		{"system_size", in.SystemSizeKw},
		{"install_cost_per_kw", in.InstallCostPerKw},
		{"electricity_price", in.Prices.ElectricityPrice},
		{"smp_price", in.Prices.SMPPrice},
		{"rec_price", in.Prices.RECPrice},
		{"rec_weight", in.Prices.RECWeight},
		{"discount_rate", in.DiscountRate},
	} {
		if err := solarerr.CheckNonNegative(f.name, f.v); err != nil {
			return err
		}
	}
	if err := solarerr.CheckRange("degradation_rate", in.DegradationRate, 0, 1); err != nil {
		return err
	}
	if in.LifetimeYears < 1 || in.LifetimeYears > 100 {
		return solarerr.Invalid("lifetime", float64(in.LifetimeYears), "must be between 1 and 100 years")
	}
	switch in.Prices.Model {
	case types.RevenueFlat, types.RevenueSMPREC:
	default:
		return solarerr.Invalid("revenue_model", 0, fmt.Sprintf("unknown revenue model %q", in.Prices.Model))
	}
	return nil
}

// MaintenanceRate is the yearly O&M cost as a fraction of the install cost
func MaintenanceRate(year int) float64 {
	switch {
	case year <= 10:
		return 0.01
	case year <= 20:
		return 0.015
	default:
		return 0.02
	}
}

// Analyze builds the year-by-year cash position and the derived metrics
func Analyze(in Input) (*types.FinancialResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	totalCost := in.SystemSizeKw * in.InstallCostPerKw
	production := in.SystemSizeKw * in.YieldPerKwp

	var smp, rec, revenue float64
	switch in.Prices.Model {
	case types.RevenueFlat:
		revenue = production * in.Prices.ElectricityPrice
	case types.RevenueSMPREC:
		smp = production * in.Prices.SMPPrice
		rec = production / 1000 * in.Prices.RECWeight * in.Prices.RECPrice
		revenue = smp + rec
	}

	cashFlows := make([]float64, 0, in.LifetimeYears+1)
	// 0 - x rather than -x keeps a zero cost from becoming -0
	initial := 0 - totalCost
	cashFlows = append(cashFlows, initial)
	cumulative := initial

	var totalRevenue, totalMaintenance float64
	for year := 1; year <= in.LifetimeYears; year++ {
		yearRevenue := revenue * math.Pow(1-in.DegradationRate, float64(year))
		maintenance := totalCost * MaintenanceRate(year)

		totalRevenue += yearRevenue
		totalMaintenance += maintenance

		cumulative += yearRevenue - maintenance
		cashFlows = append(cashFlows, cumulative)
	}

	netProfit := totalRevenue - totalMaintenance - totalCost
	var roi float64
	if totalCost != 0 {
		roi = netProfit / totalCost * 100
	}

	res := &types.FinancialResult{
		TotalCost:         totalCost,
		AnnualProduction:  production,
		AnnualRevenue:     revenue,
		AnnualSMPRevenue:  smp,
		AnnualRECRevenue:  rec,
		PaybackPeriod:     PaybackPeriod(cashFlows),
		ROI:               roi,
		CashFlows:         cashFlows,
		LifeCycleRevenue:  totalRevenue - totalMaintenance,
		NetProfit:         netProfit,
		MonthlyProduction: production / 12,
		MonthlyRevenue:    revenue / 12,
	}

	if in.Extended {
		npv := NPV(cashFlows, in.DiscountRate)
		res.NPV = &npv
		res.IRR = IRR(cashFlows)
	}
	return res, nil
}

// PaybackPeriod interpolates the year at which the cumulative cash position
// crosses zero. It is nil when the position is still negative at the end of
// the series and zero when nothing was invested.
func PaybackPeriod(cashFlows []float64) *float64 {
	if len(cashFlows) == 0 {
		return nil
	}
	if cashFlows[0] >= 0 {
		zero := 0.0
		return &zero
	}
	for i := 1; i < len(cashFlows); i++ {
		if cashFlows[i] >= 0 && cashFlows[i-1] < 0 {
			p := float64(i-1) + -cashFlows[i-1]/(cashFlows[i]-cashFlows[i-1])
			return &p
		}
	}
	return nil
}
