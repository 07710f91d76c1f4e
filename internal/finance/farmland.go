package finance

import (
	"fmt"

	"github.com/chrissnell/solarestimate/internal/solarerr"
)

// FarmlandParams holds the agrivoltaic tariff and cost assumptions
type FarmlandParams struct {
	MinAreaPyeong        float64 `json:"min_area_pyeong" yaml:"min_area_pyeong"`
	SqmPerPyeong         float64 `json:"sqm_per_pyeong" yaml:"sqm_per_pyeong"`
	KwPerPyeong          float64 `json:"kw_per_pyeong" yaml:"kw_per_pyeong"`
	KoreaYieldPerKw      float64 `json:"korea_yield_per_kw" yaml:"korea_yield_per_kw"`
	DefaultYieldPerKw    float64 `json:"default_yield_per_kw" yaml:"default_yield_per_kw"`
	SMPPrice             float64 `json:"smp_price" yaml:"smp_price"`
	RECPrice             float64 `json:"rec_price" yaml:"rec_price"`
	RECWeight            float64 `json:"rec_weight" yaml:"rec_weight"`
	InstallCostPerKw     float64 `json:"install_cost_per_kw" yaml:"install_cost_per_kw"`
	MaintenancePerKw     float64 `json:"maintenance_per_kw" yaml:"maintenance_per_kw"`
	InsuranceRate        float64 `json:"insurance_rate" yaml:"insurance_rate"`
	ManagementCost       float64 `json:"management_cost" yaml:"management_cost"`
	FarmingRevenuePyeong float64 `json:"farming_revenue_per_pyeong" yaml:"farming_revenue_per_pyeong"`
}

// DefaultFarmlandParams returns the agrivoltaic assumptions for Korean farmland
func DefaultFarmlandParams() FarmlandParams {
	return FarmlandParams{
		MinAreaPyeong:        20,
		SqmPerPyeong:         3.3,
		KwPerPyeong:          0.14,
		KoreaYieldPerKw:      1300,
		DefaultYieldPerKw:    1200,
		SMPPrice:             128.39,
		RECPrice:             70000,
		RECWeight:            1.2,
		InstallCostPerKw:     1800000,
		MaintenancePerKw:     15000,
		InsuranceRate:        0.003,
		ManagementCost:       500000,
		FarmingRevenuePyeong: 3571,
	}
}

// FarmlandResult compares solar income on farmland against farming income.
// Monetary values are per year except InstallCost.
type FarmlandResult struct {
	Installable         bool     `json:"installable"`
	Message             string   `json:"message"`
	AreaPyeong          float64  `json:"area_pyeong"`
	AreaSqm             float64  `json:"area_sqm,omitempty"`
	CapacityKw          float64  `json:"install_capacity_kw,omitempty"`
	AnnualGenerationKwh float64  `json:"annual_generation_kwh,omitempty"`
	AnnualRevenue       float64  `json:"annual_revenue,omitempty"`
	SMPRevenue          float64  `json:"smp_revenue,omitempty"`
	RECRevenue          float64  `json:"rec_revenue,omitempty"`
	OMCost              float64  `json:"om_cost,omitempty"`
	InstallCost         float64  `json:"install_cost,omitempty"`
	PaybackYears        *float64 `json:"payback_years,omitempty"`
	FarmingRevenue      float64  `json:"farming_revenue,omitempty"`
	SolarToFarmingRatio float64  `json:"solar_vs_farming_ratio,omitempty"`
}

// inFarmlandRegion is the mainland Korea box used for the regional yield
func inFarmlandRegion(lat, lon float64) bool {
	return lat >= 33 && lat <= 38 && lon >= 125 && lon <= 130
}

// Farmland estimates an agrivoltaic installation on areaPyeong of farmland.
// Plots below the minimum area are reported as not installable.
func Farmland(areaPyeong, lat, lon float64, p FarmlandParams) (*FarmlandResult, error) {
	if err := solarerr.CheckNonNegative("area_pyeong", areaPyeong); err != nil {
		return nil, err
	}
	if err := solarerr.CheckRange("lat", lat, -90, 90); err != nil {
		return nil, err
	}
	if err := solarerr.CheckRange("lon", lon, -180, 180); err != nil {
		return nil, err
	}

	if areaPyeong < p.MinAreaPyeong {
		return &FarmlandResult{
			Installable: false,
			AreaPyeong:  areaPyeong,
			Message:     fmt.Sprintf("at least %g pyeong of farmland is required", p.MinAreaPyeong),
		}, nil
	}

	capacity := areaPyeong * p.KwPerPyeong
	yieldPerKw := p.DefaultYieldPerKw
	if inFarmlandRegion(lat, lon) {
		yieldPerKw = p.KoreaYieldPerKw
	}
	generation := capacity * yieldPerKw

	smp := generation * p.SMPPrice
	rec := generation / 1000 * p.RECWeight * p.RECPrice
	installCost := capacity * p.InstallCostPerKw
	om := capacity*p.MaintenancePerKw + installCost*p.InsuranceRate + p.ManagementCost
	net := smp + rec - om

	var payback *float64
	if net > 0 {
		v := installCost / net
		payback = &v
	}

	farming := areaPyeong * p.FarmingRevenuePyeong
	ratio := 1.0
	if farming > 0 {
		ratio = net / farming
	}

	return &FarmlandResult{
		Installable:         true,
		Message:             "agrivoltaic installation is feasible",
		AreaPyeong:          areaPyeong,
		AreaSqm:             areaPyeong * p.SqmPerPyeong,
		CapacityKw:          capacity,
		AnnualGenerationKwh: generation,
		AnnualRevenue:       net,
		SMPRevenue:          smp,
		RECRevenue:          rec,
		OMCost:              om,
		InstallCost:         installCost,
		PaybackYears:        payback,
		FarmingRevenue:      farming,
		SolarToFarmingRatio: ratio,
	}, nil
}
