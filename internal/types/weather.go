package types

// Tier identifies which stage of the estimator produced a YieldResult
type Tier string

const (
	TierPrimary           Tier = "primary"
	TierFallback          Tier = "fallback"
	TierLastResort        Tier = "last_resort"
	TierDetailed          Tier = "detailed"
	TierFallbackEmpirical Tier = "fallback_empirical"
)

// YieldResult is the per-kWp energy estimate for one location and geometry.
// AnnualEnergy and MonthlyEnergy are in kWh/kWp.
type YieldResult struct {
	AnnualEnergy   float64     `json:"annual_energy"`
	MonthlyEnergy  [12]float64 `json:"monthly_energy"`
	TempEffect     float64     `json:"temp_effect"`
	OptimalTilt    float64     `json:"optimal_tilt"`
	OptimalAzimuth int         `json:"optimal_azimuth"`
	Tier           Tier        `json:"tier"`

	// HourlyEnergy is only populated by the detailed model
	HourlyEnergy []float64 `json:"-"`
}

// GHISource records where an irradiance value came from
type GHISource string

const (
	GHISourceLive     GHISource = "live"
	GHISourceStore    GHISource = "store"
	GHISourceCache    GHISource = "cache"
	GHISourceFallback GHISource = "fallback"
)

// Irradiance is an annual GHI value plus its provenance
type Irradiance struct {
	GHIAnnual float64   `json:"ghi"`
	Source    GHISource `json:"source"`
}

// RevenueModel selects how yearly revenue is derived from production
type RevenueModel string

const (
	RevenueFlat   RevenueModel = "flat"
	RevenueSMPREC RevenueModel = "smp_rec"
)

// FinancialResult is the outcome of an investment analysis. CashFlows is the
// cumulative cash position for years 0..lifetime.
type FinancialResult struct {
	TotalCost         float64   `json:"total_cost"`
	AnnualProduction  float64   `json:"annual_production"`
	AnnualRevenue     float64   `json:"annual_revenue"`
	AnnualSMPRevenue  float64   `json:"annual_smp_revenue"`
	AnnualRECRevenue  float64   `json:"annual_rec_revenue"`
	PaybackPeriod     *float64  `json:"payback_period"`
	ROI               float64   `json:"roi"`
	CashFlows         []float64 `json:"cash_flows"`
	LifeCycleRevenue  float64   `json:"life_cycle_revenue"`
	NetProfit         float64   `json:"net_profit"`
	MonthlyProduction float64   `json:"monthly_production"`
	MonthlyRevenue    float64   `json:"monthly_revenue"`
	NPV               *float64  `json:"npv,omitempty"`
	IRR               *float64  `json:"irr,omitempty"`
}
