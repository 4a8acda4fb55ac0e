package model

// ProductStats aggregates coverage for a single product.
type ProductStats struct {
	PlansCovering   int     `json:"total_plans"`
	AvgAccessScore  float64 `json:"avg_access_score"`
	PriorAuthRate   float64 `json:"pa_rate"`
	StepTherapyRate float64 `json:"st_rate"`
}

// FrictionStats holds the share of records carrying each utilization
// management requirement, as percentages of all records.
type FrictionStats struct {
	PriorAuthPct     float64 `json:"prior_auth_pct"`
	StepTherapyPct   float64 `json:"step_therapy_pct"`
	QuantityLimitPct float64 `json:"quantity_limit_pct"`
}

// SummaryStats is a read-only aggregate view over a coverage record
// sequence, for external reporting.
type SummaryStats struct {
	TotalRecords           int                     `json:"total_records"`
	UniquePlans            int                     `json:"unique_plans"`
	ByProduct              map[string]ProductStats `json:"by_product"`
	AdministrativeFriction FrictionStats           `json:"administrative_friction"`
	TierDistribution       map[string]int          `json:"tier_distribution"`
	AverageAccessScore     float64                 `json:"average_access_score"`
}
