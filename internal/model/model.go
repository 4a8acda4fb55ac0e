// Package model defines the typed records flowing through the coverage
// extraction pipeline, from parsed source rows to the denormalized
// coverage analysis output.
package model

// FormularyRecord is one coverage fact from the Basic Drugs Formulary file:
// a drug on a plan's formulary, with tier placement and utilization
// management flags.
type FormularyRecord struct {
	ContractID    string
	PlanID        string
	NDC           string // normalized 11-digit
	Tier          string
	PriorAuth     bool
	StepTherapy   bool
	QuantityLimit bool
}

// CostRecord is one cost-sharing fact from the Beneficiary Cost file,
// keyed by (contract, plan, tier).
type CostRecord struct {
	ContractID          string
	PlanID              string
	Tier                string
	CostType            string // "copay" or "coinsurance", lower-cased raw text
	RetailPreferredCost float64
	RetailStandardCost  float64
	MailOrderCost       float64
}

// PlanInfo identifies one plan from the Plan Information file.
type PlanInfo struct {
	ContractID       string
	PlanID           string
	PlanName         string
	PlanType         string // PDP or MA-PD
	OrganizationName string
}

// PlanKey identifies a plan within a contract.
type PlanKey struct {
	ContractID string
	PlanID     string
}

// CostKey identifies a cost-sharing entry.
type CostKey struct {
	ContractID string
	PlanID     string
	Tier       string
}

// CoverageAnalysis is the denormalized output row: one tracked drug product
// on one plan, with plan identity, formulary facts, cost facts, and the
// derived access score. Parquet tags make the struct directly writable by
// the export layer.
type CoverageAnalysis struct {
	// Plan identity
	ContractID       string `parquet:"contract_id" json:"contract_id"`
	PlanID           string `parquet:"plan_id" json:"plan_id"`
	PlanName         string `parquet:"plan_name" json:"plan_name"`
	PlanType         string `parquet:"plan_type" json:"plan_type"`
	OrganizationName string `parquet:"organization_name" json:"organization_name"`

	// Product
	ProductName string `parquet:"product_name" json:"product_name"`
	Molecule    string `parquet:"molecule" json:"molecule"`
	Indication  string `parquet:"indication" json:"indication"`

	// Administrative friction
	Covered       bool   `parquet:"covered" json:"covered"`
	Tier          string `parquet:"tier" json:"tier"`
	PriorAuth     bool   `parquet:"prior_auth" json:"prior_auth"`
	StepTherapy   bool   `parquet:"step_therapy" json:"step_therapy"`
	QuantityLimit bool   `parquet:"quantity_limit" json:"quantity_limit"`

	// Affordability. CostType is "unknown" with zero amounts when the plan
	// has no cost-sharing entry for the drug's tier.
	CostType            string  `parquet:"cost_type" json:"cost_type"`
	RetailPreferredCost float64 `parquet:"retail_preferred_cost" json:"retail_preferred_cost"`
	RetailStandardCost  float64 `parquet:"retail_standard_cost" json:"retail_standard_cost"`
	MailOrderCost       float64 `parquet:"mail_order_cost" json:"mail_order_cost"`

	// Composite 0-100 score, higher = easier access.
	AccessScore float64 `parquet:"access_score" json:"access_score"`
}
