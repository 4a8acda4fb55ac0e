package extract

import (
	"fmt"

	"github.com/gyeh/rxaccess/internal/catalog"
	"github.com/gyeh/rxaccess/internal/model"
)

// Join combines formulary, cost, and plan records into coverage analysis
// rows, one per surviving formulary record, in formulary order.
//
// Join rules:
//   - (contract, plan) must resolve in the plan lookup; a miss drops the
//     record silently.
//   - (contract, plan, tier) resolving in the cost lookup is optional; a
//     miss degrades to cost type "unknown" with zero amounts.
//   - The NDC must resolve in the catalog. The formulary parser has already
//     filtered on catalog membership, so a miss here means the inputs are
//     internally inconsistent and the join fails.
//
// The returned records are unscored; AccessScore is zero until Score runs.
func Join(
	formulary []model.FormularyRecord,
	costs []model.CostRecord,
	plans map[model.PlanKey]model.PlanInfo,
	cat *catalog.Catalog,
) ([]model.CoverageAnalysis, error) {
	// Cost lookup keyed by (contract, plan, tier); duplicates keep the
	// last row, matching the plan lookup semantics.
	costLookup := make(map[model.CostKey]model.CostRecord, len(costs))
	for _, c := range costs {
		costLookup[model.CostKey{ContractID: c.ContractID, PlanID: c.PlanID, Tier: c.Tier}] = c
	}

	var out []model.CoverageAnalysis
	for _, f := range formulary {
		plan, ok := plans[model.PlanKey{ContractID: f.ContractID, PlanID: f.PlanID}]
		if !ok {
			continue
		}

		name, ok := cat.LookupNDC(f.NDC)
		if !ok {
			return nil, fmt.Errorf("formulary NDC %s not in catalog: inconsistent pipeline input", f.NDC)
		}
		product, ok := cat.Product(name)
		if !ok {
			return nil, fmt.Errorf("catalog product %q missing definition", name)
		}

		rec := model.CoverageAnalysis{
			ContractID:       f.ContractID,
			PlanID:           f.PlanID,
			PlanName:         plan.PlanName,
			PlanType:         plan.PlanType,
			OrganizationName: plan.OrganizationName,

			ProductName: product.Name,
			Molecule:    product.Molecule,
			Indication:  product.Indication,

			Covered:       true,
			Tier:          f.Tier,
			PriorAuth:     f.PriorAuth,
			StepTherapy:   f.StepTherapy,
			QuantityLimit: f.QuantityLimit,

			CostType: costTypeUnknown,
		}

		if cost, ok := costLookup[model.CostKey{ContractID: f.ContractID, PlanID: f.PlanID, Tier: f.Tier}]; ok {
			rec.CostType = cost.CostType
			rec.RetailPreferredCost = cost.RetailPreferredCost
			rec.RetailStandardCost = cost.RetailStandardCost
			rec.MailOrderCost = cost.MailOrderCost
		}

		out = append(out, rec)
	}
	return out, nil
}
