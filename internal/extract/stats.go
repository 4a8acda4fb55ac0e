package extract

import "github.com/gyeh/rxaccess/internal/model"

// Summarize computes aggregate statistics over an already-validated coverage
// record sequence. Read-only; the records are not modified.
func Summarize(records []model.CoverageAnalysis) model.SummaryStats {
	stats := model.SummaryStats{
		TotalRecords:     len(records),
		ByProduct:        make(map[string]model.ProductStats),
		TierDistribution: make(map[string]int),
	}
	if len(records) == 0 {
		return stats
	}

	type productAgg struct {
		plans    map[model.PlanKey]struct{}
		count    int
		scoreSum float64
		paCount  int
		stCount  int
	}

	allPlans := make(map[model.PlanKey]struct{})
	byProduct := make(map[string]*productAgg)

	var paTotal, stTotal, qlTotal int
	var scoreTotal float64

	for _, rec := range records {
		key := model.PlanKey{ContractID: rec.ContractID, PlanID: rec.PlanID}
		allPlans[key] = struct{}{}

		agg := byProduct[rec.ProductName]
		if agg == nil {
			agg = &productAgg{plans: make(map[model.PlanKey]struct{})}
			byProduct[rec.ProductName] = agg
		}
		agg.plans[key] = struct{}{}
		agg.count++
		agg.scoreSum += rec.AccessScore
		if rec.PriorAuth {
			agg.paCount++
			paTotal++
		}
		if rec.StepTherapy {
			agg.stCount++
			stTotal++
		}
		if rec.QuantityLimit {
			qlTotal++
		}

		scoreTotal += rec.AccessScore
		stats.TierDistribution[rec.Tier]++
	}

	n := float64(len(records))
	stats.UniquePlans = len(allPlans)
	stats.AdministrativeFriction = model.FrictionStats{
		PriorAuthPct:     float64(paTotal) / n * 100,
		StepTherapyPct:   float64(stTotal) / n * 100,
		QuantityLimitPct: float64(qlTotal) / n * 100,
	}
	stats.AverageAccessScore = scoreTotal / n

	for name, agg := range byProduct {
		c := float64(agg.count)
		stats.ByProduct[name] = model.ProductStats{
			PlansCovering:   len(agg.plans),
			AvgAccessScore:  agg.scoreSum / c,
			PriorAuthRate:   float64(agg.paCount) / c * 100,
			StepTherapyRate: float64(agg.stCount) / c * 100,
		}
	}

	return stats
}
