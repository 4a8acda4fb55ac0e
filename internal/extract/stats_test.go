package extract

import (
	"math"
	"testing"

	"github.com/gyeh/rxaccess/internal/model"
)

func statsFixture() []model.CoverageAnalysis {
	return []model.CoverageAnalysis{
		{ContractID: "C001", PlanID: "P01", ProductName: "Wegovy", Covered: true,
			Tier: "2", PriorAuth: true, AccessScore: 75},
		{ContractID: "C001", PlanID: "P01", ProductName: "Ozempic", Covered: true,
			Tier: "3", StepTherapy: true, QuantityLimit: true, AccessScore: 55},
		{ContractID: "C002", PlanID: "P02", ProductName: "Wegovy", Covered: true,
			Tier: "2", AccessScore: 95},
		{ContractID: "C003", PlanID: "P03", ProductName: "Wegovy", Covered: true,
			Tier: "Specialty", PriorAuth: true, QuantityLimit: true, AccessScore: 50},
	}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestSummarize(t *testing.T) {
	stats := Summarize(statsFixture())

	if stats.TotalRecords != 4 {
		t.Errorf("total = %d, want 4", stats.TotalRecords)
	}
	if stats.UniquePlans != 3 {
		t.Errorf("unique plans = %d, want 3", stats.UniquePlans)
	}
	if !almostEqual(stats.AverageAccessScore, (75+55+95+50)/4.0) {
		t.Errorf("avg score = %v", stats.AverageAccessScore)
	}

	// Friction: PA on 2 of 4, ST on 1 of 4, QL on 2 of 4.
	f := stats.AdministrativeFriction
	if !almostEqual(f.PriorAuthPct, 50) || !almostEqual(f.StepTherapyPct, 25) || !almostEqual(f.QuantityLimitPct, 50) {
		t.Errorf("friction = %+v", f)
	}

	// Tier histogram.
	if stats.TierDistribution["2"] != 2 || stats.TierDistribution["3"] != 1 || stats.TierDistribution["Specialty"] != 1 {
		t.Errorf("tier distribution = %v", stats.TierDistribution)
	}

	// Per-product: Wegovy on 3 plans, PA on 2 of 3 records.
	w, ok := stats.ByProduct["Wegovy"]
	if !ok {
		t.Fatal("Wegovy missing from ByProduct")
	}
	if w.PlansCovering != 3 {
		t.Errorf("Wegovy plans = %d, want 3", w.PlansCovering)
	}
	if !almostEqual(w.AvgAccessScore, (75+95+50)/3.0) {
		t.Errorf("Wegovy avg = %v", w.AvgAccessScore)
	}
	if !almostEqual(w.PriorAuthRate, 2.0/3.0*100) {
		t.Errorf("Wegovy PA rate = %v", w.PriorAuthRate)
	}
	if !almostEqual(w.StepTherapyRate, 0) {
		t.Errorf("Wegovy ST rate = %v", w.StepTherapyRate)
	}

	o := stats.ByProduct["Ozempic"]
	if o.PlansCovering != 1 || !almostEqual(o.StepTherapyRate, 100) {
		t.Errorf("Ozempic stats = %+v", o)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	stats := Summarize(nil)
	if stats.TotalRecords != 0 || stats.UniquePlans != 0 || stats.AverageAccessScore != 0 {
		t.Errorf("empty stats = %+v", stats)
	}
	if stats.ByProduct == nil || stats.TierDistribution == nil {
		t.Error("maps should be initialized even for empty input")
	}
}
