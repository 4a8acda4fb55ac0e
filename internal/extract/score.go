package extract

import "github.com/gyeh/rxaccess/internal/model"

const (
	costTypeCopay       = "copay"
	costTypeCoinsurance = "coinsurance"
	costTypeUnknown     = "unknown"
)

// tierScores maps formulary tier labels to base score contributions.
// Unrecognized tiers score the specialty floor.
var tierScores = map[string]float64{
	"1": 40, "2": 35, "3": 30, "4": 25, "5": 20, "6": 15,
	"Specialty": 10, "ST": 10,
}

const defaultTierScore = 10

// Score computes the 0-100 composite access score for a coverage record.
// Higher is easier access. Pure function of the record; uncovered records
// score zero regardless of other attributes.
//
// Components: tier base (10-40), no prior auth +20, no step therapy +20,
// no quantity limit +10, affordability 0-10 from the preferred-retail cost.
// All unrecognized inputs fall to the lowest contribution, so the function
// never fails.
func Score(rec model.CoverageAnalysis) float64 {
	if !rec.Covered {
		return 0.0
	}

	score, ok := tierScores[rec.Tier]
	if !ok {
		score = defaultTierScore
	}

	if !rec.PriorAuth {
		score += 20
	}
	if !rec.StepTherapy {
		score += 20
	}
	if !rec.QuantityLimit {
		score += 10
	}

	switch rec.CostType {
	case costTypeCopay:
		if rec.RetailPreferredCost < 50 {
			score += 10
		} else if rec.RetailPreferredCost < 100 {
			score += 5
		}
	case costTypeCoinsurance:
		if rec.RetailPreferredCost < 25 {
			score += 10
		} else if rec.RetailPreferredCost < 33 {
			score += 5
		}
	}

	return min(score, 100.0)
}
