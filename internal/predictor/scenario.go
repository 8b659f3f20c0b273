package predictor

import (
	"fmt"
	"math"

	"cedears-engine/internal/model"
)

// BuildScenarios derives the base/bull/bear scenario set from the
// probability triple. Price impacts scale with the overall score so a
// strong reading widens the expected moves.
func BuildScenarios(overall float64, prob model.Probability) []model.Scenario {
	// Expected magnitude of the directional move, in percent.
	move := 4 + math.Abs(overall)*0.08

	base := model.Scenario{
		Name:           "base",
		Probability:    prob.Sideways,
		PriceImpactPct: round1(overall * 0.05),
	}
	base.Description = fmt.Sprintf("Trend continues at its current pace (%+.1f%%)", base.PriceImpactPct)

	bull := model.Scenario{
		Name:           "bull",
		Probability:    prob.Bullish,
		PriceImpactPct: round1(move),
	}
	bull.Description = fmt.Sprintf("Buyers take control, price rises ~%.1f%%", bull.PriceImpactPct)

	bear := model.Scenario{
		Name:           "bear",
		Probability:    prob.Bearish,
		PriceImpactPct: round1(-move),
	}
	bear.Description = fmt.Sprintf("Sellers take control, price falls ~%.1f%%", math.Abs(bear.PriceImpactPct))

	return []model.Scenario{base, bull, bear}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
