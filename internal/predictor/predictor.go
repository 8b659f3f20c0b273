package predictor

import (
	"fmt"
	"math"

	"cedears-engine/internal/model"
)

// Direction thresholds on the overall score.
const directionThreshold = 15.0

// confidenceCap bounds confidence: the engine never claims certainty.
const confidenceCap = 95

// Per-source thresholds for key-factor extraction. A source whose score
// clears its threshold in either direction becomes a POSITIVE or
// NEGATIVE key factor.
const (
	keyFactorTechnical = 20.0
	keyFactorEarnings  = 25.0
	keyFactorSentiment = 30.0
	keyFactorNews      = 30.0
)

// maxListed caps key factors, risks, and catalysts.
const maxListed = 5

var baseRisks = []string{
	"ARS/USD exchange-rate swings move CEDEAR prices independently of the underlying",
	"Low local trading volume can widen spreads",
}

var baseCatalysts = []string{
	"Upcoming earnings report of the underlying",
	"Local rate decisions shifting CEDEAR demand",
}

// Direction classifies the overall score.
func Direction(overall float64) model.Direction {
	switch {
	case overall > directionThreshold:
		return model.DirBullish
	case overall < -directionThreshold:
		return model.DirBearish
	default:
		return model.DirSideways
	}
}

// Consensus measures cross-factor agreement as the inverse of the
// population variance of the present scores: 100 when all sources say
// the same thing, 0 when they diverge wildly or nothing is available.
func Consensus(f model.FactorScores) float64 {
	scores := f.Present()
	if len(scores) == 0 {
		return 0
	}
	mean := 0.0
	for _, s := range scores {
		mean += s
	}
	mean /= float64(len(scores))

	variance := 0.0
	for _, s := range scores {
		variance += (s - mean) * (s - mean)
	}
	variance /= float64(len(scores))

	return math.Max(0, 100-variance)
}

// Confidence derives the prediction confidence: a 50 base, raised by
// the magnitude of the overall score and by cross-factor agreement,
// capped at 95. Non-decreasing in |overall| and in consensus.
func Confidence(overall float64, f model.FactorScores) int {
	c := 50 + math.Abs(overall)*0.5 + Consensus(f)*0.3
	return int(math.Round(math.Min(confidenceCap, c)))
}

// Strength buckets the magnitude of the overall score.
func Strength(overall float64) model.StrengthClass {
	abs := math.Abs(overall)
	switch {
	case abs < 25:
		return model.StrengthWeak
	case abs < 50:
		return model.StrengthModerate
	default:
		return model.StrengthStrong
	}
}

// Probabilities maps the overall score onto a directional probability
// triple. Bullish and bearish are rounded independently; sideways is
// the residual, reconciled so the three always sum to exactly 100.
func Probabilities(overall float64) model.Probability {
	bullish := int(math.Round(clamp(50+overall*0.8, 0, 100)))
	bearish := int(math.Round(clamp(50-overall*0.8, 0, 100)))

	sideways := 100 - bullish - bearish
	if sideways < 0 {
		// Rounding overshoot: trim the larger side.
		if bullish >= bearish {
			bullish += sideways
		} else {
			bearish += sideways
		}
		sideways = 0
	}
	return model.Probability{Bullish: bullish, Bearish: bearish, Sideways: sideways}
}

// KeyFactors extracts the inputs that materially moved the prediction.
// Each available source is tested against its own threshold; the list
// is capped at maxListed.
func KeyFactors(f model.FactorScores) []model.KeyFactor {
	type test struct {
		source    string
		score     *float64
		threshold float64
	}
	tests := []test{
		{"technical", f.Technical, keyFactorTechnical},
		{"earnings", f.Fundamental, keyFactorEarnings},
		{"sentiment", f.Sentiment, keyFactorSentiment},
		{"news", f.News, keyFactorNews},
	}

	var factors []model.KeyFactor
	for _, tt := range tests {
		if tt.score == nil {
			continue
		}
		s := *tt.score
		switch {
		case s >= tt.threshold:
			factors = append(factors, model.KeyFactor{
				Source: tt.source,
				Impact: "POSITIVE",
				Detail: fmt.Sprintf("%s score %+.0f", tt.source, s),
			})
		case s <= -tt.threshold:
			factors = append(factors, model.KeyFactor{
				Source: tt.source,
				Impact: "NEGATIVE",
				Detail: fmt.Sprintf("%s score %+.0f", tt.source, s),
			})
		}
		if len(factors) == maxListed {
			break
		}
	}
	return factors
}

// Risks builds the risk list: the fixed base entries, one entry per
// negative key factor, and one per scenario with a negative price
// impact. De-duplicated and capped at maxListed.
func Risks(factors []model.KeyFactor, scenarios []model.Scenario) []string {
	out := append([]string{}, baseRisks...)
	for _, kf := range factors {
		if kf.Impact == "NEGATIVE" {
			out = append(out, fmt.Sprintf("Weak %s reading (%s)", kf.Source, kf.Detail))
		}
	}
	for _, sc := range scenarios {
		if sc.PriceImpactPct < 0 {
			out = append(out, fmt.Sprintf("%s scenario: %.0f%% chance of a %.1f%% move",
				sc.Name, float64(sc.Probability), sc.PriceImpactPct))
		}
	}
	return dedupeCap(out, maxListed)
}

// Catalysts mirrors Risks for the positive side.
func Catalysts(factors []model.KeyFactor, scenarios []model.Scenario) []string {
	out := append([]string{}, baseCatalysts...)
	for _, kf := range factors {
		if kf.Impact == "POSITIVE" {
			out = append(out, fmt.Sprintf("Strong %s reading (%s)", kf.Source, kf.Detail))
		}
	}
	for _, sc := range scenarios {
		if sc.PriceImpactPct > 0 {
			out = append(out, fmt.Sprintf("%s scenario: %.0f%% chance of a +%.1f%% move",
				sc.Name, float64(sc.Probability), sc.PriceImpactPct))
		}
	}
	return dedupeCap(out, maxListed)
}

func dedupeCap(items []string, limit int) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, limit)
	for _, s := range items {
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
		if len(out) == limit {
			break
		}
	}
	return out
}

// Predict assembles the directional call from the factor scores.
func Predict(f model.FactorScores) (model.Prediction, float64) {
	overall := OverallScore(f)
	return model.Prediction{
		Direction:   Direction(overall),
		Confidence:  Confidence(overall, f),
		Strength:    Strength(overall),
		Probability: Probabilities(overall),
	}, overall
}
