package model

import (
	"encoding/json"
	"time"
)

// Direction is the predicted trend direction for a symbol.
type Direction string

const (
	DirBullish  Direction = "BULLISH"
	DirBearish  Direction = "BEARISH"
	DirSideways Direction = "SIDEWAYS"
)

// StrengthClass buckets the magnitude of the overall score.
type StrengthClass string

const (
	StrengthWeak     StrengthClass = "WEAK"
	StrengthModerate StrengthClass = "MODERATE"
	StrengthStrong   StrengthClass = "STRONG"
)

// FactorScores holds the four per-source scores feeding the overall
// score, each in [-100,100]. A nil pointer means the source produced
// no data for this request; it contributes zero and is excluded from
// the consensus variance.
type FactorScores struct {
	Technical   *float64 `json:"technical"`
	Fundamental *float64 `json:"fundamental"`
	Sentiment   *float64 `json:"sentiment"`
	News        *float64 `json:"news"`
}

// Present returns the available scores in fixed order
// (technical, fundamental, sentiment, news).
func (f *FactorScores) Present() []float64 {
	var out []float64
	for _, p := range []*float64{f.Technical, f.Fundamental, f.Sentiment, f.News} {
		if p != nil {
			out = append(out, *p)
		}
	}
	return out
}

// Probability is the directional probability triple. The three values
// always sum to exactly 100 after rounding.
type Probability struct {
	Bullish  int `json:"bullish"`
	Bearish  int `json:"bearish"`
	Sideways int `json:"sideways"`
}

// KeyFactor is one input that materially moved the prediction.
type KeyFactor struct {
	Source string `json:"source"` // technical, earnings, sentiment, news
	Impact string `json:"impact"` // POSITIVE, NEGATIVE
	Detail string `json:"detail"`
}

// Scenario is one hypothetical path for the symbol over the timeframe.
type Scenario struct {
	Name           string  `json:"name"` // base, bull, bear
	Description    string  `json:"description"`
	Probability    int     `json:"probability"`      // 0..100
	PriceImpactPct float64 `json:"price_impact_pct"` // expected move, signed
}

// Prediction is the directional call with its confidence metrics.
type Prediction struct {
	Direction   Direction     `json:"direction"`
	Confidence  int           `json:"confidence"` // 0..95
	Strength    StrengthClass `json:"strength"`
	Probability Probability   `json:"probability"`
}

// Analysis carries the scoring detail behind a prediction.
type Analysis struct {
	Factors      FactorScores `json:"factors"`
	OverallScore float64      `json:"overall_score"`
	KeyFactors   []KeyFactor  `json:"key_factors"`
	Risks        []string     `json:"risks"`
	Catalysts    []string     `json:"catalysts"`
}

// TrendPrediction is the full output of one prediction request.
type TrendPrediction struct {
	Symbol      string     `json:"symbol"`
	Timeframe   string     `json:"timeframe"`
	Prediction  Prediction `json:"prediction"`
	Analysis    Analysis   `json:"analysis"`
	Scenarios   []Scenario `json:"scenarios,omitempty"`
	LastUpdated time.Time  `json:"last_updated"`
}

// JSON returns the JSON-encoded prediction (ignoring errors for cache usage).
func (p *TrendPrediction) JSON() []byte {
	b, _ := json.Marshal(p)
	return b
}

// PortfolioTrendAnalysis is the aggregate view over a set of symbols.
type PortfolioTrendAnalysis struct {
	Predictions    map[string]*TrendPrediction `json:"predictions"`
	BullishSymbols []string                    `json:"bullish_symbols"`
	BearishSymbols []string                    `json:"bearish_symbols"`
	NeutralSymbols []string                    `json:"neutral_symbols"`
	OverallTrend   Direction                   `json:"overall_trend"` // BULLISH, BEARISH or MIXED
	AvgConfidence  int                         `json:"avg_confidence"`
	GeneratedAt    time.Time                   `json:"generated_at"`
}

// DirMixed marks a portfolio with no dominant direction.
const DirMixed Direction = "MIXED"

// EarningsAssessment is the categorical outcome of the latest report.
type EarningsAssessment string

const (
	EarningsStrongBeat EarningsAssessment = "STRONG_BEAT"
	EarningsBeat       EarningsAssessment = "BEAT"
	EarningsMixed      EarningsAssessment = "MIXED"
	EarningsMiss       EarningsAssessment = "MISS"
	EarningsStrongMiss EarningsAssessment = "STRONG_MISS"
)

// EarningsAnalysis is the opaque scored input from the earnings analyzer.
type EarningsAnalysis struct {
	Assessment        EarningsAssessment `json:"assessment"`
	ConsecutiveBeats  int                `json:"consecutive_beats"`
	ConsecutiveMisses int                `json:"consecutive_misses"`
}

// SentimentReading is the opaque scored input from a sentiment analyzer.
// Score is already normalized to [-100,100] by the analyzer.
type SentimentReading struct {
	Score float64 `json:"score"`
}
