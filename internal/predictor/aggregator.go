// Package predictor turns indicator sets and external analyzer scores
// into directional trend predictions.
//
// The pipeline per request is COLLECTING → SCORING → PREDICTING →
// CACHING → DONE; every collection sub-step fails independently into a
// null input rather than aborting the request.
package predictor

import (
	"cedears-engine/internal/model"
)

// Fixed weights of the overall score. They sum to 1, making the overall
// a convex combination of the factor scores. A missing factor scores 0
// and keeps its weight, so an all-null request lands exactly on 0.
const (
	weightTechnical   = 0.30
	weightFundamental = 0.25
	weightSentiment   = 0.25
	weightNews        = 0.20
)

// Earnings assessment deltas.
var assessmentDeltas = map[model.EarningsAssessment]float64{
	model.EarningsStrongBeat: 50,
	model.EarningsBeat:       30,
	model.EarningsMixed:      0,
	model.EarningsMiss:       -30,
	model.EarningsStrongMiss: -50,
}

// streakThreshold is the consecutive beat/miss count that moves the
// fundamental score by streakDelta.
const (
	streakThreshold = 3
	streakDelta     = 20
)

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func ptr(v float64) *float64 { return &v }

// TechnicalScore condenses the latest persisted indicators into one
// score in [-100,100]: the mean of per-indicator contributions, where a
// BUY contributes +strength, a SELL -strength and a HOLD zero.
// Returns nil when no indicators exist for the symbol.
func TechnicalScore(results []model.IndicatorResult) *float64 {
	if len(results) == 0 {
		return nil
	}
	var sum float64
	for _, r := range results {
		switch r.Signal {
		case model.SignalBuy:
			sum += r.Strength
		case model.SignalSell:
			sum -= r.Strength
		}
	}
	return ptr(clamp(sum/float64(len(results)), -100, 100))
}

// FundamentalScore combines the earnings assessment, the beat/miss
// streak, and price momentum. The available sub-terms are averaged, not
// summed: a missing input reduces the divisor instead of dragging the
// score toward zero. Returns nil when no sub-term has data.
func FundamentalScore(earnings *model.EarningsAnalysis, priceChangePct *float64) *float64 {
	var sum float64
	var n int

	if earnings != nil {
		delta, ok := assessmentDeltas[earnings.Assessment]
		if ok {
			sum += delta
			n++
		}

		streak := 0.0
		if earnings.ConsecutiveBeats >= streakThreshold {
			streak = streakDelta
		} else if earnings.ConsecutiveMisses >= streakThreshold {
			streak = -streakDelta
		}
		sum += streak
		n++
	}

	if priceChangePct != nil {
		sum += clamp(*priceChangePct*2, -30, 30)
		n++
	}

	if n == 0 {
		return nil
	}
	return ptr(clamp(sum/float64(n), -100, 100))
}

// SentimentScore passes the analyzer's score through unchanged; the
// analyzer already normalizes to [-100,100].
func SentimentScore(reading *model.SentimentReading) *float64 {
	if reading == nil {
		return nil
	}
	return ptr(reading.Score)
}

// NewsScore scales the raw news sentiment down; headlines overreact.
func NewsScore(reading *model.SentimentReading) *float64 {
	if reading == nil {
		return nil
	}
	return ptr(clamp(reading.Score*0.8, -100, 100))
}

// OverallScore is the weighted combination of the four factor scores.
func OverallScore(f model.FactorScores) float64 {
	score := 0.0
	if f.Technical != nil {
		score += weightTechnical * *f.Technical
	}
	if f.Fundamental != nil {
		score += weightFundamental * *f.Fundamental
	}
	if f.Sentiment != nil {
		score += weightSentiment * *f.Sentiment
	}
	if f.News != nil {
		score += weightNews * *f.News
	}
	return score
}
