package model

import (
	"encoding/json"
	"time"
)

// Signal is the trading signal emitted by a single indicator.
type Signal string

const (
	SignalBuy  Signal = "BUY"
	SignalSell Signal = "SELL"
	SignalHold Signal = "HOLD"
)

// IndicatorKind identifies which indicator produced a result.
type IndicatorKind string

const (
	KindRSI      IndicatorKind = "RSI"
	KindSMA      IndicatorKind = "SMA"
	KindEMA      IndicatorKind = "EMA"
	KindMACD     IndicatorKind = "MACD"
	KindExtremes IndicatorKind = "EXTREMES"
)

// IndicatorResult is one computed indicator for a symbol at one instant.
// Results are immutable once written; a later run supersedes them with
// a newer timestamp rather than mutating in place.
type IndicatorResult struct {
	Symbol   string             `json:"symbol"`
	Kind     IndicatorKind      `json:"kind"`
	Value    float64            `json:"value"`    // primary value (RSI level, SMA20, EMA12, MACD line, year high)
	Signal   Signal             `json:"signal"`   // BUY, SELL, HOLD
	Strength float64            `json:"strength"` // 0..100
	Meta     map[string]float64 `json:"meta,omitempty"`
	TS       time.Time          `json:"ts"`
}

// Key returns the persistence key for this result: "symbol:kind".
func (r *IndicatorResult) Key() string {
	return r.Symbol + ":" + string(r.Kind)
}

// JSON returns the JSON-encoded result (ignoring errors for logging usage).
func (r *IndicatorResult) JSON() []byte {
	b, _ := json.Marshal(r)
	return b
}

// CalculatedIndicatorSet aggregates one result per indicator kind for a
// symbol at a single point in time. The set is owned exclusively by the
// calculation call that produced it and is never shared across goroutines.
type CalculatedIndicatorSet struct {
	Symbol   string    `json:"symbol"`
	RSI      IndicatorResult `json:"rsi"`
	SMA      IndicatorResult `json:"sma"`
	EMA      IndicatorResult `json:"ema"`
	MACD     IndicatorResult `json:"macd"`
	Extremes IndicatorResult `json:"extremes"`
	TS       time.Time `json:"ts"`
}

// All returns the five results in a fixed order for persistence.
func (s *CalculatedIndicatorSet) All() []IndicatorResult {
	return []IndicatorResult{s.RSI, s.SMA, s.EMA, s.MACD, s.Extremes}
}
