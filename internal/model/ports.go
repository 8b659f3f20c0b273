package model

import (
	"context"
	"time"
)

// ── Collaborator Port Interfaces ──
// These interfaces decouple the engine from concrete collaborators
// (price provider, SQLite persistence, Redis cache, external analyzers).
// Components receive them by injection, which keeps every part testable
// with in-memory fakes.

// PriceHistory supplies ordered daily bars for a symbol.
type PriceHistory interface {
	// GetPriceHistory returns up to `days` daily bars, ascending by date.
	GetPriceHistory(ctx context.Context, symbol string, days int) ([]PriceBar, error)
}

// IndicatorStore persists computed indicator results.
type IndicatorStore interface {
	// SaveIndicators upserts every result of the set, keyed (symbol, kind, ts).
	SaveIndicators(ctx context.Context, set *CalculatedIndicatorSet) error

	// LatestIndicators returns the most recent result per kind for a symbol.
	// Returns an empty slice when the symbol has never been calculated.
	LatestIndicators(ctx context.Context, symbol string) ([]IndicatorResult, error)

	// DeleteOlderThan removes results older than the retention window.
	// Returns the number of rows deleted.
	DeleteOlderThan(ctx context.Context, retention time.Duration) (int64, error)

	// Close releases underlying resources.
	Close() error
}

// PredictionCache is a short-TTL cache of trend predictions.
// Writes are best-effort; a cache failure never fails a request.
type PredictionCache interface {
	// Get returns the cached prediction for the key, or (nil, nil) on miss.
	Get(ctx context.Context, key string) (*TrendPrediction, error)

	// Set stores the prediction under the key with the given TTL.
	Set(ctx context.Context, key string, p *TrendPrediction, ttl time.Duration) error

	// Close releases underlying resources.
	Close() error
}

// NewsAnalyzer scores recent news coverage for a symbol.
type NewsAnalyzer interface {
	GetNewsSentiment(ctx context.Context, symbol string) (*SentimentReading, error)
}

// SentimentAnalyzer scores overall market sentiment for a symbol.
type SentimentAnalyzer interface {
	GetMarketSentiment(ctx context.Context, symbol string) (*SentimentReading, error)
}

// EarningsAnalyzer assesses the symbol's latest earnings picture.
type EarningsAnalyzer interface {
	GetEarningsAnalysis(ctx context.Context, symbol string) (*EarningsAnalysis, error)
}

// InstrumentSource lists the active instruments of the watchlist.
type InstrumentSource interface {
	ActiveInstruments(ctx context.Context) ([]Instrument, error)
}
