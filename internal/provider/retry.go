package provider

import (
	"context"
	"log"
	"time"

	"cedears-engine/internal/model"

	"github.com/cenkalti/backoff/v4"
)

// Retrying decorates a PriceHistory with bounded exponential backoff.
// The chart API throttles bursts; a couple of spaced retries ride out
// transient failures without the caller noticing.
type Retrying struct {
	inner      model.PriceHistory
	maxElapsed time.Duration
}

// WithRetry wraps the provider. maxElapsed bounds the total retry time;
// zero selects a 30s default.
func WithRetry(inner model.PriceHistory, maxElapsed time.Duration) *Retrying {
	if maxElapsed <= 0 {
		maxElapsed = 30 * time.Second
	}
	return &Retrying{inner: inner, maxElapsed: maxElapsed}
}

// GetPriceHistory retries the wrapped call until it succeeds or the
// backoff budget is exhausted.
func (r *Retrying) GetPriceHistory(ctx context.Context, symbol string, days int) ([]model.PriceBar, error) {
	var bars []model.PriceBar

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 500 * time.Millisecond
	policy.MaxElapsedTime = r.maxElapsed

	err := backoff.Retry(func() error {
		var err error
		bars, err = r.inner.GetPriceHistory(ctx, symbol, days)
		if err != nil {
			log.Printf("[provider] fetch %s failed, retrying: %v", symbol, err)
		}
		return err
	}, backoff.WithContext(policy, ctx))
	if err != nil {
		return nil, err
	}
	return bars, nil
}
