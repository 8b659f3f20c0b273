package predictor

import (
	"context"
	"sync"

	"cedears-engine/internal/model"
)

// momentumWindow is the trailing bar count for the price momentum term.
const momentumWindow = 20

// priceHistoryDays is how much history the momentum fetch requests.
const priceHistoryDays = 60

// inputs holds the settled results of one collection round. A nil field
// means the sub-step failed or was disabled; the aggregator treats both
// the same way.
type inputs struct {
	technical      []model.IndicatorResult
	news           *model.SentimentReading
	sentiment      *model.SentimentReading
	earnings       *model.EarningsAnalysis
	priceChangePct *float64
}

// collect gathers all enabled inputs concurrently and joins them in a
// settle-all fashion: every sub-step runs to completion and an
// individual failure only nulls its own field, never the round.
func (s *Service) collect(ctx context.Context, symbol string, opts Options) inputs {
	var in inputs
	var wg sync.WaitGroup

	// Each goroutine writes a distinct field, so no locking is needed.
	wg.Add(1)
	go func() {
		defer wg.Done()
		results, err := s.store.LatestIndicators(ctx, symbol)
		if err != nil {
			s.collectFailed(ctx, symbol, "technical", err)
			return
		}
		in.technical = results
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		bars, err := s.price.GetPriceHistory(ctx, symbol, priceHistoryDays)
		if err != nil {
			s.collectFailed(ctx, symbol, "price", err)
			return
		}
		in.priceChangePct = momentum(bars)
	}()

	if opts.IncludeNews && s.news != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			reading, err := s.news.GetNewsSentiment(ctx, symbol)
			if err != nil {
				s.collectFailed(ctx, symbol, "news", err)
				return
			}
			in.news = reading
		}()
	}

	if opts.IncludeSentiment && s.sentiment != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			reading, err := s.sentiment.GetMarketSentiment(ctx, symbol)
			if err != nil {
				s.collectFailed(ctx, symbol, "sentiment", err)
				return
			}
			in.sentiment = reading
		}()
	}

	if opts.IncludeEarnings && s.earnings != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			analysis, err := s.earnings.GetEarningsAnalysis(ctx, symbol)
			if err != nil {
				s.collectFailed(ctx, symbol, "earnings", err)
				return
			}
			in.earnings = analysis
		}()
	}

	wg.Wait()
	return in
}

func (s *Service) collectFailed(ctx context.Context, symbol, source string, err error) {
	s.log.WarnContext(ctx, "collection sub-step failed",
		"symbol", symbol, "source", source, "err", err)
	if s.met != nil {
		s.met.CollectFailures.WithLabelValues(source).Inc()
	}
}

// momentum returns the close-to-close percent change over the trailing
// momentum window, or nil when the history is too short.
func momentum(bars []model.PriceBar) *float64 {
	bars = model.FilterFinite(bars)
	if len(bars) < 2 {
		return nil
	}
	start := len(bars) - momentumWindow
	if start < 0 {
		start = 0
	}
	first := bars[start].Close
	last := bars[len(bars)-1].Close
	if first == 0 {
		return nil
	}
	return ptr((last - first) / first * 100)
}
