package predictor

import (
	"context"
	"sync"
	"time"

	"cedears-engine/internal/model"
)

const (
	// batchSize caps how many symbols run concurrently per batch.
	batchSize = 3

	// batchPause is the default pacing between batches, expressed as a
	// limiter rate so tests can swap in an unbounded limiter.
	batchPause = time.Second

	// Portfolio classification: a direction must exceed this share of
	// symbols to dominate the portfolio.
	dominanceRatio = 0.6
)

// AnalyzeMultipleSymbols runs the predictor over the symbols in paced
// batches. Deep analysis is forced off to bound cost. A symbol whose
// prediction fails is logged and omitted from the result map; the
// omission itself is the failure signal.
func (s *Service) AnalyzeMultipleSymbols(ctx context.Context, symbols []string, timeframe string, opts Options) (map[string]*model.TrendPrediction, error) {
	opts.DeepAnalysis = false

	out := make(map[string]*model.TrendPrediction, len(symbols))
	var mu sync.Mutex

	for start := 0; start < len(symbols); start += batchSize {
		if start > 0 {
			if err := s.limiter.Wait(ctx); err != nil {
				return out, err
			}
		}

		end := start + batchSize
		if end > len(symbols) {
			end = len(symbols)
		}

		var wg sync.WaitGroup
		for _, symbol := range symbols[start:end] {
			symbol := symbol
			wg.Add(1)
			go func() {
				defer wg.Done()
				tp, err := s.PredictTrend(ctx, symbol, timeframe, opts)
				if err != nil {
					s.log.WarnContext(ctx, "batch prediction failed",
						"symbol", symbol, "timeframe", timeframe, "err", err)
					return
				}
				mu.Lock()
				out[symbol] = tp
				mu.Unlock()
			}()
		}
		wg.Wait()
	}
	return out, nil
}

// AnalyzePortfolioTrends predicts every symbol and aggregates the
// results into a portfolio-level view.
func (s *Service) AnalyzePortfolioTrends(ctx context.Context, symbols []string, opts Options) (*model.PortfolioTrendAnalysis, error) {
	predictions, err := s.AnalyzeMultipleSymbols(ctx, symbols, DefaultTimeframe, opts)
	if err != nil {
		return nil, err
	}

	analysis := &model.PortfolioTrendAnalysis{
		Predictions: predictions,
		GeneratedAt: time.Now().UTC(),
	}

	confidenceSum := 0
	for _, symbol := range symbols {
		tp, ok := predictions[symbol]
		if !ok {
			continue
		}
		switch tp.Prediction.Direction {
		case model.DirBullish:
			analysis.BullishSymbols = append(analysis.BullishSymbols, symbol)
		case model.DirBearish:
			analysis.BearishSymbols = append(analysis.BearishSymbols, symbol)
		default:
			analysis.NeutralSymbols = append(analysis.NeutralSymbols, symbol)
		}
		confidenceSum += tp.Prediction.Confidence
	}

	total := len(predictions)
	analysis.OverallTrend = model.DirMixed
	if total > 0 {
		bullishRatio := float64(len(analysis.BullishSymbols)) / float64(total)
		bearishRatio := float64(len(analysis.BearishSymbols)) / float64(total)
		switch {
		case bullishRatio > dominanceRatio:
			analysis.OverallTrend = model.DirBullish
		case bearishRatio > dominanceRatio:
			analysis.OverallTrend = model.DirBearish
		}
		analysis.AvgConfidence = confidenceSum / total
	}
	return analysis, nil
}
