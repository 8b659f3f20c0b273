package predictor

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"cedears-engine/internal/metrics"
	"cedears-engine/internal/model"
)

// DefaultTimeframe is used when the caller does not name one.
const DefaultTimeframe = "1M"

// Options control a single prediction request.
type Options struct {
	UseCache         bool
	CacheTTL         time.Duration
	IncludeScenarios bool
	IncludeNews      bool
	IncludeSentiment bool
	IncludeEarnings  bool

	// DeepAnalysis requests the narrative analyzer pass on top of the
	// scored prediction. Always forced off in batch runs.
	DeepAnalysis bool
}

// DefaultOptions returns the stated defaults: everything on, 30m TTL.
func DefaultOptions() Options {
	return Options{
		UseCache:         true,
		CacheTTL:         30 * time.Minute,
		IncludeScenarios: true,
		IncludeNews:      true,
		IncludeSentiment: true,
		IncludeEarnings:  true,
		DeepAnalysis:     true,
	}
}

// Deps wires the service's collaborators. Price and Store are required;
// the rest may be nil and their inputs simply stay null.
type Deps struct {
	Price     model.PriceHistory
	Store     model.IndicatorStore
	Cache     model.PredictionCache
	News      model.NewsAnalyzer
	Sentiment model.SentimentAnalyzer
	Earnings  model.EarningsAnalyzer
	Logger    *slog.Logger
	Metrics   *metrics.Metrics

	// BatchLimiter paces multi-symbol runs. Nil selects the default of
	// one batch per second.
	BatchLimiter *rate.Limiter
}

// Service produces trend predictions for watchlist symbols.
// Stateless across calls except for the injected cache.
type Service struct {
	price     model.PriceHistory
	store     model.IndicatorStore
	cache     model.PredictionCache
	news      model.NewsAnalyzer
	sentiment model.SentimentAnalyzer
	earnings  model.EarningsAnalyzer
	log       *slog.Logger
	met       *metrics.Metrics
	limiter   *rate.Limiter

	sf singleflight.Group
}

// New creates a Service from its dependencies.
func New(deps Deps) *Service {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.BatchLimiter == nil {
		deps.BatchLimiter = rate.NewLimiter(rate.Every(batchPause), 1)
	}
	return &Service{
		price:     deps.Price,
		store:     deps.Store,
		cache:     deps.Cache,
		news:      deps.News,
		sentiment: deps.Sentiment,
		earnings:  deps.Earnings,
		log:       deps.Logger,
		met:       deps.Metrics,
		limiter:   deps.BatchLimiter,
	}
}

// PredictTrend produces the trend prediction for one symbol. With
// UseCache set, a fresh cache entry short-circuits the request;
// identical concurrent requests are collapsed through singleflight so
// the collaborators run once.
func (s *Service) PredictTrend(ctx context.Context, symbol, timeframe string, opts Options) (*model.TrendPrediction, error) {
	if symbol == "" {
		return nil, fmt.Errorf("predict: symbol required")
	}
	if timeframe == "" {
		timeframe = DefaultTimeframe
	}
	key := cacheKey(symbol, timeframe, opts)

	if opts.UseCache && s.cache != nil {
		cached, err := s.cache.Get(ctx, key)
		if err != nil {
			s.log.WarnContext(ctx, "cache read failed", "symbol", symbol, "err", err)
		}
		if cached != nil {
			if s.met != nil {
				s.met.CacheHits.Inc()
			}
			return cached, nil
		}
		if s.met != nil {
			s.met.CacheMisses.Inc()
		}
	}

	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		return s.predict(ctx, symbol, timeframe, opts, key)
	})
	if err != nil {
		return nil, err
	}
	return v.(*model.TrendPrediction), nil
}

// predict runs the full COLLECTING → SCORING → PREDICTING → CACHING
// pipeline for one symbol.
func (s *Service) predict(ctx context.Context, symbol, timeframe string, opts Options, key string) (*model.TrendPrediction, error) {
	start := time.Now()

	// COLLECTING: settle-all join, individual failures become nulls.
	in := s.collect(ctx, symbol, opts)

	// SCORING
	factors := model.FactorScores{
		Technical:   TechnicalScore(in.technical),
		Fundamental: FundamentalScore(in.earnings, in.priceChangePct),
		Sentiment:   SentimentScore(in.sentiment),
		News:        NewsScore(in.news),
	}

	// PREDICTING
	prediction, overall := Predict(factors)

	var scenarios []model.Scenario
	if opts.IncludeScenarios {
		scenarios = BuildScenarios(overall, prediction.Probability)
	}
	keyFactors := KeyFactors(factors)

	tp := &model.TrendPrediction{
		Symbol:     symbol,
		Timeframe:  timeframe,
		Prediction: prediction,
		Analysis: model.Analysis{
			Factors:      factors,
			OverallScore: overall,
			KeyFactors:   keyFactors,
			Risks:        Risks(keyFactors, scenarios),
			Catalysts:    Catalysts(keyFactors, scenarios),
		},
		Scenarios:   scenarios,
		LastUpdated: time.Now().UTC(),
	}

	if err := validate(tp); err != nil {
		// The only fatal failure in the pipeline: surfaced to the
		// caller with full request context.
		return nil, fmt.Errorf("aggregate %s/%s: %w", symbol, timeframe, err)
	}

	// CACHING: best-effort, a failure never fails the request.
	if opts.UseCache && s.cache != nil {
		if err := s.cache.Set(ctx, key, tp, opts.CacheTTL); err != nil {
			s.log.WarnContext(ctx, "cache write failed", "symbol", symbol, "err", err)
		}
	}

	if s.met != nil {
		s.met.PredictionsTotal.WithLabelValues(string(prediction.Direction)).Inc()
		s.met.PredictDur.Observe(time.Since(start).Seconds())
	}
	s.log.InfoContext(ctx, "prediction done",
		"symbol", symbol,
		"timeframe", timeframe,
		"direction", prediction.Direction,
		"confidence", prediction.Confidence,
		"overall", overall,
	)
	return tp, nil
}

// validate enforces the output invariants. A violation means the
// scoring pipeline itself misbehaved, which is fatal to the request.
func validate(tp *model.TrendPrediction) error {
	p := tp.Prediction.Probability
	if p.Bullish+p.Bearish+p.Sideways != 100 {
		return fmt.Errorf("probabilities sum to %d, want 100", p.Bullish+p.Bearish+p.Sideways)
	}
	if tp.Prediction.Confidence < 0 || tp.Prediction.Confidence > confidenceCap {
		return fmt.Errorf("confidence %d out of [0,%d]", tp.Prediction.Confidence, confidenceCap)
	}
	if tp.Analysis.OverallScore < -100 || tp.Analysis.OverallScore > 100 {
		return fmt.Errorf("overall score %.2f out of [-100,100]", tp.Analysis.OverallScore)
	}
	return nil
}

// cacheKey builds the cache key from everything that changes the output.
func cacheKey(symbol, timeframe string, opts Options) string {
	flags := [5]byte{'0', '0', '0', '0', '0'}
	if opts.IncludeScenarios {
		flags[0] = '1'
	}
	if opts.IncludeNews {
		flags[1] = '1'
	}
	if opts.IncludeSentiment {
		flags[2] = '1'
	}
	if opts.IncludeEarnings {
		flags[3] = '1'
	}
	if opts.DeepAnalysis {
		flags[4] = '1'
	}
	return "trend:" + symbol + ":" + timeframe + ":" + string(flags[:])
}
