// Package runner executes the daily indicator batch: it walks the
// active watchlist, fetches price history, computes the indicator set
// per symbol and persists it.
package runner

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"cedears-engine/internal/indicator"
	"cedears-engine/internal/metrics"
	"cedears-engine/internal/model"
)

// DefaultHistoryDays covers the 365-bar extremes window plus the
// longest moving average warmup.
const DefaultHistoryDays = 400

// defaultPace keeps one provider fetch per second when no limiter is
// injected.
const defaultPace = time.Second

// Deps wires the runner's collaborators. Source, Price and Store are
// required.
type Deps struct {
	Source  model.InstrumentSource
	Price   model.PriceHistory
	Store   model.IndicatorStore
	Logger  *slog.Logger
	Metrics *metrics.Metrics

	// Limiter paces provider fetches. Nil selects the default pace.
	Limiter *rate.Limiter

	// HistoryDays overrides the per-symbol fetch depth when positive.
	HistoryDays int
}

// Runner computes and persists indicator sets for the watchlist.
type Runner struct {
	source  model.InstrumentSource
	price   model.PriceHistory
	store   model.IndicatorStore
	log     *slog.Logger
	met     *metrics.Metrics
	limiter *rate.Limiter
	days    int
}

// New creates a Runner from its dependencies.
func New(deps Deps) *Runner {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Limiter == nil {
		deps.Limiter = rate.NewLimiter(rate.Every(defaultPace), 1)
	}
	if deps.HistoryDays <= 0 {
		deps.HistoryDays = DefaultHistoryDays
	}
	return &Runner{
		source:  deps.Source,
		price:   deps.Price,
		store:   deps.Store,
		log:     deps.Logger,
		met:     deps.Metrics,
		limiter: deps.Limiter,
		days:    deps.HistoryDays,
	}
}

// Run processes every active instrument once and returns how many
// symbols were fully processed. A per-symbol failure is logged and
// skipped; only listing the watchlist or a cancelled context aborts
// the run.
func (r *Runner) Run(ctx context.Context) (int, error) {
	instruments, err := r.source.ActiveInstruments(ctx)
	if err != nil {
		return 0, fmt.Errorf("list instruments: %w", err)
	}

	asOf := time.Now().UTC()
	processed := 0
	for _, inst := range instruments {
		if err := r.limiter.Wait(ctx); err != nil {
			return processed, err
		}
		ok, err := r.runOne(ctx, inst.Symbol, asOf)
		if err != nil {
			r.log.WarnContext(ctx, "symbol run failed", "symbol", inst.Symbol, "err", err)
			if r.met != nil {
				r.met.SymbolsFailed.Inc()
			}
			continue
		}
		if ok {
			processed++
		}
	}

	r.log.InfoContext(ctx, "batch run done",
		"watchlist", len(instruments), "processed", processed)
	return processed, nil
}

// runOne returns whether the symbol was fully processed. A false with
// a nil error means it was skipped for insufficient history.
func (r *Runner) runOne(ctx context.Context, symbol string, asOf time.Time) (bool, error) {
	bars, err := r.price.GetPriceHistory(ctx, symbol, r.days)
	if err != nil {
		return false, fmt.Errorf("price history: %w", err)
	}

	start := time.Now()
	set := indicator.Calculate(symbol, bars, asOf)
	if set == nil {
		r.log.InfoContext(ctx, "symbol skipped, insufficient history",
			"symbol", symbol, "bars", len(bars), "min", indicator.MinBars)
		if r.met != nil {
			r.met.SymbolsSkipped.Inc()
		}
		return false, nil
	}
	if r.met != nil {
		r.met.CalcDur.Observe(time.Since(start).Seconds())
	}

	commit := time.Now()
	if err := r.store.SaveIndicators(ctx, set); err != nil {
		return false, fmt.Errorf("save indicators: %w", err)
	}
	if r.met != nil {
		r.met.SQLiteCommitDur.Observe(time.Since(commit).Seconds())
		r.met.SymbolsProcessed.Inc()
	}
	return true, nil
}

// Cleanup deletes indicator rows older than the retention window and
// returns how many were removed.
func (r *Runner) Cleanup(ctx context.Context, retention time.Duration) (int64, error) {
	deleted, err := r.store.DeleteOlderThan(ctx, retention)
	if err != nil {
		return 0, fmt.Errorf("retention cleanup: %w", err)
	}
	if deleted > 0 {
		r.log.InfoContext(ctx, "retention cleanup done", "deleted", deleted)
		if r.met != nil {
			r.met.RetentionDeleted.Add(float64(deleted))
		}
	}
	return deleted, nil
}
