package runner

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"golang.org/x/time/rate"

	"cedears-engine/internal/indicator"
	"cedears-engine/internal/model"
)

type fakeSource struct {
	instruments []model.Instrument
	err         error
}

func (f *fakeSource) ActiveInstruments(ctx context.Context) ([]model.Instrument, error) {
	return f.instruments, f.err
}

// fakePrice serves a fixed bar count per symbol; unknown symbols error.
type fakePrice struct {
	barsBySymbol map[string]int
}

func (f *fakePrice) GetPriceHistory(ctx context.Context, symbol string, days int) ([]model.PriceBar, error) {
	n, ok := f.barsBySymbol[symbol]
	if !ok {
		return nil, errors.New("symbol not served")
	}
	bars := make([]model.PriceBar, n)
	day := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	for i := range bars {
		c := 100 + float64(i)*0.5
		bars[i] = model.PriceBar{
			Date: day.AddDate(0, 0, i),
			Open: c, High: c + 1, Low: c - 1, Close: c, Volume: 1000,
		}
	}
	return bars, nil
}

type fakeStore struct {
	mu      sync.Mutex
	saved   map[string]*model.CalculatedIndicatorSet
	saveErr error
	deleted int64
	delErr  error
}

func newFakeStore() *fakeStore {
	return &fakeStore{saved: map[string]*model.CalculatedIndicatorSet{}}
}

func (f *fakeStore) SaveIndicators(ctx context.Context, set *model.CalculatedIndicatorSet) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved[set.Symbol] = set
	return nil
}

func (f *fakeStore) LatestIndicators(ctx context.Context, symbol string) ([]model.IndicatorResult, error) {
	return nil, nil
}

func (f *fakeStore) DeleteOlderThan(ctx context.Context, retention time.Duration) (int64, error) {
	return f.deleted, f.delErr
}

func (f *fakeStore) Close() error { return nil }

func instruments(symbols ...string) []model.Instrument {
	out := make([]model.Instrument, len(symbols))
	for i, s := range symbols {
		out[i] = model.Instrument{Symbol: s, Active: true, Ratio: 10}
	}
	return out
}

func testRunner(src *fakeSource, price *fakePrice, store *fakeStore) *Runner {
	return New(Deps{
		Source:  src,
		Price:   price,
		Store:   store,
		Logger:  slog.New(slog.NewTextHandler(discard{}, nil)),
		Limiter: rate.NewLimiter(rate.Inf, 1),
	})
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

func TestRun_ProcessesWatchlist(t *testing.T) {
	store := newFakeStore()
	r := testRunner(
		&fakeSource{instruments: instruments("AAPL", "MSFT")},
		&fakePrice{barsBySymbol: map[string]int{"AAPL": 120, "MSFT": 120}},
		store,
	)

	processed, err := r.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if processed != 2 {
		t.Errorf("processed=%d, want 2", processed)
	}
	for _, s := range []string{"AAPL", "MSFT"} {
		set, ok := store.saved[s]
		if !ok {
			t.Errorf("no indicator set saved for %s", s)
			continue
		}
		if got := len(set.All()); got != 5 {
			t.Errorf("%s: saved %d results, want 5", s, got)
		}
	}
}

func TestRun_ShortHistorySkippedBatchContinues(t *testing.T) {
	store := newFakeStore()
	r := testRunner(
		&fakeSource{instruments: instruments("AAPL", "NEWIPO", "MSFT")},
		&fakePrice{barsBySymbol: map[string]int{
			"AAPL":   120,
			"NEWIPO": indicator.MinBars - 1,
			"MSFT":   120,
		}},
		store,
	)

	processed, err := r.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if processed != 2 {
		t.Errorf("processed=%d, want 2 (short-history symbol skipped)", processed)
	}
	if _, ok := store.saved["NEWIPO"]; ok {
		t.Error("indicator set saved for a symbol without enough history")
	}
}

func TestRun_ProviderFailureIsolated(t *testing.T) {
	store := newFakeStore()
	r := testRunner(
		&fakeSource{instruments: instruments("AAPL", "BROKEN", "MSFT")},
		&fakePrice{barsBySymbol: map[string]int{"AAPL": 120, "MSFT": 120}},
		store,
	)

	processed, err := r.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if processed != 2 {
		t.Errorf("processed=%d, want 2 (failed symbol isolated)", processed)
	}
}

func TestRun_SaveFailureIsolated(t *testing.T) {
	store := newFakeStore()
	store.saveErr = errors.New("disk full")
	r := testRunner(
		&fakeSource{instruments: instruments("AAPL")},
		&fakePrice{barsBySymbol: map[string]int{"AAPL": 120}},
		store,
	)

	processed, err := r.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if processed != 0 {
		t.Errorf("processed=%d, want 0", processed)
	}
}

func TestRun_SourceFailureAborts(t *testing.T) {
	r := testRunner(
		&fakeSource{err: errors.New("watchlist unavailable")},
		&fakePrice{},
		newFakeStore(),
	)

	if _, err := r.Run(context.Background()); err == nil {
		t.Error("want an error when the watchlist cannot be listed")
	}
}

func TestRun_CancelledContextStopsRun(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := testRunner(
		&fakeSource{instruments: instruments("AAPL")},
		&fakePrice{barsBySymbol: map[string]int{"AAPL": 120}},
		newFakeStore(),
	)

	if _, err := r.Run(ctx); err == nil {
		t.Error("want an error from the cancelled context")
	}
}

func TestCleanup(t *testing.T) {
	store := newFakeStore()
	store.deleted = 42
	r := testRunner(&fakeSource{}, &fakePrice{}, store)

	deleted, err := r.Cleanup(context.Background(), 90*24*time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	if deleted != 42 {
		t.Errorf("deleted=%d, want 42", deleted)
	}

	store.delErr = errors.New("db locked")
	if _, err := r.Cleanup(context.Background(), time.Hour); err == nil {
		t.Error("want the store error surfaced")
	}
}
