package provider

import (
	"context"
	"errors"
	"testing"
	"time"

	"cedears-engine/internal/model"
)

type flakyHistory struct {
	failures int
	calls    int
}

func (f *flakyHistory) GetPriceHistory(ctx context.Context, symbol string, days int) ([]model.PriceBar, error) {
	f.calls++
	if f.calls <= f.failures {
		return nil, errors.New("transient")
	}
	return []model.PriceBar{{Close: 100}}, nil
}

func TestWithRetry_RecoversFromTransientFailures(t *testing.T) {
	flaky := &flakyHistory{failures: 2}
	p := WithRetry(flaky, 10*time.Second)

	bars, err := p.GetPriceHistory(context.Background(), "AAPL", 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bars) != 1 || flaky.calls != 3 {
		t.Errorf("bars=%d calls=%d, want 1 bar after 3 calls", len(bars), flaky.calls)
	}
}

func TestWithRetry_GivesUpOnCancelledContext(t *testing.T) {
	flaky := &flakyHistory{failures: 1000}
	p := WithRetry(flaky, time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := p.GetPriceHistory(ctx, "AAPL", 30); err == nil {
		t.Error("expected an error for a cancelled context")
	}
}

func TestRangeParam_Buckets(t *testing.T) {
	tests := []struct {
		days int
		want string
	}{
		{7, "1mo"}, {30, "1mo"}, {90, "3mo"}, {120, "6mo"}, {365, "1y"}, {400, "2y"},
	}
	for _, tt := range tests {
		if got := rangeParam(tt.days); got != tt.want {
			t.Errorf("rangeParam(%d)=%s, want %s", tt.days, got, tt.want)
		}
	}
}
