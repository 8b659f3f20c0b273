package indicator

import (
	"math"
	"testing"
	"time"

	"cedears-engine/internal/model"
)

// ────────────────────────────────────────────────────────────
// Helpers
// ────────────────────────────────────────────────────────────

var testDay = time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC)

func barsFromCloses(closes ...float64) []model.PriceBar {
	bars := make([]model.PriceBar, len(closes))
	for i, c := range closes {
		bars[i] = model.PriceBar{
			Date: testDay.AddDate(0, 0, i),
			Open: c, High: c + 1, Low: c - 1, Close: c,
			Volume: 1000,
		}
	}
	return bars
}

func rampCloses(start, step float64, n int) []float64 {
	closes := make([]float64, n)
	for i := range closes {
		closes[i] = start + step*float64(i)
	}
	return closes
}

func assertClose(t *testing.T, label string, got, want, tol float64) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Errorf("%s: got %.6f, want %.6f (tol=%.6f, diff=%.6f)", label, got, want, tol, math.Abs(got-want))
	}
}

// ────────────────────────────────────────────────────────────
// RSI
// ────────────────────────────────────────────────────────────

func TestRSIValue_BoundedForAnySeries(t *testing.T) {
	series := [][]float64{
		rampCloses(100, 1, 60),   // steady gains
		rampCloses(100, -1, 60),  // steady losses
		{100, 105, 95, 110, 90, 115, 85, 120, 80, 125, 75, 130, 70, 135, 65, 140},
		rampCloses(50, 0, 30), // flat
	}
	for i, closes := range series {
		rsi := RSIValue(closes, 14)
		if rsi < 0 || rsi > 100 {
			t.Errorf("series %d: RSI=%.4f out of [0,100]", i, rsi)
		}
	}
}

func TestRSIValue_AllGainsApproaches100(t *testing.T) {
	// No losing day ever: avgLoss hits the floor and RSI pins at ~100.
	rsi := RSIValue(rampCloses(100, 2, 40), 14)
	if rsi < 99.999 || rsi > 100 {
		t.Errorf("all-gain RSI=%.6f, want ~100", rsi)
	}
}

func TestRSIValue_AllLossesNearZero(t *testing.T) {
	rsi := RSIValue(rampCloses(200, -2, 40), 14)
	if rsi > 0.001 || rsi < 0 {
		t.Errorf("all-loss RSI=%.6f, want ~0", rsi)
	}
}

func TestRSI_InsufficientDataNeutralDefault(t *testing.T) {
	// 10 closes < period+1: neutral default, never an error.
	res := RSI("AAPL", barsFromCloses(rampCloses(100, 1, 10)...), 14)
	if res.Value != 50.0 || res.Signal != model.SignalHold || res.Strength != 0 {
		t.Errorf("got value=%.1f signal=%s strength=%.1f, want 50/HOLD/0", res.Value, res.Signal, res.Strength)
	}
}

func TestRSISignal_InclusiveThresholds(t *testing.T) {
	tests := []struct {
		rsi      float64
		signal   model.Signal
		strength float64
	}{
		{30, model.SignalBuy, 0},   // exactly 30 is BUY
		{70, model.SignalSell, 0},  // exactly 70 is SELL
		{20, model.SignalBuy, 30},  // (30-20)*3
		{80, model.SignalSell, 30}, // (80-70)*3
		{0, model.SignalBuy, 90},
		{100, model.SignalSell, 90},
		{50, model.SignalHold, 0},
		{40, model.SignalHold, 5}, // |50-40|/2
		{60, model.SignalHold, 5},
	}
	for _, tt := range tests {
		sig, strength := rsiSignal(tt.rsi)
		if sig != tt.signal {
			t.Errorf("rsiSignal(%.0f): signal=%s, want %s", tt.rsi, sig, tt.signal)
		}
		assertClose(t, "rsiSignal strength", strength, tt.strength, 0.0001)
	}
}

// ────────────────────────────────────────────────────────────
// SMA
// ────────────────────────────────────────────────────────────

func TestSMAValue_HandCalculated(t *testing.T) {
	// Closes: 1,2,3,4,5 → SMA(3) = (3+4+5)/3 = 4.0
	assertClose(t, "SMA(3)", SMAValue([]float64{1, 2, 3, 4, 5}, 3), 4.0, 0.0001)
	// SMA(5) = (1+2+3+4+5)/5 = 3.0
	assertClose(t, "SMA(5)", SMAValue([]float64{1, 2, 3, 4, 5}, 5), 3.0, 0.0001)
}

func TestSMAValue_ShortHistoryFallsBackToLatestClose(t *testing.T) {
	assertClose(t, "SMA fallback", SMAValue([]float64{7, 9}, 20), 9.0, 0.0001)
}

func TestSMA_FullAlignment(t *testing.T) {
	// 250 strictly increasing closes: price > SMA20 > SMA50 > SMA200.
	res := SMA("AAPL", barsFromCloses(rampCloses(100, 1, 250)...))
	if res.Signal != model.SignalBuy || res.Strength != 85 {
		t.Errorf("uptrend: got %s/%.0f, want BUY/85", res.Signal, res.Strength)
	}

	// Fully inverted.
	res = SMA("AAPL", barsFromCloses(rampCloses(400, -1, 250)...))
	if res.Signal != model.SignalSell || res.Strength != 85 {
		t.Errorf("downtrend: got %s/%.0f, want SELL/85", res.Signal, res.Strength)
	}
}

func TestSMA_TwoLevelAlignment(t *testing.T) {
	// 60 increasing bars: SMA200 falls back to the latest close, so the
	// full cascade fails but price > SMA20 > SMA50 still holds.
	res := SMA("AAPL", barsFromCloses(rampCloses(100, 1, 60)...))
	if res.Signal != model.SignalBuy || res.Strength != 60 {
		t.Errorf("got %s/%.0f, want BUY/60", res.Signal, res.Strength)
	}
}

func TestSMA_PriceVsSMA20Only(t *testing.T) {
	// Long decline then a final spike: price > SMA20 but SMA20 < SMA50.
	closes := rampCloses(100, -1, 49)
	closes = append(closes, 100)
	res := SMA("AAPL", barsFromCloses(closes...))
	if res.Signal != model.SignalBuy || res.Strength != 30 {
		t.Errorf("got %s/%.0f, want BUY/30", res.Signal, res.Strength)
	}
}

func TestSMA_TieResolvesToHold(t *testing.T) {
	// Flat series: price == SMA20 == SMA50 == SMA200.
	res := SMA("AAPL", barsFromCloses(rampCloses(100, 0, 250)...))
	if res.Signal != model.SignalHold || res.Strength != 0 {
		t.Errorf("flat: got %s/%.0f, want HOLD/0", res.Signal, res.Strength)
	}
}

// ────────────────────────────────────────────────────────────
// EMA
// ────────────────────────────────────────────────────────────

func TestEMAValue_HandCalculated(t *testing.T) {
	// Single close seeds the average.
	assertClose(t, "EMA seed", EMAValue([]float64{10}, 12), 10.0, 0.0001)

	// Two closes, period 12: multiplier = 2/13.
	// EMA = 13*(2/13) + 10*(11/13) = 136/13 = 10.461538
	assertClose(t, "EMA(12) two closes", EMAValue([]float64{10, 13}, 12), 136.0/13.0, 0.0001)
}

func TestEMA_FlatSeriesHolds(t *testing.T) {
	res := EMA("AAPL", barsFromCloses(rampCloses(100, 0, 40)...))
	if res.Signal != model.SignalHold || res.Strength != 0 {
		t.Errorf("flat: got %s/%.2f, want HOLD/0", res.Signal, res.Strength)
	}
}

func TestEMA_UptrendBuys(t *testing.T) {
	res := EMA("AAPL", barsFromCloses(rampCloses(100, 2, 80)...))
	if res.Signal != model.SignalBuy {
		t.Errorf("uptrend: got %s, want BUY", res.Signal)
	}
	if res.Strength <= 0 || res.Strength > 100 {
		t.Errorf("strength %.2f out of (0,100]", res.Strength)
	}
}

// ────────────────────────────────────────────────────────────
// MACD
// ────────────────────────────────────────────────────────────

func TestMACD_HistogramIsTenthOfLine(t *testing.T) {
	// signal = line*0.9, so histogram = line - signal = line*0.1.
	res := MACD("AAPL", barsFromCloses(rampCloses(100, 2, 80)...))
	assertClose(t, "histogram", res.Meta["histogram"], res.Value*0.1, 1e-9)
	assertClose(t, "signal", res.Meta["signal"], res.Value*0.9, 1e-9)
}

func TestMACD_SignAgreement(t *testing.T) {
	up := MACD("AAPL", barsFromCloses(rampCloses(100, 2, 80)...))
	if up.Signal != model.SignalBuy {
		t.Errorf("uptrend: got %s, want BUY", up.Signal)
	}

	down := MACD("AAPL", barsFromCloses(rampCloses(300, -2, 80)...))
	if down.Signal != model.SignalSell {
		t.Errorf("downtrend: got %s, want SELL", down.Signal)
	}

	flat := MACD("AAPL", barsFromCloses(rampCloses(100, 0, 80)...))
	if flat.Signal != model.SignalHold || flat.Strength != 0 {
		t.Errorf("flat: got %s/%.2f, want HOLD/0", flat.Signal, flat.Strength)
	}
}

// ────────────────────────────────────────────────────────────
// Extremes
// ────────────────────────────────────────────────────────────

func TestExtremes_NearLowBuys(t *testing.T) {
	// Flat band: low 99, high 101, price 100.
	// distanceFromLow = (100-99)/99*100 = 1.0101% < 15 → BUY.
	res := Extremes("AAPL", barsFromCloses(rampCloses(100, 0, 30)...))
	if res.Signal != model.SignalBuy {
		t.Fatalf("got %s, want BUY", res.Signal)
	}
	assertClose(t, "strength", res.Strength, 100-(100.0-99.0)/99.0*100*5, 0.0001)
}

func TestExtremes_NearHighSells(t *testing.T) {
	// Early low of 49 keeps distanceFromLow large; price ends at the top.
	closes := append([]float64{50, 50, 50}, rampCloses(100, 0, 27)...)
	bars := barsFromCloses(closes...)
	res := Extremes("AAPL", bars)
	if res.Signal != model.SignalSell {
		t.Fatalf("got %s, want SELL (meta=%v)", res.Signal, res.Meta)
	}
	dHigh := (101.0 - 100.0) / 101.0 * 100
	assertClose(t, "strength", res.Strength, 100-dHigh*10, 0.0001)
}

func TestExtremes_MidRangeHolds(t *testing.T) {
	// Range 49..151 with price 100 in the middle.
	closes := append([]float64{50, 150}, rampCloses(100, 0, 28)...)
	res := Extremes("AAPL", barsFromCloses(closes...))
	if res.Signal != model.SignalHold {
		t.Fatalf("got %s, want HOLD (meta=%v)", res.Signal, res.Meta)
	}
	dHigh := (151.0 - 100.0) / 151.0 * 100
	dLow := (100.0 - 49.0) / 49.0 * 100
	assertClose(t, "strength", res.Strength, math.Min(dLow, dHigh)/2, 0.0001)
}
