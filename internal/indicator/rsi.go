package indicator

import (
	"math"

	"cedears-engine/internal/model"
)

// rsiLossFloor substitutes for a zero average loss so the ratio stays
// finite; it forces RSI toward 100 on an all-gain series.
const rsiLossFloor = 1e-10

// RSIValue computes the Wilder-smoothed RSI over the close series.
// Requires at least period+1 closes; returns the neutral 50.0 otherwise.
func RSIValue(closes []float64, period int) float64 {
	if period <= 0 || len(closes) < period+1 {
		return 50.0
	}

	// Seed: simple mean of the first `period` deltas, gains and losses
	// separated (losses kept as positive magnitudes).
	var avgGain, avgLoss float64
	for i := 1; i <= period; i++ {
		delta := closes[i] - closes[i-1]
		if delta > 0 {
			avgGain += delta
		} else {
			avgLoss -= delta
		}
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)

	// Wilder smoothing: avg = avg*(period-1)/period + delta/period
	for i := period + 1; i < len(closes); i++ {
		delta := closes[i] - closes[i-1]
		gain, loss := 0.0, 0.0
		if delta > 0 {
			gain = delta
		} else {
			loss = -delta
		}
		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
	}

	if avgLoss == 0 {
		avgLoss = rsiLossFloor
	}
	rs := avgGain / avgLoss
	return 100.0 - 100.0/(1.0+rs)
}

// RSI computes RSI(period) and classifies it.
// Thresholds are inclusive: exactly 30 is BUY, exactly 70 is SELL.
func RSI(symbol string, bars []model.PriceBar, period int) model.IndicatorResult {
	res := model.IndicatorResult{
		Symbol: symbol,
		Kind:   model.KindRSI,
		Value:  50.0,
		Signal: model.SignalHold,
	}
	if len(bars) < period+1 {
		return res // neutral default under insufficient data
	}

	rsi := RSIValue(model.Closes(bars), period)
	res.Value = rsi
	res.Meta = map[string]float64{"period": float64(period)}
	res.Signal, res.Strength = rsiSignal(rsi)
	return res
}

// rsiSignal classifies an RSI level. Both thresholds are inclusive.
func rsiSignal(rsi float64) (model.Signal, float64) {
	switch {
	case rsi <= 30:
		return model.SignalBuy, clamp((30-rsi)*3, 0, 100)
	case rsi >= 70:
		return model.SignalSell, clamp((rsi-70)*3, 0, 100)
	default:
		return model.SignalHold, math.Abs(50-rsi) / 2
	}
}
