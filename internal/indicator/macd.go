package indicator

import (
	"math"

	"cedears-engine/internal/model"
)

// macdSignalRatio approximates the signal line as a fixed fraction of
// the MACD line instead of a 9-period EMA of it. Kept for behavioral
// parity with the established scoring pipeline: a true EMA signal line
// would silently flip downstream signals.
const macdSignalRatio = 0.9

// MACD computes the MACD line (EMA12-EMA26), the approximated signal
// line, and the histogram, then classifies by sign agreement: line and
// histogram both positive is BUY, both negative is SELL.
func MACD(symbol string, bars []model.PriceBar) model.IndicatorResult {
	closes := model.Closes(bars)
	line := EMAValue(closes, 12) - EMAValue(closes, 26)
	signal := line * macdSignalRatio
	histogram := line - signal

	res := model.IndicatorResult{
		Symbol: symbol,
		Kind:   model.KindMACD,
		Value:  line,
		Signal: model.SignalHold,
		Meta: map[string]float64{
			"signal":    signal,
			"histogram": histogram,
		},
	}

	switch {
	case line > 0 && histogram > 0:
		res.Signal = model.SignalBuy
		res.Strength = math.Min(100, math.Abs(histogram)*1000)
	case line < 0 && histogram < 0:
		res.Signal = model.SignalSell
		res.Strength = math.Min(100, math.Abs(histogram)*1000)
	default:
		res.Signal = model.SignalHold
		res.Strength = math.Min(100, math.Abs(histogram)*500)
	}
	return res
}
