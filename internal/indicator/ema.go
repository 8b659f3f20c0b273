package indicator

import (
	"math"

	"cedears-engine/internal/model"
)

// EMAValue computes the recursive exponential average over the closes,
// multiplier 2/(period+1), seeded with the first close.
func EMAValue(closes []float64, period int) float64 {
	if len(closes) == 0 {
		return 0
	}
	multiplier := 2.0 / float64(period+1)
	ema := closes[0]
	for _, c := range closes[1:] {
		ema = c*multiplier + ema*(1-multiplier)
	}
	return ema
}

// EMA computes EMA(12) and EMA(26) and classifies their relative spread,
// (EMA12-EMA26)/EMA26 * 100: above +0.5% is BUY, below -0.5% is SELL.
func EMA(symbol string, bars []model.PriceBar) model.IndicatorResult {
	closes := model.Closes(bars)
	ema12 := EMAValue(closes, 12)
	ema26 := EMAValue(closes, 26)

	res := model.IndicatorResult{
		Symbol: symbol,
		Kind:   model.KindEMA,
		Value:  ema12,
		Signal: model.SignalHold,
		Meta:   map[string]float64{"ema26": ema26},
	}
	if ema26 == 0 {
		return res
	}

	spread := (ema12 - ema26) / ema26 * 100
	res.Meta["spread"] = spread

	switch {
	case spread > 0.5:
		res.Signal = model.SignalBuy
		res.Strength = math.Min(100, math.Abs(spread)*20)
	case spread < -0.5:
		res.Signal = model.SignalSell
		res.Strength = math.Min(100, math.Abs(spread)*20)
	default:
		res.Signal = model.SignalHold
		res.Strength = math.Min(100, math.Abs(spread)*10)
	}
	return res
}
