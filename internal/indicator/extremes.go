package indicator

import (
	"math"

	"cedears-engine/internal/model"
)

// extremesWindow is the trailing bar count scanned for the yearly range.
const extremesWindow = 365

// Extremes scans the trailing year of bars for the 52-week high/low and
// classifies the current price by its distance to each extreme: near the
// low (<15% above it) is BUY, near the high (<5% below it) is SELL.
func Extremes(symbol string, bars []model.PriceBar) model.IndicatorResult {
	price := bars[len(bars)-1].Close

	start := len(bars) - extremesWindow
	if start < 0 {
		start = 0
	}
	yearHigh := math.Inf(-1)
	yearLow := math.Inf(1)
	for i := start; i < len(bars); i++ {
		if bars[i].High > yearHigh {
			yearHigh = bars[i].High
		}
		if bars[i].Low < yearLow {
			yearLow = bars[i].Low
		}
	}
	if math.IsInf(yearHigh, 0) || math.IsNaN(yearHigh) {
		yearHigh = price
	}
	if math.IsInf(yearLow, 0) || math.IsNaN(yearLow) {
		yearLow = price
	}

	distanceFromHigh := 0.0
	if yearHigh != 0 {
		distanceFromHigh = (yearHigh - price) / yearHigh * 100
	}
	distanceFromLow := 0.0
	if yearLow != 0 {
		distanceFromLow = (price - yearLow) / yearLow * 100
	}

	res := model.IndicatorResult{
		Symbol: symbol,
		Kind:   model.KindExtremes,
		Value:  yearHigh,
		Signal: model.SignalHold,
		Meta: map[string]float64{
			"year_low":           yearLow,
			"price":              price,
			"distance_from_high": distanceFromHigh,
			"distance_from_low":  distanceFromLow,
		},
	}

	switch {
	case distanceFromLow < 15:
		res.Signal = model.SignalBuy
		res.Strength = math.Max(0, 100-distanceFromLow*5)
	case distanceFromHigh < 5:
		res.Signal = model.SignalSell
		res.Strength = math.Max(0, 100-distanceFromHigh*10)
	default:
		res.Signal = model.SignalHold
		res.Strength = math.Min(distanceFromLow, distanceFromHigh) / 2
	}
	return res
}
