package indicator

import "cedears-engine/internal/model"

// SMAValue computes the trailing simple mean of the last `period` closes.
// Falls back to the latest close when the history is shorter.
func SMAValue(closes []float64, period int) float64 {
	if len(closes) == 0 {
		return 0
	}
	if len(closes) < period {
		return closes[len(closes)-1]
	}
	sum := 0.0
	for i := len(closes) - period; i < len(closes); i++ {
		sum += closes[i]
	}
	return sum / float64(period)
}

// SMA computes the 20/50/200 trailing means and classifies the alignment.
//
// The signal policy is a tiered cascade evaluated in order:
// full alignment (price > SMA20 > SMA50 > SMA200, or fully inverted)
// scores 85, two-level alignment 60, price vs SMA20 alone 30.
// Any tie falls through to HOLD.
func SMA(symbol string, bars []model.PriceBar) model.IndicatorResult {
	closes := model.Closes(bars)
	price := closes[len(closes)-1]
	sma20 := SMAValue(closes, 20)
	sma50 := SMAValue(closes, 50)
	sma200 := SMAValue(closes, 200)

	res := model.IndicatorResult{
		Symbol: symbol,
		Kind:   model.KindSMA,
		Value:  sma20,
		Signal: model.SignalHold,
		Meta: map[string]float64{
			"sma50":  sma50,
			"sma200": sma200,
			"price":  price,
		},
	}

	switch {
	case price > sma20 && sma20 > sma50 && sma50 > sma200:
		res.Signal = model.SignalBuy
		res.Strength = 85
	case price < sma20 && sma20 < sma50 && sma50 < sma200:
		res.Signal = model.SignalSell
		res.Strength = 85
	case price > sma20 && sma20 > sma50:
		res.Signal = model.SignalBuy
		res.Strength = 60
	case price < sma20 && sma20 < sma50:
		res.Signal = model.SignalSell
		res.Strength = 60
	case price > sma20:
		res.Signal = model.SignalBuy
		res.Strength = 30
	case price < sma20:
		res.Signal = model.SignalSell
		res.Strength = 30
	}
	return res
}
