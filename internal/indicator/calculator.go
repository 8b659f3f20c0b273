package indicator

import (
	"time"

	"cedears-engine/internal/model"
)

// Calculate computes the full indicator set for a symbol from its daily
// bars. Non-finite rows are filtered first; if fewer than MinBars remain
// the calculation yields nil and the caller skips the symbol.
//
// asOf stamps every result so that two calls over the same series with
// the same timestamp are byte-identical.
func Calculate(symbol string, bars []model.PriceBar, asOf time.Time) *model.CalculatedIndicatorSet {
	bars = model.FilterFinite(bars)
	if len(bars) < MinBars {
		return nil
	}

	set := &model.CalculatedIndicatorSet{
		Symbol:   symbol,
		RSI:      RSI(symbol, bars, 14),
		SMA:      SMA(symbol, bars),
		EMA:      EMA(symbol, bars),
		MACD:     MACD(symbol, bars),
		Extremes: Extremes(symbol, bars),
		TS:       asOf,
	}
	set.RSI.TS = asOf
	set.SMA.TS = asOf
	set.EMA.TS = asOf
	set.MACD.TS = asOf
	set.Extremes.TS = asOf
	return set
}
