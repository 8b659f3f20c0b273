package model

import (
	"math"
	"time"
)

// PriceBar represents one daily OHLCV bar for a single instrument.
// Bars are ordered chronologically ascending for all calculations.
type PriceBar struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume int64     `json:"volume"`
}

// Finite reports whether all price fields of the bar are finite numbers.
func (b *PriceBar) Finite() bool {
	for _, v := range []float64{b.Open, b.High, b.Low, b.Close} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// FilterFinite returns the bars whose price fields are all finite,
// preserving order. Malformed provider rows are dropped before any
// indicator sees them.
func FilterFinite(bars []PriceBar) []PriceBar {
	out := bars[:0:0]
	for _, b := range bars {
		if b.Finite() {
			out = append(out, b)
		}
	}
	return out
}

// Closes extracts the close series from the given bars.
func Closes(bars []PriceBar) []float64 {
	closes := make([]float64, len(bars))
	for i := range bars {
		closes[i] = bars[i].Close
	}
	return closes
}
