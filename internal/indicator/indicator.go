// Package indicator computes technical indicators over daily price bars.
//
// Every calculator is a pure function: identical input bars produce
// byte-identical results. Each one emits a BUY/SELL/HOLD signal with a
// strength in [0,100] alongside its raw values.
package indicator

// MinBars is the minimum bar count for a full indicator set.
// Below this the calculation yields no result and the symbol is skipped.
const MinBars = 26

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
