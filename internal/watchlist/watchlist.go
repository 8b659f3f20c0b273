// Package watchlist provides the static, config-driven instrument source.
package watchlist

import (
	"context"

	"cedears-engine/internal/model"
)

// ratios maps common CEDEARs to their conversion ratio (CEDEARs per
// underlying share). Unknown symbols default to 1.
var ratios = map[string]float64{
	"AAPL":  10,
	"MSFT":  15,
	"GOOGL": 29,
	"AMZN":  72,
	"NVDA":  24,
	"META":  24,
	"TSLA":  15,
	"KO":    5,
	"MELI":  60,
	"YPF":   1,
	"GGAL":  1,
}

// Static serves a fixed instrument list built from configured symbols.
type Static struct {
	instruments []model.Instrument
}

// NewStatic builds a Static source from the configured symbols.
func NewStatic(symbols []string) *Static {
	instruments := make([]model.Instrument, 0, len(symbols))
	for _, s := range symbols {
		ratio, ok := ratios[s]
		if !ok {
			ratio = 1
		}
		instruments = append(instruments, model.Instrument{
			Symbol:           s,
			UnderlyingSymbol: s,
			Ratio:            ratio,
			Active:           true,
		})
	}
	return &Static{instruments: instruments}
}

// ActiveInstruments returns the configured instruments.
func (s *Static) ActiveInstruments(ctx context.Context) ([]model.Instrument, error) {
	out := make([]model.Instrument, 0, len(s.instruments))
	for _, inst := range s.instruments {
		if inst.Active {
			out = append(out, inst)
		}
	}
	return out, nil
}
