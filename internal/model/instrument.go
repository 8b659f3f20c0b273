package model

// Instrument represents one CEDEAR on the watchlist.
type Instrument struct {
	Symbol           string  `json:"symbol"`            // local ticker, e.g. "AAPL"
	UnderlyingSymbol string  `json:"underlying_symbol"` // foreign listing, e.g. "AAPL"
	Name             string  `json:"name"`
	Sector           string  `json:"sector"`
	Ratio            float64 `json:"ratio"` // CEDEARs per underlying share
	Active           bool    `json:"active"`
}
