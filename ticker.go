package capscope

import "strings"

// Ticker is a stock symbol as listed on a US exchange (e.g. "AAPL", "BRK.B").
type Ticker string

// NormalizeTicker returns the canonical, upper case, form of a symbol.
func NormalizeTicker(s string) Ticker {
	return Ticker(strings.ToUpper(strings.TrimSpace(s)))
}

func (t Ticker) String() string { return string(t) }
