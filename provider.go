package capscope

import (
	"context"

	"github.com/etnz/capscope/date"
)

// PriceSeries is the daily close prices of a single ticker.
type PriceSeries = date.History[float64]

// MetadataProvider retrieves descriptive data about a single ticker.
//
// Implementations must be safe for concurrent use: FetchMetadata calls
// Metadata from several goroutines.
type MetadataProvider interface {
	Metadata(ctx context.Context, ticker Ticker) (Metadata, error)
}

// PriceProvider retrieves daily close prices for a batch of tickers.
//
// The returned map may omit tickers the provider does not know. Series may
// contain dates outside of [from, to], they are ignored by the caller.
type PriceProvider interface {
	Closes(ctx context.Context, tickers []Ticker, from, to date.Date) (map[Ticker]*PriceSeries, error)
}
