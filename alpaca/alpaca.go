// Package alpaca retrieves daily bars from the Alpaca market data API.
package alpaca

import (
	"context"

	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"
	"github.com/etnz/capscope"
	"github.com/etnz/capscope/date"
	"github.com/pkg/errors"
)

// Client is an Alpaca price provider. Closes are not adjusted.
type Client struct {
	md *marketdata.Client
}

// Options configure the Alpaca client.
type Options struct {
	APIKey    string
	APISecret string
	BaseURL   string // market data endpoint, the library default if empty
	Feed      string // "iex" or "sip", the subscription default if empty
}

// New returns an Alpaca market data client.
func New(opts Options) *Client {
	return &Client{md: marketdata.NewClient(marketdata.ClientOpts{
		APIKey:    opts.APIKey,
		APISecret: opts.APISecret,
		BaseURL:   opts.BaseURL,
		Feed:      marketdata.Feed(opts.Feed),
	})}
}

// Closes returns the daily close prices of 'tickers' between 'from' and 'to'
// included, in a single multi symbol request.
func (c *Client) Closes(ctx context.Context, tickers []capscope.Ticker, from, to date.Date) (map[capscope.Ticker]*capscope.PriceSeries, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	symbols := make([]string, len(tickers))
	for i, t := range tickers {
		symbols[i] = string(t)
	}
	bars, err := c.md.GetMultiBars(symbols, marketdata.GetBarsRequest{
		TimeFrame:  marketdata.OneDay,
		Adjustment: marketdata.Raw,
		Start:      from.MarketMidnight(),
		End:        to.MarketMidnight(), // daily bars are stamped at midnight, end is inclusive
	})
	if err != nil {
		return nil, errors.Wrapf(err, "cannot fetch alpaca bars between %s and %s", from, to)
	}
	return seriesOf(bars), nil
}

// seriesOf converts daily bars to price series. Daily bars are stamped at
// midnight New York time.
func seriesOf(bars map[string][]marketdata.Bar) map[capscope.Ticker]*capscope.PriceSeries {
	res := make(map[capscope.Ticker]*capscope.PriceSeries, len(bars))
	for sym, bs := range bars {
		if len(bs) == 0 {
			continue
		}
		s := new(capscope.PriceSeries)
		for _, b := range bs {
			s.Append(date.OfMarket(b.Timestamp), b.Close)
		}
		res[capscope.NormalizeTicker(sym)] = s
	}
	return res
}

var _ capscope.PriceProvider = (*Client)(nil)
