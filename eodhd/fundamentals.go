package eodhd

import (
	"context"
	"fmt"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/capscope"
	"github.com/shopspring/decimal"
)

/*
	https://eodhd.com/api/fundamentals/AAPL.US?api_token=demo&fmt=json
	{
	    "General": {
	        "Code": "AAPL",
	        "Name": "Apple Inc",
	        "Sector": "Technology",
	        "Industry": "Consumer Electronics",
	        ...
	    },
	    "SharesStats": {
	        "SharesOutstanding": 15204100096,
	        "SharesFloat": 15179999232,
	        ...
	    },
	    ...
	}
*/

// Metadata returns the name, sector and shares outstanding of a ticker.
func (c *Client) Metadata(ctx context.Context, ticker capscope.Ticker) (capscope.Metadata, error) {
	var jobj any
	if err := c.get(ctx, "fundamentals/"+symbol(ticker), nil, &jobj); err != nil {
		return capscope.Metadata{}, fmt.Errorf("cannot fetch fundamentals of %q: %w", ticker, err)
	}

	md := capscope.Metadata{
		Ticker: ticker,
		Name:   lookupString(jobj, "$.General.Name"),
		Sector: lookupString(jobj, "$.General.Sector"),
	}
	shares, err := lookupShares(jobj, "$.SharesStats.SharesOutstanding")
	if err != nil {
		return capscope.Metadata{}, fmt.Errorf("no shares outstanding for %q: %w", ticker, err)
	}
	md.Shares = shares
	return md, nil
}

// lookup evaluates a jsonpath expression and returns its first answer.
func lookup(jobj any, path string) (any, error) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return nil, err
	}
	// jsonpath may return a list of 1 answer or the answer itself.
	if jlist, ok := jval.([]any); ok {
		if len(jlist) == 0 {
			return nil, fmt.Errorf("%s: no value", path)
		}
		jval = jlist[0]
	}
	return jval, nil
}

// lookupString returns the trimmed string at path, or "" if there is none.
func lookupString(jobj any, path string) string {
	jval, err := lookup(jobj, path)
	if err != nil {
		return ""
	}
	s, _ := jval.(string)
	return strings.TrimSpace(s)
}

// lookupShares returns the share count at path. EODHD sends a number, but
// some listings carry it as a string.
func lookupShares(jobj any, path string) (int64, error) {
	jval, err := lookup(jobj, path)
	if err != nil {
		return 0, err
	}
	var d decimal.Decimal
	switch v := jval.(type) {
	case float64:
		d = decimal.NewFromFloat(v)
	case string:
		if d, err = decimal.NewFromString(strings.TrimSpace(v)); err != nil {
			return 0, fmt.Errorf("%s: invalid number %q: %w", path, v, err)
		}
	case nil:
		return 0, fmt.Errorf("%s: null", path)
	default:
		return 0, fmt.Errorf("%s: not a number: %v", path, jval)
	}
	return d.IntPart(), nil
}
