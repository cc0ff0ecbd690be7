// Package eodhd retrieves company fundamentals and end of day prices from
// EOD Historical Data (https://eodhd.com).
package eodhd

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/etnz/capscope"
)

// DefaultBaseURL is the root of the EODHD API.
const DefaultBaseURL = "https://eodhd.com/api"

// Client is an EODHD API client. It implements both capscope.MetadataProvider
// and capscope.PriceProvider.
type Client struct {
	APIKey  string
	BaseURL string       // DefaultBaseURL if empty
	HTTP    *http.Client // capscope.NewCachingClient() if nil
}

// New returns a client using the default endpoint and a daily disk cache.
func New(apiKey string) *Client {
	return &Client{
		APIKey:  apiKey,
		BaseURL: DefaultBaseURL,
		HTTP:    capscope.NewCachingClient(),
	}
}

// symbol returns the EODHD code of a US listed ticker.
//
// EODHD writes share classes with a dash: BRK.B is BRK-B.US.
func symbol(t capscope.Ticker) string {
	return strings.ReplaceAll(string(t), ".", "-") + ".US"
}

// get queries 'path' with the given parameters and decodes the JSON response into 'data'.
func (c *Client) get(ctx context.Context, path string, params url.Values, data any) error {
	base := c.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	client := c.HTTP
	if client == nil {
		client = capscope.NewCachingClient()
	}
	if params == nil {
		params = url.Values{}
	}
	params.Set("fmt", "json")
	params.Set("api_token", c.APIKey)
	addr := fmt.Sprintf("%s/%s?%s", strings.TrimSuffix(base, "/"), path, params.Encode())
	return capscope.GetJSON(ctx, client, addr, data)
}

var (
	_ capscope.MetadataProvider = (*Client)(nil)
	_ capscope.PriceProvider    = (*Client)(nil)
)
