// Package capscope ranks US equities by market capitalization on a given day.
//
// The universe is the union of the S&P 500 and the Nasdaq-100 membership
// lists. For every ticker in it, capscope retrieves the company name, sector
// and shares outstanding from a metadata provider, then the close price of
// the requested day from a price provider, and computes:
//
//	market_cap = close × shares
//
// The requested day is resolved to the nearest trading day on or before it:
// weekends and holidays are transparently replaced by the previous session.
//
// The pipeline is linear and every stage tolerates partial failures:
//   - Universe: LoadUniverse reads the membership files of the data folder.
//   - Metadata: FetchMetadata queries the provider concurrently, dropping
//     tickers that fail or have no shares outstanding.
//   - Prices: FetchPrices retrieves a short window of closes in a single batch
//     and resolves the trading day.
//   - Computation: ComputeMarketCaps joins both and sorts by market cap.
//   - Ranking: TopOverall and RankBySector truncate the result.
//
// Pipeline ties these stages together; it is shared by the `capscope` command
// line tool and its interactive table view.
package capscope
