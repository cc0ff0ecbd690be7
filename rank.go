package capscope

import (
	"maps"
	"slices"
)

// DefaultTopN is the default number of stocks kept per ranking.
const DefaultTopN = 100

// top returns the first n stocks. A negative n means no limit.
func top(stocks []Stock, n int) []Stock {
	if n < 0 || n >= len(stocks) {
		return stocks
	}
	return stocks[:n]
}

// TopOverall returns the n largest stocks by market cap, in descending order.
//
// The input is not modified.
func TopOverall(stocks []Stock, n int) []Stock {
	sorted := slices.Clone(stocks)
	sortByMarketCap(sorted)
	return top(sorted, n)
}

// RankBySector groups stocks by sector and keeps the n largest of each group,
// in descending market cap order.
//
// Groups are keyed by the provider's (English) sector label.
func RankBySector(stocks []Stock, n int) map[string][]Stock {
	groups := make(map[string][]Stock)
	for _, s := range stocks {
		groups[s.Sector] = append(groups[s.Sector], s)
	}
	for sector, members := range groups {
		sortByMarketCap(members)
		groups[sector] = top(members, n)
	}
	return groups
}

// Sectors returns the sorted sector names of a grouping.
func Sectors(groups map[string][]Stock) []string {
	return slices.Sorted(maps.Keys(groups))
}
