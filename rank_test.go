package capscope

import (
	"fmt"
	"slices"
	"testing"
)

// stocksOf returns n stocks in 'sector' with market caps 1..n, in ascending order.
func stocksOf(sector string, n int) []Stock {
	var res []Stock
	for i := 1; i <= n; i++ {
		md := Metadata{Ticker: Ticker(fmt.Sprintf("%s%03d", sector[:1], i)), Sector: sector, Shares: int64(i)}
		res = append(res, NewStock(md, 1))
	}
	return res
}

func isDescending(stocks []Stock) bool {
	return slices.IsSortedFunc(stocks, func(a, b Stock) int { return b.MarketCap.Cmp(a.MarketCap) })
}

func TestTopOverall(t *testing.T) {
	stocks := stocksOf("Technology", 5)
	testCases := []struct {
		n    int
		want []Ticker
	}{
		{3, []Ticker{"T005", "T004", "T003"}},
		{10, []Ticker{"T005", "T004", "T003", "T002", "T001"}},
		{-1, []Ticker{"T005", "T004", "T003", "T002", "T001"}},
		{0, []Ticker{}},
	}
	for _, tc := range testCases {
		got := tickers(TopOverall(stocks, tc.n))
		if !slices.Equal(got, tc.want) {
			t.Errorf("TopOverall(%d) = %v want %v", tc.n, got, tc.want)
		}
	}
	// Input is left untouched.
	if stocks[0].Ticker != "T001" {
		t.Errorf("TopOverall() modified its input: %v", tickers(stocks))
	}
}

func TestRankBySector(t *testing.T) {
	stocks := append(stocksOf("Technology", 150), stocksOf("Energy", 3)...)

	groups := RankBySector(stocks, DefaultTopN)

	if got, want := Sectors(groups), []string{"Energy", "Technology"}; !slices.Equal(got, want) {
		t.Errorf("Sectors() = %v want %v", got, want)
	}
	tech := groups["Technology"]
	if len(tech) != 100 {
		t.Fatalf("RankBySector()[Technology] has %d stocks want 100", len(tech))
	}
	if !isDescending(tech) {
		t.Errorf("RankBySector()[Technology] is not in descending market cap order")
	}
	if tech[0].Ticker != "T150" || tech[99].Ticker != "T051" {
		t.Errorf("RankBySector()[Technology] = %v..%v want T150..T051", tech[0].Ticker, tech[99].Ticker)
	}
	for _, s := range tech {
		if s.Sector != "Technology" {
			t.Errorf("RankBySector()[Technology] contains %v of sector %q", s.Ticker, s.Sector)
		}
	}
	if got := tickers(groups["Energy"]); !slices.Equal(got, []Ticker{"E003", "E002", "E001"}) {
		t.Errorf("RankBySector()[Energy] = %v want [E003 E002 E001]", got)
	}
}
