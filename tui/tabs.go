package tui

import (
	"fmt"
	"strings"

	"github.com/etnz/capscope"
)

// allTitle is the title of the tab listing every stock.
const allTitle = "全部"

// tab is a page of the table view.
type tab struct {
	title  string
	stocks []capscope.Stock // in descending market cap order
}

// newTabs returns the "all" tab followed by one tab per sector, ordered by
// the English sector name.
func newTabs(stocks []capscope.Stock) []tab {
	tabs := []tab{{title: allTitle, stocks: capscope.TopOverall(stocks, -1)}}
	groups := capscope.RankBySector(stocks, -1)
	for _, s := range capscope.Sectors(groups) {
		tabs = append(tabs, tab{title: capscope.LocalizeSector(s), stocks: groups[s]})
	}
	return tabs
}

// filter returns the stocks whose ticker or name contains 'query', ignoring case.
func filter(stocks []capscope.Stock, query string) []capscope.Stock {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return stocks
	}
	var res []capscope.Stock
	for _, s := range stocks {
		if strings.Contains(strings.ToLower(string(s.Ticker)), query) || strings.Contains(strings.ToLower(s.Name), query) {
			res = append(res, s)
		}
	}
	return res
}

func (t tab) label() string {
	return fmt.Sprintf("%s (%d)", t.title, len(t.stocks))
}
