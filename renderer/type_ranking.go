package renderer

import (
	"fmt"
	"strings"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/etnz/capscope"
	"github.com/shopspring/decimal"
)

// Ranking is the data of a ranking report.
type Ranking struct {
	QueryDate   string
	ActualDate  string
	Substituted bool // true if the closes are from a trading day before QueryDate
	GeneratedAt string
	TotalStocks int
	Groups      []Group
}

// Group is a titled table of the ranking.
type Group struct {
	Title string
	Rows  []Row
}

// Row is a single stock, with markdown ready cells.
type Row struct {
	Rank      int
	Ticker    string
	Name      string
	Sector    string
	Close     string
	MarketCap string
}

// NewRanking prepares the report of a pipeline result.
//
// Without 'sector' the report has the overall ranking followed by one table
// per sector. Otherwise it only has the table of that sector. Each table keeps
// the 'n' largest stocks, all of them if n is negative.
func NewRanking(res *capscope.Result, sector string, n int, now time.Time) *Ranking {
	r := &Ranking{
		QueryDate:   res.QueryDate.String(),
		ActualDate:  res.ActualDate.String(),
		Substituted: res.QueryDate != res.ActualDate,
		GeneratedAt: now.UTC().Format(time.RFC3339),
		TotalStocks: len(res.Stocks),
	}
	groups := capscope.RankBySector(res.Stocks, n)
	if sector != "" {
		r.Groups = append(r.Groups, newGroup(sectorTitle(sector), groups[sector]))
		return r
	}
	title := "All Sectors"
	if n >= 0 {
		title = fmt.Sprintf("Top %d", n)
	}
	r.Groups = append(r.Groups, newGroup(title, capscope.TopOverall(res.Stocks, n)))
	for _, s := range capscope.Sectors(groups) {
		r.Groups = append(r.Groups, newGroup(sectorTitle(s), groups[s]))
	}
	return r
}

func sectorTitle(sector string) string {
	return fmt.Sprintf("%s (%s)", capscope.LocalizeSector(sector), sector)
}

func newGroup(title string, stocks []capscope.Stock) Group {
	g := Group{Title: title}
	for i, s := range stocks {
		g.Rows = append(g.Rows, Row{
			Rank:      i + 1,
			Ticker:    cell(string(s.Ticker)),
			Name:      cell(s.Name),
			Sector:    cell(s.SectorCN),
			Close:     USD(s.Close),
			MarketCap: USD(s.MarketCapB) + "B",
		})
	}
	return g
}

// USD formats an amount of dollars, rounded to the cent.
func USD(amount decimal.Decimal) string {
	return money.New(amount.Shift(2).Round(0).IntPart(), money.USD).Display()
}

// cell escapes a value for a markdown table cell.
func cell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.Join(strings.Fields(s), " ")
}
