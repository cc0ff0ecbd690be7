package date

import (
	"time"
	_ "time/tzdata" // so that the market location exists on any host
)

// Market is the location of US exchanges.
var Market = mustLoad("America/New_York")

func mustLoad(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

// OfMarket returns the trading session date of t, in the US exchanges' time zone.
func OfMarket(t time.Time) Date { return Of(t.In(Market)) }

// MarketMidnight returns midnight of d in the US exchanges' time zone.
func (d Date) MarketMidnight() time.Time { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, Market) }
