package date

// Window is an inclusive range of calendar days.
type Window struct{ From, To Date }

// Lookback returns the window starting 'days' calendar days before 'on'
// and ending the day after 'on'.
//
// The extra day at the end makes sure 'on' itself is returned by providers
// that treat the upper bound as exclusive.
func Lookback(on Date, days int) Window {
	return Window{From: on.Add(-days), To: on.Add(1)}
}

// Contains return true date is included in the window (boundaries included)
func (w Window) Contains(d Date) bool { return !d.Before(w.From) && !d.After(w.To) }

// Days returns the number of calendar days in the window.
func (w Window) Days() int {
	if w.To.Before(w.From) {
		return 0
	}
	return int(w.To.time().Sub(w.From.time()).Hours()/24) + 1
}

func (w Window) String() string { return w.From.String() + ".." + w.To.String() }
