package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/etnz/capscope"
	"github.com/etnz/capscope/date"
)

// Loader computes the market caps of the day 'on', reporting progress as it goes.
type Loader func(ctx context.Context, on date.Date, progress capscope.ProgressFunc) (*capscope.Result, error)

// Messages sent by the background loader. gen identifies the refresh they
// belong to.
type (
	progressMsg struct {
		gen              int
		completed, total int
	}
	resultMsg struct {
		gen int
		res *capscope.Result
	}
	errMsg struct {
		gen int
		err error
	}
)

// start runs the loader in its own goroutine. The returned channel receives
// progress messages then exactly one result or error message, and is closed.
func start(ctx context.Context, load Loader, on date.Date, gen int) <-chan tea.Msg {
	events := make(chan tea.Msg, 64)
	go func() {
		defer close(events)
		res, err := load(ctx, on, func(completed, total int) {
			// Progress is best effort: never block the pipeline on a slow screen.
			select {
			case events <- progressMsg{gen: gen, completed: completed, total: total}:
			default:
			}
		})
		if err != nil {
			events <- errMsg{gen: gen, err: err}
			return
		}
		events <- resultMsg{gen: gen, res: res}
	}()
	return events
}

// next waits for the next loader message.
func next(events <-chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-events
		if !ok {
			return nil
		}
		return msg
	}
}
