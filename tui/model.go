// Package tui is an interactive table view of market cap rankings.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/etnz/capscope"
	"github.com/etnz/capscope/date"
	"github.com/etnz/capscope/renderer"
)

// focus is the widget receiving key strokes.
type focus int

const (
	focusTable focus = iota
	focusSearch
	focusDate
)

// Model is the bubbletea model of the table view.
type Model struct {
	ctx       context.Context
	load      Loader
	exportDir string

	// Loader state.
	gen       int // generation of the current refresh
	loading   bool
	events    <-chan tea.Msg
	completed int
	total     int

	result *capscope.Result
	tabs   []tab
	active int
	rows   []capscope.Stock // filtered stocks of the active tab

	table     table.Model
	search    textinput.Model
	dateInput textinput.Model
	focus     focus

	status string
	failed bool // status is an error

	width, height int
}

// New returns a table view that loads the day 'on' when started. Exports are
// written in 'exportDir'.
func New(ctx context.Context, load Loader, on date.Date, exportDir string) Model {
	search := textinput.New()
	search.Prompt = "Search: "
	search.Placeholder = "ticker or name"
	search.CharLimit = 64

	dateInput := textinput.New()
	dateInput.Prompt = "Date: "
	dateInput.Placeholder = "YYYY-MM-DD"
	dateInput.CharLimit = 10
	dateInput.SetValue(on.String())

	t := table.New(
		table.WithColumns(columns(80)),
		table.WithFocused(true),
		table.WithHeight(20),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Bold(true).BorderStyle(lipgloss.NormalBorder()).BorderBottom(true)
	styles.Selected = styles.Selected.Foreground(lipgloss.Color("0")).Background(lipgloss.Color("6"))
	t.SetStyles(styles)

	return Model{
		ctx:       ctx,
		load:      load,
		exportDir: exportDir,
		table:     t,
		search:    search,
		dateInput: dateInput,
		status:    "Press r to load",
	}
}

// Run shows the table view until the user quits.
func Run(ctx context.Context, load Loader, on date.Date, exportDir string) error {
	_, err := tea.NewProgram(New(ctx, load, on, exportDir), tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}

// columns returns the table columns for a screen 'width' wide.
func columns(width int) []table.Column {
	name := width - 4 - 8 - 12 - 12 - 16 - 12
	if name < 16 {
		name = 16
	}
	return []table.Column{
		{Title: "#", Width: 4},
		{Title: "Ticker", Width: 8},
		{Title: "Name", Width: name},
		{Title: "Sector", Width: 12},
		{Title: "Close", Width: 12},
		{Title: "Market Cap", Width: 16},
	}
}

func (m Model) Init() tea.Cmd {
	return func() tea.Msg { return refreshMsg{} }
}

// refreshMsg asks for a refresh at the date of the date input.
type refreshMsg struct{}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.table.SetColumns(columns(msg.Width))
		m.table.SetWidth(msg.Width)
		// tabs, search, blank, status and help lines
		if h := msg.Height - 7; h > 3 {
			m.table.SetHeight(h)
		}
		return m, nil

	case refreshMsg:
		return m.refresh()

	case progressMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.completed, m.total = msg.completed, msg.total
		m.status = fmt.Sprintf("Fetching metadata %d/%d", msg.completed, msg.total)
		m.failed = false
		return m, next(m.events)

	case resultMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.loading = false
		m.result = msg.res
		m.tabs = newTabs(msg.res.Stocks)
		if m.active >= len(m.tabs) {
			m.active = 0
		}
		m.applyFilter()
		m.status = fmt.Sprintf("%d stocks, closes of %s", len(msg.res.Stocks), msg.res.ActualDate)
		if msg.res.ActualDate != msg.res.QueryDate {
			m.status += fmt.Sprintf(" (requested %s)", msg.res.QueryDate)
		}
		m.failed = false
		return m, nil

	case errMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.loading = false
		m.status = "Error: " + msg.err.Error()
		m.failed = true
		slog.Error("refresh failed", "error", msg.err)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	var cmd tea.Cmd
	switch m.focus {
	case focusSearch:
		switch msg.String() {
		case "esc", "enter":
			m.search.Blur()
			m.focus = focusTable
			m.table.Focus()
			return m, nil
		}
		m.search, cmd = m.search.Update(msg)
		m.applyFilter()
		return m, cmd

	case focusDate:
		switch msg.String() {
		case "esc":
			m.dateInput.Blur()
			m.focus = focusTable
			m.table.Focus()
			return m, nil
		case "enter":
			m.dateInput.Blur()
			m.focus = focusTable
			m.table.Focus()
			return m.refresh()
		}
		m.dateInput, cmd = m.dateInput.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "tab", "right", "l":
		m.selectTab(m.active + 1)
		return m, nil
	case "shift+tab", "left", "h":
		m.selectTab(m.active - 1)
		return m, nil
	case "/":
		m.focus = focusSearch
		m.table.Blur()
		return m, m.search.Focus()
	case "d":
		m.focus = focusDate
		m.table.Blur()
		return m, m.dateInput.Focus()
	case "r":
		return m.refresh()
	case "e":
		m.exportCurrent()
		return m, nil
	}
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// refresh starts loading the date of the date input, unless a load is running.
func (m Model) refresh() (tea.Model, tea.Cmd) {
	if m.loading {
		return m, nil
	}
	on, err := date.Parse(strings.TrimSpace(m.dateInput.Value()))
	if err != nil {
		m.status = fmt.Sprintf("Error: invalid date %q", m.dateInput.Value())
		m.failed = true
		return m, nil
	}
	m.gen++
	m.loading = true
	m.completed, m.total = 0, 0
	m.status = fmt.Sprintf("Loading %s...", on)
	m.failed = false
	slog.Info("refresh", "date", on)
	m.events = start(m.ctx, m.load, on, m.gen)
	return m, next(m.events)
}

// selectTab activates the tab 'i', wrapping around.
func (m *Model) selectTab(i int) {
	if len(m.tabs) == 0 {
		return
	}
	m.active = (i + len(m.tabs)) % len(m.tabs)
	m.applyFilter()
}

// applyFilter refreshes the table with the stocks of the active tab matching the search.
func (m *Model) applyFilter() {
	if len(m.tabs) == 0 {
		m.rows = nil
		m.table.SetRows(nil)
		return
	}
	m.rows = filter(m.tabs[m.active].stocks, m.search.Value())
	rows := make([]table.Row, len(m.rows))
	for i, s := range m.rows {
		rows[i] = table.Row{
			strconv.Itoa(i + 1),
			string(s.Ticker),
			s.Name,
			s.SectorCN,
			renderer.USD(s.Close),
			renderer.USD(s.MarketCapB) + "B",
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// exportCurrent writes the rows of the active tab and reports the outcome in the status line.
func (m *Model) exportCurrent() {
	if m.result == nil {
		m.status, m.failed = "Nothing to export", true
		return
	}
	path, err := export(m.exportDir, m.result.ActualDate, m.rows)
	if err != nil {
		slog.Error("export failed", "error", err)
		m.status, m.failed = "Export failed: "+err.Error(), true
		return
	}
	slog.Info("exported", "path", path, "stocks", len(m.rows))
	m.status, m.failed = fmt.Sprintf("Exported %d stocks to %s", len(m.rows), path), false
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("capscope") + " ")
	for i, t := range m.tabs {
		style := inactiveTabStyle
		if i == m.active {
			style = activeTabStyle
		}
		b.WriteString(style.Render(t.label()))
	}
	b.WriteString("\n")
	b.WriteString(m.search.View() + "   " + m.dateInput.View() + "\n")
	b.WriteString(m.table.View() + "\n")

	status := m.status
	if m.failed {
		status = errorStyle.Render(status)
	}
	b.WriteString(statusStyle.Render(status) + "\n")
	b.WriteString(helpStyle.Render("tab/←→ sector · / search · d date · r refresh · e export · q quit"))
	return b.String()
}
