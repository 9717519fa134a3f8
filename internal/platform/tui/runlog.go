package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-woods/internal/config"
	"github.com/vovakirdan/tui-woods/internal/games/woods"
	"github.com/vovakirdan/tui-woods/internal/storage"
)

// Run log layout constants
const (
	maxRuns      = 100 // max runs to load per tab
	runLogChrome = 10  // rows used by title, tabs, summary and help
)

// RunLogKeyMap defines the key bindings for the run log.
type RunLogKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	NextTab key.Binding
	PrevTab key.Binding
	Back    key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k RunLogKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextTab, k.PrevTab, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k RunLogKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextTab, k.PrevTab},
		{k.Back, k.Quit},
	}
}

// DefaultRunLogKeyMap returns default key bindings.
func DefaultRunLogKeyMap() RunLogKeyMap {
	return RunLogKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next level"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev level"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// runLogTab filters the log to one game id; the empty id shows every run.
type runLogTab struct {
	gameID string
	title  string
}

func runLogTabs() []runLogTab {
	tabs := []runLogTab{{title: "All"}}
	for _, t := range config.AllTiers() {
		tabs = append(tabs, runLogTab{gameID: t.ID(), title: t.Title()})
	}
	return tabs
}

// RunLogModel is the Bubble Tea model for the run log screen.
type RunLogModel struct {
	tabs      []runLogTab
	tab       int
	store     *storage.Store
	runs      []storage.RunEntry
	summary   string
	table     table.Model
	help      help.Model
	keys      RunLogKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewRunLogModel creates a run log screen over store; store may be nil.
func NewRunLogModel(store *storage.Store, width, height int) RunLogModel {
	h := help.New()
	h.ShowAll = false
	h.Width = width

	m := RunLogModel{
		tabs:   runLogTabs(),
		store:  store,
		keys:   DefaultRunLogKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.load()
	return m
}

// createTable creates a new table with appropriate columns.
func (m *RunLogModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 5},
		{Title: "Time", Width: 9},
		{Title: "Level", Width: 11},
		{Title: "Players", Width: 7},
		{Title: "Grid", Width: 6},
		{Title: "Wandering", Width: 11},
		{Title: "Moves", Width: 6},
		{Title: "When", Width: 8},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-runLogChrome, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("22")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// load reads the runs and protocol summary for the current tab.
func (m *RunLogModel) load() {
	m.runs = nil
	m.summary = ""
	if m.store != nil {
		if runs, err := m.store.FastestRuns(m.tabs[m.tab].gameID, maxRuns); err == nil {
			m.runs = runs
		}
		if stats, err := m.store.SummaryByProtocol(); err == nil {
			m.summary = formatProtocolSummary(stats)
		}
	}
	m.updateTableRows()
}

// updateTableRows updates the table with current runs.
func (m *RunLogModel) updateTableRows() {
	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		level := r.GameID
		if tier, err := config.ParseTier(r.GameID); err == nil {
			level = tier.Title()
		}
		protocol := r.Protocol
		if p, err := woods.ParseProtocol(r.Protocol); err == nil {
			protocol = p.Label()
		}
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			woods.FormatClock(r.Elapsed),
			level,
			fmt.Sprintf("%d", r.Players),
			fmt.Sprintf("%dx%d", r.GridW, r.GridH),
			protocol,
			fmt.Sprintf("%d", r.TotalMoves()),
			r.CreatedAt.Format("15:04:05"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// formatProtocolSummary renders one line per protocol, sorted by name.
func formatProtocolSummary(stats map[string]*storage.ProtocolStats) string {
	names := make([]string, 0, len(stats))
	for name := range stats {
		names = append(names, name)
	}
	sort.Strings(names)

	lines := make([]string, 0, len(names))
	for _, name := range names {
		s := stats[name]
		label := name
		if p, err := woods.ParseProtocol(name); err == nil {
			label = p.Label()
		}
		lines = append(lines, fmt.Sprintf("%-11s %3d runs  fastest %s  avg %s  avg moves %.1f",
			label, s.Runs, woods.FormatClock(s.Fastest), woods.FormatClock(s.AvgTime), s.AvgMoves))
	}
	return strings.Join(lines, "\n")
}

// Init initializes the run log model.
func (m RunLogModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the run log.
func (m RunLogModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, nil

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, nil

		case key.Matches(msg, m.keys.NextTab):
			m.tab = (m.tab + 1) % len(m.tabs)
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.PrevTab):
			m.tab = (m.tab + len(m.tabs) - 1) % len(m.tabs)
			m.load()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the run log.
func (m RunLogModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("RUN LOG - FASTEST FINDS"), m.width))
	b.WriteString("\n\n")

	tabStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("22")).
		Padding(0, 1)
	tabs := make([]string, len(m.tabs))
	for i, t := range m.tabs {
		if i == m.tab {
			tabs[i] = activeTabStyle.Render(t.title)
		} else {
			tabs[i] = tabStyle.Render(t.title)
		}
	}
	b.WriteString(centerText(lipgloss.JoinHorizontal(lipgloss.Top, tabs...), m.width))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(tableStyle.Render(m.renderTableContent()))
	b.WriteString("\n")

	if m.summary != "" {
		summaryStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
		b.WriteString(summaryStyle.Render(m.summary))
		b.WriteString("\n")
	}

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderTableContent renders the table or empty message.
func (m RunLogModel) renderTableContent() string {
	if len(m.runs) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No runs logged yet.\nFinish a run to see it here!")
	}
	return m.table.View()
}

// Runs returns the entries shown in the current tab.
func (m RunLogModel) Runs() []storage.RunEntry {
	return m.runs
}

// IsGoingBack returns true if the user wants to go back to the menu.
func (m RunLogModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if the user wants to quit entirely.
func (m RunLogModel) IsQuitting() bool {
	return m.quitting
}
