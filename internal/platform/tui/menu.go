package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-woods/internal/config"
	"github.com/vovakirdan/tui-woods/internal/core"
)

// Setup menu rows, top to bottom.
const (
	rowTier = iota
	rowPlayers
	rowWidth
	rowHeight
	rowProtocol
	rowStart
	rowRunLog
	rowQuit
	rowCount
)

var (
	menuTitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	menuCursorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuDisabledStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	menuErrorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	menuHintStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// MenuModel is the Bubble Tea model for the run setup menu.
// It never quits the program itself; the owner checks Chosen, WantsRunLog
// and IsQuitting after each update.
type MenuModel struct {
	setup       core.Setup // choices as entered, before the tier preset
	limits      config.Limits
	cursor      int
	width       int
	height      int
	keyMapper   *KeyMapper
	status      string
	err         error
	chosen      *core.Setup
	wantsRunLog bool
	quitting    bool
}

// NewMenuModel creates a setup menu starting from setup.
func NewMenuModel(setup core.Setup, limits config.Limits, width, height int) MenuModel {
	if !config.Tier(setup.Tier).Valid() {
		setup.Tier = int(config.TierK2)
	}
	return MenuModel{
		setup:     setup,
		limits:    limits,
		cursor:    rowTier,
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true

	case MenuActionUp:
		m.cursor = m.nextRow(-1)

	case MenuActionDown:
		m.cursor = m.nextRow(1)

	case MenuActionLeft:
		m.adjust(-1)

	case MenuActionRight:
		m.adjust(1)

	case MenuActionRunLog:
		m.wantsRunLog = true

	case MenuActionSelect:
		switch m.cursor {
		case rowRunLog:
			m.wantsRunLog = true
		case rowQuit:
			m.quitting = true
		default:
			s := m.Effective()
			if err := config.ValidateSetup(s, m.limits); err != nil {
				m.err = err
				return m, nil
			}
			m.err = nil
			m.chosen = &s
		}
	}

	return m, nil
}

// nextRow moves the cursor by step, skipping rows the tier fixes.
func (m MenuModel) nextRow(step int) int {
	row := m.cursor
	for range rowCount {
		row += step
		if row < 0 || row >= rowCount {
			return m.cursor
		}
		if m.enabled(row) {
			return row
		}
	}
	return m.cursor
}

func (m MenuModel) enabled(row int) bool {
	tier := config.Tier(m.setup.Tier)
	switch row {
	case rowPlayers:
		return tier.ChoosesPlayers()
	case rowWidth, rowHeight:
		return tier.ChoosesGrid()
	case rowProtocol:
		return tier.ChoosesProtocol()
	}
	return true
}

// adjust changes the value on the cursor row by delta, clamped to the limits.
func (m *MenuModel) adjust(delta int) {
	switch m.cursor {
	case rowTier:
		tiers := config.AllTiers()
		i := core.Clamp(m.setup.Tier-1+delta, 0, len(tiers)-1)
		m.setup.Tier = int(tiers[i])
	case rowPlayers:
		m.setup.Players = core.Clamp(m.setup.Players+delta, m.limits.MinPlayers, m.limits.MaxPlayers)
	case rowWidth:
		m.setup.GridW = core.Clamp(m.setup.GridW+delta, m.limits.MinCells, m.limits.MaxCells)
	case rowHeight:
		m.setup.GridH = core.Clamp(m.setup.GridH+delta, m.limits.MinCells, m.limits.MaxCells)
	case rowProtocol:
		if m.setup.Protocol == config.ProtocolEveryOther {
			m.setup.Protocol = config.ProtocolRandom
		} else {
			m.setup.Protocol = config.ProtocolEveryOther
		}
	default:
		return
	}
	m.err = nil
}

// Effective returns the setup with the selected tier's preset applied.
func (m MenuModel) Effective() core.Setup {
	s := m.setup
	config.ApplyTierPreset(&s, config.Tier(s.Tier))
	return s
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	s := m.Effective()

	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("W A N D E R I N G   I N   T H E   W O O D S"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Set up a run", m.width))
	b.WriteString("\n\n")

	protocol := "Random"
	if s.Protocol == config.ProtocolEveryOther {
		protocol = "Every Other"
	}
	values := [rowCount]string{
		rowTier:     fmt.Sprintf("Grade level  < %s >", config.Tier(s.Tier).Title()),
		rowPlayers:  fmt.Sprintf("Players      < %d >", s.Players),
		rowWidth:    fmt.Sprintf("Width        < %d >", s.GridW),
		rowHeight:   fmt.Sprintf("Height       < %d >", s.GridH),
		rowProtocol: fmt.Sprintf("Wandering    < %s >", protocol),
		rowStart:    "Start",
		rowRunLog:   "Run log",
		rowQuit:     "Quit",
	}

	for row, text := range values {
		if row == rowStart {
			b.WriteString("\n")
		}
		line := "  " + text
		switch {
		case row == m.cursor:
			line = menuCursorStyle.Render("> " + text)
		case !m.enabled(row):
			line = menuDisabledStyle.Render(line)
		}
		b.WriteString(centerText(padRight(line, 30), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.err != nil {
		b.WriteString(centerText(menuErrorStyle.Render(m.err.Error()), m.width))
		b.WriteString("\n")
	} else if m.status != "" {
		b.WriteString(centerText(m.status, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Left/Right: Change  |  Enter: Select  |  Tab: Run log  |  Q: Quit"
	b.WriteString(centerText(menuHintStyle.Render(controls), m.width))
	b.WriteString("\n")

	return b.String()
}

// SetStatus sets the line shown under the menu.
func (m *MenuModel) SetStatus(status string) {
	m.status = status
}

// SetError shows err under the menu until the setup changes.
func (m *MenuModel) SetError(err error) {
	m.err = err
}

// Reset clears the menu's exit requests so it can be shown again.
// The entered setup and cursor are kept.
func (m *MenuModel) Reset() {
	m.chosen = nil
	m.wantsRunLog = false
	m.quitting = false
}

// Chosen returns the setup the user started, or nil if none.
func (m MenuModel) Chosen() *core.Setup {
	return m.chosen
}

// WantsRunLog returns true if the user asked for the run log.
func (m MenuModel) WantsRunLog() bool {
	return m.wantsRunLog
}

// IsQuitting returns true if the user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

func padRight(text string, width int) string {
	if w := lipgloss.Width(text); w < width {
		return text + strings.Repeat(" ", width-w)
	}
	return text
}
