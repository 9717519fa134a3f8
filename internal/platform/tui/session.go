package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-woods/internal/config"
	"github.com/vovakirdan/tui-woods/internal/core"
	"github.com/vovakirdan/tui-woods/internal/registry"
	"github.com/vovakirdan/tui-woods/internal/storage"
)

type sessionView int

const (
	viewMenu sessionView = iota
	viewGame
	viewRunLog
)

// SessionModel manages the full flow: setup menu -> game -> menu, plus the
// run log. It keeps one game per tier so session statistics survive trips
// through the menu. Used for local menu mode and for each SSH connection.
type SessionModel struct {
	store     *storage.Store
	config    core.RuntimeConfig
	woods     config.WoodsConfig
	sessionID string
	logger    *log.Logger
	games     map[config.Tier]registry.Game
	view      sessionView
	menu      MenuModel
	game      *GameModel
	runLog    *RunLogModel
	quitting  bool
}

// NewSessionModel creates a session; store may be nil.
// The menu starts from the run defaults in woodsCfg.
func NewSessionModel(store *storage.Store, woodsCfg config.WoodsConfig, cfg core.RuntimeConfig, username string, logger *log.Logger) SessionModel {
	if logger == nil {
		logger = log.Default()
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	sessionID := uuid.NewString()
	if username != "" {
		sessionID = username + "-" + sessionID
	}

	return SessionModel{
		store:     store,
		config:    cfg,
		woods:     woodsCfg,
		sessionID: sessionID,
		logger:    logger,
		games:     make(map[config.Tier]registry.Game),
		menu:      NewMenuModel(woodsCfg.Run.Setup(), woodsCfg.Limits, cfg.ScreenW, cfg.ScreenH),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.view {
	case viewGame:
		return m.updateGame(msg)
	case viewRunLog:
		return m.updateRunLog(msg)
	}
	return m.updateMenu(msg)
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsRunLog():
		m.menu.Reset()
		runLog := NewRunLogModel(m.store, m.config.ScreenW, m.config.ScreenH)
		m.runLog = &runLog
		m.view = viewRunLog
		return m, nil

	case m.menu.Chosen() != nil:
		setup := *m.menu.Chosen()
		m.menu.Reset()
		return m.startGame(setup)
	}

	return m, cmd
}

// startGame resets the tier's game with setup and switches to it.
func (m SessionModel) startGame(setup core.Setup) (tea.Model, tea.Cmd) {
	tier := config.Tier(setup.Tier)
	game, err := m.gameFor(tier)
	if err != nil {
		m.menu.SetError(err)
		return m, nil
	}

	cfg := m.config
	cfg.Setup = setup
	if err := game.Reset(cfg); err != nil {
		m.menu.SetError(err)
		return m, nil
	}

	m.logger.Debug("run started", "session", m.sessionID, "game", tier.ID(),
		"players", setup.Players, "grid", fmt.Sprintf("%dx%d", setup.GridW, setup.GridH),
		"protocol", setup.Protocol)

	gameModel := NewGameModel(game, m.store, m.sessionID, cfg, m.logger)
	m.game = &gameModel
	m.view = viewGame
	return m, m.game.Init()
}

// gameFor returns the session's game for tier, creating it on first use.
func (m SessionModel) gameFor(tier config.Tier) (registry.Game, error) {
	if g, ok := m.games[tier]; ok {
		return g, nil
	}
	g, err := registry.Create(tier.ID())
	if err != nil {
		return nil, err
	}
	m.games[tier] = g
	return g, nil
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gameModel, ok := newModel.(GameModel); ok {
		m.game = &gameModel
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.game.BackToMenu() {
		state := m.game.State()
		m.game = nil
		m.view = viewMenu
		m.menu.SetStatus(fmt.Sprintf("Runs this session on this level: %d", state.Runs))
		return m, m.menu.Init()
	}

	return m, cmd
}

// updateRunLog handles updates when the run log is shown.
func (m SessionModel) updateRunLog(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.runLog.Update(msg)
	if runLog, ok := newModel.(RunLogModel); ok {
		m.runLog = &runLog
	}

	if m.runLog.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.runLog.IsGoingBack() {
		m.runLog = nil
		m.view = viewMenu
		return m, nil
	}

	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.view {
	case viewGame:
		return m.game.View()
	case viewRunLog:
		return m.runLog.View()
	}
	return m.menu.View()
}

// SessionID returns the id completed runs are logged under.
func (m SessionModel) SessionID() string {
	return m.sessionID
}

// RunSession runs the menu-driven session locally until the user quits.
func RunSession(store *storage.Store, woodsCfg config.WoodsConfig, cfg core.RuntimeConfig, logger *log.Logger) error {
	model := NewSessionModel(store, woodsCfg, cfg, "", logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	return err
}
