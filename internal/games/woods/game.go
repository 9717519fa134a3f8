package woods

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-woods/internal/config"
	"github.com/vovakirdan/tui-woods/internal/core"
	"github.com/vovakirdan/tui-woods/internal/registry"
)

// configPath stores the custom config path set via CLI
var configPath string

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

var logger = log.Default()

// SetLogger replaces the logger used by games created afterwards.
func SetLogger(l *log.Logger) {
	if l != nil {
		logger = l
	}
}

// Game adapts a run Controller to the registry.Game interface for one tier.
type Game struct {
	tier    config.Tier
	cfg     config.WoodsConfig
	ctrl    *Controller
	runtime core.RuntimeConfig
	dt      float64

	paused        bool
	menuRequested bool
}

// New creates a game for the given tier.
func New(tier config.Tier) *Game {
	return &Game{tier: tier}
}

func init() {
	for _, tier := range config.AllTiers() {
		registry.Register(tier.ID(), func() registry.Game {
			return New(tier)
		})
	}
}

// ID returns the tier identifier.
func (g *Game) ID() string {
	return g.tier.ID()
}

// Title returns the tier display name.
func (g *Game) Title() string {
	return g.tier.Title()
}

// Reset starts a run with the setup in runtime, forced to this game's tier.
// The first call loads configuration and creates the controller; later calls
// reset the run and keep the session statistics.
func (g *Game) Reset(runtime core.RuntimeConfig) error {
	if g.ctrl == nil {
		cfg, err := config.LoadWoods(configPath)
		if err != nil {
			logger.Warn("using default configuration", "game", g.ID(), "error", err)
			cfg = config.DefaultWoodsConfig()
		}
		g.cfg = cfg
		g.ctrl = NewController(cfg.Motion, cfg.Limits, NewSource(runtime.Seed))
	}

	config.ApplyTierPreset(&runtime.Setup, g.tier)
	if runtime.TickRate <= 0 {
		runtime.TickRate = 60
	}
	g.runtime = runtime
	g.dt = 1 / float64(runtime.TickRate)
	g.paused = false
	g.menuRequested = false

	if g.ctrl.Phase() == PhaseNotStarted {
		return g.ctrl.Start(runtime.Setup)
	}
	return g.ctrl.ResetRun(runtime.Setup)
}

// Reinitialize drops the current run. Session statistics survive.
func (g *Game) Reinitialize() {
	if g.ctrl != nil {
		g.ctrl.Reinitialize()
	}
	g.paused = false
	g.menuRequested = false
}

// Resize updates the screen dimensions used for layout and click hit tests.
func (g *Game) Resize(w, h int) {
	g.runtime.ScreenW = w
	g.runtime.ScreenH = h
}

// Step advances the run by one tick.
func (g *Game) Step(input core.InputFrame) core.StepResult {
	if g.ctrl == nil || g.ctrl.Phase() == PhaseNotStarted {
		return core.StepResult{State: g.State()}
	}

	in := g.resolveClicks(input)

	if in.Has(core.ActionBack) {
		g.menuRequested = true
		return core.StepResult{State: g.State()}
	}
	if in.Has(core.ActionRestart) && g.ctrl.Phase() != PhaseAwaitingPlacement {
		if err := g.ctrl.ResetRun(g.runtime.Setup); err != nil {
			logger.Error("restart failed", "game", g.ID(), "error", err)
			return core.StepResult{State: g.State()}
		}
		g.paused = false
		return core.StepResult{State: g.State()}
	}
	if in.Has(core.ActionPause) && g.ctrl.Phase() == PhaseActive {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	done := g.ctrl.Tick(g.dt, in)
	return core.StepResult{State: g.State(), Completed: done}
}

// resolveClicks turns clicks on the on-screen buttons into actions.
func (g *Game) resolveClicks(input core.InputFrame) core.InputFrame {
	if len(input.Clicks) == 0 {
		return input
	}
	in := input.Clone()
	l := g.layout()
	for _, p := range input.Clicks {
		switch {
		case l.resetBtn.Contains(p.X, p.Y):
			in.Set(core.ActionRestart)
		case l.menuBtn.Contains(p.X, p.Y):
			in.Set(core.ActionBack)
		case g.ctrl.ShowingInstructions() && l.okBtn.Contains(p.X, p.Y):
			in.Set(core.ActionConfirm)
		}
	}
	return in
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.ctrl == nil {
		return core.GameState{Phase: PhaseNotStarted.String()}
	}
	return core.GameState{
		Phase:         g.ctrl.Phase().String(),
		AllFound:      g.ctrl.AllFound(),
		GameTime:      g.ctrl.GameTime(),
		Runs:          g.ctrl.Stats().Runs,
		Paused:        g.paused,
		MenuRequested: g.menuRequested,
	}
}

// Controller exposes the underlying run controller.
func (g *Game) Controller() *Controller {
	return g.ctrl
}

// Tier returns the tier this game plays.
func (g *Game) Tier() config.Tier {
	return g.tier
}
