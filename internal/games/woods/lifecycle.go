package woods

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/vovakirdan/tui-woods/internal/config"
	"github.com/vovakirdan/tui-woods/internal/core"
)

// Phase is the lifecycle state of the current run.
type Phase int

const (
	PhaseNotStarted Phase = iota
	PhaseAwaitingPlacement
	PhaseActive
	PhaseComplete
)

// String returns the phase name reported in core.GameState.
func (p Phase) String() string {
	switch p {
	case PhaseNotStarted:
		return "not_started"
	case PhaseAwaitingPlacement:
		return "awaiting_placement"
	case PhaseActive:
		return "active"
	case PhaseComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// ErrNotStarted is returned by ResetRun before any run has been started.
var ErrNotStarted = errors.New("woods: no run started")

// Controller owns the actors of one run, drives them every tick and folds
// completed runs into the session statistics.
type Controller struct {
	motion config.MotionConfig
	limits config.Limits
	rng    Source

	setup    core.Setup
	tier     config.Tier
	protocol Protocol
	phase    Phase

	runID     string
	actors    []*Actor
	tracker   *Tracker
	gameTime  float64
	ticks     int
	committed bool
	last      *core.RunSummary

	selected         int
	instructionsRead bool

	stats SessionStats
}

// NewController creates a controller with no run started.
func NewController(motion config.MotionConfig, limits config.Limits, rng Source) *Controller {
	return &Controller{
		motion: motion,
		limits: limits,
		rng:    rng,
	}
}

// Start commits a setup and creates the first run from it.
func (c *Controller) Start(setup core.Setup) error {
	return c.begin(setup)
}

// ResetRun discards the current run and creates a new one from setup.
// Session statistics are kept.
func (c *Controller) ResetRun(setup core.Setup) error {
	if c.phase == PhaseNotStarted {
		return ErrNotStarted
	}
	return c.begin(setup)
}

// Reinitialize tears the run down and returns to PhaseNotStarted.
// Session statistics are kept.
func (c *Controller) Reinitialize() {
	c.phase = PhaseNotStarted
	c.actors = nil
	c.tracker = nil
	c.gameTime = 0
	c.ticks = 0
	c.committed = false
	c.last = nil
	c.selected = 0
	c.instructionsRead = false
	c.runID = ""
}

func (c *Controller) begin(setup core.Setup) error {
	if err := config.ValidateSetup(setup, c.limits); err != nil {
		return err
	}
	protocol, err := ParseProtocol(setup.Protocol)
	if err != nil {
		return fmt.Errorf("%w: %v", config.ErrInvalidSetup, err)
	}
	boardW := float64(setup.GridW) * c.motion.CellSize
	boardH := float64(setup.GridH) * c.motion.CellSize
	corners := StartPositions(boardW, boardH, c.motion.CellSize)
	if setup.Players > len(corners) {
		return fmt.Errorf("%w: %d players but only %d start corners", config.ErrInvalidSetup, setup.Players, len(corners))
	}

	c.Reinitialize()
	c.setup = setup
	c.tier = config.Tier(setup.Tier)
	c.protocol = protocol
	c.runID = uuid.NewString()

	c.actors = make([]*Actor, setup.Players)
	for i := range c.actors {
		c.actors[i] = newActor(i+1, corners[i], boardW, boardH, protocol, c.motion)
	}
	c.tracker = NewTracker(setup.Players)

	if c.tier.ManualPlacement() {
		c.phase = PhaseAwaitingPlacement
		c.actors[0].Selected = true
		return nil
	}
	for _, a := range c.actors {
		a.Placed = true
	}
	c.instructionsRead = true
	c.phase = PhaseActive
	return nil
}

// StartPositions returns the corner cells in actor order: top-left,
// bottom-right, top-right, bottom-left.
func StartPositions(boardW, boardH, cell float64) []core.Vec {
	h := cell / 2
	return []core.Vec{
		core.V(h, h),
		core.V(boardW-h, boardH-h),
		core.V(boardW-h, h),
		core.V(h, boardH-h),
	}
}

// Tick advances the run by dt seconds. dt is clamped to [0, MaxStep].
// It returns the run summary on the tick the run completes, nil otherwise.
func (c *Controller) Tick(dt float64, in core.InputFrame) *core.RunSummary {
	dt = core.ClampF(dt, 0, c.motion.MaxStep)

	var done *core.RunSummary
	switch c.phase {
	case PhaseAwaitingPlacement:
		c.tickPlacement(dt, in)
	case PhaseActive:
		done = c.tickActive(dt)
	}
	c.checkInvariants()
	return done
}

func (c *Controller) tickPlacement(dt float64, in core.InputFrame) {
	if !c.instructionsRead {
		if in.Has(core.ActionConfirm) {
			c.instructionsRead = true
		}
		return
	}

	a := c.actors[c.selected]
	a.inputClock += dt
	if a.inputClock <= a.debounce {
		return
	}

	if d := directionFor(in.Direction()); d != DirNone {
		if a.PlaceMove(d) {
			a.inputClock = 0
		}
		return
	}
	if !in.Has(core.ActionConfirm) {
		return
	}

	a.inputClock = 0
	a.Placed = true
	a.Selected = false
	c.selected++
	if c.selected < len(c.actors) {
		c.actors[c.selected].Selected = true
		return
	}
	c.phase = PhaseActive
}

func (c *Controller) tickActive(dt float64) *core.RunSummary {
	c.gameTime += dt
	c.ticks++

	for i, a := range c.actors {
		if c.tracker.LeaderOf(i) < 0 {
			a.Wander(dt, c.rng)
		}
		a.StepMotion(dt)
	}
	c.tracker.Update(c.actors)

	if !c.tracker.Complete(c.actors) {
		return nil
	}
	return c.complete()
}

// complete freezes the run and commits it to the statistics once.
func (c *Controller) complete() *core.RunSummary {
	c.phase = PhaseComplete
	c.tracker.Settle(c.actors)
	if c.committed {
		return nil
	}
	c.committed = true

	c.stats.RecordCompletedRun(c.gameTime, c.protocol, c.setup.GridW, c.setup.GridH)

	moves := make([]int, len(c.actors))
	for i, a := range c.actors {
		moves[i] = a.Moves
	}
	c.last = &core.RunSummary{
		RunID:    c.runID,
		Tier:     c.setup.Tier,
		Players:  c.setup.Players,
		GridW:    c.setup.GridW,
		GridH:    c.setup.GridH,
		Protocol: c.protocol.String(),
		Elapsed:  c.gameTime,
		Ticks:    c.ticks,
		Moves:    moves,
	}
	return c.last
}

// checkInvariants panics when actor status flags contradict each other.
func (c *Controller) checkInvariants() {
	for _, a := range c.actors {
		if a.Halted && (!a.Found || a.Leader) {
			panic(fmt.Sprintf("woods: actor %d halted with found=%v leader=%v", a.Order, a.Found, a.Leader))
		}
		if a.Leader && !a.Found {
			panic(fmt.Sprintf("woods: actor %d leads without being found", a.Order))
		}
	}
}

func directionFor(a core.Action) Direction {
	switch a {
	case core.ActionUp:
		return DirUp
	case core.ActionDown:
		return DirDown
	case core.ActionLeft:
		return DirLeft
	case core.ActionRight:
		return DirRight
	default:
		return DirNone
	}
}

// Phase returns the current lifecycle phase.
func (c *Controller) Phase() Phase { return c.phase }

// AllFound reports whether the current run has completed.
func (c *Controller) AllFound() bool { return c.phase == PhaseComplete }

// GameTime returns the seconds simulated while the run was active.
func (c *Controller) GameTime() float64 { return c.gameTime }

// Ticks returns the number of active ticks simulated.
func (c *Controller) Ticks() int { return c.ticks }

// Actors returns the actors of the current run in order.
func (c *Controller) Actors() []*Actor { return c.actors }

// Tracker returns the discovery tracker of the current run.
func (c *Controller) Tracker() *Tracker { return c.tracker }

// Setup returns the setup the current run was created from.
func (c *Controller) Setup() core.Setup { return c.setup }

// Protocol returns the wandering protocol of the current run.
func (c *Controller) Protocol() Protocol { return c.protocol }

// Stats returns a copy of the session statistics.
func (c *Controller) Stats() SessionStats { return c.stats }

// RunID returns the identifier of the current run.
func (c *Controller) RunID() string { return c.runID }

// LastRun returns the summary of the completed run, or nil.
func (c *Controller) LastRun() *core.RunSummary { return c.last }

// Selected returns the index of the actor being placed, or -1.
func (c *Controller) Selected() int {
	if c.phase != PhaseAwaitingPlacement {
		return -1
	}
	return c.selected
}

// ShowingInstructions reports whether placement is waiting for the
// instructions to be dismissed.
func (c *Controller) ShowingInstructions() bool {
	return c.phase == PhaseAwaitingPlacement && !c.instructionsRead
}

// BoardSize returns the board extent in units.
func (c *Controller) BoardSize() (w, h float64) {
	return float64(c.setup.GridW) * c.motion.CellSize, float64(c.setup.GridH) * c.motion.CellSize
}

// CellSize returns the side of one grid cell in units.
func (c *Controller) CellSize() float64 { return c.motion.CellSize }
