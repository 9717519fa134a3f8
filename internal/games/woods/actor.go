package woods

import (
	"math"

	"github.com/vovakirdan/tui-woods/internal/config"
	"github.com/vovakirdan/tui-woods/internal/core"
)

// Actor is one wandering player on the board. Positions are in board units
// with the origin at the top-left corner; cell centers sit at odd multiples
// of half a cell.
type Actor struct {
	Order  int      // 1-based; lower orders lead higher ones
	Mode   Protocol // Wandering protocol
	Pos    core.Vec // Continuous position
	Anchor core.Vec // Last cell-aligned resting position
	Start  core.Vec // Position the run began from
	Dir    core.Vec // Per-axis heading, zero when idle
	Facing Direction
	Speed  float64
	BoardW float64
	BoardH float64
	Turn   int // AlternatingAxis parity: 0 vertical, 1 horizontal
	Moves  int

	Found  bool
	Leader bool
	Halted bool

	Selected bool // Currently being placed by the player
	Placed   bool

	cell      float64
	half      float64
	footprint float64
	interval  float64
	debounce  float64

	decisionClock float64
	inputClock    float64
}

// newActor starts the placement clock at the debounce threshold so the
// first press for a newly selected actor is accepted.
func newActor(order int, start core.Vec, boardW, boardH float64, mode Protocol, m config.MotionConfig) *Actor {
	return &Actor{
		Order:      order,
		Mode:       mode,
		Pos:        start,
		Anchor:     start,
		Start:      start,
		Facing:     DirDown,
		Speed:      m.Speed,
		BoardW:     boardW,
		BoardH:     boardH,
		Turn:       (order - 1) % 2,
		cell:       m.CellSize,
		half:       m.CellSize / 2,
		footprint:  m.Footprint,
		interval:   m.DecisionInterval,
		debounce:   m.PlacementDebounce,
		inputClock: m.PlacementDebounce,
	}
}

// Moving reports whether the actor has a heading on either axis.
func (a *Actor) Moving() bool {
	return !a.Dir.IsZero()
}

// StepMotion advances the actor along its heading. When the displacement
// from the anchor reaches one cell on an axis the actor snaps to the cell,
// drops that axis from its heading and re-anchors.
func (a *Actor) StepMotion(dt float64) {
	if !a.Moving() || dt <= 0 {
		return
	}

	a.Pos = a.Pos.Add(a.Dir.Normalize().Scale(a.Speed * dt))

	if dx := a.Pos.X - a.Anchor.X; math.Abs(dx) >= a.cell {
		a.Pos.X = a.Anchor.X + math.Copysign(a.cell, dx)
		a.Anchor.X = a.Pos.X
		a.Dir.X = 0
		a.completeStep()
	}
	if dy := a.Pos.Y - a.Anchor.Y; math.Abs(dy) >= a.cell {
		a.Pos.Y = a.Anchor.Y + math.Copysign(a.cell, dy)
		a.Anchor.Y = a.Pos.Y
		a.Dir.Y = 0
		a.completeStep()
	}
}

func (a *Actor) completeStep() {
	if !a.Found {
		a.Moves++
	}
	if a.Found && !a.Leader {
		a.Halted = true
		a.Dir = core.Vec{}
	}
}

// Wander accumulates dt and, once the decision interval is exceeded, picks
// a new heading according to the actor's protocol.
func (a *Actor) Wander(dt float64, rng Source) {
	if a.Halted || !a.Placed {
		return
	}
	a.decisionClock += max(dt, 0)
	if a.decisionClock <= a.interval {
		return
	}
	a.decisionClock = 0

	switch a.Mode {
	case AlternatingAxis:
		if a.Turn == 0 {
			a.head([]Direction{DirUp, DirDown}[rng.Intn(2)])
		} else {
			a.head([]Direction{DirRight, DirLeft}[rng.Intn(2)])
		}
		a.Turn = 1 - a.Turn
	default:
		a.head([]Direction{DirUp, DirDown, DirRight, DirLeft}[rng.Intn(4)])
	}
}

// head sets one axis of the heading, reversing it at the board edge.
func (a *Actor) head(d Direction) {
	if a.atEdge(d) {
		d = d.Opposite()
	}
	if d.Vertical() {
		a.Dir.Y = d.Sign()
	} else {
		a.Dir.X = d.Sign()
	}
	a.Facing = d
}

// atEdge reports whether the actor rests on the outermost cell in direction d.
func (a *Actor) atEdge(d Direction) bool {
	switch d {
	case DirUp:
		return a.Pos.Y == a.half
	case DirDown:
		return a.Pos.Y == a.BoardH-a.half
	case DirLeft:
		return a.Pos.X == a.half
	case DirRight:
		return a.Pos.X == a.BoardW-a.half
	}
	return false
}

// PlaceMove moves an unplaced actor one cell in direction d.
// It returns false when the move would leave the board.
func (a *Actor) PlaceMove(d Direction) bool {
	if a.Placed || d == DirNone || a.atEdge(d) {
		return false
	}
	if d.Vertical() {
		a.Pos.Y += d.Sign() * a.cell
	} else {
		a.Pos.X += d.Sign() * a.cell
	}
	a.Anchor = a.Pos
	a.Start = a.Pos
	a.Facing = d
	return true
}

// Footprint returns the occupancy box used for collision tests.
func (a *Actor) Footprint() core.Box {
	return core.BoxAround(a.Pos, a.footprint)
}

// Touches reports whether either actor's footprint contains the other's position.
func (a *Actor) Touches(b *Actor) bool {
	return a.Footprint().ContainsPoint(b.Pos) || b.Footprint().ContainsPoint(a.Pos)
}

// Mirror copies the leader's position, anchor and heading.
func (a *Actor) Mirror(leader *Actor) {
	a.Pos = leader.Pos
	a.Anchor = leader.Anchor
	a.Dir = leader.Dir
	a.Facing = leader.Facing
}
