package woods

import "github.com/vovakirdan/tui-woods/internal/core"

// ActorSnapshot is the observable state of one actor.
type ActorSnapshot struct {
	Order  int
	Pos    core.Vec
	Anchor core.Vec
	Facing Direction
	Moving bool
	Turn   int
	Moves  int
	Found  bool
	Leader bool
	Halted bool
	Placed bool
}

// Snapshot captures the run state for determinism testing and replay.
// It leaves out the run id and session statistics.
type Snapshot struct {
	Phase    Phase
	Setup    core.Setup
	GameTime float64
	Ticks    int
	Selected int
	Actors   []ActorSnapshot
	Met      int
	Follows  []int
}

// Snapshot returns the current run snapshot.
func (c *Controller) Snapshot() Snapshot {
	snap := Snapshot{
		Phase:    c.phase,
		Setup:    c.setup,
		GameTime: c.gameTime,
		Ticks:    c.ticks,
		Selected: c.Selected(),
	}
	for _, a := range c.actors {
		snap.Actors = append(snap.Actors, ActorSnapshot{
			Order:  a.Order,
			Pos:    a.Pos,
			Anchor: a.Anchor,
			Facing: a.Facing,
			Moving: a.Moving(),
			Turn:   a.Turn,
			Moves:  a.Moves,
			Found:  a.Found,
			Leader: a.Leader,
			Halted: a.Halted,
			Placed: a.Placed,
		})
	}
	if c.tracker != nil {
		snap.Met = c.tracker.MetCount()
		for i := 0; i < c.tracker.Size(); i++ {
			snap.Follows = append(snap.Follows, c.tracker.LeaderOf(i))
		}
	}
	return snap
}
