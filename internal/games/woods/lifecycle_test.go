package woods

import (
	"errors"
	"reflect"
	"testing"

	"github.com/vovakirdan/tui-woods/internal/config"
	"github.com/vovakirdan/tui-woods/internal/core"
)

func TestStartPositions(t *testing.T) {
	got := StartPositions(320, 192, 64)
	want := []core.Vec{core.V(32, 32), core.V(288, 160), core.V(288, 32), core.V(32, 160)}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("StartPositions() = %v, expected %v", got, want)
	}
}

func TestStartAutoPlacedTier(t *testing.T) {
	c := newTestController(t, quietMotion(), setup(1, 2, 5, 5, config.ProtocolRandom), NewSource(1))

	if c.Phase() != PhaseActive {
		t.Fatalf("Phase() = %v, expected active", c.Phase())
	}
	for i, a := range c.Actors() {
		if !a.Placed {
			t.Errorf("actor %d not placed", i+1)
		}
	}
	if c.RunID() == "" {
		t.Error("RunID() is empty")
	}
}

func TestStartRejectsInvalidSetup(t *testing.T) {
	c := NewController(quietMotion(), config.DefaultWoodsConfig().Limits, NewSource(1))

	bad := []core.Setup{
		setup(1, 1, 5, 5, config.ProtocolRandom),
		setup(1, 5, 5, 5, config.ProtocolRandom),
		setup(1, 2, 0, 5, config.ProtocolRandom),
		setup(0, 2, 5, 5, config.ProtocolRandom),
		setup(3, 2, 5, 5, "zigzag"),
	}
	for _, s := range bad {
		if err := c.Start(s); !errors.Is(err, config.ErrInvalidSetup) {
			t.Errorf("Start(%+v) = %v, expected ErrInvalidSetup", s, err)
		}
	}
	if c.Phase() != PhaseNotStarted {
		t.Errorf("Phase() = %v after rejected setups, expected not_started", c.Phase())
	}
}

func TestStartRejectsMorePlayersThanCorners(t *testing.T) {
	// Limits wider than the four start corners must not let a fifth
	// actor share a corner with the first.
	wide := config.Limits{MinPlayers: 2, MaxPlayers: 6, MinCells: 2, MaxCells: 40}
	c := NewController(quietMotion(), wide, NewSource(1))

	if err := c.Start(setup(1, 6, 40, 5, config.ProtocolRandom)); !errors.Is(err, config.ErrInvalidSetup) {
		t.Fatalf("Start(6 players) = %v, expected ErrInvalidSetup", err)
	}
	if c.Phase() != PhaseNotStarted || len(c.Actors()) != 0 {
		t.Fatalf("Phase() = %v with %d actors, expected nothing started", c.Phase(), len(c.Actors()))
	}

	if err := c.Start(setup(1, 4, 5, 5, config.ProtocolRandom)); err != nil {
		t.Fatal(err)
	}
	runID := c.RunID()
	if err := c.ResetRun(setup(1, 5, 5, 5, config.ProtocolRandom)); !errors.Is(err, config.ErrInvalidSetup) {
		t.Fatalf("ResetRun(5 players) = %v, expected ErrInvalidSetup", err)
	}
	if c.Phase() != PhaseActive || len(c.Actors()) != 4 || c.RunID() != runID {
		t.Errorf("rejected reset changed the run: Phase() = %v actors = %d", c.Phase(), len(c.Actors()))
	}
}

func TestResetRunBeforeStart(t *testing.T) {
	c := NewController(quietMotion(), config.DefaultWoodsConfig().Limits, NewSource(1))
	if err := c.ResetRun(setup(1, 2, 5, 5, config.ProtocolRandom)); !errors.Is(err, ErrNotStarted) {
		t.Errorf("ResetRun() = %v, expected ErrNotStarted", err)
	}
}

// Actor A sits in the middle of a 5x5 board while B walks toward it,
// 32 units per tick.
func runApproach(t *testing.T) (*Controller, []*core.RunSummary) {
	t.Helper()
	c := newTestController(t, quietMotion(), setup(1, 2, 5, 5, config.ProtocolRandom), NewSource(1))
	a, b := c.Actors()[0], c.Actors()[1]
	moveTo(a, 160, 160)
	moveTo(b, 32, 160)

	var results []*core.RunSummary
	for tick := 1; tick <= 3; tick++ {
		b.Dir = core.V(1, 0)
		done := c.Tick(0.25, noInput())
		results = append(results, done)
		if tick < 3 && c.AllFound() {
			t.Fatalf("AllFound() true at tick %d, B at %v", tick, b.Pos)
		}
	}
	return c, results
}

func TestTwoActorsFoundOnFirstOverlap(t *testing.T) {
	c, results := runApproach(t)

	if !c.AllFound() || c.Phase() != PhaseComplete {
		t.Fatalf("AllFound() = %v Phase() = %v, expected complete on tick 3", c.AllFound(), c.Phase())
	}
	if results[0] != nil || results[1] != nil {
		t.Error("summary returned before completion")
	}
	sum := results[2]
	if sum == nil {
		t.Fatal("no summary on the completing tick")
	}

	a, b := c.Actors()[0], c.Actors()[1]
	if b.Moves != 1 {
		t.Errorf("B Moves = %d, expected 1 completed cell step", b.Moves)
	}
	if a.Moves != 0 {
		t.Errorf("A Moves = %d, expected 0", a.Moves)
	}
	if sum.Ticks != 3 || sum.Elapsed != 0.75 {
		t.Errorf("summary Ticks = %d Elapsed = %v, expected 3 and 0.75", sum.Ticks, sum.Elapsed)
	}
	if !reflect.DeepEqual(sum.Moves, []int{0, 1}) {
		t.Errorf("summary Moves = %v, expected [0 1]", sum.Moves)
	}
	if sum.RunID != c.RunID() {
		t.Errorf("summary RunID = %q, expected %q", sum.RunID, c.RunID())
	}
	for i, a := range c.Actors() {
		if a.Leader {
			t.Errorf("actor %d still leads after completion", i+1)
		}
	}
}

func TestCompletionCommitsOnce(t *testing.T) {
	c, _ := runApproach(t)

	for range 100 {
		if done := c.Tick(0.25, noInput()); done != nil {
			t.Fatal("Tick() returned a second summary for the same run")
		}
	}
	stats := c.Stats()
	if stats.Runs != 1 {
		t.Errorf("Stats().Runs = %d, expected 1", stats.Runs)
	}
	if stats.TotalTime != 0.75 || c.GameTime() != 0.75 {
		t.Errorf("TotalTime = %v GameTime = %v, expected the run to stay frozen at 0.75", stats.TotalTime, c.GameTime())
	}
}

func TestFourActorSubgroupsDoNotComplete(t *testing.T) {
	c := newTestController(t, quietMotion(), setup(1, 4, 6, 6, config.ProtocolRandom), NewSource(1))
	actors := c.Actors()
	moveTo(actors[0], 32, 32)
	moveTo(actors[1], 32, 32)
	moveTo(actors[2], 352, 352)
	moveTo(actors[3], 352, 352)

	for range 3 {
		c.Tick(0.25, noInput())
	}
	if c.AllFound() {
		t.Fatal("two merged sub-groups should not complete the run")
	}
	if got := c.Tracker().MetCount(); got != 2 {
		t.Errorf("MetCount() = %d, expected 2", got)
	}
	for i, a := range actors {
		if !a.Found {
			t.Errorf("actor %d not found", i+1)
		}
	}

	// Bring group {3,4} to group {1,2}: 3 now meets 1 and 2, and 4 is
	// carried along, but its own pairs with 1 and 2 only register next tick.
	moveTo(actors[2], 32, 32)
	c.Tick(0.25, noInput())
	if c.AllFound() {
		t.Fatalf("completed with only %d pairs met", c.Tracker().MetCount())
	}

	c.Tick(0.25, noInput())
	if !c.AllFound() {
		t.Fatal("four coincident actors with every pair met should complete")
	}
}

func TestThreeActorsCompleteWithoutCoincidence(t *testing.T) {
	c := newTestController(t, quietMotion(), setup(1, 3, 6, 6, config.ProtocolRandom), NewSource(1))
	actors := c.Actors()
	tr := c.Tracker()
	tr.setMet(0, 1)
	tr.setMet(0, 2)
	tr.setMet(1, 2)
	actors[1].Found, actors[2].Found = true, true
	actors[0].Found, actors[0].Leader = true, true

	c.Tick(0.25, noInput())
	if !c.AllFound() {
		t.Error("three actors with every pair met should complete")
	}
}

func TestResetRoundTrip(t *testing.T) {
	s := setup(1, 2, 5, 5, config.ProtocolRandom)
	fresh := newTestController(t, quietMotion(), s, NewSource(1)).Snapshot()

	c, _ := runApproach(t)
	for run := 1; run <= 3; run++ {
		if err := c.ResetRun(s); err != nil {
			t.Fatalf("ResetRun() error: %v", err)
		}
		if got := c.Snapshot(); !reflect.DeepEqual(got, fresh) {
			t.Fatalf("run %d: snapshot after reset = %+v, expected %+v", run, got, fresh)
		}
		moveTo(c.Actors()[1], 32, 32)
		c.Tick(0.25, noInput())
		if !c.AllFound() {
			t.Fatalf("run %d did not complete", run)
		}
	}
	if c.Stats().Runs != 4 {
		t.Errorf("Stats().Runs = %d, expected 4", c.Stats().Runs)
	}
}

func TestResetPicksUpNewSetup(t *testing.T) {
	c, _ := runApproach(t)
	next := setup(1, 3, 7, 4, config.ProtocolEveryOther)
	if err := c.ResetRun(next); err != nil {
		t.Fatalf("ResetRun() error: %v", err)
	}
	if len(c.Actors()) != 3 {
		t.Errorf("len(Actors()) = %d, expected 3", len(c.Actors()))
	}
	if w, h := c.BoardSize(); w != 7*64 || h != 4*64 {
		t.Errorf("BoardSize() = %v x %v, expected 448 x 256", w, h)
	}
	if c.Protocol() != AlternatingAxis {
		t.Errorf("Protocol() = %v, expected every-other", c.Protocol())
	}
}

func TestReinitializeKeepsStats(t *testing.T) {
	c, _ := runApproach(t)
	c.Reinitialize()

	if c.Phase() != PhaseNotStarted || c.Actors() != nil || c.Tracker() != nil {
		t.Error("Reinitialize() left run state behind")
	}
	if c.Stats().Runs != 1 {
		t.Errorf("Stats().Runs = %d, expected 1", c.Stats().Runs)
	}
	if done := c.Tick(0.25, noInput()); done != nil {
		t.Error("Tick() on a torn-down run returned a summary")
	}
}

func TestTickClampsDt(t *testing.T) {
	c := newTestController(t, quietMotion(), setup(1, 2, 5, 5, config.ProtocolRandom), NewSource(1))

	c.Tick(10, noInput())
	if c.GameTime() != 0.25 {
		t.Errorf("GameTime() = %v after a long frame, expected 0.25", c.GameTime())
	}
	c.Tick(-1, noInput())
	if c.GameTime() != 0.25 {
		t.Errorf("GameTime() = %v after a negative frame, expected 0.25", c.GameTime())
	}
}

func TestPlacementFlow(t *testing.T) {
	c := newTestController(t, quietMotion(), setup(2, 2, 5, 5, config.ProtocolRandom), NewSource(1))

	if c.Phase() != PhaseAwaitingPlacement || !c.ShowingInstructions() {
		t.Fatalf("Phase() = %v, expected awaiting placement with instructions", c.Phase())
	}
	c.Tick(0.1, press(core.ActionRight))
	if c.Actors()[0].Pos != core.V(32, 32) {
		t.Fatal("input moved an actor while instructions were shown")
	}
	c.Tick(0.1, press(core.ActionConfirm))
	if c.ShowingInstructions() || c.Selected() != 0 {
		t.Fatalf("ShowingInstructions() = %v Selected() = %d", c.ShowingInstructions(), c.Selected())
	}

	first := c.Actors()[0]
	c.Tick(0.05, press(core.ActionRight))
	if first.Pos != core.V(96, 32) {
		t.Fatalf("Pos = %v, expected the first press to move to (96, 32)", first.Pos)
	}
	c.Tick(0.1, press(core.ActionRight))
	if first.Pos.X != 96 {
		t.Fatal("second move accepted inside the debounce window")
	}
	c.Tick(0.25, press(core.ActionUp)) // 0.35, refused at the top edge
	if first.Pos != core.V(96, 32) {
		t.Fatalf("Pos = %v, expected the edge to refuse the move", first.Pos)
	}

	// A refused move does not restart the debounce window.
	c.Tick(0.01, press(core.ActionConfirm))
	if !first.Placed || first.Selected || c.Selected() != 1 || !c.Actors()[1].Selected {
		t.Fatalf("after confirm: Placed=%v Selected=%v next=%d", first.Placed, first.Selected, c.Selected())
	}
	if first.Start != core.V(96, 32) {
		t.Errorf("Start = %v, expected placement to move it", first.Start)
	}

	// The next actor takes its first press right away.
	c.Tick(0.01, press(core.ActionConfirm))
	if c.Phase() != PhaseActive {
		t.Fatalf("Phase() = %v, expected active after every actor is placed", c.Phase())
	}
	if c.GameTime() != 0 {
		t.Errorf("GameTime() = %v, expected the clock to start after placement", c.GameTime())
	}

	if err := c.ResetRun(c.Setup()); err != nil {
		t.Fatal(err)
	}
	if c.Actors()[0].Pos != core.V(32, 32) || c.Phase() != PhaseAwaitingPlacement {
		t.Errorf("reset gave Pos = %v Phase = %v, expected corner and placement", c.Actors()[0].Pos, c.Phase())
	}
}

func TestInvariantsHoldDuringRandomRuns(t *testing.T) {
	for _, protocol := range []string{config.ProtocolRandom, config.ProtocolEveryOther} {
		for players := 2; players <= 4; players++ {
			m := config.DefaultWoodsConfig().Motion
			c := newTestController(t, m, setup(1, players, 3, 3, protocol), NewSource(int64(players)))
			w, h := c.BoardSize()

			for tick := 0; tick < 50000 && !c.AllFound(); tick++ {
				c.Tick(1.0/60, noInput())
				for i, a := range c.Actors() {
					if a.Halted && (!a.Found || a.Leader) {
						t.Fatalf("actor %d: halted=%v found=%v leader=%v", i+1, a.Halted, a.Found, a.Leader)
					}
					if a.Pos.X < 32 || a.Pos.X > w-32 || a.Pos.Y < 32 || a.Pos.Y > h-32 {
						t.Fatalf("actor %d left the board at %v", i+1, a.Pos)
					}
				}
			}
		}
	}
}

func TestTwoActorsEventuallyMeet(t *testing.T) {
	c := newTestController(t, config.DefaultWoodsConfig().Motion, setup(1, 2, 2, 2, config.ProtocolRandom), NewSource(42))
	for tick := 0; tick < 2_000_000 && !c.AllFound(); tick++ {
		c.Tick(1.0/60, noInput())
	}
	if !c.AllFound() {
		t.Fatal("two actors on a 2x2 board never met")
	}
	if c.Stats().Runs != 1 {
		t.Errorf("Stats().Runs = %d, expected 1", c.Stats().Runs)
	}
}

func TestDeterminism(t *testing.T) {
	s := setup(1, 4, 6, 5, config.ProtocolEveryOther)
	m := config.DefaultWoodsConfig().Motion
	c1 := newTestController(t, m, s, NewSource(12345))
	c2 := newTestController(t, m, s, NewSource(12345))

	for range 3000 {
		c1.Tick(1.0/60, noInput())
		c2.Tick(1.0/60, noInput())
	}
	if !reflect.DeepEqual(c1.Snapshot(), c2.Snapshot()) {
		t.Errorf("snapshots diverged:\n%+v\n%+v", c1.Snapshot(), c2.Snapshot())
	}
}
