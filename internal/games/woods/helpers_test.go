package woods

import (
	"testing"

	"github.com/vovakirdan/tui-woods/internal/config"
	"github.com/vovakirdan/tui-woods/internal/core"
)

// scriptSource replays fixed draws and records the bounds it was asked for.
type scriptSource struct {
	draws []int
	asked []int
}

func (s *scriptSource) Intn(n int) int {
	s.asked = append(s.asked, n)
	if len(s.draws) == 0 {
		return 0
	}
	d := s.draws[0]
	s.draws = s.draws[1:]
	return d % n
}

// quietMotion moves 32 units per 0.25s tick and never wanders on its own.
func quietMotion() config.MotionConfig {
	m := config.DefaultWoodsConfig().Motion
	m.Speed = 128
	m.DecisionInterval = 1e9
	return m
}

func newTestController(t *testing.T, m config.MotionConfig, setup core.Setup, rng Source) *Controller {
	t.Helper()
	c := NewController(m, config.DefaultWoodsConfig().Limits, rng)
	if err := c.Start(setup); err != nil {
		t.Fatalf("Start(%+v) error: %v", setup, err)
	}
	return c
}

func setup(tier, players, w, h int, protocol string) core.Setup {
	return core.Setup{Tier: tier, Players: players, GridW: w, GridH: h, Protocol: protocol}
}

func moveTo(a *Actor, x, y float64) {
	a.Pos = core.V(x, y)
	a.Anchor = a.Pos
}

func noInput() core.InputFrame {
	return core.NewInputFrame()
}

func press(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}
