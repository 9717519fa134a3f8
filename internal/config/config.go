// Package config provides YAML-based configuration loading, tier presets and
// run setup validation for the woods simulation.
package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-woods/internal/core"
)

// Wandering protocol names as they appear in YAML and on the command line.
const (
	ProtocolRandom     = "random"
	ProtocolEveryOther = "every-other"
)

// ErrInvalidSetup is returned when a run setup violates the configured limits.
var ErrInvalidSetup = errors.New("invalid run setup")

// Hard bounds for Limits. There are four start corners, and boards
// beyond twelve cells do not fit a terminal.
const (
	MinPlayers = 2
	MaxPlayers = 4
	MinCells   = 2
	MaxCells   = 12
)

// WoodsConfig contains all configuration for the woods simulation.
type WoodsConfig struct {
	Motion MotionConfig `yaml:"motion"`
	Run    RunDefaults  `yaml:"run"`
	Limits Limits       `yaml:"limits"`
}

// MotionConfig defines actor movement parameters.
type MotionConfig struct {
	CellSize          float64 `yaml:"cell_size"`
	Speed             float64 `yaml:"speed"`
	Footprint         float64 `yaml:"footprint"`
	DecisionInterval  float64 `yaml:"decision_interval"`
	PlacementDebounce float64 `yaml:"placement_debounce"`
	MaxStep           float64 `yaml:"max_step"`
}

// RunDefaults is the setup used when neither flags nor the menu choose one.
type RunDefaults struct {
	Tier     int    `yaml:"tier"`
	Players  int    `yaml:"players"`
	Width    int    `yaml:"width"`
	Height   int    `yaml:"height"`
	Protocol string `yaml:"protocol"`
}

// Limits bounds the values a run setup may take.
type Limits struct {
	MinPlayers int `yaml:"min_players"`
	MaxPlayers int `yaml:"max_players"`
	MinCells   int `yaml:"min_cells"`
	MaxCells   int `yaml:"max_cells"`
}

// Setup converts the run defaults into a core.Setup.
func (r RunDefaults) Setup() core.Setup {
	return core.Setup{
		Tier:     r.Tier,
		Players:  r.Players,
		GridW:    r.Width,
		GridH:    r.Height,
		Protocol: r.Protocol,
	}
}

// Validate checks the motion parameters and limits for usable values.
func (c WoodsConfig) Validate() error {
	m := c.Motion
	switch {
	case m.CellSize <= 0:
		return fmt.Errorf("config: motion.cell_size must be positive, got %v", m.CellSize)
	case m.Speed <= 0:
		return fmt.Errorf("config: motion.speed must be positive, got %v", m.Speed)
	case m.Footprint <= 0:
		return fmt.Errorf("config: motion.footprint must be positive, got %v", m.Footprint)
	case m.DecisionInterval <= 0:
		return fmt.Errorf("config: motion.decision_interval must be positive, got %v", m.DecisionInterval)
	case m.PlacementDebounce < 0:
		return fmt.Errorf("config: motion.placement_debounce must not be negative, got %v", m.PlacementDebounce)
	case m.MaxStep <= 0:
		return fmt.Errorf("config: motion.max_step must be positive, got %v", m.MaxStep)
	}

	l := c.Limits
	if l.MinPlayers < MinPlayers || l.MaxPlayers > MaxPlayers || l.MaxPlayers < l.MinPlayers {
		return fmt.Errorf("config: limits.players range [%d, %d] is not usable", l.MinPlayers, l.MaxPlayers)
	}
	if l.MinCells < MinCells || l.MaxCells > MaxCells || l.MaxCells < l.MinCells {
		return fmt.Errorf("config: limits.cells range [%d, %d] is not usable", l.MinCells, l.MaxCells)
	}
	return nil
}

// ValidateSetup checks a run setup against the limits.
// The returned error wraps ErrInvalidSetup.
func ValidateSetup(s core.Setup, l Limits) error {
	if !Tier(s.Tier).Valid() {
		return fmt.Errorf("%w: unknown tier %d", ErrInvalidSetup, s.Tier)
	}
	if s.Players < l.MinPlayers || s.Players > l.MaxPlayers {
		return fmt.Errorf("%w: players must be %d-%d, got %d", ErrInvalidSetup, l.MinPlayers, l.MaxPlayers, s.Players)
	}
	if s.GridW < l.MinCells || s.GridW > l.MaxCells {
		return fmt.Errorf("%w: width must be %d-%d cells, got %d", ErrInvalidSetup, l.MinCells, l.MaxCells, s.GridW)
	}
	if s.GridH < l.MinCells || s.GridH > l.MaxCells {
		return fmt.Errorf("%w: height must be %d-%d cells, got %d", ErrInvalidSetup, l.MinCells, l.MaxCells, s.GridH)
	}
	if s.Protocol != ProtocolRandom && s.Protocol != ProtocolEveryOther {
		return fmt.Errorf("%w: unknown wandering protocol %q", ErrInvalidSetup, s.Protocol)
	}
	return nil
}
