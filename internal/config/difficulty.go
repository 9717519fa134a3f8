package config

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-woods/internal/core"
)

// Tier is a grade-band difficulty tier. It decides which setup fields the
// player may change and whether actors are placed by hand.
type Tier int

const (
	TierK2    Tier = 1 // Grades K-2
	Tier3to5  Tier = 2 // Grades 3-5
	Tier6to8  Tier = 3 // Grades 6-8
	tierCount      = 3
)

// AllTiers lists the tiers in menu order.
func AllTiers() []Tier {
	return []Tier{TierK2, Tier3to5, Tier6to8}
}

// ID returns the registry identifier of the tier.
func (t Tier) ID() string {
	switch t {
	case TierK2:
		return "grades-k2"
	case Tier3to5:
		return "grades-3-5"
	case Tier6to8:
		return "grades-6-8"
	default:
		return "unknown"
	}
}

// Title returns the display name of the tier.
func (t Tier) Title() string {
	switch t {
	case TierK2:
		return "Grades K-2"
	case Tier3to5:
		return "Grades 3-5"
	case Tier6to8:
		return "Grades 6-8"
	default:
		return "Unknown"
	}
}

// ManualPlacement reports whether actors are placed by the player before a run.
func (t Tier) ManualPlacement() bool {
	return t == Tier3to5 || t == Tier6to8
}

// ChoosesPlayers reports whether the player count is selectable.
func (t Tier) ChoosesPlayers() bool {
	return t == Tier3to5 || t == Tier6to8
}

// ChoosesGrid reports whether the grid size is selectable.
func (t Tier) ChoosesGrid() bool {
	return t == Tier3to5 || t == Tier6to8
}

// ChoosesProtocol reports whether the wandering protocol is selectable.
func (t Tier) ChoosesProtocol() bool {
	return t == Tier6to8
}

// Valid reports whether t names a known tier.
func (t Tier) Valid() bool {
	return t >= TierK2 && t <= tierCount
}

// ParseTier accepts a tier number ("1"), registry id ("grades-3-5") or grade
// band ("k-2", "3-5", "6-8").
func ParseTier(s string) (Tier, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.TrimPrefix(key, "grades-")
	key = strings.TrimPrefix(key, "grades ")
	switch key {
	case "1", "k2", "k-2":
		return TierK2, nil
	case "2", "3-5", "35":
		return Tier3to5, nil
	case "3", "6-8", "68":
		return Tier6to8, nil
	}
	return 0, fmt.Errorf("unknown tier %q", s)
}

// ApplyTierPreset forces the setup fields a tier does not let the player choose.
// Fields the tier leaves open are kept as given.
func ApplyTierPreset(s *core.Setup, t Tier) {
	s.Tier = int(t)
	if !t.ChoosesPlayers() {
		s.Players = 2
	}
	if !t.ChoosesGrid() {
		s.GridW = 5
		s.GridH = 5
	}
	if !t.ChoosesProtocol() {
		s.Protocol = ProtocolRandom
	}
}
