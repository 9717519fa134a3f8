package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-woods/internal/config"
	"github.com/vovakirdan/tui-woods/internal/core"
)

// Run setup flags shared by play and sim.
var (
	flagPlayers  int
	flagWidth    int
	flagHeight   int
	flagProtocol string
)

func addSetupFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&flagPlayers, "players", 0, "Number of players, 2-4 (levels 3-5 and 6-8)")
	cmd.Flags().IntVar(&flagWidth, "width", 0, "Grid width in cells (levels 3-5 and 6-8)")
	cmd.Flags().IntVar(&flagHeight, "height", 0, "Grid height in cells (levels 3-5 and 6-8)")
	cmd.Flags().StringVar(&flagProtocol, "protocol", "", "Wandering protocol: random, every-other (level 6-8)")
}

// setupFromFlags builds the run setup for the level named in arg, starting
// from the configured defaults. Flags the level does not allow are ignored
// with a warning.
func setupFromFlags(cmd *cobra.Command, arg string, cfg config.WoodsConfig) (core.Setup, error) {
	tier, err := config.ParseTier(arg)
	if err != nil {
		return core.Setup{}, err
	}

	s := cfg.Run.Setup()
	f := cmd.Flags()
	if f.Changed("players") {
		if !tier.ChoosesPlayers() {
			logger.Warn("level fixes the player count", "level", tier.ID())
		}
		s.Players = flagPlayers
	}
	if f.Changed("width") || f.Changed("height") {
		if !tier.ChoosesGrid() {
			logger.Warn("level fixes the grid size", "level", tier.ID())
		}
		if f.Changed("width") {
			s.GridW = flagWidth
		}
		if f.Changed("height") {
			s.GridH = flagHeight
		}
	}
	if f.Changed("protocol") {
		if !tier.ChoosesProtocol() {
			logger.Warn("level fixes the wandering protocol", "level", tier.ID())
		}
		s.Protocol = flagProtocol
	}

	config.ApplyTierPreset(&s, tier)
	if err := config.ValidateSetup(s, cfg.Limits); err != nil {
		return core.Setup{}, err
	}
	return s, nil
}
