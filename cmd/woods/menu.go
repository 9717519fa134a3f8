package main

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-woods/internal/core"
	"github.com/vovakirdan/tui-woods/internal/platform/tui"
	"github.com/vovakirdan/tui-woods/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Set up runs with an interactive menu",
	Long: `Start in interactive menu mode.

Pick a grade level and, where the level allows it, the number of players,
the grid size and the wandering protocol. After a run, Menu returns here;
session statistics for each level are kept until you quit.

Controls:
  Up/Down/j/k     - Navigate
  Left/Right/h/l  - Change a value
  Enter/Space     - Start or select
  Tab             - Run log
  Q               - Quit

Examples:
  woods menu
  woods menu --fps 30
  woods menu --config ./woods.yaml`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	woodsCfg := loadConfig()

	store, err := storage.Open()
	if err != nil {
		logger.Warn("could not open run log", "error", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	width, height := terminalSize()
	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	// Only warnings reach the terminal while the alternate screen is active.
	sessionLogger := logger.WithPrefix("session")
	if !flagVerbose {
		sessionLogger.SetLevel(log.WarnLevel)
	}

	if err := tui.RunSession(store, woodsCfg, cfg, sessionLogger); err != nil {
		return fmt.Errorf("running menu: %w", err)
	}
	return nil
}
