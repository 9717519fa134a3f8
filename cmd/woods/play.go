package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-woods/internal/config"
	"github.com/vovakirdan/tui-woods/internal/core"
	"github.com/vovakirdan/tui-woods/internal/platform/tui"
	"github.com/vovakirdan/tui-woods/internal/registry"
	"github.com/vovakirdan/tui-woods/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play <level>",
	Short: "Play a grade level",
	Long: `Start a run at the given grade level (k-2, 3-5 or 6-8).

Placement (levels 3-5 and 6-8):
  Arrows/WASD - Move the highlighted player
  Enter       - Place it and select the next one

Controls:
  P           - Pause
  R           - Reset (new run, keeps session statistics)
  M/Esc       - Quit to shell
  Q/Ctrl+C    - Quit
  Mouse       - Click the on-screen buttons

Examples:
  woods play k-2
  woods play 3-5 --players 3 --width 8 --height 8
  woods play 6-8 --protocol every-other --seed 42`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	addSetupFlags(playCmd)
}

func runPlay(cmd *cobra.Command, args []string) error {
	woodsCfg := loadConfig()
	setup, err := setupFromFlags(cmd, args[0], woodsCfg)
	if err != nil {
		return err
	}

	game, err := registry.Create(config.Tier(setup.Tier).ID())
	if err != nil {
		return err
	}

	width, height := terminalSize()
	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
		Setup:    setup,
	}

	store, err := storage.Open()
	if err != nil {
		logger.Warn("could not open run log", "error", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	if err := tui.Run(game, store, "local-"+uuid.NewString(), cfg); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}

// terminalSize returns the current terminal size, or 80x24 when unknown.
func terminalSize() (int, int) {
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		return w, h
	}
	return 80, 24
}
