// woods is a terminal simulation of actors wandering a grid of woods until
// they find each other.
//
// Usage:
//
//	woods list               - List grade levels
//	woods play <level>       - Play one grade level
//	woods menu               - Set up runs interactively
//	woods sim <level>        - Run headless simulations and report timings
//	woods serve              - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>     - Set tick rate (default: 60)
//	--seed <value>   - Set RNG seed for reproducible runs
//	--config <path>  - Load a custom woods.yaml
//	--verbose        - Debug logging
package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-woods/internal/config"
	"github.com/vovakirdan/tui-woods/internal/games/woods"
)

var (
	// Global flags
	flagFPS     int
	flagSeed    int64
	flagConfig  string
	flagVerbose bool
)

var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	Prefix:          "woods",
})

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error("command failed", "error", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "woods",
	Short: "Wandering in the Woods - find each other in the terminal",
	Long: `Wandering in the Woods places two to four friends on a grid of trees.
They wander one cell at a time until everyone has found everyone else.

Available commands:
  list     - Show the grade levels
  play     - Play a grade level directly
  menu     - Interactive setup menu
  sim      - Headless batch runs with timing statistics
  serve    - Start SSH server for remote play

Examples:
  woods list
  woods play k-2
  woods play 6-8 --players 4 --width 8 --height 6 --protocol every-other
  woods menu
  woods sim 3-5 --runs 100 --csv runs.csv
  woods serve --ssh :2222`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if flagVerbose {
			logger.SetLevel(log.DebugLevel)
		}
		woods.SetConfigPath(flagConfig)
		woods.SetLogger(logger)
	},
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom woods config YAML")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(serveCmd)
}

// loadConfig loads the woods configuration, falling back to the defaults
// with a warning when the file cannot be used.
func loadConfig() config.WoodsConfig {
	cfg, err := config.LoadWoods(flagConfig)
	if err != nil {
		logger.Warn("using default configuration", "error", err)
		return config.DefaultWoodsConfig()
	}
	return cfg
}
