package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-woods/internal/batch"
	"github.com/vovakirdan/tui-woods/internal/storage"
)

var (
	flagRuns     int
	flagCSV      string
	flagMaxTicks int
)

var simCmd = &cobra.Command{
	Use:   "sim <level>",
	Short: "Run headless simulations and report timings",
	Long: `Run the given grade level many times without a terminal UI.

Players on levels 3-5 and 6-8 keep their start corners. Each run is timed
in simulated seconds at the --fps tick rate; a summary of completed runs is
printed at the end.

Examples:
  woods sim k-2 --runs 200
  woods sim 6-8 --players 4 --width 10 --height 10 --protocol every-other
  woods sim 3-5 --runs 50 --csv runs.csv
  woods sim 3-5 --csv - --seed 7 > runs.csv`,
	Args: cobra.ExactArgs(1),
	RunE: runSim,
}

func init() {
	addSetupFlags(simCmd)
	simCmd.Flags().IntVar(&flagRuns, "runs", 10, "Number of runs")
	simCmd.Flags().StringVar(&flagCSV, "csv", "", "Write per-run records as CSV to this file (- for stdout)")
	simCmd.Flags().IntVar(&flagMaxTicks, "max-ticks", 0, "Give up on a run after this many ticks (0 = one simulated hour)")
}

func runSim(cmd *cobra.Command, args []string) error {
	woodsCfg := loadConfig()
	setup, err := setupFromFlags(cmd, args[0], woodsCfg)
	if err != nil {
		return err
	}

	opts := batch.DefaultOptions()
	opts.Setup = setup
	opts.Runs = flagRuns
	opts.TickRate = flagFPS
	opts.MaxTicks = flagMaxTicks
	opts.Config = woodsCfg
	opts.Seed = flagSeed
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}

	store, err := storage.Open()
	if err != nil {
		logger.Warn("could not open run log", "error", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	runner, err := batch.NewRunner(opts, logger, store)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("simulating", "level", args[0], "runs", opts.Runs, "players", setup.Players,
		"grid", fmt.Sprintf("%dx%d", setup.GridW, setup.GridH), "protocol", setup.Protocol, "seed", opts.Seed)

	start := time.Now()
	records, runErr := runner.Run(ctx)
	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		return runErr
	}
	if runErr != nil {
		logger.Warn("interrupted", "completed", len(records))
	}
	logger.Debug("batch finished", "wall", time.Since(start).Round(time.Millisecond))

	// The summary goes to stderr when stdout carries the CSV.
	var out io.Writer = os.Stdout
	if flagCSV != "" {
		if err := writeRecords(flagCSV, records); err != nil {
			return err
		}
		if flagCSV == "-" {
			out = os.Stderr
		}
	}

	summary, err := batch.Summarize(records)
	if err != nil {
		return err
	}
	batch.WriteSummary(out, summary)
	return nil
}

func writeRecords(path string, records []batch.Record) error {
	if path == "-" {
		return batch.WriteCSV(os.Stdout, records)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating csv: %w", err)
	}
	if err := batch.WriteCSV(f, records); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing csv: %w", err)
	}
	logger.Info("wrote runs", "path", path, "records", len(records))
	return nil
}
