// Package batch runs many headless simulations back to back and reports
// per-run records and aggregate timing statistics.
package batch

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-woods/internal/config"
	"github.com/vovakirdan/tui-woods/internal/core"
	"github.com/vovakirdan/tui-woods/internal/games/woods"
	"github.com/vovakirdan/tui-woods/internal/storage"
)

// Options controls a batch of runs.
type Options struct {
	Setup    core.Setup
	Runs     int
	Seed     int64
	TickRate int // simulated ticks per second
	MaxTicks int // per run; runs that exceed it are recorded as incomplete
	Config   config.WoodsConfig
}

// DefaultOptions returns options for ten default runs at 60 ticks per second.
func DefaultOptions() Options {
	cfg := config.DefaultWoodsConfig()
	return Options{
		Setup:    cfg.Run.Setup(),
		Runs:     10,
		Seed:     1,
		TickRate: 60,
		MaxTicks: 60 * 60 * 60, // one simulated hour
		Config:   cfg,
	}
}

// Record is one run of a batch, written as a CSV row.
type Record struct {
	Run        int     `csv:"run"`
	RunID      string  `csv:"run_id"`
	Tier       int     `csv:"tier"`
	Players    int     `csv:"players"`
	Width      int     `csv:"width"`
	Height     int     `csv:"height"`
	Protocol   string  `csv:"protocol"`
	Completed  bool    `csv:"completed"`
	Elapsed    float64 `csv:"elapsed_s"`
	Ticks      int     `csv:"ticks"`
	TotalMoves int     `csv:"total_moves"`
	Moves      string  `csv:"moves"`
}

// Runner drives a woods controller through a batch of runs.
type Runner struct {
	opts      Options
	ctrl      *woods.Controller
	logger    *log.Logger
	store     *storage.Store
	sessionID string
}

// NewRunner validates the options and prepares a controller.
// store may be nil, in which case runs are not logged.
func NewRunner(opts Options, logger *log.Logger, store *storage.Store) (*Runner, error) {
	if opts.Runs <= 0 {
		return nil, fmt.Errorf("batch: runs must be positive, got %d", opts.Runs)
	}
	if opts.TickRate <= 0 {
		opts.TickRate = 60
	}
	if opts.MaxTicks <= 0 {
		opts.MaxTicks = DefaultOptions().MaxTicks
	}
	if err := config.ValidateSetup(opts.Setup, opts.Config.Limits); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.Default()
	}

	return &Runner{
		opts:      opts,
		ctrl:      woods.NewController(opts.Config.Motion, opts.Config.Limits, woods.NewSource(opts.Seed)),
		logger:    logger.WithPrefix("batch"),
		store:     store,
		sessionID: "batch-" + uuid.NewString(),
	}, nil
}

// Run executes the batch. It stops early with ctx.Err() when ctx is cancelled,
// returning the records gathered so far.
func (r *Runner) Run(ctx context.Context) ([]Record, error) {
	records := make([]Record, 0, r.opts.Runs)
	dt := 1 / float64(r.opts.TickRate)

	for i := 1; i <= r.opts.Runs; i++ {
		if err := ctx.Err(); err != nil {
			return records, err
		}
		if err := r.begin(); err != nil {
			return records, err
		}

		rec, err := r.simulate(ctx, i, dt)
		if err != nil {
			return records, err
		}
		records = append(records, rec)
	}
	return records, nil
}

func (r *Runner) begin() error {
	if r.ctrl.Phase() == woods.PhaseNotStarted {
		return r.ctrl.Start(r.opts.Setup)
	}
	return r.ctrl.ResetRun(r.opts.Setup)
}

// simulate plays one run to completion. Manual tiers keep their start
// corners: confirm is held until every actor is placed.
func (r *Runner) simulate(ctx context.Context, n int, dt float64) (Record, error) {
	confirm := core.NewInputFrame()
	confirm.Set(core.ActionConfirm)
	idle := core.NewInputFrame()

	for r.ctrl.Phase() == woods.PhaseAwaitingPlacement {
		r.ctrl.Tick(dt, confirm)
	}

	for tick := 0; tick < r.opts.MaxTicks; tick++ {
		if tick%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return Record{}, err
			}
		}
		if sum := r.ctrl.Tick(dt, idle); sum != nil {
			return r.record(n, *sum)
		}
	}

	r.logger.Warn("run did not complete", "run", n, "ticks", r.opts.MaxTicks)
	s := r.ctrl.Setup()
	return Record{
		Run:      n,
		RunID:    r.ctrl.RunID(),
		Tier:     s.Tier,
		Players:  s.Players,
		Width:    s.GridW,
		Height:   s.GridH,
		Protocol: s.Protocol,
		Elapsed:  r.ctrl.GameTime(),
		Ticks:    r.ctrl.Ticks(),
	}, nil
}

func (r *Runner) record(n int, sum core.RunSummary) (Record, error) {
	r.logger.Debug("run complete", "run", n, "elapsed", sum.Elapsed, "moves", sum.TotalMoves())

	if r.store != nil {
		gameID := config.Tier(sum.Tier).ID()
		if _, err := r.store.SaveRun(r.sessionID, gameID, sum); err != nil {
			return Record{}, fmt.Errorf("batch: %w", err)
		}
	}

	return Record{
		Run:        n,
		RunID:      sum.RunID,
		Tier:       sum.Tier,
		Players:    sum.Players,
		Width:      sum.GridW,
		Height:     sum.GridH,
		Protocol:   sum.Protocol,
		Completed:  true,
		Elapsed:    sum.Elapsed,
		Ticks:      sum.Ticks,
		TotalMoves: sum.TotalMoves(),
		Moves:      formatMoves(sum.Moves),
	}, nil
}

// Stats returns the session statistics accumulated by the batch.
func (r *Runner) Stats() woods.SessionStats {
	return r.ctrl.Stats()
}

// SessionID returns the id the batch logs its runs under.
func (r *Runner) SessionID() string {
	return r.sessionID
}

func formatMoves(moves []int) string {
	parts := make([]string, len(moves))
	for i, m := range moves {
		parts[i] = strconv.Itoa(m)
	}
	return strings.Join(parts, " ")
}
