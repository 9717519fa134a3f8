package batch

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-woods/internal/config"
	"github.com/vovakirdan/tui-woods/internal/core"
	"github.com/vovakirdan/tui-woods/internal/storage"
)

func smallOptions(tier, players int) Options {
	opts := DefaultOptions()
	opts.Setup = core.Setup{Tier: tier, Players: players, GridW: 2, GridH: 2, Protocol: config.ProtocolRandom}
	opts.Runs = 5
	opts.Seed = 3
	return opts
}

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func TestRunnerCompletesRuns(t *testing.T) {
	store, err := storage.Open()
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	r, err := NewRunner(smallOptions(1, 2), quietLogger(), store)
	if err != nil {
		t.Fatalf("NewRunner() error: %v", err)
	}
	records, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	if len(records) != 5 {
		t.Fatalf("len(records) = %d, expected 5", len(records))
	}
	for i, rec := range records {
		if rec.Run != i+1 || !rec.Completed || rec.RunID == "" {
			t.Errorf("records[%d] = %+v, expected completed run %d", i, rec, i+1)
		}
	}
	if r.Stats().Runs != 5 {
		t.Errorf("Stats().Runs = %d, expected 5", r.Stats().Runs)
	}

	logged, err := store.RunsBySession(r.SessionID(), 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(logged) != 5 {
		t.Errorf("store holds %d runs for the batch session, expected 5", len(logged))
	}
}

func TestRunnerPlacesManualTiers(t *testing.T) {
	r, err := NewRunner(smallOptions(2, 3), quietLogger(), nil)
	if err != nil {
		t.Fatalf("NewRunner() error: %v", err)
	}
	records, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	for i, rec := range records {
		if !rec.Completed || rec.Players != 3 {
			t.Errorf("records[%d] = %+v, expected a completed 3-player run", i, rec)
		}
	}
}

func TestRunnerDeterministic(t *testing.T) {
	run := func() []Record {
		r, err := NewRunner(smallOptions(1, 2), quietLogger(), nil)
		if err != nil {
			t.Fatal(err)
		}
		records, err := r.Run(context.Background())
		if err != nil {
			t.Fatal(err)
		}
		return records
	}

	a, b := run(), run()
	for i := range a {
		if a[i].Elapsed != b[i].Elapsed || a[i].Moves != b[i].Moves {
			t.Errorf("run %d diverged: %+v vs %+v", i+1, a[i], b[i])
		}
	}
}

func TestRunnerHonorsCancel(t *testing.T) {
	r, err := NewRunner(smallOptions(1, 2), quietLogger(), nil)
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	records, err := r.Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, expected context.Canceled", err)
	}
	if len(records) != 0 {
		t.Errorf("len(records) = %d, expected 0", len(records))
	}
}

func TestRunnerIncompleteRun(t *testing.T) {
	opts := smallOptions(1, 2)
	opts.Runs = 1
	opts.MaxTicks = 1
	r, err := NewRunner(opts, quietLogger(), nil)
	if err != nil {
		t.Fatal(err)
	}
	records, err := r.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 || records[0].Completed {
		t.Errorf("records = %+v, expected one incomplete run", records)
	}
}

func TestRunnerReportsStalledEveryOtherRuns(t *testing.T) {
	// Every-other runs can stall forever, so a capped run is reported
	// as incomplete data rather than failing the batch.
	var buf bytes.Buffer
	opts := smallOptions(3, 2)
	opts.Setup.GridW, opts.Setup.GridH = 5, 4
	opts.Setup.Protocol = config.ProtocolEveryOther
	opts.Runs = 3
	opts.MaxTicks = 10
	r, err := NewRunner(opts, log.New(&buf), nil)
	if err != nil {
		t.Fatal(err)
	}
	records, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("len(records) = %d, expected 3", len(records))
	}
	for _, rec := range records {
		if rec.Completed || rec.Protocol != config.ProtocolEveryOther || rec.Ticks != 10 {
			t.Errorf("record = %+v, expected an incomplete every-other run capped at 10 ticks", rec)
		}
	}
	if got := strings.Count(buf.String(), "run did not complete"); got != 3 {
		t.Errorf("incomplete warnings = %d, expected 3", got)
	}
	if _, err := Summarize(records); !errors.Is(err, ErrNoCompletedRuns) {
		t.Errorf("Summarize() = %v, expected ErrNoCompletedRuns", err)
	}
}

func TestNewRunnerRejectsBadOptions(t *testing.T) {
	opts := smallOptions(1, 2)
	opts.Runs = 0
	if _, err := NewRunner(opts, quietLogger(), nil); err == nil {
		t.Error("NewRunner() with zero runs expected error")
	}

	opts = smallOptions(1, 2)
	opts.Setup.Players = 9
	if _, err := NewRunner(opts, quietLogger(), nil); !errors.Is(err, config.ErrInvalidSetup) {
		t.Errorf("NewRunner() = %v, expected ErrInvalidSetup", err)
	}
}

func TestSummarize(t *testing.T) {
	records := []Record{
		{Completed: true, Elapsed: 4, TotalMoves: 2},
		{Completed: true, Elapsed: 2, TotalMoves: 4},
		{Completed: false, Elapsed: 100},
		{Completed: true, Elapsed: 6, TotalMoves: 6},
	}

	s, err := Summarize(records)
	if err != nil {
		t.Fatalf("Summarize() error: %v", err)
	}
	if s.Runs != 4 || s.Completed != 3 {
		t.Errorf("Runs = %d Completed = %d, expected 4 and 3", s.Runs, s.Completed)
	}
	if s.MeanTime != 4 || s.MinTime != 2 || s.MaxTime != 6 || s.MedianTime != 4 {
		t.Errorf("summary = %+v, expected mean 4, min 2, max 6, median 4", s)
	}
	if s.StdDevTime != 2 {
		t.Errorf("StdDevTime = %v, expected 2", s.StdDevTime)
	}
	if s.MeanMoves != 4 {
		t.Errorf("MeanMoves = %v, expected 4", s.MeanMoves)
	}

	if _, err := Summarize([]Record{{Completed: false}}); !errors.Is(err, ErrNoCompletedRuns) {
		t.Errorf("Summarize(no completed) = %v, expected ErrNoCompletedRuns", err)
	}

	single, err := Summarize([]Record{{Completed: true, Elapsed: 3}})
	if err != nil || single.StdDevTime != 0 {
		t.Errorf("Summarize(single) = %+v, %v, expected zero deviation", single, err)
	}
}

func TestWriteCSV(t *testing.T) {
	records := []Record{
		{Run: 1, RunID: "a", Tier: 1, Players: 2, Width: 5, Height: 5, Protocol: "random", Completed: true, Elapsed: 1.5, Moves: "1 2", TotalMoves: 3},
		{Run: 2, RunID: "b", Tier: 1, Players: 2, Width: 5, Height: 5, Protocol: "random", Completed: true, Elapsed: 2.5, Moves: "0 4", TotalMoves: 4},
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, records); err != nil {
		t.Fatalf("WriteCSV() error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, expected header and 2 rows:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "run,run_id,tier,players,width,height,protocol,completed,elapsed_s") {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "1,a,1,2,5,5,random,true,1.5") {
		t.Errorf("first row = %q", lines[1])
	}
}
