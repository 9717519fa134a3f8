package batch

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ErrNoCompletedRuns is returned by Summarize when no run completed.
var ErrNoCompletedRuns = errors.New("batch: no completed runs")

// Summary aggregates the completed runs of a batch.
type Summary struct {
	Runs       int
	Completed  int
	MeanTime   float64
	StdDevTime float64
	MedianTime float64
	MinTime    float64
	MaxTime    float64
	MeanMoves  float64
}

// Summarize computes timing statistics over the completed records.
func Summarize(records []Record) (Summary, error) {
	s := Summary{Runs: len(records)}

	var times, moves []float64
	for _, r := range records {
		if !r.Completed {
			continue
		}
		times = append(times, r.Elapsed)
		moves = append(moves, float64(r.TotalMoves))
	}
	s.Completed = len(times)
	if s.Completed == 0 {
		return s, ErrNoCompletedRuns
	}

	sort.Float64s(times)
	s.MeanTime, s.StdDevTime = stat.MeanStdDev(times, nil)
	if s.Completed < 2 {
		s.StdDevTime = 0
	}
	s.MedianTime = stat.Quantile(0.5, stat.Empirical, times, nil)
	s.MinTime = floats.Min(times)
	s.MaxTime = floats.Max(times)
	s.MeanMoves = stat.Mean(moves, nil)
	return s, nil
}

// WriteCSV writes records with a header row.
func WriteCSV(w io.Writer, records []Record) error {
	if err := gocsv.Marshal(records, w); err != nil {
		return fmt.Errorf("batch: writing csv: %w", err)
	}
	return nil
}

// WriteSummary prints a human-readable summary.
func WriteSummary(w io.Writer, s Summary) {
	fmt.Fprintf(w, "Runs:      %d (%d completed)\n", s.Runs, s.Completed)
	fmt.Fprintf(w, "Mean:      %.2fs (sd %.2fs)\n", s.MeanTime, s.StdDevTime)
	fmt.Fprintf(w, "Median:    %.2fs\n", s.MedianTime)
	fmt.Fprintf(w, "Range:     %.2fs - %.2fs\n", s.MinTime, s.MaxTime)
	fmt.Fprintf(w, "Avg moves: %.1f\n", s.MeanMoves)
}
