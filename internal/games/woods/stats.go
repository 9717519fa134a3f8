package woods

// BestRun is the configuration and time of the fastest completed run.
type BestRun struct {
	Time     float64
	Protocol Protocol
	Width    int // cells
	Height   int // cells
}

// SessionStats aggregates completed runs within one process lifetime.
type SessionStats struct {
	Runs      int
	TotalTime float64
	Best      BestRun
	hasBest   bool
}

// RecordCompletedRun folds one completed run into the totals and replaces
// the best run when elapsed is strictly faster.
func (s *SessionStats) RecordCompletedRun(elapsed float64, p Protocol, width, height int) {
	s.Runs++
	s.TotalTime += elapsed
	if !s.hasBest || elapsed < s.Best.Time {
		s.Best = BestRun{Time: elapsed, Protocol: p, Width: width, Height: height}
		s.hasBest = true
	}
}

// AverageTime returns TotalTime / Runs, or 0 before the first run.
func (s SessionStats) AverageTime() float64 {
	if s.Runs == 0 {
		return 0
	}
	return s.TotalTime / float64(s.Runs)
}

// HasBest reports whether a best run has been recorded.
func (s SessionStats) HasBest() bool {
	return s.hasBest
}
