package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-woods/internal/config"
	"github.com/vovakirdan/tui-woods/internal/core"
	"github.com/vovakirdan/tui-woods/internal/storage"
)

var keyShiftTab = tea.KeyMsg{Type: tea.KeyShiftTab}

func TestRunLogTabs(t *testing.T) {
	store, err := storage.Open()
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	runs := []struct {
		game    string
		elapsed float64
		proto   string
	}{
		{config.TierK2.ID(), 12, config.ProtocolRandom},
		{config.TierK2.ID(), 8, config.ProtocolRandom},
		{config.Tier6to8.ID(), 5, config.ProtocolEveryOther},
	}
	for i, r := range runs {
		sum := core.RunSummary{
			RunID:    strings.Repeat("r", i+1),
			Players:  2,
			GridW:    5,
			GridH:    5,
			Protocol: r.proto,
			Elapsed:  r.elapsed,
			Moves:    []int{1, 2},
		}
		if _, err := store.SaveRun("s", r.game, sum); err != nil {
			t.Fatal(err)
		}
	}

	m := NewRunLogModel(store, 100, 30)
	if got := len(m.Runs()); got != 3 {
		t.Fatalf("All tab shows %d runs, expected 3", got)
	}
	if m.Runs()[0].Elapsed != 5 {
		t.Errorf("fastest run = %v, expected 5", m.Runs()[0].Elapsed)
	}
	if !strings.Contains(m.summary, "Every Other") || !strings.Contains(m.summary, "Random") {
		t.Errorf("summary = %q, expected both protocols", m.summary)
	}

	next, _ := m.Update(keyTab)
	m = next.(RunLogModel)
	if got := len(m.Runs()); got != 2 {
		t.Errorf("K-2 tab shows %d runs, expected 2", got)
	}

	next, _ = m.Update(keyShiftTab)
	m = next.(RunLogModel)
	next, _ = m.Update(keyShiftTab)
	m = next.(RunLogModel)
	if got := len(m.Runs()); got != 1 {
		t.Errorf("6-8 tab shows %d runs, expected 1", got)
	}

	if !strings.Contains(m.View(), "RUN LOG") {
		t.Error("View() should show the title")
	}
}

func TestRunLogWithoutStore(t *testing.T) {
	m := NewRunLogModel(nil, 80, 24)
	if len(m.Runs()) != 0 {
		t.Errorf("Runs() = %v, expected none", m.Runs())
	}
	if !strings.Contains(m.View(), "No runs logged yet") {
		t.Error("View() should show the empty message")
	}
}
