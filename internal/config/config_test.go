package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/tui-woods/internal/core"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := parseWoods(DefaultYAML())
	if err != nil {
		t.Fatalf("parseWoods(embedded) error: %v", err)
	}
	if cfg != DefaultWoodsConfig() {
		t.Errorf("embedded config = %+v, expected %+v", cfg, DefaultWoodsConfig())
	}
}

func TestLoadWoodsCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "woods.yaml")
	data := []byte("motion:\n  speed: 320\nrun:\n  players: 3\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadWoods(path)
	if err != nil {
		t.Fatalf("LoadWoods() error: %v", err)
	}
	if cfg.Motion.Speed != 320 {
		t.Errorf("Motion.Speed = %v, expected 320", cfg.Motion.Speed)
	}
	if cfg.Run.Players != 3 {
		t.Errorf("Run.Players = %d, expected 3", cfg.Run.Players)
	}
	// Keys absent from the file keep their defaults.
	if cfg.Motion.CellSize != 64 {
		t.Errorf("Motion.CellSize = %v, expected 64", cfg.Motion.CellSize)
	}
	if cfg.Limits.MaxCells != 12 {
		t.Errorf("Limits.MaxCells = %d, expected 12", cfg.Limits.MaxCells)
	}
}

func TestLoadWoodsErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadWoods(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("LoadWoods(missing) expected error")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("motion: [1, 2"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadWoods(bad); err == nil {
		t.Error("LoadWoods(bad yaml) expected error")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("motion:\n  speed: -1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadWoods(invalid); err == nil {
		t.Error("LoadWoods(negative speed) expected error")
	}

	wide := filepath.Join(dir, "wide.yaml")
	if err := os.WriteFile(wide, []byte("limits:\n  max_players: 6\n  max_cells: 40\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadWoods(wide); err == nil {
		t.Error("LoadWoods(limits past the hard bounds) expected error")
	}
}

func TestLoadWoodsUserDirectory(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfgDir := filepath.Join(home, ".woods", "configs")
	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(cfgDir, "woods.yaml"), []byte("run:\n  width: 9\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadWoods("")
	if err != nil {
		t.Fatalf("LoadWoods() error: %v", err)
	}
	if cfg.Run.Width != 9 {
		t.Errorf("Run.Width = %d, expected 9", cfg.Run.Width)
	}
}

func TestValidateSetup(t *testing.T) {
	limits := DefaultWoodsConfig().Limits

	tests := []struct {
		name  string
		setup core.Setup
		ok    bool
	}{
		{"default", core.Setup{Tier: 1, Players: 2, GridW: 5, GridH: 5, Protocol: ProtocolRandom}, true},
		{"max", core.Setup{Tier: 3, Players: 4, GridW: 12, GridH: 12, Protocol: ProtocolEveryOther}, true},
		{"min grid", core.Setup{Tier: 2, Players: 3, GridW: 2, GridH: 2, Protocol: ProtocolRandom}, true},
		{"bad tier", core.Setup{Tier: 4, Players: 2, GridW: 5, GridH: 5, Protocol: ProtocolRandom}, false},
		{"one player", core.Setup{Tier: 1, Players: 1, GridW: 5, GridH: 5, Protocol: ProtocolRandom}, false},
		{"five players", core.Setup{Tier: 3, Players: 5, GridW: 5, GridH: 5, Protocol: ProtocolRandom}, false},
		{"narrow", core.Setup{Tier: 3, Players: 2, GridW: 1, GridH: 5, Protocol: ProtocolRandom}, false},
		{"tall", core.Setup{Tier: 3, Players: 2, GridW: 5, GridH: 13, Protocol: ProtocolRandom}, false},
		{"bad protocol", core.Setup{Tier: 3, Players: 2, GridW: 5, GridH: 5, Protocol: "spiral"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSetup(tt.setup, limits)
			if tt.ok && err != nil {
				t.Errorf("ValidateSetup() = %v, expected nil", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalidSetup) {
				t.Errorf("ValidateSetup() = %v, expected ErrInvalidSetup", err)
			}
		})
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultWoodsConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default Validate() = %v", err)
	}

	limits := []struct {
		name   string
		limits Limits
	}{
		{"max_players below min", Limits{MinPlayers: 2, MaxPlayers: 1, MinCells: 2, MaxCells: 12}},
		{"max_players above four", Limits{MinPlayers: 2, MaxPlayers: 6, MinCells: 2, MaxCells: 12}},
		{"min_players below two", Limits{MinPlayers: 1, MaxPlayers: 4, MinCells: 2, MaxCells: 12}},
		{"max_cells above twelve", Limits{MinPlayers: 2, MaxPlayers: 4, MinCells: 2, MaxCells: 40}},
		{"min_cells below two", Limits{MinPlayers: 2, MaxPlayers: 4, MinCells: 1, MaxCells: 12}},
	}
	for _, tt := range limits {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultWoodsConfig()
			cfg.Limits = tt.limits
			if err := cfg.Validate(); err == nil {
				t.Errorf("Validate() with %+v expected error", tt.limits)
			}
		})
	}

	cfg = DefaultWoodsConfig()
	cfg.Motion.DecisionInterval = 0
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() with zero decision_interval expected error")
	}
}
