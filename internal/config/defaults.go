package config

import (
	_ "embed"
)

//go:embed defaults/woods.yaml
var defaultWoodsYAML []byte

// DefaultWoodsConfig returns the hardcoded woods configuration.
// It matches defaults/woods.yaml and is used when the embedded file cannot be parsed.
func DefaultWoodsConfig() WoodsConfig {
	return WoodsConfig{
		Motion: MotionConfig{
			CellSize:          64,
			Speed:             200,
			Footprint:         64,
			DecisionInterval:  2.0,
			PlacementDebounce: 0.3,
			MaxStep:           0.25,
		},
		Run: RunDefaults{
			Tier:     int(TierK2),
			Players:  2,
			Width:    5,
			Height:   5,
			Protocol: ProtocolRandom,
		},
		Limits: Limits{
			MinPlayers: 2,
			MaxPlayers: 4,
			MinCells:   2,
			MaxCells:   12,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultWoodsYAML
}
