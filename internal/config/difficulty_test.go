package config

import (
	"testing"

	"github.com/vovakirdan/tui-woods/internal/core"
)

func TestParseTier(t *testing.T) {
	tests := []struct {
		in       string
		expected Tier
		ok       bool
	}{
		{"1", TierK2, true},
		{"k-2", TierK2, true},
		{"grades-k2", TierK2, true},
		{"2", Tier3to5, true},
		{"Grades-3-5", Tier3to5, true},
		{"3", Tier6to8, true},
		{" 6-8 ", Tier6to8, true},
		{"4", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTier(tt.in)
			if tt.ok != (err == nil) {
				t.Fatalf("ParseTier(%q) error = %v, expected ok=%v", tt.in, err, tt.ok)
			}
			if got != tt.expected {
				t.Errorf("ParseTier(%q) = %v, expected %v", tt.in, got, tt.expected)
			}
		})
	}
}

func TestTierIDsRoundTrip(t *testing.T) {
	for _, tier := range AllTiers() {
		got, err := ParseTier(tier.ID())
		if err != nil || got != tier {
			t.Errorf("ParseTier(%q) = %v, %v, expected %v", tier.ID(), got, err, tier)
		}
	}
}

func TestApplyTierPreset(t *testing.T) {
	custom := core.Setup{Players: 4, GridW: 9, GridH: 7, Protocol: ProtocolEveryOther}

	tests := []struct {
		tier     Tier
		expected core.Setup
	}{
		{TierK2, core.Setup{Tier: 1, Players: 2, GridW: 5, GridH: 5, Protocol: ProtocolRandom}},
		{Tier3to5, core.Setup{Tier: 2, Players: 4, GridW: 9, GridH: 7, Protocol: ProtocolRandom}},
		{Tier6to8, core.Setup{Tier: 3, Players: 4, GridW: 9, GridH: 7, Protocol: ProtocolEveryOther}},
	}

	for _, tt := range tests {
		t.Run(tt.tier.ID(), func(t *testing.T) {
			s := custom
			ApplyTierPreset(&s, tt.tier)
			if s != tt.expected {
				t.Errorf("ApplyTierPreset() = %+v, expected %+v", s, tt.expected)
			}
		})
	}
}

func TestTierPlacement(t *testing.T) {
	if TierK2.ManualPlacement() {
		t.Error("TierK2.ManualPlacement() = true, expected false")
	}
	if !Tier3to5.ManualPlacement() || !Tier6to8.ManualPlacement() {
		t.Error("upper tiers should place actors manually")
	}
}
