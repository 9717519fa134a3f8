package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-woods/internal/config"
	"github.com/vovakirdan/tui-woods/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the grade levels",
	Long:  `Shows every grade level and what it lets the player choose.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No levels available.")
		return
	}

	fmt.Println("Grade levels:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, g := range games {
		maxIDLen = max(maxIDLen, len(g.ID))
	}

	fmt.Printf("  %-*s  %-12s  %s\n", maxIDLen, "ID", "Title", "Setup")
	fmt.Printf("  %-*s  %-12s  %s\n", maxIDLen, "--", "-----", "-----")

	for _, g := range games {
		setup := ""
		if tier, err := config.ParseTier(g.ID); err == nil {
			setup = describeTier(tier)
		}
		fmt.Printf("  %-*s  %-12s  %s\n", maxIDLen, g.ID, g.Title, setup)
	}

	fmt.Println()
	fmt.Println("Run 'woods play <id>' to play a level.")
}

func describeTier(t config.Tier) string {
	if !t.ChoosesPlayers() {
		return "2 players, 5x5 grid, placed in the corners"
	}
	s := "choose players and grid, place each player"
	if t.ChoosesProtocol() {
		s += ", choose wandering"
	}
	return s
}
