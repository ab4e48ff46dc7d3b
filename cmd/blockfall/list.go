package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockfall/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all game modes",
	Long:  `Shows the registered game modes with the name to pass to play.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No modes available.")
		return
	}

	modes := make(map[string]string, len(modeIDs))
	for name, id := range modeIDs {
		modes[id] = name
	}

	fmt.Println("Available modes:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, g := range games {
		maxIDLen = max(maxIDLen, len(g.ID))
	}

	fmt.Printf("  %-8s  %-*s  %s\n", "Mode", maxIDLen, "ID", "Title")
	fmt.Printf("  %-8s  %-*s  %s\n", "----", maxIDLen, "--", "-----")
	for _, g := range games {
		fmt.Printf("  %-8s  %-*s  %s\n", modes[g.ID], maxIDLen, g.ID, g.Title)
	}

	fmt.Println()
	fmt.Println("Run 'blockfall play <mode>' to play.")
}
