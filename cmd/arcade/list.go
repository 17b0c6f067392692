package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/minigame-arcade/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available games",
	Long:  `Shows the games registered in the arcade, grouped by category.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No games available.")
		return
	}

	// Calculate column widths
	maxIDLen, maxTitleLen := 2, 5 // "ID", "Title" headers
	for _, g := range games {
		maxIDLen = max(maxIDLen, len(g.ID))
		maxTitleLen = max(maxTitleLen, len(g.Title))
	}

	groups := registry.ByCategory()
	for _, cat := range registry.Categories() {
		if len(groups[cat]) == 0 {
			continue
		}
		fmt.Printf("%s:\n", cat)
		for _, g := range groups[cat] {
			fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, g.ID, maxTitleLen, g.Title, g.Description)
		}
		fmt.Println()
	}

	fmt.Println("Run 'arcade play <id>' to play a game.")
}
