package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/shotfinder/internal/scoring"
)

var targetsCmd = &cobra.Command{
	Use:   "targets",
	Short: "List scoring targets",
	Long: `List the scoring targets accepted by --target. A shot that comes to
rest is scored by how far it is from what the target wants; timed targets
also favor shorter shots.`,
	Args: cobra.NoArgs,
	Run:  runTargets,
}

func runTargets(_ *cobra.Command, _ []string) {
	fmt.Println("Scoring targets:")
	fmt.Println()
	for _, t := range scoring.List() {
		timed := ""
		if t.Timed {
			timed = " (timed)"
		}
		fmt.Printf("  %-12s %s%s\n", t.Name, t.Summary, timed)
	}
	fmt.Println()
	fmt.Println("Use: shotfinder solve <level> --target <name>")
}
