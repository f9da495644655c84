package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/shotfinder/internal/levels"
)

var levelsCmd = &cobra.Command{
	Use:   "levels [dir]",
	Short: "List loadable levels",
	Long: `List every level file in a directory (default: --levels) that parses
and validates, followed by the files that were skipped.

Examples:
  shotfinder levels
  shotfinder levels ./exports`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLevels,
}

func runLevels(_ *cobra.Command, args []string) error {
	dir := flagLevelsDir
	if len(args) == 1 {
		dir = args[0]
	}

	lvls, skipped, err := levels.NewLoader(dir).LoadAll()
	if err != nil {
		return err
	}

	fmt.Printf("Levels in %s:\n\n", dir)
	if len(lvls) == 0 {
		fmt.Println("  (none)")
	}
	for _, l := range lvls {
		fmt.Printf("  %-10s  %3d bodies  %2d magnets  gravity %-6g  start (%.0f, %.0f)  flag (%.0f, %.0f)\n",
			l.ID, len(l.Bodies), len(l.Magnets), l.Gravity, l.Start.X, l.Start.Y, l.Flag.X, l.Flag.Y)
	}
	if len(skipped) > 0 {
		fmt.Println()
		fmt.Println("Skipped:")
		for _, s := range skipped {
			fmt.Printf("  %s\n", s)
		}
	}
	return nil
}
