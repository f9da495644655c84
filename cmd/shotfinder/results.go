package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/shotfinder/internal/core"
	"github.com/vovakirdan/shotfinder/internal/platform/tui"
	"github.com/vovakirdan/shotfinder/internal/storage"
)

var (
	flagBoard   bool
	flagHistory bool
	flagLimit   int
)

var resultsCmd = &cobra.Command{
	Use:   "results [course]",
	Short: "Show stored angles and run history",
	Long: `List the angles stored in results.json, optionally for one course.

With --history, list the most recent sweeps from the history database
instead. With --tui, browse the stored angles course by course.

Examples:
  shotfinder results
  shotfinder results 3
  shotfinder results --history --limit 5
  shotfinder results --tui`,
	Args: cobra.MaximumNArgs(1),
	RunE: runResults,
}

func init() {
	resultsCmd.Flags().BoolVar(&flagBoard, "tui", false, "Browse results in the terminal")
	resultsCmd.Flags().BoolVar(&flagHistory, "history", false, "List recent sweeps")
	resultsCmd.Flags().IntVar(&flagLimit, "limit", 20, "Number of sweeps to list with --history")
}

func runResults(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	course := ""
	if len(args) == 1 {
		course = args[0]
	}

	if flagHistory {
		return printHistory(cfg.Storage.Database, course)
	}

	results, err := storage.LoadResults(cfg.Storage.Results)
	if err != nil {
		return err
	}

	if flagBoard {
		width, height := 80, 24 // Defaults
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width = w
			height = h
		}
		// The board works without history.
		store, err := storage.Open(cfg.Storage.Database)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not open history database: %v\n", err)
			store = nil
		}
		runErr := tui.RunBoard(results, store, width, height)
		if store != nil {
			store.Close()
		}
		return runErr
	}

	entries := results.Entries(course)
	if len(entries) == 0 {
		fmt.Println("No results recorded yet.")
		fmt.Println()
		fmt.Println("Run 'shotfinder solve <level>' to store the first angle.")
		return nil
	}

	fmt.Printf("Results - %s\n\n", results.Path())
	fmt.Printf("  %-6s  %-6s  %-14s  %s\n", "Course", "Level", "Power", "Angle")
	fmt.Printf("  %-6s  %-6s  %-14s  %s\n", "------", "-----", "-----", "-----")
	for _, e := range entries {
		fmt.Printf("  %-6s  %-6s  %-14s  %.1f\n", e.Course, e.Level, e.Key, e.Angle)
	}
	return nil
}

func powerKey(r storage.Run) string {
	p, err := core.ParsePowerUp(r.PowerUp)
	if err != nil {
		return r.PowerUp
	}
	return storage.PowerKey(p, r.Power)
}

func printHistory(dbPath, course string) error {
	store, err := storage.Open(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.RecentRuns("", flagLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No sweeps recorded yet.")
		return nil
	}

	fmt.Printf("  %-8s  %-8s  %-14s  %-7s  %-8s  %-12s  %s\n", "Level", "Trials", "Power", "Angle", "Best", "Reason", "Date")
	fmt.Printf("  %-8s  %-8s  %-14s  %-7s  %-8s  %-12s  %s\n", "-----", "------", "-----", "-----", "----", "------", "----")
	for _, r := range runs {
		if course != "" && r.Course != course {
			continue
		}
		best, reason := "-", "-"
		if r.HasBest {
			best = fmt.Sprintf("%.1f", r.BestAngle)
			reason = r.BestReason
		}
		fmt.Printf("  %-8s  %-8d  %-14s  %-7.1f  %-8s  %-12s  %s\n",
			r.LevelID, r.Trials, powerKey(r), r.Recommended, best, reason,
			r.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}
