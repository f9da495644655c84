package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/shotfinder/internal/search"
	"github.com/vovakirdan/shotfinder/internal/storage"
)

var (
	solveFlags  shotFlags
	flagTrials  int
	flagSpreads int
	flagNoSave  bool
)

var solveCmd = &cobra.Command{
	Use:   "solve <level>",
	Short: "Sweep launch angles and store the recommended one",
	Long: `Run one shot per 0.1° from the start angle, then rank bands of
neighbouring angles by their summed score. The center of the narrowest
band is stored in results.json under the level and power, and the run is
recorded in the history database.

Ctrl+C stops the sweep; the angles simulated so far are still ranked.

Examples:
  shotfinder solve 3_7
  shotfinder solve 3_7 -a -20 --trials 900
  shotfinder solve levels/3_7.json -p sticky --tier 12`,
	Args: cobra.ExactArgs(1),
	RunE: runSolve,
}

func init() {
	solveFlags.register(solveCmd)
	solveCmd.Flags().IntVar(&flagTrials, "trials", 0, "Number of angles to simulate (default from config)")
	solveCmd.Flags().IntVar(&flagSpreads, "spreads", 10, "Number of bands to print")
	solveCmd.Flags().BoolVar(&flagNoSave, "no-save", false, "Do not write results.json or history")
}

func runSolve(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd, args[0], &solveFlags)
	if err != nil {
		return err
	}
	if flagTrials > 0 {
		s.cfg.Search.Trials = flagTrials
	}
	return solve(s)
}

func solve(s *session) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	started := time.Now()
	res, err := s.engine().Sweep(ctx, s.cfg.Search.Angle)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	if err != nil {
		s.logger.Warn("sweep interrupted", "trials", res.Trials)
		res.Spreads = s.engine().Spreads(res.Scores, res.Start)
	}
	elapsed := time.Since(started)

	fmt.Printf("%s: %d angles from %.1f° in %s\n", s.lvl.ID, res.Trials, res.Start, elapsed.Round(time.Millisecond))
	if res.Best != nil {
		fmt.Printf("Best: %s\n", res.Best)
	} else {
		fmt.Println("Best: no angle reached the target")
	}
	printSpreads(res.Spreads, flagSpreads)

	rec, ok := res.Recommended()
	if !ok {
		fmt.Println("No band fits in the sweep; nothing stored.")
	}
	if flagNoSave {
		return nil
	}

	key := storage.PowerKey(s.powerUp, s.power)
	if ok {
		results, err := storage.LoadResults(s.cfg.Storage.Results)
		if err != nil {
			return err
		}
		results.Put(s.lvl.Course, s.lvl.Name, key, rec.Angle)
		if err := results.Save(); err != nil {
			return err
		}
		fmt.Printf("Stored %.1f° for course %s level %s (%s) in %s\n", rec.Angle, s.lvl.Course, s.lvl.Name, key, results.Path())
	}

	recordRun(s, res, rec.Angle, elapsed)
	return nil
}

func printSpreads(spreads []search.Spread, limit int) {
	if len(spreads) == 0 || limit <= 0 {
		return
	}
	fmt.Println()
	fmt.Printf("  %-7s  %-8s  %s\n", "Width", "Angle", "Sum")
	fmt.Printf("  %-7s  %-8s  %s\n", "-----", "-----", "---")
	for i, sp := range spreads {
		if i == limit {
			fmt.Printf("  ... %d more\n", len(spreads)-limit)
			break
		}
		fmt.Printf("  %-7.1f  %-8.1f  %.0f\n", float64(sp.Width)/10, sp.Angle, sp.Sum)
	}
	fmt.Println()
}

// recordRun writes the sweep to the history database. History is optional:
// failures are logged and the command still succeeds.
func recordRun(s *session, res *search.Result, recommended float64, elapsed time.Duration) {
	store, err := storage.Open(s.cfg.Storage.Database)
	if err != nil {
		s.logger.Warn("could not open history database", "err", err)
		return
	}
	defer store.Close()

	run := storage.Run{
		LevelID:     s.lvl.ID,
		Course:      s.lvl.Course,
		Level:       s.lvl.Name,
		PowerUp:     s.powerUp.String(),
		Power:       s.power,
		Target:      s.cfg.Search.Target,
		Start:       res.Start,
		Trials:      res.Trials,
		Recommended: recommended,
		Elapsed:     elapsed,
	}
	if res.Best != nil {
		run.HasBest = true
		run.BestAngle = res.Best.Angle
		run.BestScore = res.Best.Score
		run.BestReason = res.Best.Reason.String()
	}
	id, err := store.SaveRun(run)
	if err != nil {
		s.logger.Warn("could not record run", "err", err)
		return
	}

	rows := make([]storage.SpreadRow, len(res.Spreads))
	for i, sp := range res.Spreads {
		rows[i] = storage.SpreadRow{RunID: id, Width: sp.Width, Angle: sp.Angle, Sum: sp.Sum}
	}
	if err := store.SaveSpreads(id, rows); err != nil {
		s.logger.Warn("could not record spreads", "err", err)
		return
	}
	s.logger.Debug("run recorded", "id", id, "spreads", len(rows))
}
