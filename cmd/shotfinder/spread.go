package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

var (
	spreadFlags shotFlags
	flagWidth   float64
	flagMisses  bool
)

var spreadCmd = &cobra.Command{
	Use:   "spread <level>",
	Short: "Measure how many angles around a center come to rest",
	Long: `Shoot every 0.1° across a band of the given width centered on the
angle, then the center itself, and report the share of shots that came to
rest on the course.

Examples:
  shotfinder spread 3_7 -a 42.3
  shotfinder spread 3_7 -a 42.3 -s 5 --misses`,
	Args: cobra.ExactArgs(1),
	RunE: runSpread,
}

func init() {
	spreadFlags.register(spreadCmd)
	spreadCmd.Flags().Float64VarP(&flagWidth, "spread", "s", 0, "Band width in degrees (default from config)")
	spreadCmd.Flags().BoolVar(&flagMisses, "misses", false, "List the angles that did not come to rest")
}

func runSpread(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd, args[0], &spreadFlags)
	if err != nil {
		return err
	}
	return spread(s)
}

func spread(s *session) error {
	width := s.cfg.Search.SpreadWidth
	if flagWidth > 0 {
		width = flagWidth
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rep, err := s.engine().Spread(ctx, s.cfg.Search.Angle, width)
	if err != nil {
		return err
	}

	fmt.Printf("%s: %.1f° ± %.2f°, %d/%d at rest (%.1f%%)\n",
		s.lvl.ID, rep.Center, rep.Width/2, rep.Steps-rep.Failures, rep.Steps, rep.Rate()*100)
	fmt.Printf("Center: %s\n", rep.CenterShot)
	if flagMisses {
		for _, o := range rep.Outcomes {
			if !o.Reason.Resting() {
				fmt.Printf("  miss %.1f° %s\n", o.Angle, o.Reason)
			}
		}
	}
	return nil
}
