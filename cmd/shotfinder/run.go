package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/shotfinder/internal/core"
)

var (
	runFlags shotFlags
	flagMode string
)

var runCmd = &cobra.Command{
	Use:   "run <level>",
	Short: "Run a level in the given mode",
	Long: `Run a level in one of the solver modes:

  single    - one shot, outcome printed (alias: sim)
  show      - one shot, replayed in the terminal
  headless  - full sweep, results stored (default)
  spread    - success rate of a band around the angle

Examples:
  shotfinder run 3_7 --mode single -a 42.3
  shotfinder run 3_7`,
	Args: cobra.ExactArgs(1),
	RunE: runMode,
}

func init() {
	runFlags.register(runCmd)
	runCmd.Flags().StringVarP(&flagMode, "mode", "m", "headless", "Mode: single, show, headless, spread")
	runCmd.Flags().IntVar(&flagFPS, "fps", core.DefaultConfig().TickRate, "Replay frames per second (show)")
	runCmd.Flags().IntVar(&flagStride, "stride", core.DefaultConfig().Stride, "Simulation ticks per frame (show)")
	runCmd.Flags().Float64VarP(&flagWidth, "spread", "s", 0, "Band width in degrees (spread)")
}

func runMode(cmd *cobra.Command, args []string) error {
	mode, err := core.ParseMode(flagMode)
	if err != nil {
		return err
	}
	s, err := newSession(cmd, args[0], &runFlags)
	if err != nil {
		return err
	}
	switch mode {
	case core.ModeSingle:
		return shootOnce(s)
	case core.ModeShow:
		return show(s)
	case core.ModeSpread:
		return spread(s)
	default:
		return solve(s)
	}
}
