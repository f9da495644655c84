package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/shotfinder/internal/core"
	"github.com/vovakirdan/shotfinder/internal/platform/tui"
)

var (
	showFlags  shotFlags
	flagFPS    int
	flagStride int
)

var showCmd = &cobra.Command{
	Use:   "show <level>",
	Short: "Replay one shot in the terminal",
	Long: `Simulate a single shot and draw it frame by frame.

Controls:
  Space/P    - Pause
  +/Right    - Faster
  -/Left     - Slower
  R          - Restart the shot
  Ctrl+S     - Save a text screenshot to ~/.shotfinder/screenshots
  Q/Ctrl+C   - Quit

Examples:
  shotfinder show 3_7 -a 42.3
  shotfinder show 3_7 -a 42.3 --fps 60 --stride 2`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	showFlags.register(showCmd)
	showCmd.Flags().IntVar(&flagFPS, "fps", core.DefaultConfig().TickRate, "Replay frames per second")
	showCmd.Flags().IntVar(&flagStride, "stride", core.DefaultConfig().Stride, "Simulation ticks per frame")
}

func runShow(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd, args[0], &showFlags)
	if err != nil {
		return err
	}
	return show(s)
}

func show(s *session) error {
	cfg := core.DefaultConfig()
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Stride = flagStride
	return tui.Run(s.sim, s.cfg.Search.Angle, cfg)
}
