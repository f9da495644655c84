package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var shootFlags shotFlags

var shootCmd = &cobra.Command{
	Use:   "shoot <level>",
	Short: "Simulate one shot and print the outcome",
	Long: `Simulate a single shot at the given angle and print how it ended:
the reason, the final ball position, the number of cycles and the score.

Examples:
  shotfinder shoot 3_7 -a 42.3
  shotfinder shoot 3_7 -a 42.3 -p shield --target swish`,
	Args: cobra.ExactArgs(1),
	RunE: runShoot,
}

func init() {
	shootFlags.register(shootCmd)
}

func runShoot(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd, args[0], &shootFlags)
	if err != nil {
		return err
	}
	return shootOnce(s)
}

func shootOnce(s *session) error {
	o := s.sim.Shoot(s.cfg.Search.Angle)
	fmt.Printf("%s (%s, %.1f N): %s\n", s.lvl.ID, s.powerUp, s.power, o)
	if o.Teleports > 0 {
		fmt.Printf("Teleports: %d\n", o.Teleports)
	}
	return nil
}
