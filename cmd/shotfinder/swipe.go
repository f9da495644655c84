package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/shotfinder/internal/core"
	"github.com/vovakirdan/shotfinder/internal/device"
	"github.com/vovakirdan/shotfinder/internal/storage"
)

var (
	swipeAngle   float64
	swipePowerUp string
	swipePower   float64
	swipeTier    int
	swipeSerial  string
	flagDryRun   bool
)

var swipeCmd = &cobra.Command{
	Use:   "swipe [<course> <level>]",
	Short: "Perform a shot on a phone over adb",
	Long: `Look up the stored angle of a level for the chosen power and swipe it
on the connected phone. With --angle the lookup is skipped.

Examples:
  shotfinder swipe 3 7
  shotfinder swipe 3 7 -p sticky --tier 12
  shotfinder swipe --angle 42.3 --power 41.1 --dry-run`,
	Args: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("angle") {
			return cobra.NoArgs(cmd, args)
		}
		return cobra.ExactArgs(2)(cmd, args)
	},
	RunE: runSwipe,
}

func init() {
	swipeCmd.Flags().Float64VarP(&swipeAngle, "angle", "a", 0, "Swipe this angle instead of a stored one")
	swipeCmd.Flags().StringVarP(&swipePowerUp, "powerup", "p", "regular", "Power-up the angle was solved for: "+powerUpNames())
	swipeCmd.Flags().Float64VarP(&swipePower, "power", "n", 0, "Shot power in newtons (overrides --tier)")
	swipeCmd.Flags().IntVarP(&swipeTier, "tier", "t", 0, "Power tier 1..13 (default from config)")
	swipeCmd.Flags().StringVar(&swipeSerial, "serial", "", "adb device serial (default from config)")
	swipeCmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "Print the adb command instead of running it")
}

func runSwipe(cmd *cobra.Command, args []string) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if swipeSerial != "" {
		cfg.Device.Serial = swipeSerial
	}

	p, err := core.ParsePowerUp(swipePowerUp)
	if err != nil {
		return err
	}
	tier := cfg.Search.Tier
	if swipeTier > 0 {
		tier = swipeTier
	}
	newtons := cfg.Search.Power
	if cmd.Flags().Changed("power") || swipeTier > 0 {
		newtons = swipePower
	}
	power, err := cfg.Powers.Resolve(p, tier, newtons)
	if err != nil {
		return err
	}

	angle := swipeAngle
	if len(args) == 2 {
		results, err := storage.LoadResults(cfg.Storage.Results)
		if err != nil {
			return err
		}
		key := storage.PowerKey(p, power)
		angle, err = results.Get(args[0], args[1], key)
		if errors.Is(err, storage.ErrNoResult) {
			return fmt.Errorf("no stored angle for course %s level %s at %s; run 'shotfinder solve %s_%s' first",
				args[0], args[1], key, args[0], args[1])
		}
		if err != nil {
			return err
		}
	}

	g, err := device.PivotFromConfig(cfg.Device).Swipe(angle, power)
	if err != nil {
		return err
	}
	logger.Info("swipe", "angle", angle, "power", power, "from", fmt.Sprintf("%.0f,%.0f", g.X1, g.Y1), "to", fmt.Sprintf("%.0f,%.0f", g.X2, g.Y2))

	var opts []device.Option
	if flagDryRun {
		opts = append(opts, device.WithDryRun(os.Stdout))
	}
	adb := device.NewADB(cfg.Device, logger.WithPrefix("adb"), opts...)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return adb.Swipe(ctx, g)
}
