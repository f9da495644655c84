// shotfinder searches launch angles for physics golf levels.
//
// Usage:
//
//	shotfinder solve <level>           - Sweep angles and store the most forgiving one
//	shotfinder shoot <level> -a 42     - Simulate one shot and print the outcome
//	shotfinder show <level> -a 42      - Replay one shot in the terminal
//	shotfinder spread <level> -a 42    - Check how wide the safe band around an angle is
//	shotfinder run <level> --mode ...  - Any of the above by mode name
//	shotfinder results [course]        - Show stored angles and run history
//	shotfinder swipe <course> <level>  - Send the stored shot to a phone over adb
//	shotfinder levels [dir]            - List loadable levels
//	shotfinder targets                 - List scoring targets
//
// Global flags:
//
//	--config <path>     - Solver config YAML
//	--log-level <lvl>   - debug, info, warn or error (default: info)
//	--db <path>         - Run history database (default: from config)
//	--results <path>    - results.json path (default: from config)
//	--levels <dir>      - Level directory (default: ./levels)
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/shotfinder/internal/config"
)

var (
	// Global flags
	flagConfig      string
	flagLogLevel    string
	flagDBPath      string
	flagResultsPath string
	flagLevelsDir   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "shotfinder",
	Short: "Find launch angles for physics golf levels",
	Long: `shotfinder simulates shots on a golf level, sweeps launch angles in
0.1° steps and picks the angle with the widest margin of error.

Available commands:
  solve    - Headless sweep, stores the recommended angle
  shoot    - One shot, outcome printed
  show     - One shot, replayed in the terminal
  spread   - Success rate of a band of angles
  run      - Any of the four above, selected by --mode
  results  - Stored angles and run history
  swipe    - Perform a stored shot on a phone
  levels   - List levels
  targets  - List scoring targets

Examples:
  shotfinder solve 3_7 --power 41.1
  shotfinder show levels/3_7.json -a 42.3
  shotfinder spread 3_7 -a 42.3 -s 3.5
  shotfinder swipe 3 7 --dry-run`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to solver config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to run history database (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagResultsPath, "results", "", "Path to results.json (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagLevelsDir, "levels", "levels", "Directory of level files")

	rootCmd.AddCommand(solveCmd)
	rootCmd.AddCommand(shootCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(spreadCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(resultsCmd)
	rootCmd.AddCommand(swipeCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(targetsCmd)
}

// newLogger builds the process logger at the --log-level level.
func newLogger() (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "shotfinder",
		Level:           level,
	})
	return logger, nil
}

// loadConfig loads the solver config and applies the storage path flags.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.Config{}, err
	}
	if flagDBPath != "" {
		cfg.Storage.Database = flagDBPath
	}
	if flagResultsPath != "" {
		cfg.Storage.Results = flagResultsPath
	}
	return cfg, nil
}
