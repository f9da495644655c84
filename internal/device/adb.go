package device

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/shotfinder/internal/config"
)

// Runner executes an external command.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// ADB sends gestures to a phone with `adb shell`.
type ADB struct {
	path   string
	serial string
	dryRun bool
	out    io.Writer
	runner Runner
	logger *log.Logger
}

// Option configures an ADB.
type Option func(*ADB)

// WithRunner replaces the command runner.
func WithRunner(r Runner) Option {
	return func(a *ADB) { a.runner = r }
}

// WithDryRun prints commands to out instead of running them.
func WithDryRun(out io.Writer) Option {
	return func(a *ADB) {
		a.dryRun = true
		a.out = out
	}
}

// NewADB creates a client for the configured adb binary and device serial.
// A nil logger discards.
func NewADB(cfg config.DeviceConfig, logger *log.Logger, opts ...Option) *ADB {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	path := cfg.ADB
	if path == "" {
		path = "adb"
	}
	a := &ADB{path: path, serial: cfg.Serial, runner: execRunner{}, out: io.Discard, logger: logger}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Command returns the full command line for a gesture.
func (a *ADB) Command(g Gesture) []string {
	argv := []string{a.path}
	if a.serial != "" {
		argv = append(argv, "-s", a.serial)
	}
	argv = append(argv, "shell")
	return append(argv, g.Args()...)
}

// Swipe performs the gesture on the device.
func (a *ADB) Swipe(ctx context.Context, g Gesture) error {
	argv := a.Command(g)
	line := strings.Join(argv, " ")
	if a.dryRun {
		_, err := fmt.Fprintln(a.out, line)
		return err
	}

	a.logger.Debug("running adb", "cmd", line)
	out, err := a.runner.Run(ctx, argv[0], argv[1:]...)
	if err != nil {
		msg := strings.TrimSpace(string(out))
		if msg != "" {
			return fmt.Errorf("device: %s: %w: %s", line, err, msg)
		}
		return fmt.Errorf("device: %s: %w", line, err)
	}
	a.logger.Info("swiped", "from", fmt.Sprintf("%.0f,%.0f", g.X1, g.Y1), "to", fmt.Sprintf("%.0f,%.0f", g.X2, g.Y2))
	return nil
}
