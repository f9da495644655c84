package main

import (
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/shotfinder/internal/config"
	"github.com/vovakirdan/shotfinder/internal/core"
	"github.com/vovakirdan/shotfinder/internal/level"
	"github.com/vovakirdan/shotfinder/internal/levels"
	"github.com/vovakirdan/shotfinder/internal/scoring"
	"github.com/vovakirdan/shotfinder/internal/search"
	"github.com/vovakirdan/shotfinder/internal/shot"
)

// shotFlags are the shot options shared by the simulation commands. Flags
// left unset keep the config values.
type shotFlags struct {
	angle        float64
	powerUp      string
	power        float64
	tier         int
	target       string
	delay        float64
	ignoreSticky bool
}

func (f *shotFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.Float64VarP(&f.angle, "angle", "a", 0, "Launch angle in degrees (sweep start for solve)")
	fl.StringVarP(&f.powerUp, "powerup", "p", "regular", "Power-up: "+powerUpNames())
	fl.Float64VarP(&f.power, "power", "n", 0, "Shot power in newtons (overrides --tier)")
	fl.IntVarP(&f.tier, "tier", "t", 0, "Power tier 1..13")
	fl.StringVar(&f.target, "target", "", "Scoring target (see shotfinder targets)")
	fl.Float64Var(&f.delay, "delay", 0, "Simulation time the ball is held before launch")
	fl.BoolVar(&f.ignoreSticky, "ignore-sticky", false, "Treat sticky masks as plain terrain")
}

// apply copies the flags the user set into cfg.
func (f *shotFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	fl := cmd.Flags()
	if fl.Changed("angle") {
		cfg.Search.Angle = f.angle
	}
	if fl.Changed("power") {
		cfg.Search.Power = f.power
	}
	if fl.Changed("tier") {
		cfg.Search.Tier = f.tier
		if !fl.Changed("power") {
			cfg.Search.Power = 0
		}
	}
	if fl.Changed("target") {
		cfg.Search.Target = f.target
	}
	if fl.Changed("delay") {
		cfg.Search.Delay = f.delay
	}
	if fl.Changed("ignore-sticky") {
		cfg.Rules.IgnoreSticky = f.ignoreSticky
	}
}

func powerUpNames() string {
	names := make([]string, 0, len(core.PowerUps()))
	for _, p := range core.PowerUps() {
		names = append(names, p.String())
	}
	return strings.Join(names, ", ")
}

// session is a level loaded and ready to shoot.
type session struct {
	cfg     config.Config
	lvl     *level.Level
	powerUp core.PowerUp
	power   float64
	sim     *shot.Simulator
	logger  *log.Logger
}

// newSession loads the config and the level ref names, resolves the shot
// power and builds a simulator.
func newSession(cmd *cobra.Command, ref string, f *shotFlags) (*session, error) {
	logger, err := newLogger()
	if err != nil {
		return nil, err
	}
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	f.apply(cmd, &cfg)

	p, err := core.ParsePowerUp(f.powerUp)
	if err != nil {
		return nil, err
	}
	power, err := cfg.Powers.Resolve(p, cfg.Search.Tier, cfg.Search.Power)
	if err != nil {
		return nil, err
	}
	config.ApplyPowerUp(&cfg, p)

	target, err := scoring.Lookup(cfg.Search.Target)
	if err != nil {
		return nil, err
	}

	lvl, err := levels.NewLoader(flagLevelsDir).Resolve(ref)
	if err != nil {
		return nil, err
	}
	logger.Debug("level loaded", "id", lvl.ID, "file", lvl.FilePath, "bodies", len(lvl.Bodies))

	opts := shot.Options{Power: power, PowerUp: p, Delay: cfg.Search.Delay, Target: target}
	sim, err := shot.New(cfg, &lvl, opts, logger.WithPrefix("shot"))
	if err != nil {
		return nil, err
	}
	return &session{cfg: cfg, lvl: &lvl, powerUp: p, power: power, sim: sim, logger: logger}, nil
}

func (s *session) engine() *search.Engine {
	return search.NewEngine(s.sim, s.cfg.Search, s.logger.WithPrefix("search"))
}
