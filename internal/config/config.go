// Package config provides YAML-based solver configuration: physics constants,
// ball and terrain materials, contact rule tuning, power tables, search
// budgets and the device swipe geometry.
package config

import "fmt"

// Config contains every tunable the solver reads.
type Config struct {
	Physics PhysicsConfig `yaml:"physics"`
	Ball    BallConfig    `yaml:"ball"`
	Terrain TerrainConfig `yaml:"terrain"`
	Rules   RulesConfig   `yaml:"rules"`
	Powers  PowerTables   `yaml:"powers"`
	Search  SearchConfig  `yaml:"search"`
	Device  DeviceConfig  `yaml:"device"`
	Storage StorageConfig `yaml:"storage"`
}

// PhysicsConfig defines the fixed-step loop and the launch transform.
type PhysicsConfig struct {
	Step            float64 `yaml:"step"`
	FastStep        float64 `yaml:"fast_step"`
	FastPowerAbove  float64 `yaml:"fast_power_above"` // power above which FastStep is used
	TimeFactor      float64 `yaml:"time_factor"`      // simulation clock advance per unit of step
	SettleStep      float64 `yaml:"settle_step"`
	TeleportSettle  float64 `yaml:"teleport_settle"`
	Iterations      int     `yaml:"iterations"`
	AngularDamping  float64 `yaml:"angular_damping"` // angular velocity is divided by this every tick
	MaxCycles       int     `yaml:"max_cycles"`
	StationaryTicks int     `yaml:"stationary_ticks"`
	StationarySpeed float64 `yaml:"stationary_speed"`
	PowerFactor     float64 `yaml:"power_factor"`
	PowerBaseline   float64 `yaml:"power_baseline"`
	LaunchLift      float64 `yaml:"launch_lift"` // ball starts this far above the start marker
}

// BallConfig defines the ball body and material.
type BallConfig struct {
	Mass       float64 `yaml:"mass"`
	Moment     float64 `yaml:"moment"`
	Radius     float64 `yaml:"radius"`
	Elasticity float64 `yaml:"elasticity"`
	Friction   float64 `yaml:"friction"`
}

// TerrainConfig defines surface materials and shape sizes.
type TerrainConfig struct {
	Elasticity         float64 `yaml:"elasticity"`
	SidewallElasticity float64 `yaml:"sidewall_elasticity"`
	Friction           float64 `yaml:"friction"`
	SegmentRadius      float64 `yaml:"segment_radius"`
	SandElasticity     float64 `yaml:"sand_elasticity"`
	SandFriction       float64 `yaml:"sand_friction"`
	WaterElasticity    float64 `yaml:"water_elasticity"`
	PortalElasticity   float64 `yaml:"portal_elasticity"`
	PortalFriction     float64 `yaml:"portal_friction"`
}

// RulesConfig tunes the contact rules and scoring.
type RulesConfig struct {
	GhostDistance float64 `yaml:"ghost_distance"`
	HoverFactor   float64 `yaml:"hover_factor"`
	MagnetScale   float64 `yaml:"magnet_scale"`
	TeleportPush  float64 `yaml:"teleport_push"` // in ball radii
	SwishDistance float64 `yaml:"swish_distance"`
	FailDistance  float64 `yaml:"fail_distance"` // squared into the failure score
	IgnoreSticky  bool    `yaml:"ignore_sticky"`
}

// SearchConfig defines the sweep defaults and the spread scan.
type SearchConfig struct {
	Angle        float64 `yaml:"angle"`
	Delay        float64 `yaml:"delay"`
	Target       string  `yaml:"target"`
	Power        float64 `yaml:"power"`
	Tier         int     `yaml:"tier"`
	Trials       int     `yaml:"trials"`
	TunnelTrials int     `yaml:"tunnel_trials"`
	SpreadMin    int     `yaml:"spread_min"` // tenths of a degree, inclusive
	SpreadMax    int     `yaml:"spread_max"` // tenths of a degree, exclusive
	Span         int     `yaml:"span"`       // keys scanned by the sliding window
	GapPenalty   float64 `yaml:"gap_penalty"`
	BestCutoff   float64 `yaml:"best_cutoff"`
	SpreadWidth  float64 `yaml:"spread_width"` // degrees, spread mode
}

// DeviceConfig defines the swipe pivot on the phone screen.
type DeviceConfig struct {
	CenterX        float64 `yaml:"center_x"`
	CenterY        float64 `yaml:"center_y"`
	Radius         float64 `yaml:"radius"`
	DurationMS     int     `yaml:"duration_ms"`
	ReferencePower float64 `yaml:"reference_power"`
	ADB            string  `yaml:"adb"`
	Serial         string  `yaml:"serial"`
}

// StorageConfig defines where results and history are kept.
type StorageConfig struct {
	Results  string `yaml:"results"`
	Database string `yaml:"database"`
}

// StepFor returns the physics step used for a shot of the given power.
func (p PhysicsConfig) StepFor(power float64) float64 {
	if p.FastStep > 0 && power > p.FastPowerAbove {
		return p.FastStep
	}
	return p.Step
}

// LaunchSpeed converts a power value to the ball's launch speed.
func (p PhysicsConfig) LaunchSpeed(power float64) float64 {
	return power*p.PowerFactor + p.PowerBaseline
}

// FailScore is the score of every outcome that did not come to rest.
func (r RulesConfig) FailScore() float64 {
	return r.FailDistance * r.FailDistance
}

// Validate checks the values the simulator divides by or loops on.
func (c Config) Validate() error {
	switch {
	case c.Physics.Step <= 0:
		return fmt.Errorf("config: physics.step must be positive, got %v", c.Physics.Step)
	case c.Physics.MaxCycles <= 0:
		return fmt.Errorf("config: physics.max_cycles must be positive, got %d", c.Physics.MaxCycles)
	case c.Physics.AngularDamping <= 0:
		return fmt.Errorf("config: physics.angular_damping must be positive, got %v", c.Physics.AngularDamping)
	case c.Ball.Mass <= 0 || c.Ball.Radius <= 0:
		return fmt.Errorf("config: ball mass and radius must be positive")
	case c.Search.Trials <= 0:
		return fmt.Errorf("config: search.trials must be positive, got %d", c.Search.Trials)
	case c.Search.SpreadMin <= 0 || c.Search.SpreadMax <= c.Search.SpreadMin:
		return fmt.Errorf("config: search spread range [%d, %d) is empty", c.Search.SpreadMin, c.Search.SpreadMax)
	case c.Search.Span < c.Search.SpreadMax:
		return fmt.Errorf("config: search.span %d is shorter than the widest spread %d", c.Search.Span, c.Search.SpreadMax)
	case c.Device.ReferencePower <= 0:
		return fmt.Errorf("config: device.reference_power must be positive")
	}
	return nil
}
