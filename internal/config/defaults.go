package config

import (
	_ "embed"
)

//go:embed defaults/shotfinder.yaml
var defaultYAML []byte

var regularTable = []float64{25, 25.7, 26.5, 27.4, 28.4, 29.5, 30.7, 32.1, 33.6, 35.3, 37.1, 39, 41.1}
var maxp12Table = []float64{25, 25.7, 26.5, 27.4, 28.4, 29.5, 30.7, 32.1, 33.6, 35.3, 37.1, 39, 39}

// DefaultConfig returns the built-in configuration. It mirrors
// defaults/shotfinder.yaml and is used when the embedded file cannot be parsed.
func DefaultConfig() Config {
	return Config{
		Physics: PhysicsConfig{
			Step:            0.05,
			FastStep:        0.025,
			FastPowerAbove:  50,
			TimeFactor:      0.3333,
			SettleStep:      1e-5,
			TeleportSettle:  1e-4,
			Iterations:      10,
			AngularDamping:  1.1,
			MaxCycles:       2000,
			StationaryTicks: 100,
			StationarySpeed: 1e-3,
			PowerFactor:     1.35109,
			PowerBaseline:   39,
			LaunchLift:      5,
		},
		Ball: BallConfig{
			Mass:       1,
			Moment:     13.5,
			Radius:     5,
			Elasticity: 0.6,
			Friction:   0.7,
		},
		Terrain: TerrainConfig{
			Elasticity:         0.6,
			SidewallElasticity: 0.6,
			Friction:           0.5,
			SegmentRadius:      2,
			SandElasticity:     999,
			SandFriction:       999,
			WaterElasticity:    1.5,
			PortalElasticity:   999,
			PortalFriction:     999,
		},
		Rules: RulesConfig{
			GhostDistance: 15,
			HoverFactor:   0.033,
			MagnetScale:   10000,
			TeleportPush:  3,
			SwishDistance: 8.2,
			FailDistance:  1e8,
		},
		Powers: PowerTables{
			"regular":  regularTable,
			"maxp12":   maxp12Table,
			"super":    {54.1, 55.8, 57.7, 60, 62.4, 65.2, 68.3, 71.7, 75.5, 79.6, 84.1, 89, 89},
			"heavy":    {17.4, 17.8, 18.3, 18.9, 19.5, 20.2, 21, 21.8, 22.8, 23.8, 24.9, 26.1, 26.1},
			"saw":      {29.9, 30.7, 31.5, 32.5, 33.6, 34.8, 36.2, 37.7, 39.3, 41.1, 43, 45.1, 45.1},
			"sticky":   maxp12Table,
			"shield":   maxp12Table,
			"tunnel":   maxp12Table,
			"antigrav": regularTable,
		},
		Search: SearchConfig{
			Angle:        0,
			Delay:        3.05,
			Target:       "distance",
			Tier:         13,
			Trials:       1800,
			TunnelTrials: 3600,
			SpreadMin:    35,
			SpreadMax:    360,
			Span:         1700,
			GapPenalty:   99999,
			BestCutoff:   1e10,
			SpreadWidth:  3.5,
		},
		Device: DeviceConfig{
			CenterX:        360,
			CenterY:        1073,
			Radius:         400,
			DurationMS:     100,
			ReferencePower: 41.1,
			ADB:            "adb",
		},
		Storage: StorageConfig{
			Results:  "results.json",
			Database: "~/.shotfinder/history.db",
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
