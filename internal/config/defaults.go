package config

import (
	_ "embed"
)

//go:embed defaults/chase.yaml
var defaultChaseYAML []byte

// DefaultChaseConfig returns the built-in chase configuration.
// It must stay in sync with defaults/chase.yaml.
func DefaultChaseConfig() ChaseConfig {
	return ChaseConfig{
		World: WorldConfig{
			Width:       960,
			Height:      600,
			GridSpacing: 60,
		},
		Timing: TimingConfig{
			MaxDelta: 0.033,
		},
		Player: PlayerConfig{
			Radius:          16,
			Speed:           220,
			StartX:          0.25,
			StartY:          0.5,
			BoostMultiplier: 1.9,
			BoostDuration:   1.1,
		},
		Pursuer: PursuerConfig{
			Radius:    22,
			BaseSpeed: 140,
			StartX:    0.75,
			StartY:    0.5,
		},
		Items: ItemsConfig{
			InitialRadius:     14,
			BaseRadius:        12,
			PulseAmplitude:    2,
			PulseRate:         4,
			SpawnPadding:      40,
			SpawnIntervalMin:  6,
			SpawnIntervalSpan: 4,
			FirstSpawnDelay:   0,
		},
		Scoring: ScoringConfig{
			PointsPerSecond: 100,
			CaptureMargin:   4,
			BestKey:         "tj-best-score",
		},
		Trail: TrailConfig{
			MaxPoints:  40,
			Life:       0.5,
			AlphaScale: 0.8,
			SizeScale:  1.8,
			MinSize:    1.5,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:        "time",
				RampSeconds: 60,
			},
			Penalty: PenaltyConfig{
				PerItem: 0.04,
				Max:     0.4,
			},
		},
		Input: InputConfig{
			HoldMs:       220,
			BoostLatchMs: 250,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultChaseYAML
}
