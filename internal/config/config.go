// Package config provides YAML-based tuning for the chase game and
// difficulty management on top of it.
package config

import (
	"fmt"
	"strings"
)

// ChaseConfig contains all tunables for a chase session.
type ChaseConfig struct {
	World      WorldConfig      `yaml:"world"`
	Timing     TimingConfig     `yaml:"timing"`
	Player     PlayerConfig     `yaml:"player"`
	Pursuer    PursuerConfig    `yaml:"pursuer"`
	Items      ItemsConfig      `yaml:"items"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	Trail      TrailConfig      `yaml:"trail"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
	Input      InputConfig      `yaml:"input"`
}

// WorldConfig defines the playfield in world units.
type WorldConfig struct {
	Width       float64 `yaml:"width"`
	Height      float64 `yaml:"height"`
	GridSpacing float64 `yaml:"grid_spacing"`
}

// TimingConfig bounds the per-frame delta.
type TimingConfig struct {
	MaxDelta float64 `yaml:"max_delta"` // seconds
}

// PlayerConfig defines the mouse.
type PlayerConfig struct {
	Radius          float64 `yaml:"radius"`
	Speed           float64 `yaml:"speed"`            // world units per second
	StartX          float64 `yaml:"start_x"`          // fraction of world width
	StartY          float64 `yaml:"start_y"`          // fraction of world height
	BoostMultiplier float64 `yaml:"boost_multiplier"` // speed factor while boosting
	BoostDuration   float64 `yaml:"boost_duration"`   // seconds per cheese spent
}

// PursuerConfig defines the cat.
type PursuerConfig struct {
	Radius    float64 `yaml:"radius"`
	BaseSpeed float64 `yaml:"base_speed"`
	StartX    float64 `yaml:"start_x"`
	StartY    float64 `yaml:"start_y"`
}

// ItemsConfig defines cheese spawning and the pulse animation.
type ItemsConfig struct {
	InitialRadius     float64 `yaml:"initial_radius"`
	BaseRadius        float64 `yaml:"base_radius"`
	PulseAmplitude    float64 `yaml:"pulse_amplitude"`
	PulseRate         float64 `yaml:"pulse_rate"` // radians per second
	SpawnPadding      float64 `yaml:"spawn_padding"`
	SpawnIntervalMin  float64 `yaml:"spawn_interval_min"`  // seconds
	SpawnIntervalSpan float64 `yaml:"spawn_interval_span"` // seconds, uniform on top of min
	FirstSpawnDelay   float64 `yaml:"first_spawn_delay"`   // seconds after start
}

// ScoringConfig defines score accrual, capture leniency and the best-score key.
type ScoringConfig struct {
	PointsPerSecond float64 `yaml:"points_per_second"`
	CaptureMargin   float64 `yaml:"capture_margin"`
	BestKey         string  `yaml:"best_key"`
}

// TrailConfig defines the fading position history.
type TrailConfig struct {
	MaxPoints  int     `yaml:"max_points"`
	Life       float64 `yaml:"life"` // seconds
	AlphaScale float64 `yaml:"alpha_scale"`
	SizeScale  float64 `yaml:"size_scale"`
	MinSize    float64 `yaml:"min_size"`
}

// InputConfig controls how terminal key presses become held actions.
type InputConfig struct {
	HoldMs       int `yaml:"hold_ms"`        // a movement key counts as held this long after its last press
	BoostLatchMs int `yaml:"boost_latch_ms"` // how long a boost key press stays held
}

// DifficultyConfig defines how the pursuer speeds up and how cheese slows it.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // extra speed factor from the first frame
	Progression  ProgressionConfig `yaml:"progression"`
	Penalty      PenaltyConfig     `yaml:"penalty"`
}

// ProgressionConfig defines how the speed factor grows.
type ProgressionConfig struct {
	Type        string  `yaml:"type"`         // "time" or "none"
	RampSeconds float64 `yaml:"ramp_seconds"` // elapsed seconds per +1.0 speed factor
}

// PenaltyConfig defines the slowdown per held cheese.
type PenaltyConfig struct {
	PerItem float64 `yaml:"per_item"`
	Max     float64 `yaml:"max"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// Presets lists the known presets in display order.
var Presets = []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}

// ParsePreset validates a preset name. The empty string means normal.
func ParsePreset(name string) (DifficultyPreset, error) {
	if name == "" {
		return DifficultyNormal, nil
	}
	p := DifficultyPreset(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Presets {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", name)
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyHard:
		return 0.15
	default:
		return 0.0
	}
}

// RampForPreset returns the progression ramp for a difficulty preset.
func RampForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 90
	case DifficultyHard:
		return 40
	default:
		return 60
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
