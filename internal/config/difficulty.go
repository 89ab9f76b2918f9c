package config

import "math"

// DifficultyManager derives the pursuer's speed scaling from elapsed time
// and the player's cheese count.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: math.Max(cfg.InitialLevel, 0),
	}
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// SpeedFactor returns the time-based multiplier, 1 + elapsed/ramp with the
// default tuning. It never decreases as elapsed grows.
func (d *DifficultyManager) SpeedFactor(elapsed float64) float64 {
	base := 1 + d.initialLevel
	if !d.IsEnabled() || d.cfg.Progression.Type != "time" {
		return base
	}
	ramp := d.cfg.Progression.RampSeconds
	if ramp <= 0 {
		ramp = 60
	}
	return base + math.Max(elapsed, 0)/ramp
}

// ResourcePenalty returns the multiplier for holding cheese:
// 1 - min(cheese*per_item, max). It stays within [1-max, 1].
func (d *DifficultyManager) ResourcePenalty(cheese int) float64 {
	if cheese <= 0 {
		return 1
	}
	limit := clampF(d.cfg.Penalty.Max, 0, 1)
	per := math.Max(d.cfg.Penalty.PerItem, 0)
	return 1 - math.Min(float64(cheese)*per, limit)
}

// Speed returns base speed scaled by both factors.
func (d *DifficultyManager) Speed(baseSpeed, elapsed float64, cheese int) float64 {
	return baseSpeed * d.SpeedFactor(elapsed) * d.ResourcePenalty(cheese)
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
