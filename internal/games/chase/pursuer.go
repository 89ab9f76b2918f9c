package chase

import (
	"github.com/vovakirdan/cheese-chase/internal/config"
	"github.com/vovakirdan/cheese-chase/internal/core"
)

// Pursuer is the cat. It steers straight at its target and is never clamped
// to the world.
type Pursuer struct {
	Entity
	BaseSpeed  float64
	LastSpeed  float64 // speed used on the most recent Update, for the HUD
	difficulty *config.DifficultyManager
}

// NewPursuer places a fresh pursuer at its configured spawn point.
func NewPursuer(cfg config.PursuerConfig, world core.Bounds, dm *config.DifficultyManager) *Pursuer {
	return &Pursuer{
		Entity: Entity{
			Pos:    core.Vec2{X: world.W * cfg.StartX, Y: world.H * cfg.StartY},
			Radius: cfg.Radius,
			Color:  ColorCat,
		},
		BaseSpeed:  cfg.BaseSpeed,
		difficulty: dm,
	}
}

// EffectiveSpeed is BaseSpeed scaled up by elapsed time and down by the
// player's cheese count.
func (p *Pursuer) EffectiveSpeed(elapsed float64, cheese int) float64 {
	return p.difficulty.Speed(p.BaseSpeed, elapsed, cheese)
}

// Update steps the pursuer toward target.
func (p *Pursuer) Update(dt float64, target core.Vec2, elapsed float64, cheese int) {
	delta := target.Sub(p.Pos)
	speed := p.EffectiveSpeed(elapsed, cheese)
	p.LastSpeed = speed
	p.Pos = p.Pos.Add(delta.Normalize().Scale(speed * dt))
}
