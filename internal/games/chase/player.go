package chase

import (
	"github.com/vovakirdan/cheese-chase/internal/config"
	"github.com/vovakirdan/cheese-chase/internal/core"
)

// Player is the mouse.
type Player struct {
	Entity
	Speed           float64
	Cheese          int
	BoostTimer      float64 // seconds of boost left; <= 0 means inactive
	BoostMultiplier float64
	BoostDuration   float64
}

// NewPlayer places a fresh player at its configured spawn point.
func NewPlayer(cfg config.PlayerConfig, world core.Bounds) *Player {
	return &Player{
		Entity: Entity{
			Pos:    core.Vec2{X: world.W * cfg.StartX, Y: world.H * cfg.StartY},
			Radius: cfg.Radius,
			Color:  ColorMouse,
		},
		Speed:           cfg.Speed,
		BoostMultiplier: cfg.BoostMultiplier,
		BoostDuration:   cfg.BoostDuration,
	}
}

// Boosting reports whether a boost is currently active.
func (p *Player) Boosting() bool {
	return p.BoostTimer > 0
}

// Update moves the player for one frame and returns true when this frame
// spent a cheese on a new boost.
func (p *Player) Update(in core.InputFrame, dt float64, bounds core.Bounds) bool {
	dir := in.Direction()

	activated := false
	if in.Has(core.ActionBoost) && p.Cheese > 0 && p.BoostTimer <= 0 {
		p.BoostTimer = p.BoostDuration
		p.Cheese--
		activated = true
	}

	speed := p.Speed
	if p.BoostTimer > 0 {
		speed *= p.BoostMultiplier
		p.BoostTimer -= dt
	}

	// Diagonals are normalized; no input stays put.
	step := dir.Normalize().Scale(speed * dt)
	p.Pos = bounds.ClampInset(p.Pos.Add(step), p.Radius)
	return activated
}
