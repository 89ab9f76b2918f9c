package chase

import "github.com/vovakirdan/cheese-chase/internal/core"

// BoostRingPad is how far the boost ring sits outside the player.
const BoostRingPad = 6

// Sprite is a filled circle to draw.
type Sprite struct {
	Pos    core.Vec2
	Radius float64
	Color  core.Color
}

// TrailDot is one faded trail point to draw.
type TrailDot struct {
	Pos   core.Vec2
	Size  float64
	Alpha float64
	Color core.Color
}

// Scene is the per-frame draw list, in world units, back to front.
type Scene struct {
	World     core.Bounds
	GridX     []float64 // vertical grid lines
	GridY     []float64 // horizontal grid lines
	Items     []Sprite
	Trails    []TrailDot // player trail, then pursuer trail
	Player    Sprite
	BoostRing *Sprite // nil unless boosting
	Pursuer   Sprite
	HUD       HUD
}

// Scene builds the draw list for the current frame.
func (s *Session) Scene() Scene {
	sc := Scene{
		World:   s.world,
		Player:  Sprite{Pos: s.Player.Pos, Radius: s.Player.Radius, Color: s.Player.Color},
		Pursuer: Sprite{Pos: s.Pursuer.Pos, Radius: s.Pursuer.Radius, Color: s.Pursuer.Color},
		HUD:     s.HUD(),
	}

	if g := s.cfg.World.GridSpacing; g > 0 {
		for x := g; x < s.world.W; x += g {
			sc.GridX = append(sc.GridX, x)
		}
		for y := g; y < s.world.H; y += g {
			sc.GridY = append(sc.GridY, y)
		}
	}

	for _, it := range s.Items.Items() {
		sc.Items = append(sc.Items, Sprite{Pos: it.Pos, Radius: it.Radius, Color: it.Color})
	}

	sc.Trails = appendTrail(sc.Trails, s.PlayerTrail, s.Player.Entity)
	sc.Trails = appendTrail(sc.Trails, s.PursuerTrail, s.Pursuer.Entity)

	if s.Player.Boosting() {
		sc.BoostRing = &Sprite{
			Pos:    s.Player.Pos,
			Radius: s.Player.Radius + BoostRingPad,
			Color:  ColorBoost,
		}
	}
	return sc
}

func appendTrail(dst []TrailDot, t *Trail, owner Entity) []TrailDot {
	for _, p := range t.Points() {
		dst = append(dst, TrailDot{
			Pos:   p.Pos,
			Size:  t.Size(p, owner.Radius),
			Alpha: t.Alpha(p),
			Color: owner.Color,
		})
	}
	return dst
}
