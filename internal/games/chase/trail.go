package chase

import (
	"math"

	"github.com/vovakirdan/cheese-chase/internal/config"
	"github.com/vovakirdan/cheese-chase/internal/core"
)

// TrailPoint is one remembered position with its remaining life in seconds.
type TrailPoint struct {
	Pos  core.Vec2
	Life float64
}

// Trail is a capped, fading history of an entity's positions.
type Trail struct {
	cfg    config.TrailConfig
	points []TrailPoint
}

// NewTrail creates an empty trail.
func NewTrail(cfg config.TrailConfig) *Trail {
	return &Trail{cfg: cfg}
}

// Reset forgets every point.
func (t *Trail) Reset() {
	t.points = t.points[:0]
}

// Update records pos, drops the oldest points beyond the cap, ages every
// point by dt and removes the expired ones.
func (t *Trail) Update(pos core.Vec2, dt float64) {
	t.points = append(t.points, TrailPoint{Pos: pos, Life: t.cfg.Life})
	if over := len(t.points) - t.cfg.MaxPoints; over > 0 {
		t.points = append(t.points[:0], t.points[over:]...)
	}

	kept := t.points[:0]
	for _, p := range t.points {
		p.Life -= dt
		if p.Life > 0 {
			kept = append(kept, p)
		}
	}
	t.points = kept
}

// Points returns a copy of the live points, oldest first.
func (t *Trail) Points() []TrailPoint {
	out := make([]TrailPoint, len(t.points))
	copy(out, t.points)
	return out
}

// Alpha is the point's opacity: max(0, life*alpha_scale).
func (t *Trail) Alpha(p TrailPoint) float64 {
	return math.Max(0, p.Life*t.cfg.AlphaScale)
}

// Size is the drawn radius for a point left by an entity of the given radius.
func (t *Trail) Size(p TrailPoint, radius float64) float64 {
	return math.Max(t.cfg.MinSize, radius*p.Life*t.cfg.SizeScale)
}
