// Package chase implements Cheese Chase: a mouse dodges a cat on a bounded
// field and collects cheese it can burn for short speed boosts.
//
// The package is pure simulation. The host drives it through
// Session.Advance with a per-frame input snapshot and a delta in seconds,
// then draws Session.Scene or calls Session.Render.
package chase

import "github.com/vovakirdan/cheese-chase/internal/core"

// Palette used by the scene.
const (
	ColorMouse   = core.ColorBrightYellow
	ColorCat     = core.ColorBrightCyan
	ColorCheese  = core.ColorYellow
	ColorGrid    = core.ColorGray
	ColorBoost   = core.ColorBrightWhite
	ColorOverlay = core.ColorWhite
)

// Entity is anything with a position and a round extent in world units.
type Entity struct {
	Pos    core.Vec2
	Radius float64
	Color  core.Color
}

// DistanceTo returns the center distance between two entities.
func (e Entity) DistanceTo(o Entity) float64 {
	return core.Distance(e.Pos, o.Pos)
}

// Overlaps reports whether the two circles overlap by more than margin.
// A zero margin is a plain circle overlap test.
func (e Entity) Overlaps(o Entity, margin float64) bool {
	return e.DistanceTo(o) < e.Radius+o.Radius-margin
}
