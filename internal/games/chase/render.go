package chase

import (
	"fmt"

	"github.com/vovakirdan/cheese-chase/internal/core"
)

// Glyphs used when drawing to a terminal screen.
const (
	BodyChar      = '█'
	CheeseChar    = '◆'
	CheeseFill    = '▒'
	RingChar      = '·'
	TrailStrong   = '•'
	TrailFaint    = '·'
	GridVChar     = '┊'
	GridHChar     = '┈'
	GridCrossChar = '┼'
)

// hudHeight is the status line plus its separator.
const hudHeight = 2

// Minimum playfield size in cells.
const (
	MinFieldW = 24
	MinFieldH = 8
)

// viewport maps world units onto the screen area below the HUD.
type viewport struct {
	top    int
	cols   int
	rows   int
	scaleX float64
	scaleY float64
}

func newViewport(dst *core.Screen, world core.Bounds) viewport {
	v := viewport{top: hudHeight, cols: dst.Width(), rows: dst.Height() - hudHeight}
	if world.W > 0 && world.H > 0 {
		v.scaleX = float64(v.cols) / world.W
		v.scaleY = float64(v.rows) / world.H
	}
	return v
}

func (v viewport) cell(p core.Vec2) (float64, float64) {
	return p.X * v.scaleX, float64(v.top) + p.Y*v.scaleY
}

func (v viewport) disc(dst *core.Screen, sp Sprite, fill, center rune) {
	cx, cy := v.cell(sp.Pos)
	dst.DrawEllipse(cx, cy, sp.Radius*v.scaleX, sp.Radius*v.scaleY, fill, sp.Color)
	dst.SetColored(int(cx), int(cy), center, sp.Color)
}

// Render draws the session into dst: status line, grid, items, trails,
// the two animals and, when idle or caught, the overlay.
func (s *Session) Render(dst *core.Screen) {
	dst.Clear()
	sc := s.Scene()
	renderHUD(dst, sc.HUD)

	if dst.Width() < MinFieldW || dst.Height()-hudHeight < MinFieldH {
		DrawMessage(dst, "Window too small", "Resize to continue")
		return
	}

	v := newViewport(dst, sc.World)
	renderGrid(dst, v, sc)

	for _, it := range sc.Items {
		v.disc(dst, it, CheeseFill, CheeseChar)
	}

	for _, d := range sc.Trails {
		x, y := v.cell(d.Pos)
		r := TrailFaint
		if d.Alpha >= 0.2 {
			r = TrailStrong
		}
		dst.SetColored(int(x), int(y), r, d.Color)
	}

	if sc.BoostRing != nil {
		cx, cy := v.cell(sc.BoostRing.Pos)
		dst.DrawEllipseOutline(cx, cy, sc.BoostRing.Radius*v.scaleX, sc.BoostRing.Radius*v.scaleY, RingChar, sc.BoostRing.Color)
	}
	v.disc(dst, sc.Player, BodyChar, 'm')
	v.disc(dst, sc.Pursuer, BodyChar, 'C')

	if sc.HUD.OverlayVisible {
		subtitle := "Arrows/WASD move · E/X or shift+move to boost"
		if sc.HUD.State == StateEnded {
			subtitle = "Press Space or R to play again"
		}
		DrawMessage(dst, sc.HUD.OverlayText, subtitle)
	}
}

func renderHUD(dst *core.Screen, h HUD) {
	left := fmt.Sprintf(" Cheese: %d   Score: %d   Best: %d", h.Cheese, h.Score, h.Best)
	dst.DrawText(0, 0, left)
	if h.Boosting {
		dst.DrawTextColored(len(left)+3, 0, "BOOST!", ColorBoost)
	}
	if h.State == StateRunning {
		right := fmt.Sprintf("Cat: %.0f ", h.PursuerSpeed)
		dst.DrawTextColored(dst.Width()-len(right), 0, right, ColorCat)
	}
	for x := range dst.Width() {
		dst.SetColored(x, 1, '─', ColorGrid)
	}
}

func renderGrid(dst *core.Screen, v viewport, sc Scene) {
	for _, gx := range sc.GridX {
		x, _ := v.cell(core.Vec2{X: gx})
		for y := v.top; y < v.top+v.rows; y++ {
			dst.SetColored(int(x), y, GridVChar, ColorGrid)
		}
	}
	for _, gy := range sc.GridY {
		_, y := v.cell(core.Vec2{Y: gy})
		for x := 0; x < v.cols; x++ {
			if dst.Get(x, int(y)) == GridVChar {
				dst.SetColored(x, int(y), GridCrossChar, ColorGrid)
				continue
			}
			dst.SetColored(x, int(y), GridHChar, ColorGrid)
		}
	}
}

// DrawMessage draws a boxed two-line message in the center of the screen.
func DrawMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	titleW := len([]rune(title))
	subW := len([]rune(subtitle))
	boxW := max(titleW, subW) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH), ColorOverlay)

	dst.DrawTextColored(boxX+(boxW-titleW)/2, boxY+1, title, ColorMouse)
	dst.DrawText(boxX+(boxW-subW)/2, boxY+3, subtitle)
}
