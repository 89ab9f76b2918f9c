package chase

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/cheese-chase/internal/config"
	"github.com/vovakirdan/cheese-chase/internal/core"
)

// Item is a piece of cheese. Its radius pulses while it waits to be eaten.
type Item struct {
	Entity
	Pulse float64
}

// ItemManager spawns, animates and hands out cheese.
type ItemManager struct {
	cfg   config.ItemsConfig
	world core.Bounds
	rng   *rand.Rand
	timer float64
	items []*Item
	last  core.Vec2 // where the most recent item spawned
}

// NewItemManager creates an empty manager. rng is shared with the session so
// a seed reproduces a whole run.
func NewItemManager(cfg config.ItemsConfig, world core.Bounds, rng *rand.Rand) *ItemManager {
	m := &ItemManager{cfg: cfg, world: world, rng: rng}
	m.Reset()
	return m
}

// Reset drops every item and restarts the spawn countdown.
func (m *ItemManager) Reset() {
	m.items = m.items[:0]
	m.timer = m.cfg.FirstSpawnDelay
}

// Update runs one frame: count down and maybe spawn, then for each item in
// spawn order either hand it to the player or advance its pulse.
// The pickup test uses the radius from before this frame's animation.
func (m *ItemManager) Update(dt float64, player *Player) (spawned bool, collected int) {
	m.timer -= dt
	if m.timer <= 0 {
		m.spawn()
		m.timer = m.cfg.SpawnIntervalMin + m.rng.Float64()*m.cfg.SpawnIntervalSpan
		spawned = true
	}

	kept := m.items[:0]
	for _, it := range m.items {
		if it.Overlaps(player.Entity, 0) {
			player.Cheese++
			collected++
			continue
		}
		it.Pulse += dt * m.cfg.PulseRate
		it.Radius = m.cfg.BaseRadius + math.Sin(it.Pulse)*m.cfg.PulseAmplitude
		kept = append(kept, it)
	}
	// Let the dropped pointers go.
	for i := len(kept); i < len(m.items); i++ {
		m.items[i] = nil
	}
	m.items = kept
	return spawned, collected
}

func (m *ItemManager) spawn() {
	pad := m.cfg.SpawnPadding
	x := pad + m.rng.Float64()*(m.world.W-pad*2)
	y := pad + m.rng.Float64()*(m.world.H-pad*2)
	m.last = core.Vec2{X: x, Y: y}
	m.items = append(m.items, &Item{
		Entity: Entity{
			Pos:    core.Vec2{X: x, Y: y},
			Radius: m.cfg.InitialRadius,
			Color:  ColorCheese,
		},
		Pulse: m.rng.Float64() * 2 * math.Pi,
	})
}

// Items returns a copy of the live items in spawn order.
func (m *ItemManager) Items() []Item {
	out := make([]Item, len(m.items))
	for i, it := range m.items {
		out[i] = *it
	}
	return out
}

// Len returns the number of live items.
func (m *ItemManager) Len() int {
	return len(m.items)
}

// LastSpawn returns the position of the most recently spawned item.
func (m *ItemManager) LastSpawn() core.Vec2 {
	return m.last
}

// Timer returns seconds until the next spawn.
func (m *ItemManager) Timer() float64 {
	return m.timer
}

// place puts an item at an exact spot. Tests use it to stage pickups.
func (m *ItemManager) place(pos core.Vec2, radius, pulse float64) {
	m.items = append(m.items, &Item{
		Entity: Entity{Pos: pos, Radius: radius, Color: ColorCheese},
		Pulse:  pulse,
	})
}
