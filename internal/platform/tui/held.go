package tui

import (
	"time"

	"github.com/vovakirdan/cheese-chase/internal/core"
)

// HeldKeys approximates key-down state. Terminals report presses and
// auto-repeats but never releases, so an action counts as held until its
// window runs out after the last press.
type HeldKeys struct {
	hold  time.Duration
	latch time.Duration
	until map[core.Action]time.Time
}

// NewHeldKeys creates a tracker. hold applies to movement keys, latch to boost.
func NewHeldKeys(hold, latch time.Duration) *HeldKeys {
	return &HeldKeys{hold: hold, latch: latch, until: make(map[core.Action]time.Time)}
}

// opposite pairs cancel each other so a quick reversal is not blended.
var opposite = map[core.Action]core.Action{
	core.ActionUp:    core.ActionDown,
	core.ActionDown:  core.ActionUp,
	core.ActionLeft:  core.ActionRight,
	core.ActionRight: core.ActionLeft,
}

// Press marks a as held from now.
func (h *HeldKeys) Press(a core.Action, now time.Time) {
	window := h.hold
	if a == core.ActionBoost {
		window = h.latch
	}
	if o, ok := opposite[a]; ok {
		delete(h.until, o)
	}
	h.until[a] = now.Add(window)
}

// Clear forgets every held key.
func (h *HeldKeys) Clear() {
	clear(h.until)
}

// Frame returns the actions still held at now and prunes expired ones.
func (h *HeldKeys) Frame(now time.Time) core.InputFrame {
	f := core.NewInputFrame()
	for a, t := range h.until {
		if now.Before(t) {
			f.Set(a)
		} else {
			delete(h.until, a)
		}
	}
	return f
}
