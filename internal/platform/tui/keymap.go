package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/cheese-chase/internal/core"
)

// KeyMap holds the in-game key bindings. Shift with a movement key moves
// and boosts at the same time.
type KeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Left       key.Binding
	Right      key.Binding
	Boost      key.Binding
	Start      key.Binding
	Restart    key.Binding
	Pause      key.Binding
	Scores     key.Binding
	Mute       key.Binding
	Screenshot key.Binding
	Quit       key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "w", "shift+up", "W"),
			key.WithHelp("↑/w", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "s", "shift+down", "S"),
			key.WithHelp("↓/s", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "a", "shift+left", "A"),
			key.WithHelp("←/a", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d", "shift+right", "D"),
			key.WithHelp("→/d", "right"),
		),
		Boost: key.NewBinding(
			key.WithKeys("e", "x", "E", "X"),
			key.WithHelp("E/X, shift+move", "boost"),
		),
		Start: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "start"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p", "esc"),
			key.WithHelp("p", "pause"),
		),
		Scores: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "scores"),
		),
		Mute: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "mute"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Left, k.Right, k.Boost, k.Pause, k.Scores, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.Boost},
		{k.Start, k.Restart, k.Pause},
		{k.Scores, k.Mute, k.Screenshot, k.Quit},
	}
}

// boostModified reports whether a movement key arrived with shift held.
func boostModified(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "shift+up", "shift+down", "shift+left", "shift+right", "W", "A", "S", "D":
		return true
	}
	return false
}

// HeldActions returns the simulation actions a key press holds.
// Start, pause and the other control keys are not included.
func (k KeyMap) HeldActions(msg tea.KeyMsg) []core.Action {
	var actions []core.Action
	switch {
	case key.Matches(msg, k.Up):
		actions = append(actions, core.ActionUp)
	case key.Matches(msg, k.Down):
		actions = append(actions, core.ActionDown)
	case key.Matches(msg, k.Left):
		actions = append(actions, core.ActionLeft)
	case key.Matches(msg, k.Right):
		actions = append(actions, core.ActionRight)
	case key.Matches(msg, k.Boost):
		return []core.Action{core.ActionBoost}
	}
	if len(actions) > 0 && boostModified(msg) {
		actions = append(actions, core.ActionBoost)
	}
	return actions
}
