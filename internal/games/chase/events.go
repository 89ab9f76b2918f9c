package chase

import "github.com/vovakirdan/cheese-chase/internal/core"

// EventKind identifies something that happened during a frame.
type EventKind int

const (
	EventItemSpawned EventKind = iota
	EventItemCollected
	EventBoostActivated
	EventCaptured
	EventNewBest
)

// String returns a short name for logging.
func (k EventKind) String() string {
	switch k {
	case EventItemSpawned:
		return "item_spawned"
	case EventItemCollected:
		return "item_collected"
	case EventBoostActivated:
		return "boost_activated"
	case EventCaptured:
		return "captured"
	case EventNewBest:
		return "new_best"
	default:
		return "unknown"
	}
}

// Event is returned by Session.Advance so the host can play sounds, log and
// record runs without polling session state.
type Event struct {
	Kind   EventKind
	Pos    core.Vec2 // where it happened
	Score  int       // floor(score) at the time
	Cheese int       // player's cheese after the event
}
