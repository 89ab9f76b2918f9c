package chase

import (
	"fmt"
	"io"
	"math"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/cheese-chase/internal/config"
	"github.com/vovakirdan/cheese-chase/internal/core"
)

// State is the session's lifecycle phase.
type State int

const (
	StateIdle    State = iota // start prompt shown, nothing moves
	StateRunning              // simulation advances every frame
	StateEnded                // caught; frozen until the next Start
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// StartPrompt is shown while idle.
const StartPrompt = "Press Space to Start!"

// RunStats are per-run counters that do not affect the simulation.
type RunStats struct {
	Collected  int // cheese picked up
	BoostsUsed int // cheese spent on boosts
}

// Options configures a new session.
type Options struct {
	Config config.ChaseConfig
	Seed   int64
	Store  BestStore   // nil keeps the best score in memory
	Logger *log.Logger // nil discards
}

// Session is one mouse-and-cat game. It is not safe for concurrent use;
// its owner calls Start and Advance from a single loop.
type Session struct {
	cfg        config.ChaseConfig
	world      core.Bounds
	rng        *rand.Rand
	difficulty *config.DifficultyManager
	best       *BestTracker
	logger     *log.Logger

	State   State
	Elapsed float64 // seconds since Start
	Score   float64

	Player       *Player
	Pursuer      *Pursuer
	Items        *ItemManager
	PlayerTrail  *Trail
	PursuerTrail *Trail
	Stats        RunStats
}

// NewSession builds an idle session and reads the persisted best score.
func NewSession(opts Options) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	cfg := opts.Config
	world := core.Bounds{W: cfg.World.Width, H: cfg.World.Height}
	rng := rand.New(rand.NewSource(opts.Seed))

	s := &Session{
		cfg:          cfg,
		world:        world,
		rng:          rng,
		difficulty:   config.NewDifficultyManager(cfg.Difficulty),
		best:         NewBestTracker(opts.Store, cfg.Scoring.BestKey, logger),
		logger:       logger,
		Items:        NewItemManager(cfg.Items, world, rng),
		PlayerTrail:  NewTrail(cfg.Trail),
		PursuerTrail: NewTrail(cfg.Trail),
	}
	s.reset()
	return s
}

// reset rebuilds every per-run field.
func (s *Session) reset() {
	s.Elapsed = 0
	s.Score = 0
	s.Stats = RunStats{}
	s.Player = NewPlayer(s.cfg.Player, s.world)
	s.Pursuer = NewPursuer(s.cfg.Pursuer, s.world, s.difficulty)
	s.Items.Reset()
	s.PlayerTrail.Reset()
	s.PursuerTrail.Reset()
}

// Start begins a fresh run from any state. Calling it twice in a row just
// starts over again.
func (s *Session) Start() {
	s.reset()
	s.State = StateRunning
	s.logger.Debug("run started", "best", s.best.Best())
}

// Best returns the best score seen so far, including the persisted one.
func (s *Session) Best() int {
	return s.best.Best()
}

// FloorScore returns the whole-number score shown to the player.
func (s *Session) FloorScore() int {
	return int(math.Floor(s.Score))
}

// Advance runs one frame of delta seconds with the held input and returns
// what happened. Outside the running state it does nothing.
//
// Frame order: elapsed and score, items, player, pursuer, trails, capture.
func (s *Session) Advance(in core.InputFrame, delta float64) []Event {
	if s.State != StateRunning {
		return nil
	}
	if delta < 0 || math.IsNaN(delta) {
		delta = 0
	}

	var events []Event

	s.Elapsed += delta
	s.Score += delta * s.cfg.Scoring.PointsPerSecond

	spawned, collected := s.Items.Update(delta, s.Player)
	if spawned {
		events = append(events, s.event(EventItemSpawned, s.Items.LastSpawn()))
	}
	for range collected {
		s.Stats.Collected++
		events = append(events, s.event(EventItemCollected, s.Player.Pos))
	}

	if s.Player.Update(in, delta, s.world) {
		s.Stats.BoostsUsed++
		events = append(events, s.event(EventBoostActivated, s.Player.Pos))
	}

	s.Pursuer.Update(delta, s.Player.Pos, s.Elapsed, s.Player.Cheese)

	s.PlayerTrail.Update(s.Player.Pos, delta)
	s.PursuerTrail.Update(s.Pursuer.Pos, delta)

	if s.Player.Overlaps(s.Pursuer.Entity, s.cfg.Scoring.CaptureMargin) {
		events = append(events, s.capture()...)
	}
	return events
}

// capture ends the run and submits the score.
func (s *Session) capture() []Event {
	s.State = StateEnded
	score := s.FloorScore()
	events := []Event{s.event(EventCaptured, s.Player.Pos)}
	if s.best.Submit(score) {
		events = append(events, s.event(EventNewBest, s.Player.Pos))
	}
	s.logger.Info("caught",
		"score", score,
		"elapsed", fmt.Sprintf("%.1fs", s.Elapsed),
		"collected", s.Stats.Collected,
		"boosts", s.Stats.BoostsUsed,
		"best", s.best.Best())
	return events
}

func (s *Session) event(kind EventKind, pos core.Vec2) Event {
	return Event{Kind: kind, Pos: pos, Score: s.FloorScore(), Cheese: s.Player.Cheese}
}

// Summary is the game-over line.
func (s *Session) Summary() string {
	return fmt.Sprintf("The cat caught the mouse! Score: %d", s.FloorScore())
}

// HUD is everything the status line and overlay need.
type HUD struct {
	State          State
	Cheese         int
	Score          int
	Best           int
	Boosting       bool
	PursuerSpeed   float64
	OverlayVisible bool
	OverlayText    string
}

// HUD returns the current display values.
func (s *Session) HUD() HUD {
	h := HUD{
		State:        s.State,
		Cheese:       s.Player.Cheese,
		Score:        s.FloorScore(),
		Best:         s.best.Best(),
		Boosting:     s.Player.Boosting(),
		PursuerSpeed: s.Pursuer.LastSpeed,
	}
	switch s.State {
	case StateIdle:
		h.OverlayVisible = true
		h.OverlayText = StartPrompt
	case StateEnded:
		h.OverlayVisible = true
		h.OverlayText = s.Summary()
	}
	return h
}

// Snapshot captures the simulation state for determinism checks.
type Snapshot struct {
	State      State
	Elapsed    float64
	Score      float64
	PlayerPos  core.Vec2
	PursuerPos core.Vec2
	Cheese     int
	BoostTimer float64
	Items      int
	ItemTimer  float64
	Stats      RunStats
}

// Snapshot returns the current snapshot.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		State:      s.State,
		Elapsed:    s.Elapsed,
		Score:      s.Score,
		PlayerPos:  s.Player.Pos,
		PursuerPos: s.Pursuer.Pos,
		Cheese:     s.Player.Cheese,
		BoostTimer: s.Player.BoostTimer,
		Items:      s.Items.Len(),
		ItemTimer:  s.Items.Timer(),
		Stats:      s.Stats,
	}
}
