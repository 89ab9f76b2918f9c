// Package audio turns game events into short synthesized sound cues.
// Streamers are built with beep and handed to a Sink; the speaker
// subpackage provides the sink backed by the sound device.
package audio

import (
	"fmt"
	"io"
	"math"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"

	"github.com/vovakirdan/cheese-chase/internal/games/chase"
)

// SampleRate is used for every generated cue.
const SampleRate = beep.SampleRate(44100)

// Cue is one of the game's sound effects.
type Cue int

const (
	CuePickup Cue = iota
	CueBoost
	CueCapture
	CueNewBest
)

// String returns the cue name.
func (c Cue) String() string {
	switch c {
	case CuePickup:
		return "pickup"
	case CueBoost:
		return "boost"
	case CueCapture:
		return "capture"
	case CueNewBest:
		return "new_best"
	default:
		return "unknown"
	}
}

// note is a single enveloped sine tone.
type note struct {
	freq    float64
	dur     time.Duration
	attack  time.Duration
	release time.Duration
	gain    float64
}

// Cue recipes. Notes in a slice are played one after another.
var recipes = map[Cue][]note{
	// rising two-note chirp
	CuePickup: {
		{freq: 1046.50, dur: 60 * time.Millisecond, attack: 5 * time.Millisecond, release: 30 * time.Millisecond, gain: 0.6},
		{freq: 1567.98, dur: 90 * time.Millisecond, attack: 5 * time.Millisecond, release: 60 * time.Millisecond, gain: 0.6},
	},
	CueBoost: {
		{freq: 392.00, dur: 50 * time.Millisecond, attack: 5 * time.Millisecond, release: 10 * time.Millisecond, gain: 0.5},
		{freq: 587.33, dur: 50 * time.Millisecond, attack: 5 * time.Millisecond, release: 10 * time.Millisecond, gain: 0.5},
		{freq: 783.99, dur: 120 * time.Millisecond, attack: 5 * time.Millisecond, release: 80 * time.Millisecond, gain: 0.5},
	},
	// falling, longer
	CueCapture: {
		{freq: 440.00, dur: 150 * time.Millisecond, attack: 10 * time.Millisecond, release: 40 * time.Millisecond, gain: 0.7},
		{freq: 329.63, dur: 150 * time.Millisecond, attack: 10 * time.Millisecond, release: 40 * time.Millisecond, gain: 0.7},
		{freq: 220.00, dur: 350 * time.Millisecond, attack: 10 * time.Millisecond, release: 250 * time.Millisecond, gain: 0.7},
	},
	CueNewBest: {
		{freq: 523.25, dur: 90 * time.Millisecond, attack: 5 * time.Millisecond, release: 30 * time.Millisecond, gain: 0.5},
		{freq: 659.25, dur: 90 * time.Millisecond, attack: 5 * time.Millisecond, release: 30 * time.Millisecond, gain: 0.5},
		{freq: 783.99, dur: 90 * time.Millisecond, attack: 5 * time.Millisecond, release: 30 * time.Millisecond, gain: 0.5},
		{freq: 1046.50, dur: 250 * time.Millisecond, attack: 5 * time.Millisecond, release: 180 * time.Millisecond, gain: 0.5},
	},
}

// Duration returns how long the cue plays.
func (c Cue) Duration() time.Duration {
	var total time.Duration
	for _, n := range recipes[c] {
		total += n.dur
	}
	return total
}

// Streamer builds a fresh finite streamer for the cue at the given volume
// (0 silences, 1 is unity gain).
func Streamer(c Cue, volume float64) (beep.Streamer, error) {
	notes, ok := recipes[c]
	if !ok {
		return nil, fmt.Errorf("audio: unknown cue %d", c)
	}

	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		s, err := n.streamer(SampleRate)
		if err != nil {
			return nil, fmt.Errorf("audio: cue %s: %w", c, err)
		}
		parts = append(parts, s)
	}
	return newVolume(beep.Seq(parts...), volume), nil
}

func (n note) streamer(rate beep.SampleRate) (beep.Streamer, error) {
	tone, err := generators.SineTone(rate, n.freq)
	if err != nil {
		return nil, err
	}
	samples := rate.N(n.dur)
	shaped := newEnvelope(beep.Take(samples, tone), samples, rate.N(n.attack), rate.N(n.release))
	return newVolume(shaped, n.gain), nil
}

// envelope applies a linear attack and release to a stream.
type envelope struct {
	streamer beep.Streamer
	pos      int
	total    int
	attack   int
	release  int
}

func newEnvelope(s beep.Streamer, total, attack, release int) *envelope {
	if attack+release > total {
		attack, release = total/2, total-total/2
	}
	return &envelope{streamer: s, total: total, attack: attack, release: release}
}

func (e *envelope) Stream(samples [][2]float64) (int, bool) {
	n, ok := e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		if e.pos >= e.total {
			return i, false
		}
		vol := 1.0
		if e.attack > 0 && e.pos < e.attack {
			vol = float64(e.pos) / float64(e.attack)
		}
		if left := e.total - e.pos; e.release > 0 && left <= e.release {
			vol = math.Min(vol, float64(left)/float64(e.release))
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.pos++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume wraps s in a linear gain. log2(0) is -Inf so zero is silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// Sink accepts streamers to play. Implementations must not block.
type Sink interface {
	Play(s beep.Streamer)
}

// CueFor maps a session event to its cue. Spawns are silent.
func CueFor(kind chase.EventKind) (Cue, bool) {
	switch kind {
	case chase.EventItemCollected:
		return CuePickup, true
	case chase.EventBoostActivated:
		return CueBoost, true
	case chase.EventCaptured:
		return CueCapture, true
	case chase.EventNewBest:
		return CueNewBest, true
	default:
		return 0, false
	}
}

// Player plays cues for session events.
type Player struct {
	mu     sync.Mutex
	sink   Sink
	volume float64
	muted  bool
	logger *log.Logger
}

// NewPlayer returns a Player writing to sink. A nil sink makes every call a no-op.
func NewPlayer(sink Sink, volume float64, logger *log.Logger) *Player {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Player{sink: sink, volume: math.Max(0, volume), logger: logger}
}

// SetMuted toggles output.
func (p *Player) SetMuted(muted bool) {
	p.mu.Lock()
	p.muted = muted
	p.mu.Unlock()
}

// Muted reports whether output is off.
func (p *Player) Muted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.muted
}

// Play plays a single cue.
func (p *Player) Play(c Cue) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.sink == nil || p.muted {
		return
	}
	s, err := Streamer(c, p.volume)
	if err != nil {
		p.logger.Warn("cannot build cue", "cue", c, "error", err)
		return
	}
	p.sink.Play(s)
	p.logger.Debug("cue", "cue", c, "duration", c.Duration())
}

// Handle plays the cue for every event that has one. A frame that both
// captures and sets a new best only plays the new-best fanfare.
func (p *Player) Handle(events []chase.Event) {
	newBest := false
	for _, ev := range events {
		if ev.Kind == chase.EventNewBest {
			newBest = true
		}
	}
	for _, ev := range events {
		if ev.Kind == chase.EventCaptured && newBest {
			continue
		}
		if c, ok := CueFor(ev.Kind); ok {
			p.Play(c)
		}
	}
}
