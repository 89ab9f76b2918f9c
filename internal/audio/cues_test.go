package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/cheese-chase/internal/games/chase"
)

// drain reads s to the end and returns the sample count and peak amplitude.
func drain(t *testing.T, s beep.Streamer) (int, float64) {
	t.Helper()
	buf := make([][2]float64, 512)
	total, peak := 0, 0.0
	for i := 0; i < 10000; i++ {
		n, ok := s.Stream(buf)
		for _, smp := range buf[:n] {
			peak = math.Max(peak, math.Max(math.Abs(smp[0]), math.Abs(smp[1])))
		}
		total += n
		if !ok {
			return total, peak
		}
	}
	t.Fatal("streamer never ended")
	return 0, 0
}

func cueSamples(c Cue) int {
	n := 0
	for _, nt := range recipes[c] {
		n += SampleRate.N(nt.dur)
	}
	return n
}

func TestCueStreamersAreFinite(t *testing.T) {
	for _, c := range []Cue{CuePickup, CueBoost, CueCapture, CueNewBest} {
		t.Run(c.String(), func(t *testing.T) {
			s, err := Streamer(c, 1)
			require.NoError(t, err)

			n, peak := drain(t, s)
			assert.Equal(t, cueSamples(c), n)
			assert.LessOrEqual(t, peak, 1.0)
			assert.Greater(t, peak, 0.1)
		})
	}
}

func TestCueVolume(t *testing.T) {
	loud, err := Streamer(CuePickup, 1)
	require.NoError(t, err)
	quiet, err := Streamer(CuePickup, 0.25)
	require.NoError(t, err)
	silent, err := Streamer(CuePickup, 0)
	require.NoError(t, err)

	_, loudPeak := drain(t, loud)
	_, quietPeak := drain(t, quiet)
	n, silentPeak := drain(t, silent)

	assert.InDelta(t, loudPeak*0.25, quietPeak, 1e-9)
	assert.Zero(t, silentPeak)
	assert.Equal(t, cueSamples(CuePickup), n)
}

func TestUnknownCue(t *testing.T) {
	_, err := Streamer(Cue(99), 1)
	assert.Error(t, err)
	assert.Equal(t, "unknown", Cue(99).String())
}

func TestEnvelopeRampsFromSilence(t *testing.T) {
	s, err := Streamer(CueCapture, 1)
	require.NoError(t, err)

	buf := make([][2]float64, 1)
	n, ok := s.Stream(buf)
	require.Equal(t, 1, n)
	require.True(t, ok)
	assert.Zero(t, buf[0][0])
}

func TestEnvelopeClampsOverlongRamps(t *testing.T) {
	e := newEnvelope(nil, 10, 8, 8)
	assert.Equal(t, 5, e.attack)
	assert.Equal(t, 5, e.release)
}

type recordingSink struct {
	played []beep.Streamer
}

func (r *recordingSink) Play(s beep.Streamer) { r.played = append(r.played, s) }

func TestCueFor(t *testing.T) {
	tests := []struct {
		kind chase.EventKind
		want Cue
		ok   bool
	}{
		{chase.EventItemSpawned, 0, false},
		{chase.EventItemCollected, CuePickup, true},
		{chase.EventBoostActivated, CueBoost, true},
		{chase.EventCaptured, CueCapture, true},
		{chase.EventNewBest, CueNewBest, true},
	}
	for _, tc := range tests {
		got, ok := CueFor(tc.kind)
		assert.Equal(t, tc.ok, ok, tc.kind.String())
		if tc.ok {
			assert.Equal(t, tc.want, got, tc.kind.String())
		}
	}
}

func TestPlayerHandle(t *testing.T) {
	sink := &recordingSink{}
	p := NewPlayer(sink, 0.8, nil)

	p.Handle([]chase.Event{
		{Kind: chase.EventItemSpawned},
		{Kind: chase.EventItemCollected},
		{Kind: chase.EventBoostActivated},
	})
	assert.Len(t, sink.played, 2)

	// capture plus new best plays only the fanfare
	sink.played = nil
	p.Handle([]chase.Event{{Kind: chase.EventCaptured}, {Kind: chase.EventNewBest}})
	require.Len(t, sink.played, 1)
	n, _ := drain(t, sink.played[0])
	assert.Equal(t, cueSamples(CueNewBest), n)

	sink.played = nil
	p.Handle([]chase.Event{{Kind: chase.EventCaptured}})
	require.Len(t, sink.played, 1)
	n, _ = drain(t, sink.played[0])
	assert.Equal(t, cueSamples(CueCapture), n)
}

func TestPlayerMuted(t *testing.T) {
	sink := &recordingSink{}
	p := NewPlayer(sink, 1, nil)

	p.SetMuted(true)
	assert.True(t, p.Muted())
	p.Play(CueBoost)
	assert.Empty(t, sink.played)

	p.SetMuted(false)
	p.Play(CueBoost)
	assert.Len(t, sink.played, 1)
}

func TestPlayerNilSink(t *testing.T) {
	p := NewPlayer(nil, 1, nil)
	assert.NotPanics(t, func() {
		p.Handle([]chase.Event{{Kind: chase.EventItemCollected}})
	})
}

func TestCueDurations(t *testing.T) {
	assert.Equal(t, 150*time.Millisecond, CuePickup.Duration())
	assert.Greater(t, CueCapture.Duration(), CueBoost.Duration())
}
