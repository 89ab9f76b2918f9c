// Package speaker is the audio.Sink backed by the system sound device.
// It is only imported by the play command; SSH sessions stay silent.
package speaker

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// Device mixes cues into the speaker.
type Device struct {
	mu     sync.Mutex
	mixer  *beep.Mixer
	closed bool
}

// Open initializes the speaker at rate with a 100ms buffer and starts an
// empty mixer on it.
func Open(rate beep.SampleRate) (*Device, error) {
	if err := speaker.Init(rate, rate.N(100*time.Millisecond)); err != nil {
		return nil, fmt.Errorf("audio: cannot open speaker: %w", err)
	}
	d := &Device{mixer: &beep.Mixer{}}
	speaker.Play(d.mixer)
	return d, nil
}

// Play adds s to the mixer. Finished streamers drop out on their own.
func (d *Device) Play(s beep.Streamer) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	speaker.Lock()
	d.mixer.Add(s)
	speaker.Unlock()
}

// Close stops all sound and releases the device.
func (d *Device) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	d.closed = true
	speaker.Lock()
	d.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
}
