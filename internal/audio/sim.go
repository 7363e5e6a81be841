package audio

import (
	"errors"
	"io"
	"sync"
	"time"
)

// SimDevice emulates the DMA/DAC unit on a host machine. An enabled channel
// drains its prepared transfer on a goroutine — the stand-in for the
// hardware transfer engine and its completion interrupt — optionally pacing
// the drain from the configured clock so playback takes realistic time.
//
// Drained samples go to the sink when one is set, truncated back to their
// high byte, which makes sessions observable in tests and lets the daemon
// pipe output to a host audio tool.
type SimDevice struct {
	clockHz int
	sink    io.Writer
	paced   bool

	mu       sync.Mutex
	divisor  uint32
	running  bool
	prepared [bankCount]*Transfer
	gen      [bankCount]uint64 // bumped on Disable to cancel in-flight drains
}

// NewSimDevice builds a simulated device. sink may be nil. When paced is
// true, each bank takes its nominal wall-clock duration to drain; tests
// leave it false so sessions complete immediately.
func NewSimDevice(clockHz int, sink io.Writer, paced bool) *SimDevice {
	if clockHz <= 0 {
		clockHz = 96_000_000
	}
	return &SimDevice{clockHz: clockHz, sink: sink, paced: paced}
}

// ClockHz returns the simulated reference clock.
func (d *SimDevice) ClockHz() int { return d.clockHz }

// StartClock records the divisor and marks the clock running.
func (d *SimDevice) StartClock(divisor uint32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.divisor = divisor
	d.running = true
}

// StopClock halts the clock. Channels already draining finish their bank;
// nothing further starts.
func (d *SimDevice) StopClock() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.running = false
}

// Prepare arms a transfer on its channel.
func (d *SimDevice) Prepare(t Transfer) error {
	if t.Ch < 0 || t.Ch >= bankCount {
		return errors.New("audio: channel out of range")
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	tc := t
	d.prepared[t.Ch] = &tc
	return nil
}

// Enable starts draining the channel's prepared transfer on a goroutine.
func (d *SimDevice) Enable(ch int) error {
	if ch < 0 || ch >= bankCount {
		return errors.New("audio: channel out of range")
	}
	d.mu.Lock()
	t := d.prepared[ch]
	gen := d.gen[ch]
	running := d.running
	divisor := d.divisor
	d.mu.Unlock()
	if t == nil {
		return errors.New("audio: enable without prepared transfer")
	}
	go d.drain(t, gen, running, divisor)
	return nil
}

// Disable stops the channel and discards its prepared transfer. An
// in-flight drain for the channel is abandoned without completing.
func (d *SimDevice) Disable(ch int) {
	if ch < 0 || ch >= bankCount {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.prepared[ch] = nil
	d.gen[ch]++
}

func (d *SimDevice) drain(t *Transfer, gen uint64, clocked bool, divisor uint32) {
	if d.paced && clocked && divisor > 0 {
		rate := d.clockHz / int(divisor) / 2
		if rate > 0 {
			time.Sleep(time.Duration(len(t.Samples)) * time.Second / time.Duration(rate))
		}
	}

	d.mu.Lock()
	stale := d.gen[t.Ch] != gen
	sink := d.sink
	d.mu.Unlock()
	if stale {
		return
	}

	if sink != nil {
		buf := make([]byte, len(t.Samples))
		for i, s := range t.Samples {
			buf[i] = byte(s >> 8)
		}
		_, _ = sink.Write(buf)
	}
	if t.Done != nil {
		t.Done()
	}
}
