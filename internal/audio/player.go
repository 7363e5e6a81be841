package audio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"roostaboosta/internal/event"
	"roostaboosta/internal/logging"
)

const (
	// bankCount is fixed at two: one bank drains in hardware while the
	// other fills in software.
	bankCount = 2

	// DefaultBankSize is the per-bank sample count.
	DefaultBankSize = 2048

	// defaultSampleRate applies when the file format carries no rate
	// metadata, which raw u8 PCM never does.
	defaultSampleRate = 24000
)

var (
	// ErrBadSpeed indicates a non-positive speed multiplier.
	ErrBadSpeed = errors.New("audio: speed multiplier must be positive")
)

// Options tunes a player. Zero values select the defaults.
type Options struct {
	// BankSize is the per-bank sample count; must be a power of two.
	BankSize int
	// SampleRate overrides the rate assumed for files without metadata.
	SampleRate int
}

// Player streams u8 PCM files from a filesystem to a Device. One playback
// session runs at a time; Play blocks the calling goroutine until the file
// is drained, the context is canceled, or a read error aborts the session.
type Player struct {
	dev    Device
	fsys   fs.FS
	logger *slog.Logger

	mu      sync.Mutex // serializes sessions; banks and device are singletons
	banks   [bankCount][]uint32
	scratch []byte
	rate    int
	playing atomic.Bool
}

// Playing reports whether a session is currently streaming.
func (p *Player) Playing() bool { return p.playing.Load() }

// NewPlayer builds a player over the given device and sample filesystem.
func NewPlayer(dev Device, fsys fs.FS, logger *slog.Logger, opts Options) (*Player, error) {
	size := opts.BankSize
	if size == 0 {
		size = DefaultBankSize
	}
	if size <= 0 || size&(size-1) != 0 {
		return nil, fmt.Errorf("audio: bank size %d is not a power of two", size)
	}
	rate := opts.SampleRate
	if rate == 0 {
		rate = defaultSampleRate
	}
	if rate < 0 {
		return nil, fmt.Errorf("audio: sample rate %d is negative", rate)
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	p := &Player{
		dev:     dev,
		fsys:    fsys,
		logger:  logging.NewComponentLogger(logger, "audio"),
		rate:    rate,
		scratch: make([]byte, size),
	}
	for i := range p.banks {
		p.banks[i] = make([]uint32, size)
	}
	return p, nil
}

// Play streams the named file at the given speed multiplier. It returns
// after the final armed bank has been handed to the device and the stop
// path has disabled the clock and both channels. Cancellation takes effect
// after the bank currently being filled or drained, never mid-bank.
func (p *Player) Play(ctx context.Context, name string, speed float64) error {
	if speed <= 0 {
		return ErrBadSpeed
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.playing.Store(true)
	defer p.playing.Store(false)

	session := uuid.NewString()
	log := p.logger.With(logging.String("session", session), logging.String("file", name))

	f, err := p.fsys.Open(name)
	if err != nil {
		return fmt.Errorf("open %s: %w", name, err)
	}
	defer f.Close()

	// Prime every bank before any hardware output begins.
	more := true
	for i := range p.banks {
		if err := p.fillBank(f, p.banks[i], &more); err != nil {
			return fmt.Errorf("prime bank %d from %s: %w", i, name, err)
		}
	}
	log.Debug("banks primed", logging.Bool("eof_during_prime", !more))

	// One transfer descriptor per bank. The completion callback runs in
	// device context: it flips the active bank, re-arms the other bank's
	// transfer, and signals the producer that the drained bank is free.
	var curr atomic.Int32
	flag := event.NewFlag()
	conf := make([]Transfer, bankCount)
	onDone := func() {
		next := (curr.Load() + 1) % bankCount
		curr.Store(next)
		_ = p.dev.Prepare(conf[next])
		_ = p.dev.Enable(conf[next].Ch)
		flag.Set()
	}
	for i := range conf {
		conf[i] = Transfer{Ch: i, Samples: p.banks[i], Done: onDone}
	}

	if err := p.dev.Prepare(conf[0]); err != nil {
		return fmt.Errorf("arm first bank: %w", err)
	}

	divisor := clockDivisor(p.dev.ClockHz(), speed, p.rate)
	p.dev.StartClock(divisor)
	log.Debug("output clock started", logging.Int("divisor", int(divisor)))

	stop := func() {
		p.dev.StopClock()
		for ch := 0; ch < bankCount; ch++ {
			p.dev.Disable(ch)
		}
	}

	if err := p.dev.Enable(conf[0].Ch); err != nil {
		stop()
		return fmt.Errorf("enable first bank: %w", err)
	}

	// Steady state: wait for a bank to drain, refill exactly that bank,
	// repeat until the file is exhausted. The producer owns a bank only
	// between the completion signal that freed it and the device's next
	// turn on it.
	if err := flag.WaitContext(ctx); err != nil {
		stop()
		return err
	}
	for more {
		freed := (curr.Load() + 1) % bankCount
		if err := p.fillBank(f, p.banks[freed], &more); err != nil {
			stop()
			return fmt.Errorf("refill bank %d from %s: %w", freed, name, err)
		}
		if err := flag.WaitContext(ctx); err != nil {
			stop()
			return err
		}
	}
	stop()
	log.Info("playback finished")
	return nil
}

// fillBank reads one bank's worth of u8 samples, widening each to the
// device's 32-bit sample format. A short read at end of file zero-pads the
// tail and clears more; any other read error is fatal to the session.
func (p *Player) fillBank(f fs.File, bank []uint32, more *bool) error {
	n, err := io.ReadFull(f, p.scratch)
	switch {
	case err == nil:
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		*more = false
	default:
		return err
	}
	for i := 0; i < n; i++ {
		bank[i] = uint32(p.scratch[i]) << 8
	}
	for i := n; i < len(bank); i++ {
		bank[i] = 0
	}
	return nil
}

// clockDivisor derives the output clock divisor from the reference clock,
// the speed multiplier, and the effective sample rate.
func clockDivisor(clockHz int, speed float64, rate int) uint32 {
	if rate <= 0 {
		rate = defaultSampleRate
	}
	return uint32(float64(clockHz) / speed / 2 / float64(rate))
}
