// Package sonar turns ultrasonic range samples into a snooze gesture.
//
// A hand held within SnoozeRange of the sensor for a few consecutive
// samples counts as a wave. Sampling hardware sits behind the Sampler
// interface; the detection logic is pure and clocked by the caller.
package sonar

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"roostaboosta/internal/logging"
)

const (
	// SnoozeRange is the trigger distance in centimetres.
	SnoozeRange = 10.0

	// echoScale converts an HC-SR04 echo round trip in microseconds to
	// centimetres.
	echoScale = 58.0

	defaultInterval = 200 * time.Millisecond
	defaultHits     = 2
)

// ErrNoEcho reports a ping that never returned.
var ErrNoEcho = errors.New("sonar: no echo")

// Sampler measures the distance to the nearest obstacle in centimetres.
type Sampler interface {
	Distance(ctx context.Context) (float64, error)
}

// DistanceFromEcho converts an echo round-trip time to centimetres.
func DistanceFromEcho(rtt time.Duration) float64 {
	return float64(rtt.Microseconds()) / echoScale
}

// Options tune the detector.
type Options struct {
	// Interval between samples. Defaults to 200ms.
	Interval time.Duration
	// Hits is how many consecutive in-range samples trigger the gesture.
	// Defaults to 2; single glitched readings do not snooze the alarm.
	Hits int
	// Range overrides SnoozeRange when positive.
	Range float64
}

// Detector polls a sampler and reports snooze gestures.
type Detector struct {
	sampler  Sampler
	logger   *slog.Logger
	interval time.Duration
	hits     int
	rng      float64

	streak int
}

// NewDetector wires a detector to its sampler.
func NewDetector(sampler Sampler, logger *slog.Logger, opts Options) *Detector {
	d := &Detector{
		sampler:  sampler,
		logger:   logging.NewComponentLogger(logger, "sonar"),
		interval: opts.Interval,
		hits:     opts.Hits,
		rng:      opts.Range,
	}
	if d.interval <= 0 {
		d.interval = defaultInterval
	}
	if d.hits <= 0 {
		d.hits = defaultHits
	}
	if d.rng <= 0 {
		d.rng = SnoozeRange
	}
	return d
}

// Observe feeds one sample into the detector and reports whether the
// gesture completed on this sample. The streak resets once it triggers, so
// a held hand produces one gesture per hits-length run.
func (d *Detector) Observe(distance float64) bool {
	if distance > d.rng || distance <= 0 {
		d.streak = 0
		return false
	}
	d.streak++
	if d.streak < d.hits {
		return false
	}
	d.streak = 0
	return true
}

// Watch polls the sampler until the context ends, invoking fn for each
// completed gesture. Sample errors reset the streak and are logged at debug
// level; a missing echo is routine when nothing is near the sensor.
func (d *Detector) Watch(ctx context.Context, fn func()) error {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			distance, err := d.sampler.Distance(ctx)
			if err != nil {
				d.streak = 0
				if !errors.Is(err, ErrNoEcho) {
					d.logger.Debug("sample failed", logging.Error(err))
				}
				continue
			}
			if d.Observe(distance) {
				d.logger.Info("snooze gesture", logging.Float64("distance_cm", distance))
				fn()
			}
		}
	}
}
