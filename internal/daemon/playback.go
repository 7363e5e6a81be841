package daemon

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"roostaboosta/internal/logging"
	"roostaboosta/internal/store"
)

// ErrPlaybackBusy reports that a playback session is already running.
var ErrPlaybackBusy = errors.New("playback already in progress")

// Play starts a manual playback session and returns its id.
func (d *Daemon) Play(ctx context.Context, sound string, speed float64) (string, error) {
	return d.startPlayback(store.TriggerManual, sound, speed)
}

// PlayFromConsole starts a playback session on behalf of the command console.
func (d *Daemon) PlayFromConsole(ctx context.Context, sound string, speed float64) (string, error) {
	return d.startPlayback(store.TriggerConsole, sound, speed)
}

func (d *Daemon) startPlayback(kind, sound string, speed float64) (string, error) {
	if !d.running.Load() {
		return "", errors.New("daemon is not running")
	}
	if strings.ContainsAny(sound, "/\\") || sound == "" {
		return "", fmt.Errorf("bad sound name %q", sound)
	}

	d.playMu.Lock()
	defer d.playMu.Unlock()
	if d.playCancel != nil {
		return "", ErrPlaybackBusy
	}

	session := uuid.NewString()
	playCtx, cancel := context.WithCancel(d.ctx)
	d.playCancel = cancel
	d.session = session
	d.sessionKind = kind
	d.sound = sound
	d.started = time.Now()

	if err := d.store.LogPlaybackStart(playCtx, session, sound, speed, kind); err != nil {
		d.logger.Warn("playback log write failed", logging.Error(err))
	}
	d.logger.Info("playback started",
		logging.String(logging.FieldSession, session),
		logging.String("sound", sound),
		logging.Float64("speed", speed),
		logging.String("trigger", kind))

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		err := d.player.Play(playCtx, sound, speed)
		d.finishPlayback(session, err)
	}()
	return session, nil
}

func (d *Daemon) finishPlayback(session string, playErr error) {
	d.playMu.Lock()
	if d.session == session && d.playCancel != nil {
		d.playCancel()
		d.playCancel = nil
	}
	d.playMu.Unlock()

	if errors.Is(playErr, context.Canceled) {
		playErr = nil
	}
	if err := d.store.LogPlaybackEnd(context.Background(), session, playErr); err != nil {
		d.logger.Warn("playback log write failed", logging.Error(err))
	}
	if playErr != nil {
		d.logger.Error("playback failed",
			logging.String(logging.FieldSession, session),
			logging.Error(playErr))
		return
	}
	d.logger.Info("playback finished", logging.String(logging.FieldSession, session))
}

// StopPlayback cancels the active playback session, if any.
func (d *Daemon) StopPlayback(ctx context.Context) error {
	d.playMu.Lock()
	cancel := d.playCancel
	session := d.session
	d.playMu.Unlock()
	if cancel == nil {
		return nil
	}
	d.logger.Info("stopping playback", logging.String(logging.FieldSession, session))
	cancel()

	// Wait briefly for the player goroutine to wind down so a follow-up
	// Play does not race the cancelled session.
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		d.playMu.Lock()
		idle := d.playCancel == nil
		d.playMu.Unlock()
		if idle {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(10 * time.Millisecond):
		}
	}
	return errors.New("playback did not stop in time")
}

// Snooze silences a ringing alarm and suppresses firings for the
// configured snooze window.
func (d *Daemon) Snooze(ctx context.Context) (time.Time, error) {
	if err := d.StopPlayback(ctx); err != nil {
		return time.Time{}, err
	}
	return d.scheduler.Snooze(d.cfg.SnoozeDuration()), nil
}

// fireAlarm runs on the scheduler goroutine when an alarm comes due. A
// ringing session is replaced; a fresh weather fetch warms the cache for
// the morning display.
func (d *Daemon) fireAlarm(ctx context.Context, a *store.Alarm) {
	if d.weather != nil {
		d.wg.Add(1)
		go func() {
			defer d.wg.Done()
			fetchCtx, cancel := context.WithTimeout(ctx, d.cfg.WeatherTimeout())
			defer cancel()
			if _, err := d.weather.Fetch(fetchCtx); err != nil {
				d.logger.Warn("weather refresh on alarm failed", logging.Error(err))
			}
		}()
	}

	if err := d.StopPlayback(ctx); err != nil {
		d.logger.Warn("could not clear previous playback", logging.Error(err))
		return
	}
	if _, err := d.startPlayback(store.TriggerAlarm, a.Sound, a.Speed); err != nil {
		d.logger.Error("alarm playback failed to start",
			logging.Int64("alarm_id", a.ID),
			logging.Error(err))
	}
}
