package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gofrs/flock"

	"roostaboosta/internal/alarm"
	"roostaboosta/internal/audio"
	"roostaboosta/internal/config"
	"roostaboosta/internal/devmon"
	"roostaboosta/internal/logging"
	"roostaboosta/internal/store"
	"roostaboosta/internal/weather"
	"roostaboosta/internal/wifi"
)

// Daemon owns the alarm clock's background services.
type Daemon struct {
	cfg       *config.Config
	logger    *slog.Logger
	store     *store.Store
	player    *audio.Player
	weather   *weather.Service
	bridge    *wifi.Bridge
	scheduler *alarm.Scheduler
	monitor   *devmon.Monitor

	lockPath string
	lock     *flock.Flock

	running atomic.Bool
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup

	playMu      sync.Mutex
	playCancel  context.CancelFunc
	session     string
	sessionKind string
	sound       string
	started     time.Time
}

// Status represents daemon runtime information.
type Status struct {
	Running      bool
	PID          int
	LockPath     string
	DatabasePath string

	Playing         bool
	PlaybackSession string
	PlaybackSound   string
	PlaybackStarted time.Time

	HasNextAlarm bool
	NextAlarmID  int64
	NextAlarmAt  time.Time

	Snoozed      bool
	SnoozedUntil time.Time

	WifiConnected bool
	WifiAddress   string
}

// New constructs a daemon. The weather service and bridge may be nil; the
// daemon then runs clock-only.
func New(cfg *config.Config, st *store.Store, player *audio.Player, svc *weather.Service, bridge *wifi.Bridge, logger *slog.Logger) (*Daemon, error) {
	if cfg == nil || st == nil || player == nil {
		return nil, errors.New("daemon requires config, store, and player")
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	lockPath := filepath.Join(cfg.Paths.DataDir, "roostad.lock")
	d := &Daemon{
		cfg:      cfg,
		logger:   logging.NewComponentLogger(logger, "daemon"),
		store:    st,
		player:   player,
		weather:  svc,
		bridge:   bridge,
		lockPath: lockPath,
		lock:     flock.New(lockPath),
	}
	d.scheduler = alarm.NewScheduler(st, d.fireAlarm, logger, alarm.Options{})
	d.monitor = devmon.New(cfg.Network.Device, devmon.Events{
		Detached: func(ctx context.Context, device string) {
			d.logger.Warn("wifi bridge unplugged, network features degraded",
				logging.String("device", device))
		},
		Attached: func(ctx context.Context, device string) {
			d.logger.Info("wifi bridge reattached, restart the daemon to reconnect",
				logging.String("device", device))
		},
	}, logger)
	return d, nil
}

// Start acquires the instance lock and launches the scheduler.
func (d *Daemon) Start(ctx context.Context) error {
	if d.running.Load() {
		return errors.New("daemon already running")
	}

	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another roostad instance is already running")
	}

	d.ctx, d.cancel = context.WithCancel(ctx)
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		_ = d.scheduler.Run(d.ctx)
	}()
	_ = d.monitor.Start(d.ctx)

	d.running.Store(true)
	d.logger.Info("daemon started",
		logging.String("lock", d.lockPath),
		logging.String("database", d.cfg.DatabasePath()))
	return nil
}

// Stop halts playback and background services and releases the lock.
func (d *Daemon) Stop() {
	if !d.running.Load() {
		return
	}

	_ = d.StopPlayback(context.Background())
	d.monitor.Stop()
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.wg.Wait()
	if err := d.lock.Unlock(); err != nil {
		d.logger.Warn("failed to release daemon lock", logging.Error(err))
	}
	d.ctx = nil
	d.running.Store(false)
	d.logger.Info("daemon stopped")
}

// Close releases resources held by the daemon.
func (d *Daemon) Close() error {
	d.Stop()
	var errs []error
	if d.bridge != nil {
		errs = append(errs, d.bridge.Close())
	}
	errs = append(errs, d.store.Close())
	return errors.Join(errs...)
}

// Running reports whether Start has succeeded and Stop has not run.
func (d *Daemon) Running() bool {
	return d.running.Load()
}

// Scheduler exposes the alarm scheduler for snooze control.
func (d *Daemon) Scheduler() *alarm.Scheduler {
	return d.scheduler
}

// Status reports the daemon's runtime state.
func (d *Daemon) Status(ctx context.Context) Status {
	st := Status{
		Running:      d.running.Load(),
		PID:          os.Getpid(),
		LockPath:     d.lockPath,
		DatabasePath: d.cfg.DatabasePath(),
	}

	d.playMu.Lock()
	if d.playCancel != nil {
		st.Playing = true
		st.PlaybackSession = d.session
		st.PlaybackSound = d.sound
		st.PlaybackStarted = d.started
	}
	d.playMu.Unlock()

	if alarms, err := d.store.EnabledAlarms(ctx); err == nil {
		if a, at, ok := alarm.NextFiring(alarms, time.Now()); ok {
			st.HasNextAlarm = true
			st.NextAlarmID = a.ID
			st.NextAlarmAt = at
		}
	}
	if until, ok := d.scheduler.SnoozedUntil(); ok {
		st.Snoozed = true
		st.SnoozedUntil = until
	}
	if d.bridge != nil {
		st.WifiConnected = d.bridge.Connected()
		st.WifiAddress = d.bridge.IP()
	}
	return st
}

// WeatherNow fetches the current observation, serving the cache when fresh.
func (d *Daemon) WeatherNow(ctx context.Context) (weather.Data, error) {
	if d.weather == nil {
		return weather.Data{}, errors.New("weather is not configured, set weather.api_key and weather.location")
	}
	return d.weather.Fetch(ctx)
}

// Alarms lists all stored alarms.
func (d *Daemon) Alarms(ctx context.Context) ([]*store.Alarm, error) {
	return d.store.Alarms(ctx)
}

// AddAlarm stores a new alarm, applying configured defaults for the sound
// and speed when unset.
func (d *Daemon) AddAlarm(ctx context.Context, a store.Alarm) (*store.Alarm, error) {
	if a.Sound == "" {
		a.Sound = d.cfg.Alarm.DefaultSound
	}
	if a.Speed == 0 {
		a.Speed = d.cfg.Alarm.DefaultSpeed
	}
	a.Enabled = true
	return d.store.AddAlarm(ctx, a)
}

// RemoveAlarm deletes an alarm by id.
func (d *Daemon) RemoveAlarm(ctx context.Context, id int64) (bool, error) {
	return d.store.RemoveAlarm(ctx, id)
}

// SetAlarmEnabled toggles an alarm.
func (d *Daemon) SetAlarmEnabled(ctx context.Context, id int64, enabled bool) error {
	return d.store.SetAlarmEnabled(ctx, id, enabled)
}

// RecentPlayback lists recent playback log entries.
func (d *Daemon) RecentPlayback(ctx context.Context, limit int) ([]*store.PlaybackEntry, error) {
	return d.store.RecentPlayback(ctx, limit)
}
