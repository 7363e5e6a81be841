package alarm

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"roostaboosta/internal/logging"
	"roostaboosta/internal/store"
)

const defaultTickInterval = time.Second

// AlarmSource lists the alarms eligible to fire.
type AlarmSource interface {
	EnabledAlarms(ctx context.Context) ([]*store.Alarm, error)
}

// FireFunc is invoked once for each due alarm. It runs on its own goroutine
// so a long playback does not stall the tick loop.
type FireFunc func(ctx context.Context, a *store.Alarm)

// Options tune the scheduler tick cadence and clock, mainly for tests.
type Options struct {
	Interval time.Duration
	Now      func() time.Time
}

// Scheduler polls the alarm store and fires due alarms.
type Scheduler struct {
	source   AlarmSource
	fire     FireFunc
	logger   *slog.Logger
	interval time.Duration
	now      func() time.Time

	mu            sync.Mutex
	firedMinute   time.Time
	firedIDs      map[int64]struct{}
	suppressUntil time.Time
}

// NewScheduler wires a scheduler to its alarm source and firing callback.
func NewScheduler(source AlarmSource, fire FireFunc, logger *slog.Logger, opts Options) *Scheduler {
	interval := opts.Interval
	if interval <= 0 {
		interval = defaultTickInterval
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Scheduler{
		source:   source,
		fire:     fire,
		logger:   logging.NewComponentLogger(logger, "alarm"),
		interval: interval,
		now:      now,
		firedIDs: make(map[int64]struct{}),
	}
}

// Snooze suppresses all firings for the given duration from now.
func (s *Scheduler) Snooze(d time.Duration) time.Time {
	until := s.now().Add(d)
	s.mu.Lock()
	if until.After(s.suppressUntil) {
		s.suppressUntil = until
	}
	until = s.suppressUntil
	s.mu.Unlock()
	s.logger.Info("alarms snoozed", logging.String("until", until.Format(time.Kitchen)))
	return until
}

// SnoozedUntil reports the end of the active snooze window, if any.
func (s *Scheduler) SnoozedUntil() (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.suppressUntil.After(s.now()) {
		return s.suppressUntil, true
	}
	return time.Time{}, false
}

// Run ticks until the context is cancelled, firing due alarms.
func (s *Scheduler) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.Tick(ctx)
		}
	}
}

// Tick fires every alarm due at the current minute that has not already
// fired during it. Exported so tests and the daemon can drive the scheduler
// without real time.
func (s *Scheduler) Tick(ctx context.Context) {
	now := s.now()

	s.mu.Lock()
	if now.Before(s.suppressUntil) {
		s.mu.Unlock()
		return
	}
	minute := now.Truncate(time.Minute)
	if !minute.Equal(s.firedMinute) {
		s.firedMinute = minute
		s.firedIDs = make(map[int64]struct{})
	}
	s.mu.Unlock()

	alarms, err := s.source.EnabledAlarms(ctx)
	if err != nil {
		s.logger.Error("list alarms", logging.Error(err))
		return
	}
	for _, a := range alarms {
		if a.Hour != now.Hour() || a.Minute != now.Minute() || !a.Days.Has(now.Weekday()) {
			continue
		}
		s.mu.Lock()
		if _, done := s.firedIDs[a.ID]; done {
			s.mu.Unlock()
			continue
		}
		s.firedIDs[a.ID] = struct{}{}
		s.mu.Unlock()

		s.logger.Info("alarm firing",
			logging.Int64("alarm_id", a.ID),
			logging.String("sound", a.Sound),
			logging.Float64("speed", a.Speed))
		go s.fire(ctx, a)
	}
}
