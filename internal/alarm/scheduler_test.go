package alarm_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"roostaboosta/internal/alarm"
	"roostaboosta/internal/logging"
	"roostaboosta/internal/store"
)

type fakeSource struct {
	mu     sync.Mutex
	alarms []*store.Alarm
	err    error
}

func (f *fakeSource) EnabledAlarms(ctx context.Context) ([]*store.Alarm, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.alarms, f.err
}

type fireRecorder struct {
	mu    sync.Mutex
	fired []int64
}

func (r *fireRecorder) fire(ctx context.Context, a *store.Alarm) {
	r.mu.Lock()
	r.fired = append(r.fired, a.ID)
	r.mu.Unlock()
}

func (r *fireRecorder) wait(t *testing.T, n int) []int64 {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		r.mu.Lock()
		got := len(r.fired)
		r.mu.Unlock()
		if got >= n {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]int64(nil), r.fired...)
}

func newTestScheduler(src *fakeSource, rec *fireRecorder, now *time.Time) *alarm.Scheduler {
	return alarm.NewScheduler(src, rec.fire, logging.NewNop(), alarm.Options{
		Now: func() time.Time { return *now },
	})
}

func TestTickFiresDueAlarmOnce(t *testing.T) {
	now := time.Date(2026, time.January, 7, 6, 30, 2, 0, time.UTC)
	src := &fakeSource{alarms: []*store.Alarm{
		{ID: 1, Hour: 6, Minute: 30, Days: store.EveryDay, Enabled: true},
		{ID: 2, Hour: 7, Minute: 0, Days: store.EveryDay, Enabled: true},
	}}
	rec := &fireRecorder{}
	s := newTestScheduler(src, rec, &now)

	s.Tick(context.Background())
	fired := rec.wait(t, 1)
	if len(fired) != 1 || fired[0] != 1 {
		t.Fatalf("expected alarm 1 to fire once, got %v", fired)
	}

	// Same minute again: no repeat.
	now = now.Add(10 * time.Second)
	s.Tick(context.Background())
	time.Sleep(20 * time.Millisecond)
	if fired := rec.wait(t, 1); len(fired) != 1 {
		t.Fatalf("expected no repeat within the minute, got %v", fired)
	}

	// Next day, same minute: fires again.
	now = now.AddDate(0, 0, 1)
	s.Tick(context.Background())
	if fired := rec.wait(t, 2); len(fired) != 2 {
		t.Fatalf("expected second firing next day, got %v", fired)
	}
}

func TestTickHonoursDayMask(t *testing.T) {
	// 2026-01-07 is a Wednesday.
	now := time.Date(2026, time.January, 7, 6, 30, 0, 0, time.UTC)
	src := &fakeSource{alarms: []*store.Alarm{
		{ID: 1, Hour: 6, Minute: 30, Days: store.DayMask(0).With(time.Saturday), Enabled: true},
	}}
	rec := &fireRecorder{}
	s := newTestScheduler(src, rec, &now)

	s.Tick(context.Background())
	time.Sleep(20 * time.Millisecond)
	rec.mu.Lock()
	n := len(rec.fired)
	rec.mu.Unlock()
	if n != 0 {
		t.Fatalf("expected no firing on Wednesday, got %d", n)
	}
}

func TestSnoozeSuppressesFirings(t *testing.T) {
	now := time.Date(2026, time.January, 7, 6, 29, 55, 0, time.UTC)
	src := &fakeSource{alarms: []*store.Alarm{
		{ID: 1, Hour: 6, Minute: 30, Days: store.EveryDay, Enabled: true},
	}}
	rec := &fireRecorder{}
	s := newTestScheduler(src, rec, &now)

	until := s.Snooze(time.Minute)
	if want := now.Add(time.Minute); !until.Equal(want) {
		t.Fatalf("snoozed until %v, want %v", until, want)
	}
	if _, ok := s.SnoozedUntil(); !ok {
		t.Fatal("expected active snooze window")
	}

	now = now.Add(7 * time.Second) // 06:30:02, inside the snooze window
	s.Tick(context.Background())
	time.Sleep(20 * time.Millisecond)
	rec.mu.Lock()
	n := len(rec.fired)
	rec.mu.Unlock()
	if n != 0 {
		t.Fatalf("expected snooze to suppress firing, got %d", n)
	}

	now = now.Add(2 * time.Minute) // past the window, but 06:32 no longer matches
	if _, ok := s.SnoozedUntil(); ok {
		t.Fatal("expected snooze window to have expired")
	}
}

func TestTickSurvivesSourceErrors(t *testing.T) {
	now := time.Date(2026, time.January, 7, 6, 30, 0, 0, time.UTC)
	src := &fakeSource{err: errors.New("database locked")}
	rec := &fireRecorder{}
	s := newTestScheduler(src, rec, &now)

	s.Tick(context.Background())

	src.mu.Lock()
	src.err = nil
	src.alarms = []*store.Alarm{{ID: 1, Hour: 6, Minute: 30, Days: store.EveryDay, Enabled: true}}
	src.mu.Unlock()

	s.Tick(context.Background())
	if fired := rec.wait(t, 1); len(fired) != 1 {
		t.Fatalf("expected firing after source recovered, got %v", fired)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	now := time.Date(2026, time.January, 7, 12, 0, 0, 0, time.UTC)
	src := &fakeSource{}
	rec := &fireRecorder{}
	s := alarm.NewScheduler(src, rec.fire, logging.NewNop(), alarm.Options{
		Interval: time.Millisecond,
		Now:      func() time.Time { return now },
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()
	time.Sleep(10 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("Run returned %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}
