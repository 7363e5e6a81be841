package store_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"roostaboosta/internal/store"
	"roostaboosta/internal/weather"
)

func openStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "clock.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clock.db")
	s, err := store.Open(path)
	if err != nil {
		t.Fatalf("first Open failed: %v", err)
	}
	s.Close()

	s, err = store.Open(path)
	if err != nil {
		t.Fatalf("second Open failed: %v", err)
	}
	s.Close()
}

func TestAlarmRoundTrip(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	a, err := s.AddAlarm(ctx, store.Alarm{Hour: 7, Minute: 30, Sound: "rooster.pcm", Enabled: true})
	if err != nil {
		t.Fatalf("AddAlarm failed: %v", err)
	}
	if a.ID == 0 {
		t.Fatal("alarm id not assigned")
	}
	if a.Days != store.EveryDay {
		t.Fatalf("default days = %v, want daily", a.Days)
	}
	if a.Speed != 1.0 {
		t.Fatalf("default speed = %v", a.Speed)
	}

	a.Hour = 8
	a.Days = store.DayMask(0).With(time.Monday).With(time.Friday)
	if err := s.UpdateAlarm(ctx, a); err != nil {
		t.Fatalf("UpdateAlarm failed: %v", err)
	}

	got, err := s.AlarmByID(ctx, a.ID)
	if err != nil {
		t.Fatalf("AlarmByID failed: %v", err)
	}
	if got.Hour != 8 || !got.Days.Has(time.Monday) || got.Days.Has(time.Sunday) {
		t.Fatalf("got %+v", got)
	}

	if err := s.SetAlarmEnabled(ctx, a.ID, false); err != nil {
		t.Fatalf("SetAlarmEnabled failed: %v", err)
	}
	enabled, err := s.EnabledAlarms(ctx)
	if err != nil {
		t.Fatalf("EnabledAlarms failed: %v", err)
	}
	if len(enabled) != 0 {
		t.Fatalf("expected no enabled alarms, got %d", len(enabled))
	}

	removed, err := s.RemoveAlarm(ctx, a.ID)
	if err != nil || !removed {
		t.Fatalf("RemoveAlarm = %v, %v", removed, err)
	}
	if got, _ := s.AlarmByID(ctx, a.ID); got != nil {
		t.Fatal("alarm still present after removal")
	}
}

func TestAlarmValidation(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	cases := []store.Alarm{
		{Hour: 24, Minute: 0, Sound: "x.pcm"},
		{Hour: 0, Minute: 60, Sound: "x.pcm"},
		{Hour: 0, Minute: 0, Sound: "  "},
		{Hour: 0, Minute: 0, Sound: "x.pcm", Speed: -1},
	}
	for i, a := range cases {
		if _, err := s.AddAlarm(ctx, a); err == nil {
			t.Fatalf("case %d: expected validation error for %+v", i, a)
		}
	}
}

func TestAlarmsOrdering(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	for _, hm := range [][2]int{{9, 0}, {6, 45}, {6, 30}} {
		if _, err := s.AddAlarm(ctx, store.Alarm{Hour: hm[0], Minute: hm[1], Sound: "x.pcm"}); err != nil {
			t.Fatalf("AddAlarm failed: %v", err)
		}
	}
	alarms, err := s.Alarms(ctx)
	if err != nil {
		t.Fatalf("Alarms failed: %v", err)
	}
	if len(alarms) != 3 {
		t.Fatalf("got %d alarms", len(alarms))
	}
	if alarms[0].Hour != 6 || alarms[0].Minute != 30 || alarms[2].Hour != 9 {
		t.Fatalf("wrong order: %+v", alarms)
	}
}

func TestWeatherCacheRoundTrip(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	cache := s.WeatherCache()

	if _, at, err := cache.Load(ctx); err != nil || !at.IsZero() {
		t.Fatalf("empty cache: at=%v err=%v", at, err)
	}

	d := weather.Data{Humidity: 70, PrecipChance: 10, Temperature: 65, WindSpeed: 4, Condition: "Clear"}
	when := time.Now()
	if err := cache.Store(ctx, d, when); err != nil {
		t.Fatalf("Store failed: %v", err)
	}

	got, at, err := cache.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got != d {
		t.Fatalf("got %+v, want %+v", got, d)
	}
	if at.Unix() != when.Unix() {
		t.Fatalf("fetchedAt = %v, want %v", at, when)
	}

	// Second store replaces the single row.
	d2 := weather.Data{Condition: "Rain"}
	if err := cache.Store(ctx, d2, when.Add(time.Minute)); err != nil {
		t.Fatalf("second Store failed: %v", err)
	}
	got, _, err = cache.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got.Condition != "Rain" {
		t.Fatalf("got %+v", got)
	}
}

func TestPlaybackLog(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	if err := s.LogPlaybackStart(ctx, "sess-1", "rooster.pcm", 1.0, store.TriggerAlarm); err != nil {
		t.Fatalf("LogPlaybackStart failed: %v", err)
	}
	if err := s.LogPlaybackEnd(ctx, "sess-1", nil); err != nil {
		t.Fatalf("LogPlaybackEnd failed: %v", err)
	}

	entries, err := s.RecentPlayback(ctx, 10)
	if err != nil {
		t.Fatalf("RecentPlayback failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries", len(entries))
	}
	e := entries[0]
	if e.Session != "sess-1" || e.Trigger != store.TriggerAlarm || e.Error != "" {
		t.Fatalf("entry = %+v", e)
	}
	if e.FinishedAt.IsZero() {
		t.Fatal("finished_at not recorded")
	}
}

func TestDayMaskString(t *testing.T) {
	cases := []struct {
		mask store.DayMask
		want string
	}{
		{store.EveryDay, "daily"},
		{0, "never"},
		{store.DayMask(0).With(time.Monday).With(time.Wednesday), "MoWe"},
	}
	for _, tc := range cases {
		if got := tc.mask.String(); got != tc.want {
			t.Fatalf("%v.String() = %q, want %q", tc.mask, got, tc.want)
		}
	}
}
