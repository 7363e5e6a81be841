package alarm_test

import (
	"testing"
	"time"

	"roostaboosta/internal/alarm"
	"roostaboosta/internal/store"
)

// 2026-01-07 is a Wednesday.
var wednesday = time.Date(2026, time.January, 7, 6, 30, 0, 0, time.UTC)

func TestNext(t *testing.T) {
	cases := []struct {
		name string
		a    store.Alarm
		from time.Time
		want time.Time
		ok   bool
	}{
		{
			name: "later today",
			a:    store.Alarm{Hour: 7, Minute: 0, Days: store.EveryDay, Enabled: true},
			from: wednesday,
			want: time.Date(2026, time.January, 7, 7, 0, 0, 0, time.UTC),
			ok:   true,
		},
		{
			name: "already passed rolls to tomorrow",
			a:    store.Alarm{Hour: 6, Minute: 0, Days: store.EveryDay, Enabled: true},
			from: wednesday,
			want: time.Date(2026, time.January, 8, 6, 0, 0, 0, time.UTC),
			ok:   true,
		},
		{
			name: "exact minute is not due again",
			a:    store.Alarm{Hour: 6, Minute: 30, Days: store.EveryDay, Enabled: true},
			from: wednesday,
			want: time.Date(2026, time.January, 8, 6, 30, 0, 0, time.UTC),
			ok:   true,
		},
		{
			name: "weekday mask skips to saturday",
			a:    store.Alarm{Hour: 9, Minute: 15, Days: store.DayMask(0).With(time.Saturday), Enabled: true},
			from: wednesday,
			want: time.Date(2026, time.January, 10, 9, 15, 0, 0, time.UTC),
			ok:   true,
		},
		{
			name: "same weekday next week",
			a:    store.Alarm{Hour: 5, Minute: 0, Days: store.DayMask(0).With(time.Wednesday), Enabled: true},
			from: wednesday,
			want: time.Date(2026, time.January, 14, 5, 0, 0, 0, time.UTC),
			ok:   true,
		},
		{
			name: "disabled never fires",
			a:    store.Alarm{Hour: 7, Minute: 0, Days: store.EveryDay},
			from: wednesday,
		},
		{
			name: "empty mask never fires",
			a:    store.Alarm{Hour: 7, Minute: 0, Enabled: true},
			from: wednesday,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := alarm.Next(&tc.a, tc.from)
			if ok != tc.ok {
				t.Fatalf("Next ok = %v, want %v", ok, tc.ok)
			}
			if ok && !got.Equal(tc.want) {
				t.Fatalf("Next = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestNextFiringPicksSoonest(t *testing.T) {
	alarms := []*store.Alarm{
		{ID: 1, Hour: 8, Minute: 0, Days: store.EveryDay, Enabled: true},
		{ID: 2, Hour: 6, Minute: 45, Days: store.EveryDay, Enabled: true},
		{ID: 3, Hour: 6, Minute: 0, Days: store.EveryDay}, // disabled
	}
	best, at, ok := alarm.NextFiring(alarms, wednesday)
	if !ok {
		t.Fatal("expected a firing")
	}
	if best.ID != 2 {
		t.Fatalf("expected alarm 2, got %d", best.ID)
	}
	want := time.Date(2026, time.January, 7, 6, 45, 0, 0, time.UTC)
	if !at.Equal(want) {
		t.Fatalf("firing at %v, want %v", at, want)
	}

	if _, _, ok := alarm.NextFiring(nil, wednesday); ok {
		t.Fatal("expected no firing for empty list")
	}
}
