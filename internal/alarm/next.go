package alarm

import (
	"time"

	"roostaboosta/internal/store"
)

// Next returns the first instant strictly after from at which the alarm
// fires, in from's location. It returns false for disabled alarms and for
// alarms whose day mask never matches.
func Next(a *store.Alarm, from time.Time) (time.Time, bool) {
	if !a.Enabled || a.Days == 0 {
		return time.Time{}, false
	}
	for offset := 0; offset <= 7; offset++ {
		day := from.AddDate(0, 0, offset)
		if !a.Days.Has(day.Weekday()) {
			continue
		}
		at := time.Date(day.Year(), day.Month(), day.Day(), a.Hour, a.Minute, 0, 0, from.Location())
		if at.After(from) {
			return at, true
		}
	}
	return time.Time{}, false
}

// NextFiring returns the soonest firing among the given alarms, with the
// alarm that produces it. ok is false when none of them can fire.
func NextFiring(alarms []*store.Alarm, from time.Time) (*store.Alarm, time.Time, bool) {
	var (
		best   *store.Alarm
		bestAt time.Time
	)
	for _, a := range alarms {
		at, ok := Next(a, from)
		if !ok {
			continue
		}
		if best == nil || at.Before(bestAt) {
			best = a
			bestAt = at
		}
	}
	if best == nil {
		return nil, time.Time{}, false
	}
	return best, bestAt, true
}
