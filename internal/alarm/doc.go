// Package alarm schedules wake-ups from the alarms stored in the database.
//
// Next computes when an alarm fires next given its hour, minute, and day
// mask. Scheduler polls the store once per tick, fires due alarms through a
// caller-supplied callback, and suppresses firings during a snooze window.
package alarm
