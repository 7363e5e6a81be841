package ipc

import "time"

// StatusRequest fetches daemon status.
type StatusRequest struct{}

// StatusResponse reports daemon runtime state.
type StatusResponse struct {
	Running      bool   `json:"running"`
	PID          int    `json:"pid"`
	LockPath     string `json:"lock_path"`
	DatabasePath string `json:"database_path"`

	Playing         bool      `json:"playing"`
	PlaybackSession string    `json:"playback_session,omitempty"`
	PlaybackSound   string    `json:"playback_sound,omitempty"`
	PlaybackStarted time.Time `json:"playback_started,omitempty"`

	HasNextAlarm bool      `json:"has_next_alarm"`
	NextAlarmID  int64     `json:"next_alarm_id,omitempty"`
	NextAlarmAt  time.Time `json:"next_alarm_at,omitempty"`

	Snoozed      bool      `json:"snoozed"`
	SnoozedUntil time.Time `json:"snoozed_until,omitempty"`

	WifiConnected bool   `json:"wifi_connected"`
	WifiAddress   string `json:"wifi_address,omitempty"`
}

// PlayRequest starts a playback session.
type PlayRequest struct {
	Sound string  `json:"sound"`
	Speed float64 `json:"speed"`
}

// PlayResponse returns the new session id.
type PlayResponse struct {
	Session string `json:"session"`
}

// StopPlaybackRequest cancels the active playback session.
type StopPlaybackRequest struct{}

// StopPlaybackResponse indicates the session was stopped.
type StopPlaybackResponse struct {
	Stopped bool `json:"stopped"`
}

// SnoozeRequest silences a ringing alarm.
type SnoozeRequest struct{}

// SnoozeResponse returns the end of the snooze window.
type SnoozeResponse struct {
	Until time.Time `json:"until"`
}

// WeatherRequest fetches the current observation.
type WeatherRequest struct{}

// WeatherResponse carries the observation shown on the display.
type WeatherResponse struct {
	Humidity     int    `json:"humidity"`
	PrecipChance int    `json:"precip_chance"`
	Temperature  int    `json:"temperature"`
	WindSpeed    int    `json:"wind_speed"`
	Condition    string `json:"condition"`
}

// Alarm is the wire form of a stored alarm.
type Alarm struct {
	ID      int64   `json:"id"`
	Hour    int     `json:"hour"`
	Minute  int     `json:"minute"`
	Days    uint8   `json:"days"`
	DaysTag string  `json:"days_tag"`
	Sound   string  `json:"sound"`
	Speed   float64 `json:"speed"`
	Enabled bool    `json:"enabled"`
}

// AlarmListRequest lists all alarms.
type AlarmListRequest struct{}

// AlarmListResponse contains the stored alarms.
type AlarmListResponse struct {
	Alarms []Alarm `json:"alarms"`
}

// AlarmSetRequest adds an alarm. Zero Sound/Speed pick up configured
// defaults; zero Days means every day.
type AlarmSetRequest struct {
	Hour   int     `json:"hour"`
	Minute int     `json:"minute"`
	Days   uint8   `json:"days"`
	Sound  string  `json:"sound"`
	Speed  float64 `json:"speed"`
}

// AlarmSetResponse returns the stored alarm.
type AlarmSetResponse struct {
	Alarm Alarm `json:"alarm"`
}

// AlarmEnableRequest toggles an alarm.
type AlarmEnableRequest struct {
	ID      int64 `json:"id"`
	Enabled bool  `json:"enabled"`
}

// AlarmEnableResponse acknowledges the toggle.
type AlarmEnableResponse struct{}

// AlarmDeleteRequest removes an alarm by id.
type AlarmDeleteRequest struct {
	ID int64 `json:"id"`
}

// AlarmDeleteResponse reports whether the alarm existed.
type AlarmDeleteResponse struct {
	Removed bool `json:"removed"`
}

// PlaybackLogRequest fetches recent playback sessions.
type PlaybackLogRequest struct {
	Limit int `json:"limit"`
}

// PlaybackEntry is the wire form of one playback log row.
type PlaybackEntry struct {
	Session    string    `json:"session"`
	File       string    `json:"file"`
	Speed      float64   `json:"speed"`
	Trigger    string    `json:"trigger"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at,omitempty"`
	Error      string    `json:"error,omitempty"`
}

// PlaybackLogResponse contains sessions, newest first.
type PlaybackLogResponse struct {
	Entries []PlaybackEntry `json:"entries"`
}

// ShutdownRequest asks the daemon process to exit.
type ShutdownRequest struct{}

// ShutdownResponse acknowledges the shutdown.
type ShutdownResponse struct {
	Stopping bool `json:"stopping"`
}
