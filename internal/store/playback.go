package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Playback triggers recorded in the log.
const (
	TriggerAlarm   = "alarm"
	TriggerManual  = "manual"
	TriggerConsole = "console"
)

// PlaybackEntry is one row of the playback log.
type PlaybackEntry struct {
	ID         int64
	Session    string
	File       string
	Speed      float64
	Trigger    string
	StartedAt  time.Time
	FinishedAt time.Time // zero while in flight
	Error      string
}

// LogPlaybackStart records the start of a playback session.
func (s *Store) LogPlaybackStart(ctx context.Context, session, file string, speed float64, trigger string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO playback_log (session, file, speed, trigger_kind, started_at)
         VALUES (?, ?, ?, ?, ?)`,
		session, file, speed, trigger, formatTime(time.Now()),
	)
	if err != nil {
		return fmt.Errorf("log playback start: %w", err)
	}
	return nil
}

// LogPlaybackEnd closes a session's log row. playErr may be nil.
func (s *Store) LogPlaybackEnd(ctx context.Context, session string, playErr error) error {
	msg := ""
	if playErr != nil {
		msg = playErr.Error()
	}
	_, err := s.db.ExecContext(ctx,
		`UPDATE playback_log SET finished_at = ?, error = ? WHERE session = ?`,
		formatTime(time.Now()), nullableString(msg), session,
	)
	if err != nil {
		return fmt.Errorf("log playback end: %w", err)
	}
	return nil
}

// RecentPlayback lists the newest playback log rows, most recent first.
func (s *Store) RecentPlayback(ctx context.Context, limit int) ([]*PlaybackEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, session, file, speed, trigger_kind, started_at, finished_at, error
         FROM playback_log ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list playback log: %w", err)
	}
	defer rows.Close()

	var entries []*PlaybackEntry
	for rows.Next() {
		var (
			e           PlaybackEntry
			startedRaw  string
			finishedRaw sql.NullString
			errRaw      sql.NullString
		)
		if err := rows.Scan(&e.ID, &e.Session, &e.File, &e.Speed, &e.Trigger, &startedRaw, &finishedRaw, &errRaw); err != nil {
			return nil, err
		}
		if started, err := parseTimeString(startedRaw); err == nil {
			e.StartedAt = started
		}
		if finishedRaw.Valid {
			if finished, err := parseTimeString(finishedRaw.String); err == nil {
				e.FinishedAt = finished
			}
		}
		e.Error = errRaw.String
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}
