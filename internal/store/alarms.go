package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// DayMask selects the weekdays an alarm repeats on, one bit per day with
// bit 0 = Sunday, matching time.Weekday ordering.
type DayMask uint8

// EveryDay enables all seven weekday bits.
const EveryDay DayMask = 0x7f

// Has reports whether the mask includes the given weekday.
func (m DayMask) Has(d time.Weekday) bool {
	return m&(1<<uint(d)) != 0
}

// With returns the mask with the given weekday enabled.
func (m DayMask) With(d time.Weekday) DayMask {
	return m | 1<<uint(d)
}

var dayLetters = [...]string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"}

func (m DayMask) String() string {
	if m == EveryDay {
		return "daily"
	}
	var b strings.Builder
	for d := time.Sunday; d <= time.Saturday; d++ {
		if m.Has(d) {
			b.WriteString(dayLetters[d])
		}
	}
	if b.Len() == 0 {
		return "never"
	}
	return b.String()
}

// Alarm is one scheduled wake-up.
type Alarm struct {
	ID        int64
	Hour      int
	Minute    int
	Days      DayMask
	Sound     string
	Speed     float64
	Enabled   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks field ranges before persisting.
func (a *Alarm) Validate() error {
	if a.Hour < 0 || a.Hour > 23 {
		return fmt.Errorf("alarm hour %d out of range", a.Hour)
	}
	if a.Minute < 0 || a.Minute > 59 {
		return fmt.Errorf("alarm minute %d out of range", a.Minute)
	}
	if strings.TrimSpace(a.Sound) == "" {
		return errors.New("alarm sound is empty")
	}
	if a.Speed <= 0 {
		return fmt.Errorf("alarm speed %v must be positive", a.Speed)
	}
	if a.Days == 0 {
		return errors.New("alarm repeats on no days")
	}
	return nil
}

const alarmColumns = "id, hour, minute, days, sound, speed, enabled, created_at, updated_at"

// AddAlarm inserts a new alarm and returns it with its assigned id.
func (s *Store) AddAlarm(ctx context.Context, a Alarm) (*Alarm, error) {
	if a.Days == 0 {
		a.Days = EveryDay
	}
	if a.Speed == 0 {
		a.Speed = 1.0
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	now := formatTime(time.Now())
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO alarms (hour, minute, days, sound, speed, enabled, created_at, updated_at)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		a.Hour, a.Minute, int(a.Days), a.Sound, a.Speed, boolToInt(a.Enabled), now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert alarm: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.AlarmByID(ctx, id)
}

// AlarmByID fetches one alarm, or nil when it does not exist.
func (s *Store) AlarmByID(ctx context.Context, id int64) (*Alarm, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+alarmColumns+` FROM alarms WHERE id = ?`, id)
	a, err := scanAlarm(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get alarm: %w", err)
	}
	return a, nil
}

// Alarms lists every alarm ordered by firing time.
func (s *Store) Alarms(ctx context.Context) ([]*Alarm, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+alarmColumns+` FROM alarms ORDER BY hour, minute, id`)
	if err != nil {
		return nil, fmt.Errorf("list alarms: %w", err)
	}
	defer rows.Close()

	var alarms []*Alarm
	for rows.Next() {
		a, err := scanAlarm(rows)
		if err != nil {
			return nil, err
		}
		alarms = append(alarms, a)
	}
	return alarms, rows.Err()
}

// EnabledAlarms lists alarms eligible for scheduling.
func (s *Store) EnabledAlarms(ctx context.Context) ([]*Alarm, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+alarmColumns+` FROM alarms WHERE enabled = 1 ORDER BY hour, minute, id`)
	if err != nil {
		return nil, fmt.Errorf("list enabled alarms: %w", err)
	}
	defer rows.Close()

	var alarms []*Alarm
	for rows.Next() {
		a, err := scanAlarm(rows)
		if err != nil {
			return nil, err
		}
		alarms = append(alarms, a)
	}
	return alarms, rows.Err()
}

// UpdateAlarm persists changes to an existing alarm.
func (s *Store) UpdateAlarm(ctx context.Context, a *Alarm) error {
	if a == nil {
		return errors.New("alarm is nil")
	}
	if err := a.Validate(); err != nil {
		return err
	}
	a.UpdatedAt = time.Now().UTC()
	res, err := s.db.ExecContext(ctx,
		`UPDATE alarms SET hour = ?, minute = ?, days = ?, sound = ?, speed = ?, enabled = ?, updated_at = ?
         WHERE id = ?`,
		a.Hour, a.Minute, int(a.Days), a.Sound, a.Speed, boolToInt(a.Enabled), formatTime(a.UpdatedAt), a.ID,
	)
	if err != nil {
		return fmt.Errorf("update alarm: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("alarm %d does not exist", a.ID)
	}
	return nil
}

// SetAlarmEnabled flips one alarm's enabled state.
func (s *Store) SetAlarmEnabled(ctx context.Context, id int64, enabled bool) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE alarms SET enabled = ?, updated_at = ? WHERE id = ?`,
		boolToInt(enabled), formatTime(time.Now()), id,
	)
	if err != nil {
		return fmt.Errorf("set alarm enabled: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("alarm %d does not exist", id)
	}
	return nil
}

// RemoveAlarm deletes an alarm by identifier.
func (s *Store) RemoveAlarm(ctx context.Context, id int64) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM alarms WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete alarm: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}

func scanAlarm(scanner interface{ Scan(dest ...any) error }) (*Alarm, error) {
	var (
		a          Alarm
		days       int64
		enabled    int64
		createdRaw string
		updatedRaw string
	)
	if err := scanner.Scan(&a.ID, &a.Hour, &a.Minute, &days, &a.Sound, &a.Speed, &enabled, &createdRaw, &updatedRaw); err != nil {
		return nil, err
	}
	a.Days = DayMask(days)
	a.Enabled = enabled != 0
	if created, err := parseTimeString(createdRaw); err == nil {
		a.CreatedAt = created
	}
	if updated, err := parseTimeString(updatedRaw); err == nil {
		a.UpdatedAt = updated
	}
	return &a, nil
}
