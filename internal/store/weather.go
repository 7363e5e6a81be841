package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"roostaboosta/internal/weather"
)

// WeatherCache adapts the store to the weather service's cache contract.
// The cache holds a single row, replaced on every store.
type WeatherCache struct {
	s *Store
}

// WeatherCache returns the single-row observation cache.
func (s *Store) WeatherCache() *WeatherCache {
	return &WeatherCache{s: s}
}

// Load returns the cached observation, or the zero time when nothing has
// been cached yet.
func (c *WeatherCache) Load(ctx context.Context) (weather.Data, time.Time, error) {
	row := c.s.db.QueryRowContext(ctx,
		`SELECT humidity, precip_chance, temperature, wind_speed, condition, fetched_at
         FROM weather_cache WHERE id = 1`)

	var d weather.Data
	var fetchedRaw string
	err := row.Scan(&d.Humidity, &d.PrecipChance, &d.Temperature, &d.WindSpeed, &d.Condition, &fetchedRaw)
	if errors.Is(err, sql.ErrNoRows) {
		return weather.Data{}, time.Time{}, nil
	}
	if err != nil {
		return weather.Data{}, time.Time{}, fmt.Errorf("load weather cache: %w", err)
	}
	fetchedAt, err := parseTimeString(fetchedRaw)
	if err != nil {
		return weather.Data{}, time.Time{}, fmt.Errorf("parse weather cache timestamp: %w", err)
	}
	return d, fetchedAt, nil
}

// Store replaces the cached observation.
func (c *WeatherCache) Store(ctx context.Context, d weather.Data, fetchedAt time.Time) error {
	_, err := c.s.db.ExecContext(ctx,
		`INSERT INTO weather_cache (id, humidity, precip_chance, temperature, wind_speed, condition, fetched_at)
         VALUES (1, ?, ?, ?, ?, ?, ?)
         ON CONFLICT(id) DO UPDATE SET
             humidity = excluded.humidity,
             precip_chance = excluded.precip_chance,
             temperature = excluded.temperature,
             wind_speed = excluded.wind_speed,
             condition = excluded.condition,
             fetched_at = excluded.fetched_at`,
		d.Humidity, d.PrecipChance, d.Temperature, d.WindSpeed, d.Condition, formatTime(fetchedAt),
	)
	if err != nil {
		return fmt.Errorf("store weather cache: %w", err)
	}
	return nil
}
