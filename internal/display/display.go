// Package display renders weather and clock frames for a small character
// screen. Formatting is pure so it can be tested without hardware; the
// Screen interface is the only device-facing seam.
package display

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"roostaboosta/internal/logging"
	"roostaboosta/internal/weather"
)

// Width is the column count of the target screen.
const Width = 16

// Screen is a row-addressable character display.
type Screen interface {
	Clear() error
	WriteLine(row int, text string) error
}

var titleCaser = cases.Title(language.English)

// WeatherFrame formats an observation as screen lines. The condition text is
// title-cased and wrapped onto the last rows.
func WeatherFrame(d weather.Data) []string {
	lines := []string{
		"Weather Outside:",
		fmt.Sprintf("Temp: %d F", d.Temperature),
		fmt.Sprintf("Rain Chance: %d%%", d.PrecipChance),
		fmt.Sprintf("Wind: %d mph", d.WindSpeed),
		fmt.Sprintf("Humidity: %d%%", d.Humidity),
	}
	return append(lines, wrapCondition(d.Condition)...)
}

// ClockFrame formats the current time and the next wake-up, if any.
func ClockFrame(now time.Time, next time.Time, hasNext bool) []string {
	lines := []string{
		now.Format("Mon Jan 2"),
		now.Format("15:04:05"),
	}
	if hasNext {
		lines = append(lines, "Next alarm:", next.Format("Mon 15:04"))
	} else {
		lines = append(lines, "No alarms set")
	}
	return lines
}

// wrapCondition title-cases the condition and wraps it onto at most two
// rows, truncating words that cannot fit.
func wrapCondition(condition string) []string {
	condition = strings.TrimSpace(condition)
	if condition == "" {
		return nil
	}
	var (
		lines []string
		cur   strings.Builder
	)
	flush := func() {
		if cur.Len() > 0 {
			lines = append(lines, cur.String())
			cur.Reset()
		}
	}
	for _, word := range strings.Fields(titleCaser.String(condition)) {
		if len(word) > Width {
			word = word[:Width]
		}
		switch {
		case cur.Len() == 0:
			cur.WriteString(word)
		case cur.Len()+1+len(word) <= Width:
			cur.WriteByte(' ')
			cur.WriteString(word)
		default:
			flush()
			cur.WriteString(word)
		}
		if len(lines) == 2 {
			return lines
		}
	}
	flush()
	if len(lines) > 2 {
		lines = lines[:2]
	}
	return lines
}

// Renderer pushes frames to a screen.
type Renderer struct {
	screen Screen
	logger *slog.Logger
}

// NewRenderer wraps a screen with logging.
func NewRenderer(screen Screen, logger *slog.Logger) *Renderer {
	return &Renderer{
		screen: screen,
		logger: logging.NewComponentLogger(logger, "display"),
	}
}

// Render clears the screen and writes the frame, one line per row. Lines are
// clipped to the screen width.
func (r *Renderer) Render(lines []string) error {
	if err := r.screen.Clear(); err != nil {
		return fmt.Errorf("clear screen: %w", err)
	}
	for row, line := range lines {
		if len(line) > Width {
			line = line[:Width]
		}
		if err := r.screen.WriteLine(row, line); err != nil {
			return fmt.Errorf("write row %d: %w", row, err)
		}
	}
	return nil
}
