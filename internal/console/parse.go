// Package console implements the line-oriented command console reachable
// over an auxiliary serial port (typically a Bluetooth UART adapter).
//
// Parsing is pure and separately testable; Run pumps lines between an
// io.Reader/io.Writer pair and a caller-supplied executor.
package console

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"roostaboosta/internal/store"
)

// Kind identifies a parsed console command.
type Kind int

const (
	KindHelp Kind = iota
	KindStatus
	KindWeather
	KindPlay
	KindStop
	KindSnooze
	KindAlarmList
	KindAlarmSet
	KindAlarmDelete
)

// Command is one parsed console line.
type Command struct {
	Kind Kind

	// Play
	Sound string
	Speed float64

	// AlarmSet
	Hour   int
	Minute int
	Days   store.DayMask

	// AlarmDelete
	ID int64
}

// Usage is the help text printed for "help" and unknown commands.
const Usage = `commands:
  status                       daemon and playback state
  weather                      current conditions
  play <sound> [speed]         stream a sound file
  stop                         stop playback
  snooze                       snooze a ringing alarm
  alarm list                   list alarms
  alarm set HH:MM [days]       add an alarm (days: daily, weekdays,
                               weekend, or codes like MoWeFr)
  alarm del <id>               remove an alarm
  help                         this text`

// Parse turns one console line into a Command.
func Parse(line string) (Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{}, fmt.Errorf("empty command")
	}
	verb := strings.ToLower(fields[0])
	args := fields[1:]

	switch verb {
	case "help", "?":
		return Command{Kind: KindHelp}, expectArgs(verb, args, 0)
	case "status":
		return Command{Kind: KindStatus}, expectArgs(verb, args, 0)
	case "weather":
		return Command{Kind: KindWeather}, expectArgs(verb, args, 0)
	case "stop":
		return Command{Kind: KindStop}, expectArgs(verb, args, 0)
	case "snooze":
		return Command{Kind: KindSnooze}, expectArgs(verb, args, 0)
	case "play":
		return parsePlay(args)
	case "alarm":
		return parseAlarm(args)
	default:
		return Command{}, fmt.Errorf("unknown command %q", verb)
	}
}

func expectArgs(verb string, args []string, n int) error {
	if len(args) != n {
		return fmt.Errorf("%s takes no arguments", verb)
	}
	return nil
}

func parsePlay(args []string) (Command, error) {
	if len(args) < 1 || len(args) > 2 {
		return Command{}, fmt.Errorf("usage: play <sound> [speed]")
	}
	cmd := Command{Kind: KindPlay, Sound: args[0], Speed: 1.0}
	if len(args) == 2 {
		speed, err := strconv.ParseFloat(args[1], 64)
		if err != nil || speed <= 0 {
			return Command{}, fmt.Errorf("bad speed %q", args[1])
		}
		cmd.Speed = speed
	}
	return cmd, nil
}

func parseAlarm(args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, fmt.Errorf("usage: alarm list|set|del")
	}
	switch strings.ToLower(args[0]) {
	case "list":
		return Command{Kind: KindAlarmList}, expectArgs("alarm list", args[1:], 0)
	case "set":
		return parseAlarmSet(args[1:])
	case "del", "delete", "rm":
		if len(args) != 2 {
			return Command{}, fmt.Errorf("usage: alarm del <id>")
		}
		id, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil || id <= 0 {
			return Command{}, fmt.Errorf("bad alarm id %q", args[1])
		}
		return Command{Kind: KindAlarmDelete, ID: id}, nil
	default:
		return Command{}, fmt.Errorf("unknown alarm subcommand %q", args[0])
	}
}

func parseAlarmSet(args []string) (Command, error) {
	if len(args) < 1 || len(args) > 2 {
		return Command{}, fmt.Errorf("usage: alarm set HH:MM [days]")
	}
	hour, minute, err := ParseClock(args[0])
	if err != nil {
		return Command{}, err
	}
	cmd := Command{Kind: KindAlarmSet, Hour: hour, Minute: minute, Days: store.EveryDay}
	if len(args) == 2 {
		days, err := ParseDays(args[1])
		if err != nil {
			return Command{}, err
		}
		cmd.Days = days
	}
	return cmd, nil
}

// ParseClock parses a 24-hour HH:MM time.
func ParseClock(s string) (hour, minute int, err error) {
	h, m, ok := strings.Cut(s, ":")
	if !ok {
		return 0, 0, fmt.Errorf("bad time %q, want HH:MM", s)
	}
	hour, err = strconv.Atoi(h)
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("bad hour in %q", s)
	}
	minute, err = strconv.Atoi(m)
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("bad minute in %q", s)
	}
	return hour, minute, nil
}

var dayCodes = map[string]time.Weekday{
	"su": time.Sunday,
	"mo": time.Monday,
	"tu": time.Tuesday,
	"we": time.Wednesday,
	"th": time.Thursday,
	"fr": time.Friday,
	"sa": time.Saturday,
}

// ParseDays parses a day specifier: "daily", "weekdays", "weekend", or a
// run of two-letter codes such as "MoWeFr".
func ParseDays(s string) (store.DayMask, error) {
	switch strings.ToLower(s) {
	case "daily", "everyday":
		return store.EveryDay, nil
	case "weekdays":
		var m store.DayMask
		for d := time.Monday; d <= time.Friday; d++ {
			m = m.With(d)
		}
		return m, nil
	case "weekend":
		return store.DayMask(0).With(time.Saturday).With(time.Sunday), nil
	}

	lower := strings.ToLower(s)
	if len(lower)%2 != 0 {
		return 0, fmt.Errorf("bad day specifier %q", s)
	}
	var mask store.DayMask
	for i := 0; i < len(lower); i += 2 {
		day, ok := dayCodes[lower[i:i+2]]
		if !ok {
			return 0, fmt.Errorf("bad day code %q in %q", lower[i:i+2], s)
		}
		mask = mask.With(day)
	}
	if mask == 0 {
		return 0, fmt.Errorf("bad day specifier %q", s)
	}
	return mask, nil
}
