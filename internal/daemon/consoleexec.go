package daemon

import (
	"context"
	"fmt"
	"strings"
	"time"

	"roostaboosta/internal/console"
	"roostaboosta/internal/store"
)

// ConsoleExec executes a parsed console command. It is the executor handed
// to console.New when the serial command console is enabled.
func (d *Daemon) ConsoleExec(ctx context.Context, cmd console.Command) (string, error) {
	switch cmd.Kind {
	case console.KindStatus:
		return d.consoleStatus(ctx), nil
	case console.KindWeather:
		data, err := d.WeatherNow(ctx)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%d F, %s, rain %d%%, wind %d mph, humidity %d%%",
			data.Temperature, data.Condition, data.PrecipChance, data.WindSpeed, data.Humidity), nil
	case console.KindPlay:
		session, err := d.PlayFromConsole(ctx, cmd.Sound, cmd.Speed)
		if err != nil {
			return "", err
		}
		return "playing, session " + session, nil
	case console.KindStop:
		return "", d.StopPlayback(ctx)
	case console.KindSnooze:
		until, err := d.Snooze(ctx)
		if err != nil {
			return "", err
		}
		return "snoozed until " + until.Format(time.Kitchen), nil
	case console.KindAlarmList:
		return d.consoleAlarmList(ctx)
	case console.KindAlarmSet:
		a, err := d.AddAlarm(ctx, store.Alarm{
			Hour:   cmd.Hour,
			Minute: cmd.Minute,
			Days:   cmd.Days,
		})
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("alarm %d set for %02d:%02d %s", a.ID, a.Hour, a.Minute, a.Days), nil
	case console.KindAlarmDelete:
		removed, err := d.RemoveAlarm(ctx, cmd.ID)
		if err != nil {
			return "", err
		}
		if !removed {
			return "", fmt.Errorf("no alarm %d", cmd.ID)
		}
		return fmt.Sprintf("alarm %d removed", cmd.ID), nil
	default:
		return "", fmt.Errorf("unsupported command")
	}
}

func (d *Daemon) consoleStatus(ctx context.Context) string {
	st := d.Status(ctx)
	var b strings.Builder
	if st.Playing {
		fmt.Fprintf(&b, "playing %s since %s", st.PlaybackSound, st.PlaybackStarted.Format(time.Kitchen))
	} else {
		b.WriteString("idle")
	}
	if st.HasNextAlarm {
		fmt.Fprintf(&b, ", next alarm %s", st.NextAlarmAt.Format("Mon 15:04"))
	} else {
		b.WriteString(", no alarms")
	}
	if st.Snoozed {
		fmt.Fprintf(&b, ", snoozed until %s", st.SnoozedUntil.Format(time.Kitchen))
	}
	if st.WifiConnected {
		fmt.Fprintf(&b, ", wifi %s", st.WifiAddress)
	} else {
		b.WriteString(", wifi down")
	}
	return b.String()
}

func (d *Daemon) consoleAlarmList(ctx context.Context) (string, error) {
	alarms, err := d.Alarms(ctx)
	if err != nil {
		return "", err
	}
	if len(alarms) == 0 {
		return "no alarms", nil
	}
	var b strings.Builder
	for i, a := range alarms {
		if i > 0 {
			b.WriteByte('\n')
		}
		state := "on"
		if !a.Enabled {
			state = "off"
		}
		fmt.Fprintf(&b, "%d: %02d:%02d %s %s (%s, %.1fx)", a.ID, a.Hour, a.Minute, a.Days, state, a.Sound, a.Speed)
	}
	return b.String(), nil
}
