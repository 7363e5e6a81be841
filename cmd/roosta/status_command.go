package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"roostaboosta/internal/ipc"
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show daemon and playback state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				st, err := client.Status()
				if err != nil {
					return err
				}
				renderStatus(cmd.OutOrStdout(), st, shouldColorize(cmd.OutOrStdout()))
				return nil
			})
		},
	}
}

func renderStatus(out io.Writer, st *ipc.StatusResponse, colorize bool) {
	paint := func(color, s string) string {
		if !colorize {
			return s
		}
		return color + s + ansiReset
	}

	var lines []string
	if st.Running {
		lines = append(lines, fmt.Sprintf("daemon:    %s (pid %d)", paint(ansiGreen, "running"), st.PID))
	} else {
		lines = append(lines, "daemon:    "+paint(ansiRed, "stopped"))
	}

	if st.Playing {
		lines = append(lines, fmt.Sprintf("playback:  %s since %s (session %s)",
			paint(ansiGreen, st.PlaybackSound),
			st.PlaybackStarted.Format(time.Kitchen),
			st.PlaybackSession))
	} else {
		lines = append(lines, "playback:  idle")
	}

	if st.HasNextAlarm {
		lines = append(lines, fmt.Sprintf("alarm:     #%d at %s", st.NextAlarmID,
			st.NextAlarmAt.Format("Mon Jan 2 15:04")))
	} else {
		lines = append(lines, "alarm:     none scheduled")
	}
	if st.Snoozed {
		lines = append(lines, fmt.Sprintf("snooze:    %s", paint(ansiYellow,
			"until "+st.SnoozedUntil.Format(time.Kitchen))))
	}

	if st.WifiConnected {
		lines = append(lines, fmt.Sprintf("wifi:      %s (%s)", paint(ansiGreen, "connected"), st.WifiAddress))
	} else {
		lines = append(lines, "wifi:      "+paint(ansiYellow, "down"))
	}
	lines = append(lines, "database:  "+st.DatabasePath)

	fmt.Fprintln(out, strings.Join(lines, "\n"))
}
