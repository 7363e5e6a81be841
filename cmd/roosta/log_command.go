package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"roostaboosta/internal/ipc"
)

func newLogCommand(ctx *commandContext) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show recent playback sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.PlaybackLog(limit)
				if err != nil {
					return err
				}
				if len(resp.Entries) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "no playback history")
					return nil
				}
				rows := make([][]string, 0, len(resp.Entries))
				for _, e := range resp.Entries {
					rows = append(rows, []string{
						e.StartedAt.Local().Format("Jan 02 15:04:05"),
						e.Trigger,
						e.File,
						fmt.Sprintf("%.1fx", e.Speed),
						playbackOutcome(e),
					})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"Started", "Trigger", "Sound", "Speed", "Outcome"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignLeft},
				))
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum entries to show")
	return cmd
}

func playbackOutcome(e ipc.PlaybackEntry) string {
	if e.Error != "" {
		return "error: " + e.Error
	}
	if e.FinishedAt.IsZero() {
		return "playing"
	}
	return "done " + e.FinishedAt.Sub(e.StartedAt).Round(time.Second).String()
}
