package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"roostaboosta/internal/ipc"
)

func newPlayCommand(ctx *commandContext) *cobra.Command {
	var speed float64
	cmd := &cobra.Command{
		Use:   "play <sound>",
		Short: "Stream a sound file from the sound directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.Play(args[0], speed)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "playing %s (session %s)\n", args[0], resp.Session)
				return nil
			})
		},
	}
	cmd.Flags().Float64Var(&speed, "speed", 1.0, "Playback speed multiplier")
	return cmd
}

func newStopCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop the active playback session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				if _, err := client.StopPlayback(); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "playback stopped")
				return nil
			})
		},
	}
}

func newSnoozeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "snooze",
		Short: "Silence a ringing alarm for the snooze window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.Snooze()
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "snoozed until %s\n", resp.Until.Format(time.Kitchen))
				return nil
			})
		},
	}
}

func newShutdownCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "shutdown",
		Short: "Stop the roostad daemon process",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				if _, err := client.Shutdown(); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "daemon stopping")
				return nil
			})
		},
	}
}
