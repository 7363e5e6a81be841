package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"roostaboosta/internal/console"
	"roostaboosta/internal/ipc"
)

func newAlarmCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "alarm",
		Short: "Manage wake-up alarms",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(newAlarmListCommand(ctx))
	cmd.AddCommand(newAlarmSetCommand(ctx))
	cmd.AddCommand(newAlarmEnableCommand(ctx, true))
	cmd.AddCommand(newAlarmEnableCommand(ctx, false))
	cmd.AddCommand(newAlarmDeleteCommand(ctx))
	return cmd
}

func newAlarmListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored alarms",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.AlarmList()
				if err != nil {
					return err
				}
				if len(resp.Alarms) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "no alarms")
					return nil
				}
				rows := make([][]string, 0, len(resp.Alarms))
				for _, a := range resp.Alarms {
					rows = append(rows, []string{
						strconv.FormatInt(a.ID, 10),
						fmt.Sprintf("%02d:%02d", a.Hour, a.Minute),
						a.DaysTag,
						a.Sound,
						fmt.Sprintf("%.1fx", a.Speed),
						onOff(a.Enabled),
					})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"ID", "Time", "Days", "Sound", "Speed", "State"},
					rows,
					[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignRight, alignLeft},
				))
				return nil
			})
		},
	}
}

func newAlarmSetCommand(ctx *commandContext) *cobra.Command {
	var (
		daysFlag string
		sound    string
		speed    float64
	)
	cmd := &cobra.Command{
		Use:   "set HH:MM",
		Short: "Add an alarm",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hour, minute, err := console.ParseClock(args[0])
			if err != nil {
				return err
			}
			req := ipc.AlarmSetRequest{
				Hour:   hour,
				Minute: minute,
				Sound:  sound,
				Speed:  speed,
			}
			if daysFlag != "" {
				days, err := console.ParseDays(daysFlag)
				if err != nil {
					return err
				}
				req.Days = uint8(days)
			}
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.AlarmSet(req)
				if err != nil {
					return err
				}
				a := resp.Alarm
				fmt.Fprintf(cmd.OutOrStdout(), "alarm %d set for %02d:%02d %s (%s, %.1fx)\n",
					a.ID, a.Hour, a.Minute, a.DaysTag, a.Sound, a.Speed)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&daysFlag, "days", "", "Days: daily, weekdays, weekend, or codes like MoWeFr")
	cmd.Flags().StringVar(&sound, "sound", "", "Sound file (defaults to the configured alarm sound)")
	cmd.Flags().Float64Var(&speed, "speed", 0, "Playback speed multiplier")
	return cmd
}

func newAlarmEnableCommand(ctx *commandContext, enabled bool) *cobra.Command {
	use, short := "enable <id>", "Enable an alarm"
	if !enabled {
		use, short = "disable <id>", "Disable an alarm"
	}
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || id <= 0 {
				return fmt.Errorf("bad alarm id %q", args[0])
			}
			return ctx.withClient(func(client *ipc.Client) error {
				if err := client.AlarmEnable(id, enabled); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "alarm %d %sd\n", id, useVerb(enabled))
				return nil
			})
		},
	}
}

func useVerb(enabled bool) string {
	if enabled {
		return "enable"
	}
	return "disable"
}

func newAlarmDeleteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:     "del <id>",
		Aliases: []string{"delete", "rm"},
		Short:   "Remove an alarm",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || id <= 0 {
				return fmt.Errorf("bad alarm id %q", args[0])
			}
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.AlarmDelete(id)
				if err != nil {
					return err
				}
				if !resp.Removed {
					return fmt.Errorf("no alarm %d", id)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "alarm %d removed\n", id)
				return nil
			})
		},
	}
}
