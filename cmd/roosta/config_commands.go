package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"roostaboosta/internal/config"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(newConfigInitCommand(ctx))
	cmd.AddCommand(newConfigShowCommand(ctx))
	return cmd
}

func newConfigInitCommand(ctx *commandContext) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a commented sample configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := ""
			if ctx.configFlag != nil {
				path = strings.TrimSpace(*ctx.configFlag)
			}
			if path == "" {
				var err error
				path, err = config.DefaultConfigPath()
				if err != nil {
					return err
				}
			}
			if !force {
				if _, err := os.Stat(path); err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", path)
				}
			}
			if err := config.CreateSample(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")
	return cmd
}

func newConfigShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the resolved configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "data dir:      %s\n", cfg.Paths.DataDir)
			fmt.Fprintf(out, "log dir:       %s\n", cfg.Paths.LogDir)
			fmt.Fprintf(out, "sound dir:     %s\n", cfg.Paths.SoundDir)
			fmt.Fprintf(out, "socket:        %s\n", cfg.Paths.SocketPath)
			fmt.Fprintf(out, "wifi ssid:     %s\n", valueOrUnset(cfg.Network.SSID))
			fmt.Fprintf(out, "wifi device:   %s\n", valueOrUnset(cfg.Network.Device))
			fmt.Fprintf(out, "weather key:   %s\n", maskSecret(cfg.Weather.APIKey))
			fmt.Fprintf(out, "weather loc:   %s\n", valueOrUnset(cfg.Weather.Location))
			fmt.Fprintf(out, "audio:         %d Hz, %d byte banks\n", cfg.Audio.SampleRate, cfg.Audio.BankSize)
			fmt.Fprintf(out, "alarm sound:   %s (%.1fx, snooze %dm)\n", cfg.Alarm.DefaultSound, cfg.Alarm.DefaultSpeed, cfg.Alarm.SnoozeMinutes)
			fmt.Fprintf(out, "console:       %s\n", consoleSummary(cfg))
			fmt.Fprintf(out, "logging:       %s/%s\n", cfg.Logging.Format, cfg.Logging.Level)
			return nil
		},
	}
}

func valueOrUnset(s string) string {
	if s == "" {
		return "(unset)"
	}
	return s
}

func maskSecret(s string) string {
	if s == "" {
		return "(unset)"
	}
	if len(s) <= 4 {
		return "****"
	}
	return s[:4] + strings.Repeat("*", len(s)-4)
}

func consoleSummary(cfg *config.Config) string {
	if !cfg.Console.Enabled {
		return "disabled"
	}
	return fmt.Sprintf("%s @ %d baud", cfg.Console.Device, cfg.Console.Baud)
}
