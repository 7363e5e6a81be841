package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"roostaboosta/internal/ipc"
)

func newWeatherCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "weather",
		Short: "Show the current observation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				w, err := client.Weather()
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "%s\n", w.Condition)
				fmt.Fprintf(out, "temperature  %d F\n", w.Temperature)
				fmt.Fprintf(out, "rain chance  %d%%\n", w.PrecipChance)
				fmt.Fprintf(out, "wind         %d mph\n", w.WindSpeed)
				fmt.Fprintf(out, "humidity     %d%%\n", w.Humidity)
				return nil
			})
		},
	}
}
