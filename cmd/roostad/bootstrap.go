package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"roostaboosta/internal/audio"
	"roostaboosta/internal/config"
	"roostaboosta/internal/console"
	"roostaboosta/internal/daemon"
	"roostaboosta/internal/httpx"
	"roostaboosta/internal/logging"
	"roostaboosta/internal/serial"
	"roostaboosta/internal/store"
	"roostaboosta/internal/weather"
	"roostaboosta/internal/wifi"
)

// bootstrap assembles the daemon's components from configuration. Network
// and weather are optional: a failure there logs a warning and the clock
// runs degraded rather than not at all.
func bootstrap(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*daemon.Daemon, func(), error) {
	st, err := store.Open(cfg.DatabasePath())
	if err != nil {
		return nil, nil, fmt.Errorf("open store: %w", err)
	}

	dev := audio.NewSimDevice(0, nil, true)
	player, err := audio.NewPlayer(dev, os.DirFS(cfg.Paths.SoundDir), logger, audio.Options{
		BankSize:   cfg.Audio.BankSize,
		SampleRate: cfg.Audio.SampleRate,
	})
	if err != nil {
		_ = st.Close()
		return nil, nil, fmt.Errorf("build player: %w", err)
	}

	bridge, svc := buildNetwork(ctx, cfg, st, logger)

	d, err := daemon.New(cfg, st, player, svc, bridge, logger)
	if err != nil {
		if bridge != nil {
			_ = bridge.Close()
		}
		_ = st.Close()
		return nil, nil, err
	}

	cleanup := startConsole(ctx, cfg, d, logger)
	return d, cleanup, nil
}

// buildNetwork opens the serial Wi-Fi bridge, joins the configured station,
// and wires the weather service over it. Every failure degrades to nil.
func buildNetwork(ctx context.Context, cfg *config.Config, st *store.Store, logger *slog.Logger) (*wifi.Bridge, *weather.Service) {
	log := logging.NewComponentLogger(logger, "bootstrap")

	device := cfg.Network.Device
	if device == "" {
		found, err := serial.FindBridge()
		if err != nil {
			log.Warn("no wifi bridge found, running clock-only", logging.Error(err))
			return nil, nil
		}
		device = found
	}

	port, err := serial.Open(serial.Options{Device: device, Baud: cfg.Network.Baud})
	if err != nil {
		log.Warn("open wifi bridge failed, running clock-only",
			logging.String("device", device), logging.Error(err))
		return nil, nil
	}

	bridge := wifi.NewBridge(port, logger, wifi.Options{})
	if err := bridge.Init(); err != nil {
		log.Warn("bridge init failed", logging.Error(err))
		_ = bridge.Close()
		return nil, nil
	}
	if cfg.Network.SSID != "" {
		connectCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout())
		err := bridge.Connect(connectCtx, cfg.Network.SSID, cfg.Network.Passphrase)
		cancel()
		if err != nil {
			log.Warn("station join failed, weather unavailable",
				logging.String("ssid", cfg.Network.SSID), logging.Error(err))
			return bridge, nil
		}
		log.Info("station joined",
			logging.String("ssid", cfg.Network.SSID),
			logging.String("address", bridge.IP()))
	}

	if cfg.Weather.APIKey == "" {
		return bridge, nil
	}
	client := httpx.NewClient(bridge, httpx.Config{MaxInflight: cfg.HTTP.MaxInflight})
	svc, err := weather.NewService(client, st.WeatherCache(), logger, weather.Options{
		Host:     cfg.Weather.Host,
		Key:      cfg.Weather.APIKey,
		Location: cfg.Weather.Location,
		TTL:      cfg.WeatherTTL(),
		Timeout:  cfg.WeatherTimeout(),
	})
	if err != nil {
		log.Warn("weather service unavailable", logging.Error(err))
		return bridge, nil
	}
	return bridge, svc
}

// startConsole launches the serial command console when enabled. The
// returned cleanup closes the console port.
func startConsole(ctx context.Context, cfg *config.Config, d *daemon.Daemon, logger *slog.Logger) func() {
	if !cfg.Console.Enabled {
		return func() {}
	}
	log := logging.NewComponentLogger(logger, "bootstrap")

	port, err := serial.Open(serial.Options{Device: cfg.Console.Device, Baud: cfg.Console.Baud})
	if err != nil {
		log.Warn("console port unavailable",
			logging.String("device", cfg.Console.Device), logging.Error(err))
		return func() {}
	}

	c := console.New(port, d.ConsoleExec, logger)
	go func() {
		if err := c.Run(ctx); err != nil && ctx.Err() == nil {
			log.Warn("console stopped", logging.Error(err))
		}
	}()
	return func() { _ = port.Close() }
}
