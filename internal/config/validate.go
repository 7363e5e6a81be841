package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateNetwork(); err != nil {
		return err
	}
	if err := c.validateWeather(); err != nil {
		return err
	}
	if err := c.validateAudio(); err != nil {
		return err
	}
	if err := c.validateHTTP(); err != nil {
		return err
	}
	if err := c.validateAlarm(); err != nil {
		return err
	}
	if err := c.validateConsole(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateNetwork() error {
	if c.Network.Baud <= 0 {
		return errors.New("network.baud must be positive")
	}
	if c.Network.ConnectTimeoutSeconds <= 0 {
		return errors.New("network.connect_timeout_seconds must be positive")
	}
	if c.Network.SSID == "" && c.Network.Passphrase != "" {
		return errors.New("network.ssid must be set when network.passphrase is set")
	}
	return nil
}

func (c *Config) validateWeather() error {
	if c.Weather.APIKey == "" {
		// Weather stays optional; the daemon degrades to clock-only output.
		return nil
	}
	if c.Weather.Location == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/roosta/config.toml"
		}
		return fmt.Errorf("weather.location is required when weather.api_key is set. Edit %s (create with 'roosta config init')", defaultPath)
	}
	if c.Weather.RefreshMinutes <= 0 {
		return errors.New("weather.refresh_minutes must be positive")
	}
	if c.Weather.TimeoutSeconds <= 0 {
		return errors.New("weather.timeout_seconds must be positive")
	}
	return nil
}

func (c *Config) validateAudio() error {
	if c.Audio.BankSize <= 0 || c.Audio.BankSize&(c.Audio.BankSize-1) != 0 {
		return errors.New("audio.bank_size must be a positive power of two")
	}
	if c.Audio.SampleRate <= 0 {
		return errors.New("audio.sample_rate must be positive")
	}
	return nil
}

func (c *Config) validateHTTP() error {
	if c.HTTP.MaxInflight <= 0 {
		return errors.New("http.max_inflight must be positive")
	}
	if c.HTTP.SendTimeoutSeconds <= 0 {
		return errors.New("http.send_timeout_seconds must be positive")
	}
	return nil
}

func (c *Config) validateAlarm() error {
	if c.Alarm.DefaultSpeed <= 0 {
		return errors.New("alarm.default_speed must be positive")
	}
	if c.Alarm.SnoozeMinutes <= 0 {
		return errors.New("alarm.snooze_minutes must be positive")
	}
	return nil
}

func (c *Config) validateConsole() error {
	if !c.Console.Enabled {
		return nil
	}
	if c.Console.Device == "" {
		return errors.New("console.device must be set when console.enabled is true")
	}
	if c.Console.Baud <= 0 {
		return errors.New("console.baud must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
