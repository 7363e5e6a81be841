package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeNetwork()
	c.normalizeWeather()
	c.normalizeAlarm()
	c.normalizeConsole()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.SoundDir) == "" {
		c.Paths.SoundDir = defaultSoundDir
	}
	if c.Paths.SoundDir, err = expandPath(c.Paths.SoundDir); err != nil {
		return fmt.Errorf("paths.sound_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.SocketPath) == "" {
		c.Paths.SocketPath = defaultSocketPath
	}
	if c.Paths.SocketPath, err = expandPath(c.Paths.SocketPath); err != nil {
		return fmt.Errorf("paths.socket_path: %w", err)
	}
	return nil
}

func (c *Config) normalizeNetwork() {
	c.Network.SSID = strings.TrimSpace(c.Network.SSID)
	c.Network.Device = strings.TrimSpace(c.Network.Device)
	if c.Network.Baud == 0 {
		c.Network.Baud = defaultBridgeBaud
	}
	if c.Network.ConnectTimeoutSeconds == 0 {
		c.Network.ConnectTimeoutSeconds = defaultConnectTimeoutSeconds
	}
}

func (c *Config) normalizeWeather() {
	if c.Weather.APIKey == "" {
		if value, ok := os.LookupEnv("WEATHER_API_KEY"); ok {
			c.Weather.APIKey = strings.TrimSpace(value)
		}
	}
	c.Weather.APIKey = strings.TrimSpace(c.Weather.APIKey)
	c.Weather.Location = strings.TrimSpace(c.Weather.Location)
	c.Weather.Host = strings.TrimSpace(c.Weather.Host)
	if c.Weather.Host == "" {
		c.Weather.Host = defaultWeatherHost
	}
	if c.Weather.RefreshMinutes == 0 {
		c.Weather.RefreshMinutes = defaultWeatherRefreshMinutes
	}
	if c.Weather.TimeoutSeconds == 0 {
		c.Weather.TimeoutSeconds = defaultWeatherTimeoutSeconds
	}
}

func (c *Config) normalizeAlarm() {
	c.Alarm.DefaultSound = strings.TrimSpace(c.Alarm.DefaultSound)
	if c.Alarm.DefaultSound == "" {
		c.Alarm.DefaultSound = defaultAlarmSound
	}
	if c.Alarm.DefaultSpeed == 0 {
		c.Alarm.DefaultSpeed = defaultAlarmSpeed
	}
	if c.Alarm.SnoozeMinutes == 0 {
		c.Alarm.SnoozeMinutes = defaultSnoozeMinutes
	}
}

func (c *Config) normalizeConsole() {
	c.Console.Device = strings.TrimSpace(c.Console.Device)
	if c.Console.Baud == 0 {
		c.Console.Baud = defaultConsoleBaud
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
