package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory and socket configuration.
type Paths struct {
	DataDir    string `toml:"data_dir"`
	LogDir     string `toml:"log_dir"`
	SoundDir   string `toml:"sound_dir"`
	SocketPath string `toml:"socket_path"`
}

// Network contains configuration for the serial Wi-Fi bridge.
type Network struct {
	SSID                  string `toml:"ssid"`
	Passphrase            string `toml:"passphrase"`
	Device                string `toml:"device"`
	Baud                  int    `toml:"baud"`
	ConnectTimeoutSeconds int    `toml:"connect_timeout_seconds"`
}

// Weather contains configuration for the forecast provider.
type Weather struct {
	APIKey         string `toml:"api_key"`
	Location       string `toml:"location"`
	Host           string `toml:"host"`
	RefreshMinutes int    `toml:"refresh_minutes"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Audio contains configuration for the streaming playback engine.
type Audio struct {
	BankSize   int `toml:"bank_size"`
	SampleRate int `toml:"sample_rate"`
}

// HTTP contains configuration for the streaming HTTP client.
type HTTP struct {
	MaxInflight        int `toml:"max_inflight"`
	SendTimeoutSeconds int `toml:"send_timeout_seconds"`
}

// Alarm contains defaults applied to newly created alarms and snooze timing.
type Alarm struct {
	DefaultSound  string  `toml:"default_sound"`
	DefaultSpeed  float64 `toml:"default_speed"`
	SnoozeMinutes int     `toml:"snooze_minutes"`
}

// Console contains configuration for the serial command console.
type Console struct {
	Enabled bool   `toml:"enabled"`
	Device  string `toml:"device"`
	Baud    int    `toml:"baud"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for RoostaBoosta.
//
// Configuration sections by subsystem:
//   - Paths: data/log/sound directories and the daemon control socket
//   - Network: serial Wi-Fi bridge device and station credentials
//   - Weather: forecast provider host, key, and refresh cadence
//   - Audio: playback bank sizing and default sample rate
//   - HTTP: client concurrency gate and send timeout
//   - Alarm: defaults for new alarms and snooze timing
//   - Console: optional serial command console
//   - Logging: log format and level
type Config struct {
	Paths   Paths   `toml:"paths"`
	Network Network `toml:"network"`
	Weather Weather `toml:"weather"`
	Audio   Audio   `toml:"audio"`
	HTTP    HTTP    `toml:"http"`
	Alarm   Alarm   `toml:"alarm"`
	Console Console `toml:"console"`
	Logging Logging `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/roosta/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("roosta.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates required directories for daemon operation.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.DataDir, c.Paths.LogDir, c.Paths.SoundDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	if dir := filepath.Dir(c.Paths.SocketPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create socket directory %q: %w", dir, err)
		}
	}
	return nil
}

// DatabasePath returns the location of the alarm database inside DataDir.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.Paths.DataDir, "roosta.db")
}

// ConnectTimeout returns the station join timeout as a duration.
func (c *Config) ConnectTimeout() time.Duration {
	return time.Duration(c.Network.ConnectTimeoutSeconds) * time.Second
}

// WeatherTTL returns how long a cached observation stays fresh.
func (c *Config) WeatherTTL() time.Duration {
	return time.Duration(c.Weather.RefreshMinutes) * time.Minute
}

// WeatherTimeout returns the per-fetch deadline for forecast requests.
func (c *Config) WeatherTimeout() time.Duration {
	return time.Duration(c.Weather.TimeoutSeconds) * time.Second
}

// SendTimeout returns the HTTP client per-request send deadline.
func (c *Config) SendTimeout() time.Duration {
	return time.Duration(c.HTTP.SendTimeoutSeconds) * time.Second
}

// SnoozeDuration returns how long a snoozed alarm stays quiet.
func (c *Config) SnoozeDuration() time.Duration {
	return time.Duration(c.Alarm.SnoozeMinutes) * time.Minute
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

func expandPath(pathValue string) (string, error) {
	trimmed := strings.TrimSpace(pathValue)
	if trimmed == "" {
		return "", errors.New("path is empty")
	}

	if trimmed == "~" || strings.HasPrefix(trimmed, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if trimmed == "~" {
			trimmed = home
		} else {
			trimmed = filepath.Join(home, trimmed[2:])
		}
	}

	abs, err := filepath.Abs(filepath.Clean(trimmed))
	if err != nil {
		return "", fmt.Errorf("resolve path %q: %w", pathValue, err)
	}
	return abs, nil
}
