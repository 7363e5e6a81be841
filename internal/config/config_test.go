package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"roostaboosta/internal/config"
)

func TestLoadDefaultsUseEnvWeatherKeyAndExpandPaths(t *testing.T) {
	t.Setenv("WEATHER_API_KEY", "test-key")
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantData := filepath.Join(tempHome, ".local", "share", "roosta")
	if cfg.Paths.DataDir != wantData {
		t.Fatalf("unexpected data dir: got %q want %q", cfg.Paths.DataDir, wantData)
	}
	if cfg.Paths.SoundDir != filepath.Join(wantData, "sounds") {
		t.Fatalf("unexpected sound dir: %q", cfg.Paths.SoundDir)
	}
	if cfg.Paths.SocketPath != filepath.Join(wantData, "roostad.sock") {
		t.Fatalf("unexpected socket path: %q", cfg.Paths.SocketPath)
	}
	if cfg.DatabasePath() != filepath.Join(wantData, "roosta.db") {
		t.Fatalf("unexpected database path: %q", cfg.DatabasePath())
	}
	if cfg.Weather.APIKey != "test-key" {
		t.Fatalf("expected weather key from env, got %q", cfg.Weather.APIKey)
	}
	if cfg.Weather.Host != config.Default().Weather.Host {
		t.Fatalf("unexpected weather host: %q", cfg.Weather.Host)
	}
	if cfg.Network.Baud != 115200 {
		t.Fatalf("unexpected bridge baud: %d", cfg.Network.Baud)
	}
	if cfg.Audio.BankSize != 2048 {
		t.Fatalf("unexpected bank size: %d", cfg.Audio.BankSize)
	}
	if cfg.HTTP.MaxInflight != 1 {
		t.Fatalf("unexpected max inflight: %d", cfg.HTTP.MaxInflight)
	}
	if cfg.Console.Enabled {
		t.Fatal("expected console disabled by default")
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %q/%q", cfg.Logging.Format, cfg.Logging.Level)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	for _, dir := range []string{cfg.Paths.DataDir, cfg.Paths.LogDir, cfg.Paths.SoundDir} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("stat %q: %v", dir, err)
		}
		if !info.IsDir() {
			t.Fatalf("expected %q to be a directory", dir)
		}
	}

	// Default weather key comes from env; clearing location must fail validation.
	cfg.Weather.Location = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for api_key without location")
	}
}

func TestLoadParsesExplicitFile(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("WEATHER_API_KEY", "")

	path := filepath.Join(t.TempDir(), "config.toml")
	contents := strings.Join([]string{
		"[paths]",
		`data_dir = "~/clock"`,
		"[network]",
		`ssid = "coop"`,
		`passphrase = "henhouse"`,
		`device = "/dev/ttyUSB3"`,
		"[weather]",
		`api_key = "abc123"`,
		`location = "Atlanta"`,
		"refresh_minutes = 5",
		"[audio]",
		"bank_size = 512",
		"[logging]",
		`level = "DEBUG"`,
	}, "\n")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to exist")
	}
	if resolved != path {
		t.Fatalf("unexpected resolved path: %q", resolved)
	}
	if cfg.Paths.DataDir != filepath.Join(tempHome, "clock") {
		t.Fatalf("unexpected data dir: %q", cfg.Paths.DataDir)
	}
	if cfg.Network.SSID != "coop" || cfg.Network.Device != "/dev/ttyUSB3" {
		t.Fatalf("unexpected network settings: %+v", cfg.Network)
	}
	if cfg.Weather.APIKey != "abc123" || cfg.Weather.Location != "Atlanta" {
		t.Fatalf("unexpected weather settings: %+v", cfg.Weather)
	}
	if cfg.Weather.RefreshMinutes != 5 {
		t.Fatalf("unexpected refresh minutes: %d", cfg.Weather.RefreshMinutes)
	}
	if cfg.Audio.BankSize != 512 {
		t.Fatalf("unexpected bank size: %d", cfg.Audio.BankSize)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("expected level normalized to debug, got %q", cfg.Logging.Level)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{"bank size not power of two", func(c *config.Config) { c.Audio.BankSize = 1000 }, "bank_size"},
		{"negative sample rate", func(c *config.Config) { c.Audio.SampleRate = -1 }, "sample_rate"},
		{"zero inflight", func(c *config.Config) { c.HTTP.MaxInflight = 0 }, "max_inflight"},
		{"passphrase without ssid", func(c *config.Config) { c.Network.Passphrase = "secret" }, "ssid"},
		{"bad log format", func(c *config.Config) { c.Logging.Format = "yaml" }, "logging.format"},
		{"bad log level", func(c *config.Config) { c.Logging.Level = "loud" }, "logging.level"},
		{"console without device", func(c *config.Config) { c.Console.Enabled = true }, "console.device"},
		{"zero snooze", func(c *config.Config) { c.Alarm.SnoozeMinutes = -1 }, "snooze"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Logging.Format = "console"
			cfg.Logging.Level = "info"
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}

func TestLoadMissingExplicitFileUsesDefaults(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("WEATHER_API_KEY", "")

	path := filepath.Join(t.TempDir(), "absent.toml")
	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists {
		t.Fatal("expected missing file to report exists=false")
	}
	if resolved != path {
		t.Fatalf("unexpected resolved path: %q", resolved)
	}
	if cfg.Network.Baud != config.Default().Network.Baud {
		t.Fatalf("unexpected baud: %d", cfg.Network.Baud)
	}
}

func TestCreateSampleWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(data), "[network]") {
		t.Fatal("sample config missing [network] section")
	}
}
