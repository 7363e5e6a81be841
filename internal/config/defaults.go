package config

const (
	defaultDataDir               = "~/.local/share/roosta"
	defaultLogDir                = "~/.local/share/roosta/logs"
	defaultSoundDir              = "~/.local/share/roosta/sounds"
	defaultSocketPath            = "~/.local/share/roosta/roostad.sock"
	defaultBridgeBaud            = 115200
	defaultConnectTimeoutSeconds = 30
	defaultWeatherHost           = "api.weatherapi.com"
	defaultWeatherRefreshMinutes = 10
	defaultWeatherTimeoutSeconds = 10
	defaultBankSize              = 2048
	defaultSampleRate            = 24000
	defaultMaxInflight           = 1
	defaultSendTimeoutSeconds    = 5
	defaultAlarmSound            = "rooster.pcm"
	defaultAlarmSpeed            = 1.0
	defaultSnoozeMinutes         = 9
	defaultConsoleBaud           = 9600
	defaultLogFormat             = "console"
	defaultLogLevel              = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir:    defaultDataDir,
			LogDir:     defaultLogDir,
			SoundDir:   defaultSoundDir,
			SocketPath: defaultSocketPath,
		},
		Network: Network{
			Baud:                  defaultBridgeBaud,
			ConnectTimeoutSeconds: defaultConnectTimeoutSeconds,
		},
		Weather: Weather{
			Host:           defaultWeatherHost,
			RefreshMinutes: defaultWeatherRefreshMinutes,
			TimeoutSeconds: defaultWeatherTimeoutSeconds,
		},
		Audio: Audio{
			BankSize:   defaultBankSize,
			SampleRate: defaultSampleRate,
		},
		HTTP: HTTP{
			MaxInflight:        defaultMaxInflight,
			SendTimeoutSeconds: defaultSendTimeoutSeconds,
		},
		Alarm: Alarm{
			DefaultSound:  defaultAlarmSound,
			DefaultSpeed:  defaultAlarmSpeed,
			SnoozeMinutes: defaultSnoozeMinutes,
		},
		Console: Console{
			Baud: defaultConsoleBaud,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
