package config

import "time"

const (
	defaultConfigPath     = "~/.config/ytscript/config.toml"
	projectConfigName     = "ytscript.toml"
	dotEnvFile            = ".env"
	defaultOutputDir      = "transcripts"
	defaultLanguage       = "en"
	defaultBackend        = BackendInnertube
	defaultTimeoutSeconds = 30
	defaultUserAgent      = "ytscript/dev"
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
	maxTimeoutSeconds     = 600
	envLanguages          = "YTSCRIPT_LANGUAGES"
	envOutputDir          = "YTSCRIPT_OUTPUT_DIR"
	envBackend            = "YTSCRIPT_BACKEND"
	envLogLevel           = "YTSCRIPT_LOG_LEVEL"
	envLogFile            = "YTSCRIPT_LOG_FILE"
)

// Transcript backends.
const (
	BackendInnertube = "innertube"
	BackendTimedText = "timedtext"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Output: Output{
			Dir: defaultOutputDir,
		},
		Transcript: Transcript{
			Languages:      []string{defaultLanguage},
			Backend:        defaultBackend,
			TimeoutSeconds: defaultTimeoutSeconds,
			UserAgent:      defaultUserAgent,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

// Timeout returns the per-request network timeout.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Transcript.TimeoutSeconds) * time.Second
}
