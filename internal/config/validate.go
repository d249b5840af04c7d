package config

import (
	"errors"
	"fmt"

	"ytscript/internal/language"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateTranscript(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateTranscript() error {
	switch c.Transcript.Backend {
	case BackendInnertube, BackendTimedText:
	default:
		return fmt.Errorf("transcript.backend: unsupported value %q (expected %q or %q)", c.Transcript.Backend, BackendInnertube, BackendTimedText)
	}
	if c.Transcript.TimeoutSeconds < 0 || c.Transcript.TimeoutSeconds > maxTimeoutSeconds {
		return fmt.Errorf("transcript.timeout_seconds must be between 1 and %d", maxTimeoutSeconds)
	}
	if len(c.Transcript.Languages) == 0 {
		return errors.New("transcript.languages must list at least one language")
	}
	for _, code := range c.Transcript.Languages {
		if !language.Valid(code) {
			return fmt.Errorf("transcript.languages: %q is not a valid language code", code)
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
