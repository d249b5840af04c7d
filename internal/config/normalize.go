package config

import (
	"fmt"
	"strings"

	"ytscript/internal/language"
)

func (c *Config) normalize() error {
	if err := c.normalizeOutput(); err != nil {
		return err
	}
	c.normalizeTranscript()
	return c.normalizeLogging()
}

func (c *Config) normalizeOutput() error {
	dir := strings.TrimSpace(c.Output.Dir)
	if dir == "" {
		dir = defaultOutputDir
	}
	var err error
	if c.Output.Dir, err = expandPath(dir); err != nil {
		return fmt.Errorf("output.dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeTranscript() {
	c.Transcript.Languages = language.NormalizeList(c.Transcript.Languages)
	if len(c.Transcript.Languages) == 0 {
		c.Transcript.Languages = []string{defaultLanguage}
	}
	c.Transcript.Backend = strings.ToLower(strings.TrimSpace(c.Transcript.Backend))
	if c.Transcript.Backend == "" {
		c.Transcript.Backend = defaultBackend
	}
	if c.Transcript.TimeoutSeconds == 0 {
		c.Transcript.TimeoutSeconds = defaultTimeoutSeconds
	}
	c.Transcript.UserAgent = strings.TrimSpace(c.Transcript.UserAgent)
	if c.Transcript.UserAgent == "" {
		c.Transcript.UserAgent = defaultUserAgent
	}
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if file := strings.TrimSpace(c.Logging.File); file != "" {
		var err error
		if c.Logging.File, err = expandPath(file); err != nil {
			return fmt.Errorf("logging.file: %w", err)
		}
	} else {
		c.Logging.File = ""
	}
	return nil
}
