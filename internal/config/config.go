package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"ytscript/internal/fileutil"
)

//go:embed sample_config.toml
var sampleConfig string

// Output contains configuration for transcript files.
type Output struct {
	Dir           string `toml:"dir"`
	Timestamps    bool   `toml:"timestamps"`
	TitleFallback bool   `toml:"title_fallback"`
}

// Transcript contains configuration for transcript retrieval.
type Transcript struct {
	Languages      []string `toml:"languages"`
	Backend        string   `toml:"backend"`
	TimeoutSeconds int      `toml:"timeout_seconds"`
	UserAgent      string   `toml:"user_agent"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
	// File receives a JSON copy of every log line when set.
	File string `toml:"file"`
}

// Config encapsulates all configuration values for ytscript.
//
// Configuration sections by subsystem:
//   - Output: transcript directory, timestamp rendering, title fallback
//   - Transcript: language preference, backend selection, HTTP timeout
//   - Logging: log format, level and optional log file
type Config struct {
	Output     Output     `toml:"output"`
	Transcript Transcript `toml:"transcript"`
	Logging    Logging    `toml:"logging"`
}

// Load locates, parses, and validates a configuration file. Environment
// overrides (including a .env file in the working directory) are applied after
// the file is decoded.
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

		decoder := toml.NewDecoder(file).DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := loadDotEnv(); err != nil {
		return nil, "", false, err
	}
	cfg.applyEnv()

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

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs(projectConfigName)
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

// loadDotEnv reads .env from the working directory when present. Variables
// already set in the process environment win.
func loadDotEnv() error {
	if _, err := os.Stat(dotEnvFile); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("stat %s: %w", dotEnvFile, err)
	}
	if err := godotenv.Load(dotEnvFile); err != nil {
		return fmt.Errorf("load %s: %w", dotEnvFile, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	if value, ok := lookupEnv(envLanguages); ok {
		c.Transcript.Languages = splitList(value)
	}
	if value, ok := lookupEnv(envOutputDir); ok {
		c.Output.Dir = value
	}
	if value, ok := lookupEnv(envBackend); ok {
		c.Transcript.Backend = value
	}
	if value, ok := lookupEnv(envLogLevel); ok {
		c.Logging.Level = value
	}
	if value, ok := lookupEnv(envLogFile); ok {
		c.Logging.File = value
	}
}

func lookupEnv(key string) (string, bool) {
	value, ok := os.LookupEnv(key)
	if !ok {
		return "", false
	}
	value = strings.TrimSpace(value)
	return value, value != ""
}

func splitList(value string) []string {
	fields := strings.FieldsFunc(value, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	out := make([]string, 0, len(fields))
	for _, field := range fields {
		if field = strings.TrimSpace(field); field != "" {
			out = append(out, field)
		}
	}
	return out
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ErrConfigExists is returned by WriteSample when the target exists and
// overwrite is false.
var ErrConfigExists = errors.New("config file already exists")

// WriteSample writes the annotated sample configuration to path, or to the
// default location when path is empty, and returns the resolved target.
func WriteSample(path string, overwrite bool) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		path = defaultConfigPath
	}
	target, err := expandPath(path)
	if err != nil {
		return "", fmt.Errorf("resolve config path: %w", err)
	}

	if !overwrite {
		_, statErr := os.Stat(target)
		switch {
		case statErr == nil:
			return target, fmt.Errorf("%w at %s", ErrConfigExists, target)
		case !errors.Is(statErr, fs.ErrNotExist):
			return "", fmt.Errorf("check config path: %w", statErr)
		}
	}

	if err := fileutil.EnsureDir(filepath.Dir(target)); err != nil {
		return "", fmt.Errorf("create config directory: %w", err)
	}
	if err := fileutil.WriteFileAtomic(target, []byte(sampleConfig), 0o644); err != nil {
		return "", fmt.Errorf("write sample config: %w", err)
	}
	return target, nil
}
