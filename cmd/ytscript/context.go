package main

import (
	"log/slog"
	"strings"
	"sync"

	"ytscript/internal/config"
	"ytscript/internal/extractor"
	"ytscript/internal/logging"
	"ytscript/internal/services"
)

// commandDeps builds the collaborators used by commands. Tests replace them
// with fakes.
type commandDeps struct {
	newService  func(cfg *config.Config, logger *slog.Logger) (*extractor.Service, error)
	newMetadata func(cfg *config.Config, logger *slog.Logger) extractor.MetadataSource
}

func defaultDeps() commandDeps {
	return commandDeps{
		newService: extractor.NewService,
		newMetadata: func(cfg *config.Config, logger *slog.Logger) extractor.MetadataSource {
			return extractor.NewMetadataSource(cfg, logger)
		},
	}
}

type commandContext struct {
	configFlag    *string
	logLevelFlag  *string
	logFormatFlag *string
	deps          commandDeps

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag, logLevelFlag, logFormatFlag *string, deps commandDeps) *commandContext {
	return &commandContext{
		configFlag:    configFlag,
		logLevelFlag:  logLevelFlag,
		logFormatFlag: logFormatFlag,
		deps:          deps,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, _, _, err := config.Load(flagValue(c.configFlag))
		if err != nil {
			c.configErr = services.Wrap(services.ErrConfiguration, "load config", "", err)
			return
		}
		if level := flagValue(c.logLevelFlag); level != "" {
			cfg.Logging.Level = strings.ToLower(level)
		}
		if format := flagValue(c.logFormatFlag); format != "" {
			cfg.Logging.Format = strings.ToLower(format)
		}
		if err := cfg.Validate(); err != nil {
			c.configErr = services.Wrap(services.ErrConfiguration, "validate flags", "", err)
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		logger, err := logging.NewFromConfig(cfg)
		if err != nil {
			c.loggerErr = services.Wrap(services.ErrConfiguration, "init logger", "", err)
			return
		}
		c.logger = logger
	})
	return c.logger, c.loggerErr
}

func flagValue(flag *string) string {
	if flag == nil {
		return ""
	}
	return strings.TrimSpace(*flag)
}
