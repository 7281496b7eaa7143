package main

import (
	"log/slog"
	"strings"
	"sync"

	"reel/internal/config"
	"reel/internal/logging"
)

type commandContext struct {
	toolConfigFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	logOnce sync.Once
	log     *slog.Logger
}

func newCommandContext(toolConfigFlag *string) *commandContext {
	return &commandContext{toolConfigFlag: toolConfigFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.toolConfigFlag != nil {
			path = strings.TrimSpace(*c.toolConfigFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// logger builds the shared slog logger from the loaded configuration,
// falling back to defaults when config loading failed.
func (c *commandContext) logger() *slog.Logger {
	c.logOnce.Do(func() {
		opts := logging.Options{}
		if cfg, err := c.ensureConfig(); err == nil {
			opts.Level = cfg.Logging.Level
			opts.Format = cfg.Logging.Format
		}
		c.log = logging.New(opts)
	})
	return c.log
}
