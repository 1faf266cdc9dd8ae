package main

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"seekr/internal/config"
	"seekr/internal/logging"
	"seekr/internal/services"
)

type commandContext struct {
	configFlag    *string
	verboseFlag   *bool
	logFormatFlag *string

	configOnce   sync.Once
	config       *config.Config
	configPath   string
	configExists bool
	configErr    error
}

func newCommandContext(configFlag *string, verboseFlag *bool, logFormatFlag *string) *commandContext {
	return &commandContext{
		configFlag:    configFlag,
		verboseFlag:   verboseFlag,
		logFormatFlag: logFormatFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		loadEnvFile(envFileName)
		cfg, resolved, exists, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if format := c.logFormat(); format != "" {
			cfg.Logging.Format = format
			if err := cfg.Validate(); err != nil {
				c.configErr = err
				return
			}
		}
		c.config = cfg
		c.configPath = resolved
		c.configExists = exists
	})
	return c.config, c.configErr
}

// envFileName is read from the working directory before configuration so
// SEEKR_MUSIC_DIR and SEEKR_LIBRARY_PATH can live beside a project.
const envFileName = ".env"

// loadEnvFile loads filename into the environment without overriding
// variables that are already set. A missing file is ignored.
func loadEnvFile(filename string) {
	_ = godotenv.Load(filename)
}

func (c *commandContext) verbose() bool {
	return c.verboseFlag != nil && *c.verboseFlag
}

func (c *commandContext) logFormat() string {
	if c.logFormatFlag == nil {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(*c.logFormatFlag))
}

// newLogger builds the run logger and prunes expired log files.
func (c *commandContext) newLogger(cfg *config.Config) (*slog.Logger, error) {
	logger, err := logging.NewFromConfig(cfg, c.verbose())
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "cli", "logging", "initialize logger", err)
	}
	logging.CleanupOldLogs(logger, cfg.Logging.RetentionDays, logging.RetentionTarget{
		Dir:     cfg.Paths.LogDir,
		Pattern: logging.LogFilePattern,
	})
	return logger, nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func expandFlagPath(name, value string) (string, error) {
	expanded, err := config.ExpandPath(strings.TrimSpace(value))
	if err != nil {
		return "", services.Wrap(services.ErrConfiguration, "cli", name, fmt.Sprintf("resolve %q", value), err)
	}
	return expanded, nil
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
