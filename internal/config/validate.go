package config

import (
	"fmt"

	"seekr/internal/services"
)

// Validate ensures the configuration is usable. Failures carry the
// services.ErrConfiguration marker.
func (c *Config) Validate() error {
	if err := c.validateMatching(); err != nil {
		return err
	}
	if err := c.validateLibrary(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateMatching() error {
	if c.Matching.Threshold < 0 || c.Matching.Threshold > 100 {
		return configError("matching.threshold must be between 0 and 100, got %d", c.Matching.Threshold)
	}
	if c.Matching.Workers < 0 {
		return configError("matching.workers must not be negative")
	}
	return nil
}

func (c *Config) validateLibrary() error {
	switch c.Library.Format {
	case LibraryFormatAuto, LibraryFormatSQLite, LibraryFormatXML:
		return nil
	default:
		return configError("library.format must be one of auto, sqlite, xml, got %q", c.Library.Format)
	}
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return configError("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return configError("logging.level must be one of debug, info, warn, error, got %q", c.Logging.Level)
	}
	if c.Logging.RetentionDays < 0 {
		return configError("logging.retention_days must not be negative")
	}
	return nil
}

func configError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", services.ErrConfiguration, fmt.Sprintf(format, args...))
}
