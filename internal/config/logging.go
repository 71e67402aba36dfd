package config

import (
	"fmt"
	"strings"
)

var validLogLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level      string          `yaml:"level"`      // debug, info, warn, error
	DebugMode  bool            `yaml:"debug_mode"` // forces debug level
	Dir        string          `yaml:"dir"`        // empty disables file logging
	Categories map[string]bool `yaml:"categories"` // per-category toggles
}

func (c *LoggingConfig) validate() error {
	if c.Level == "" {
		return nil
	}
	if !validLogLevels[strings.ToLower(c.Level)] {
		return fmt.Errorf("invalid logging.level %q (want debug, info, warn or error)", c.Level)
	}
	return nil
}
