// Package config loads the profiler's YAML configuration and applies
// environment overrides on top of it.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath is where the profiler looks for its config file.
var DefaultPath = filepath.Join(".profiler", "config.yaml")

// Config holds all profiler configuration.
type Config struct {
	// LLM configuration (Gemini)
	LLM LLMConfig `yaml:"llm"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`

	// Terminal UI
	UX UXConfig `yaml:"ux"`

	// Prometheus endpoint
	Metrics MetricsConfig `yaml:"metrics"`
}

// MetricsConfig configures the optional /metrics listener.
type MetricsConfig struct {
	ListenAddr string `yaml:"listen_addr"` // empty disables the endpoint
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		LLM: LLMConfig{
			Model:       DefaultModel,
			Timeout:     DefaultLLMTimeout.String(),
			Temperature: DefaultTemperature,
		},
		Logging: LoggingConfig{
			Level: "info",
			Dir:   filepath.Join(".profiler", "logs"),
		},
		UX: UXConfig{
			Theme: ThemeAuto,
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults; environment overrides apply either way.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	// Override with environment variables
	cfg.applyEnvOverrides()

	return cfg, nil
}

// apiKeyEnvVars are consulted in order; the first non-empty one wins.
var apiKeyEnvVars = []string{"GEMINI_API_KEY", "GOOGLE_API_KEY", "API_KEY"}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	for _, name := range apiKeyEnvVars {
		if key := strings.TrimSpace(os.Getenv(name)); key != "" {
			c.LLM.APIKey = key
			break
		}
	}

	if model := os.Getenv("PROFILER_MODEL"); model != "" {
		c.LLM.Model = model
	}

	if addr := os.Getenv("PROFILER_METRICS_ADDR"); addr != "" {
		c.Metrics.ListenAddr = addr
	}
}

// GetLLMTimeout returns the per-call timeout as a duration.
func (c *Config) GetLLMTimeout() time.Duration {
	d, err := time.ParseDuration(c.LLM.Timeout)
	if err != nil || d <= 0 {
		return DefaultLLMTimeout
	}
	return d
}

// Warnings reports conditions the profiler can start with but the user
// should know about.
func (c *Config) Warnings() []string {
	var warnings []string
	if strings.TrimSpace(c.LLM.APIKey) == "" {
		warnings = append(warnings, fmt.Sprintf("no API key configured (set %s or llm.api_key); analysis requests will fail", strings.Join(apiKeyEnvVars, ", ")))
	}
	return warnings
}

// Validate checks the configuration for values the profiler cannot run with.
func (c *Config) Validate() error {
	var errs []error

	if c.LLM.Timeout != "" {
		if d, err := time.ParseDuration(c.LLM.Timeout); err != nil || d <= 0 {
			errs = append(errs, fmt.Errorf("invalid llm.timeout %q", c.LLM.Timeout))
		}
	}
	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		errs = append(errs, fmt.Errorf("llm.temperature %.2f out of range [0, 2]", c.LLM.Temperature))
	}
	if err := c.Logging.validate(); err != nil {
		errs = append(errs, err)
	}
	if err := c.UX.validate(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}
