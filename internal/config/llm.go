package config

import "github.com/malcolmbastien/Agile-Team-Profiler/internal/perception"

// The client package owns the request defaults.
const (
	DefaultModel       = perception.DefaultModel
	DefaultTemperature = perception.DefaultTemperature
	DefaultLLMTimeout  = perception.DefaultTimeout
)

// LLMConfig configures the Gemini client.
type LLMConfig struct {
	APIKey      string  `yaml:"api_key"`
	Model       string  `yaml:"model"`
	BaseURL     string  `yaml:"base_url"` // empty = Gemini API default
	Timeout     string  `yaml:"timeout"`
	Temperature float32 `yaml:"temperature"`
}
