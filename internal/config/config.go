package config

import (
	"github.com/mvp-joe/docuai/internal/indexer"
)

// Config represents the complete docuai configuration.
// It can be loaded from .docuai/config.yml with environment variable overrides.
type Config struct {
	LLM     LLMConfig     `yaml:"llm" mapstructure:"llm"`
	Paths   PathsConfig   `yaml:"paths" mapstructure:"paths"`
	Extract ExtractConfig `yaml:"extract" mapstructure:"extract"`
	Output  OutputConfig  `yaml:"output" mapstructure:"output"`
}

// LLMConfig configures the language model behind the generation agent.
type LLMConfig struct {
	Provider    string  `yaml:"provider" mapstructure:"provider"`       // "openai" or "gemini"
	Model       string  `yaml:"model" mapstructure:"model"`             // e.g., "gpt-4o"
	Temperature float64 `yaml:"temperature" mapstructure:"temperature"` // sampling temperature
	APIKey      string  `yaml:"api_key" mapstructure:"api_key"`         // empty falls back to the provider's env var
}

// PathsConfig defines which files to extract and which to ignore.
type PathsConfig struct {
	Include []string `yaml:"include" mapstructure:"include"` // glob patterns for source files
	Ignore  []string `yaml:"ignore" mapstructure:"ignore"`   // glob patterns to ignore
}

// ExtractConfig controls batch extraction.
type ExtractConfig struct {
	Workers       int `yaml:"workers" mapstructure:"workers"`                   // files parsed concurrently
	MaxFileSizeMB int `yaml:"max_file_size_mb" mapstructure:"max_file_size_mb"` // 0 disables the limit
}

// OutputConfig controls where reports are written.
type OutputConfig struct {
	Dir string `yaml:"dir" mapstructure:"dir"` // empty writes next to the input
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		LLM: LLMConfig{
			Provider:    "openai",
			Model:       "gpt-4o",
			Temperature: 0.3,
		},
		Paths: PathsConfig{
			Include: indexer.DefaultIncludePatterns(),
			Ignore:  append([]string(nil), indexer.DefaultIgnorePatterns...),
		},
		Extract: ExtractConfig{
			Workers:       1,
			MaxFileSizeMB: 10,
		},
	}
}

// DefaultModel returns the default model name for a provider.
func DefaultModel(provider string) string {
	switch provider {
	case "gemini":
		return "gemini-2.5-flash"
	default:
		return "gpt-4o"
	}
}

