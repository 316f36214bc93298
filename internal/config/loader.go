package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Loader provides configuration loading capabilities.
type Loader interface {
	// Load loads configuration from file and environment variables.
	// Priority: defaults → config file → environment variables (env wins)
	Load() (*Config, error)
}

type loader struct {
	rootDir    string
	configFile string
}

// NewLoader creates a new configuration loader for the given root directory.
func NewLoader(rootDir string) Loader {
	return &loader{
		rootDir: rootDir,
	}
}

// NewFileLoader creates a loader that reads an explicit config file instead
// of searching the root's .docuai directory. A missing file is an error.
func NewFileLoader(configFile string) Loader {
	return &loader{
		configFile: configFile,
	}
}

// Load loads configuration with the following priority (highest to lowest):
// 1. Environment variables (DOCUAI_*)
// 2. Config file (.docuai/config.yml or .docuai/config.yaml)
// 3. Default values
func (l *loader) Load() (*Config, error) {
	// Configure viper
	v := viper.New()

	if l.configFile != "" {
		v.SetConfigFile(l.configFile)
	} else {
		// Set up config file search
		configDir := filepath.Join(l.rootDir, ".docuai")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(configDir)
	}

	// Enable environment variable overrides
	v.SetEnvPrefix("DOCUAI")
	v.AutomaticEnv()
	// Replace . with _ in env var names (e.g., DOCUAI_LLM_PROVIDER)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Bind environment variables to config keys
	// LLM configuration
	v.BindEnv("llm.provider")
	v.BindEnv("llm.model")
	v.BindEnv("llm.temperature")
	v.BindEnv("llm.api_key")

	// Extraction configuration
	v.BindEnv("extract.workers")
	v.BindEnv("extract.max_file_size_mb")

	// Output configuration
	v.BindEnv("output.dir")

	// Set defaults in viper
	setDefaults(v)

	// Try to read config file
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// Config file not found is acceptable - we'll use defaults + env vars
		if !errors.As(err, &notFound) || l.configFile != "" {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Unmarshal into config struct
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// The default model depends on the provider, so it is resolved last.
	if strings.TrimSpace(cfg.LLM.Model) == "" {
		cfg.LLM.Model = DefaultModel(strings.ToLower(cfg.LLM.Provider))
	}

	// Validate the configuration
	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setDefaults configures viper with default values.
func setDefaults(v *viper.Viper) {
	defaults := Default()

	// LLM defaults
	v.SetDefault("llm.provider", defaults.LLM.Provider)
	v.SetDefault("llm.temperature", defaults.LLM.Temperature)
	v.SetDefault("llm.api_key", defaults.LLM.APIKey)

	// Paths defaults
	v.SetDefault("paths.include", defaults.Paths.Include)
	v.SetDefault("paths.ignore", defaults.Paths.Ignore)

	// Extraction defaults
	v.SetDefault("extract.workers", defaults.Extract.Workers)
	v.SetDefault("extract.max_file_size_mb", defaults.Extract.MaxFileSizeMB)

	// Output defaults
	v.SetDefault("output.dir", defaults.Output.Dir)
}

// LoadConfig is a convenience function that creates a loader and loads config.
// It uses the current working directory as the root.
func LoadConfig() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	return NewLoader(wd).Load()
}
