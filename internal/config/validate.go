package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gobwas/glob"
)

var (
	// ErrInvalidProvider indicates an unsupported LLM provider
	ErrInvalidProvider = errors.New("invalid llm provider")

	// ErrInvalidTemperature indicates a temperature outside [0, 2]
	ErrInvalidTemperature = errors.New("invalid temperature")

	// ErrEmptyModel indicates a missing model name
	ErrEmptyModel = errors.New("empty llm model")

	// ErrInvalidPattern indicates a glob pattern that does not compile
	ErrInvalidPattern = errors.New("invalid glob pattern")

	// ErrInvalidWorkers indicates a non-positive worker count
	ErrInvalidWorkers = errors.New("invalid worker count")

	// ErrInvalidFileSize indicates a negative size limit
	ErrInvalidFileSize = errors.New("invalid max file size")
)

// Validate checks that the configuration is valid and complete.
func Validate(cfg *Config) error {
	var errs []error

	// Validate LLM configuration
	if err := validateLLM(&cfg.LLM); err != nil {
		errs = append(errs, err)
	}

	// Validate paths configuration
	if err := validatePaths(&cfg.Paths); err != nil {
		errs = append(errs, err)
	}

	// Validate extraction configuration
	if err := validateExtract(&cfg.Extract); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

func validateLLM(cfg *LLMConfig) error {
	var errs []error

	// Validate provider
	provider := strings.ToLower(cfg.Provider)
	if provider != "openai" && provider != "gemini" {
		errs = append(errs, fmt.Errorf("%w: must be 'openai' or 'gemini', got '%s'", ErrInvalidProvider, cfg.Provider))
	}

	// Validate model
	if strings.TrimSpace(cfg.Model) == "" {
		errs = append(errs, fmt.Errorf("%w: model is required", ErrEmptyModel))
	}

	if cfg.Temperature < 0 || cfg.Temperature > 2 {
		errs = append(errs, fmt.Errorf("%w: must be between 0 and 2, got %.2f", ErrInvalidTemperature, cfg.Temperature))
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

func validatePaths(cfg *PathsConfig) error {
	// Empty pattern lists are allowed; discovery then finds nothing.
	var errs []error
	for _, pattern := range append(append([]string{}, cfg.Include...), cfg.Ignore...) {
		if _, err := glob.Compile(pattern, '/'); err != nil {
			errs = append(errs, fmt.Errorf("%w: '%s': %v", ErrInvalidPattern, pattern, err))
		}
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

func validateExtract(cfg *ExtractConfig) error {
	var errs []error

	if cfg.Workers < 1 {
		errs = append(errs, fmt.Errorf("%w: workers must be at least 1, got %d", ErrInvalidWorkers, cfg.Workers))
	}

	// Zero means no limit
	if cfg.MaxFileSizeMB < 0 {
		errs = append(errs, fmt.Errorf("%w: max_file_size_mb cannot be negative, got %d", ErrInvalidFileSize, cfg.MaxFileSizeMB))
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

// joinErrors combines multiple errors into a single error with clear formatting.
func joinErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}

	if len(errs) == 1 {
		return errs[0]
	}

	var msgs []string
	for _, err := range errs {
		msgs = append(msgs, err.Error())
	}

	return fmt.Errorf("validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}
