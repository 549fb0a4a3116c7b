package config

import (
	"fmt"
	"strings"

	"github.com/bnema/bilishell/internal/logging"
)

// validateConfig validates the configuration values.
func validateConfig(config *Config) error {
	var validationErrors []string

	if _, err := logging.ParseLevel(config.Logging.Level); err != nil {
		validationErrors = append(validationErrors, fmt.Sprintf("logging.level: %v", err))
	}

	if config.Logging.MaxSizeMB <= 0 {
		validationErrors = append(validationErrors, "logging.max_size_mb must be greater than 0")
	}

	if err := config.ChromiumOptions().Validate(); err != nil {
		for _, line := range strings.Split(err.Error(), "\n") {
			validationErrors = append(validationErrors, line)
		}
	}

	if config.Player.InitialDelay < 0 {
		validationErrors = append(validationErrors, "player.initial_delay must not be negative")
	}
	if config.Player.AttemptTimeout <= 0 {
		validationErrors = append(validationErrors, "player.attempt_timeout must be greater than 0")
	}
	if config.Player.RetryDelay < 0 {
		validationErrors = append(validationErrors, "player.retry_delay must not be negative")
	}
	if config.Player.MaxRetries < 0 {
		validationErrors = append(validationErrors, "player.max_retries must not be negative")
	}

	if len(validationErrors) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(validationErrors, "\n  - "))
	}

	return nil
}
