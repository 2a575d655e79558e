package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks that the configuration is usable for the current
// environment. The Gemini API key is deliberately not required: without it
// every generation degrades to the fallback recipe, which keeps development
// environments working.
func ValidateConfig(cfg *Config) error {
	var errors []string

	if cfg.JWTSecret == "" {
		errors = append(errors, "JWT_SECRET is required")
	}
	if cfg.ServerPort == "" {
		errors = append(errors, "SERVER_PORT must not be empty")
	}
	if cfg.GenModel == "" {
		errors = append(errors, "GEN_MODEL must not be empty")
	}

	if IsProduction() {
		if cfg.DBPassword == "" {
			errors = append(errors, "DB_PASSWORD (or db_password secret) is required in production")
		}
		if cfg.GeminiAPIKey == "" {
			errors = append(errors, "GEMINI_API_KEY (or gemini_api_key secret) is required in production")
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(errors, "\n"))
	}

	return nil
}
