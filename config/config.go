package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultGenModel is the generative model used when GEN_MODEL is not set.
const DefaultGenModel = "gemini-2.0-flash"

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerPort string
	ServerHost string

	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	// JWT configuration
	JWTSecret string

	// Generative model configuration
	GenModel     string
	GeminiAPIKey string
}

// LoadConfig creates a new Config instance with values from environment
// variables or secret files. It is called once at process start; the
// resulting Config is immutable and injected into constructors.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerPort:    getEnv("SERVER_PORT", "8080"),
		ServerHost:    getEnv("SERVER_HOST", "0.0.0.0"),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBUser:        getEnv("DB_USER", "postgres"),
		DBPassword:    os.Getenv("DB_PASSWORD"),
		DBName:        getEnv("DB_NAME", "smartchef"),
		DBSSLMode:     getEnv("DB_SSL_MODE", "disable"),
		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       0,
		JWTSecret:     os.Getenv("JWT_SECRET"),
		GenModel:      getEnv("GEN_MODEL", DefaultGenModel),
		GeminiAPIKey:  os.Getenv("GEMINI_API_KEY"),
	}

	// Docker secrets take precedence over plain environment variables for
	// sensitive values in production.
	if IsProduction() {
		if v := readSecret("db_password"); v != "" {
			cfg.DBPassword = v
		}
		if v := readSecret("jwt_secret"); v != "" {
			cfg.JWTSecret = v
		}
		if v := readSecret("redis_password"); v != "" {
			cfg.RedisPassword = v
		}
		if v := readSecret("gemini_api_key"); v != "" {
			cfg.GeminiAPIKey = v
		}
	}

	// The Gemini key may also be supplied as a file path, the way Docker
	// compose mounts secrets.
	if cfg.GeminiAPIKey == "" {
		if keyFile := os.Getenv("GEMINI_API_KEY_FILE"); keyFile != "" {
			content, err := os.ReadFile(keyFile)
			if err != nil {
				return nil, fmt.Errorf("failed to read GEMINI_API_KEY_FILE: %w", err)
			}
			cfg.GeminiAPIKey = strings.TrimSpace(string(content))
		}
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}
