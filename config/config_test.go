package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	originalEnv := map[string]string{
		"ENV":            os.Getenv("ENV"),
		"JWT_SECRET":     os.Getenv("JWT_SECRET"),
		"GEN_MODEL":      os.Getenv("GEN_MODEL"),
		"GEMINI_API_KEY": os.Getenv("GEMINI_API_KEY"),
		"SERVER_PORT":    os.Getenv("SERVER_PORT"),
	}
	defer func() {
		for k, v := range originalEnv {
			os.Setenv(k, v)
		}
	}()

	t.Run("should apply defaults", func(t *testing.T) {
		os.Setenv("ENV", "test")
		os.Setenv("JWT_SECRET", "test-secret")
		os.Unsetenv("GEN_MODEL")
		os.Unsetenv("SERVER_PORT")

		cfg, err := LoadConfig()

		require.NoError(t, err)
		assert.Equal(t, "8080", cfg.ServerPort)
		assert.Equal(t, DefaultGenModel, cfg.GenModel)
		assert.Equal(t, "disable", cfg.DBSSLMode)
	})

	t.Run("should honor model override", func(t *testing.T) {
		os.Setenv("ENV", "test")
		os.Setenv("JWT_SECRET", "test-secret")
		os.Setenv("GEN_MODEL", "gemini-2.5-pro")

		cfg, err := LoadConfig()

		require.NoError(t, err)
		assert.Equal(t, "gemini-2.5-pro", cfg.GenModel)
	})

	t.Run("should fail without JWT secret", func(t *testing.T) {
		os.Setenv("ENV", "test")
		os.Unsetenv("JWT_SECRET")

		cfg, err := LoadConfig()

		assert.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "JWT_SECRET")
	})

	t.Run("should read API key from file", func(t *testing.T) {
		os.Setenv("ENV", "test")
		os.Setenv("JWT_SECRET", "test-secret")
		os.Unsetenv("GEMINI_API_KEY")

		keyFile := t.TempDir() + "/gemini_api_key"
		require.NoError(t, os.WriteFile(keyFile, []byte("file-key\n"), 0o600))
		os.Setenv("GEMINI_API_KEY_FILE", keyFile)
		defer os.Unsetenv("GEMINI_API_KEY_FILE")

		cfg, err := LoadConfig()

		require.NoError(t, err)
		assert.Equal(t, "file-key", cfg.GeminiAPIKey)
	})
}
