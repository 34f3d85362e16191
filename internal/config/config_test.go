package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"PORT", "HOST", "READ_TIMEOUT", "WRITE_TIMEOUT", "SHUTDOWN_TIMEOUT",
	"DATABASE_URL", "SEED_DEFAULT_DATA", "CURRENCY", "CORS_ALLOWED_ORIGINS", "LOG_LEVEL",
}

// clearEnv unsets every config key for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()

	for _, key := range configKeys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "0.0.0.0:8080", cfg.Addr())
	assert.Equal(t, 30, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "USD", cfg.Currency.String())
	assert.Empty(t, cfg.Database.URL)
	assert.False(t, cfg.Database.SeedDefault)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_FromEnvironment(t *testing.T) {
	clearEnv(t)

	t.Setenv("PORT", "9000")
	t.Setenv("READ_TIMEOUT", "not-a-number")
	t.Setenv("DATABASE_URL", "postgres://orders:secret@db:5432/orders")
	t.Setenv("SEED_DEFAULT_DATA", "TRUE")
	t.Setenv("CURRENCY", "eur")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, 15, cfg.Server.ReadTimeout)
	assert.Equal(t, "postgres://orders:secret@db:5432/orders", cfg.Database.URL)
	assert.True(t, cfg.Database.SeedDefault)
	assert.Equal(t, "EUR", cfg.Currency.String())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
}

func TestLoad_EnvFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("PORT=7070\nCURRENCY=GBP\n"), 0o600))

	// real environment wins over the file
	t.Setenv("CURRENCY", "JPY")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "7070", cfg.Server.Port)
	assert.Equal(t, "JPY", cfg.Currency.String())
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name      string
		env       map[string]string
		wantError string
	}{
		{
			name:      "invalid log level",
			env:       map[string]string{"LOG_LEVEL": "loud"},
			wantError: "invalid configuration: invalid log level: loud (must be debug, info, warn, or error)",
		},
		{
			name:      "invalid shutdown timeout",
			env:       map[string]string{"SHUTDOWN_TIMEOUT": "0"},
			wantError: "invalid configuration: SHUTDOWN_TIMEOUT must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			require.EqualError(t, err, tt.wantError)
		})
	}

	t.Run("invalid currency", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("CURRENCY", "DOLLARS")

		_, err := Load()
		require.ErrorContains(t, err, "invalid configuration: CURRENCY")
	})

	t.Run("missing env file", func(t *testing.T) {
		clearEnv(t)

		_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
		require.ErrorContains(t, err, "godotenv.Load")
	})
}
