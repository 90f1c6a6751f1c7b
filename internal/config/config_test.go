package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigDefaults(t *testing.T) {
	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Host)
	assert.Equal(t, "1323", cfg.Port)
	assert.Equal(t, "9000", cfg.GRPCPort)
	assert.Equal(t, DriverPostgres, cfg.DBDriver)
	assert.Equal(t, "disable", cfg.DBSSLMode)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.LogPretty)
	assert.Equal(t, "0.0.0.0:1323", cfg.HTTPAddr())
}

func TestNewConfigFromEnv(t *testing.T) {
	t.Setenv("BOOKMARKER_PORT", "8080")
	t.Setenv("BOOKMARKER_DB_DRIVER", "sqlite")
	t.Setenv("BOOKMARKER_DB_NAME", "file::memory:")
	t.Setenv("BOOKMARKER_LOG_PRETTY", "true")

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, DriverSQLite, cfg.DBDriver)
	assert.Equal(t, "file::memory:", cfg.DBName)
	assert.True(t, cfg.LogPretty)
}

func TestNewConfigValidation(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"ssl mode", "BOOKMARKER_DB_SSL_MODE", "verify-full"},
		{"driver", "BOOKMARKER_DB_DRIVER", "mysql"},
		{"log level", "BOOKMARKER_LOG_LEVEL", "trace"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			_, err := NewConfig()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "config validation failed")
			assert.Contains(t, err.Error(), tt.value)
		})
	}
}
