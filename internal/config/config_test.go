package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DefaultDataURL, cfg.DataSource)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 60*time.Second, cfg.FetchTimeout)
	assert.Equal(t, 4, cfg.LoaderCacheSize)
	assert.Equal(t, 15, cfg.DefaultTopN)
	assert.Equal(t, 40, cfg.DefaultHistBins)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("DATA_SOURCE", "/data/irve.csv")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("FETCH_TIMEOUT", "2m")
	t.Setenv("LOADER_CACHE_SIZE", "8")
	t.Setenv("DEFAULT_TOP_N", "10")
	t.Setenv("DEFAULT_HIST_BINS", "25")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/data/irve.csv", cfg.DataSource)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 2*time.Minute, cfg.FetchTimeout)
	assert.Equal(t, 8, cfg.LoaderCacheSize)
	assert.Equal(t, 10, cfg.DefaultTopN)
	assert.Equal(t, 25, cfg.DefaultHistBins)
}

func TestLoadInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"bad duration", "SHUTDOWN_TIMEOUT", "soon"},
		{"negative duration", "FETCH_TIMEOUT", "-5s"},
		{"non-numeric int", "LOADER_CACHE_SIZE", "many"},
		{"zero int", "DEFAULT_TOP_N", "0"},
		{"negative int", "DEFAULT_HIST_BINS", "-3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}
