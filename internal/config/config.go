package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

// DefaultDataURL is the official consolidated IRVE download on data.gouv.fr.
const DefaultDataURL = "https://www.data.gouv.fr/api/1/datasets/r/eb76d20a-8501-400e-b336-d85724de5435"

// Config holds all service settings, populated from environment variables.
type Config struct {
	// DataSource is a local CSV path or an http(s) URL.
	DataSource      string
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// FetchTimeout bounds the remote dataset download.
	FetchTimeout    time.Duration
	LoaderCacheSize int

	// Chart defaults applied when a request omits the parameter.
	DefaultTopN     int
	DefaultHistBins int
}

// Load reads configuration from environment variables, applying defaults
// where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	fetchTimeout, err := parseDuration("FETCH_TIMEOUT", "60s")
	if err != nil {
		return nil, err
	}

	cacheSize, err := parsePositiveInt("LOADER_CACHE_SIZE", 4)
	if err != nil {
		return nil, err
	}
	topN, err := parsePositiveInt("DEFAULT_TOP_N", 15)
	if err != nil {
		return nil, err
	}
	histBins, err := parsePositiveInt("DEFAULT_HIST_BINS", 40)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		DataSource:      envOrDefault("DATA_SOURCE", DefaultDataURL),
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,
		FetchTimeout:    fetchTimeout,
		LoaderCacheSize: cacheSize,
		DefaultTopN:     topN,
		DefaultHistBins: histBins,
	}

	if cfg.DataSource == "" {
		return nil, errors.New("DATA_SOURCE is required")
	}
	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseDuration(key, fallback string) (time.Duration, error) {
	d, err := time.ParseDuration(envOrDefault(key, fallback))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

func parsePositiveInt(key string, fallback int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return n, nil
}
