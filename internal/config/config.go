package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// DefaultDataURL is the published global temperature dataset.
const DefaultDataURL = "https://raw.githubusercontent.com/freeCodeCamp/ProjectReferenceData/master/global-temperature.json"

// Stdout is the OUTPUT_PATH value that sends the page to standard output.
const Stdout = "-"

// Config holds all settings, populated from environment variables.
type Config struct {
	DataURL      string
	FetchTimeout time.Duration // 0 disables the timeout

	OutputPath string

	LogLevel  string
	LogFormat string

	// MetricsTextfile, when set, receives Prometheus metrics after the run.
	MetricsTextfile string
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	fetchTimeout, err := time.ParseDuration(sharedcfg.EnvOrDefault("FETCH_TIMEOUT", "0s"))
	if err != nil || fetchTimeout < 0 {
		return nil, errors.New("invalid FETCH_TIMEOUT")
	}

	cfg := &Config{
		DataURL:         sharedcfg.EnvOrDefault("DATA_URL", DefaultDataURL),
		FetchTimeout:    fetchTimeout,
		OutputPath:      sharedcfg.EnvOrDefault("OUTPUT_PATH", "heatmap.html"),
		LogLevel:        strings.ToLower(sharedcfg.EnvOrDefault("LOG_LEVEL", "info")),
		LogFormat:       strings.ToLower(sharedcfg.EnvOrDefault("LOG_FORMAT", "json")),
		MetricsTextfile: sharedcfg.EnvOrDefault("METRICS_TEXTFILE", ""),
	}

	if err := validateDataURL(cfg.DataURL); err != nil {
		return nil, err
	}
	if cfg.OutputPath == "" {
		return nil, errors.New("OUTPUT_PATH is required")
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "warning", "error":
	default:
		return nil, fmt.Errorf("invalid LOG_LEVEL %q (allowed: debug, info, warn, error)", cfg.LogLevel)
	}
	switch cfg.LogFormat {
	case "json", "text":
	default:
		return nil, fmt.Errorf("invalid LOG_FORMAT %q (allowed: json, text)", cfg.LogFormat)
	}

	return cfg, nil
}

func validateDataURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid DATA_URL: %w", err)
	}
	switch u.Scheme {
	case "http", "https":
		if u.Host == "" {
			return fmt.Errorf("invalid DATA_URL %q: missing host", raw)
		}
	case "file":
		if u.Path == "" {
			return fmt.Errorf("invalid DATA_URL %q: missing path", raw)
		}
	default:
		return fmt.Errorf("invalid DATA_URL %q: scheme must be http, https or file", raw)
	}
	return nil
}
