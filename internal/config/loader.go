package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the path checked for YAML configuration.
const DefaultConfigFile = "propmate.yaml"

// Load returns a Config using the hierarchy: defaults < YAML < ENV.
// YAML file is optional; missing file is not an error.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigFile)
}

// LoadFrom returns a Config loaded from the given YAML path using the
// hierarchy: defaults < YAML < ENV. The YAML file is optional.
func LoadFrom(yamlPath string) (*Config, error) {
	cfg := Defaults()

	if err := loadYAML(&cfg, yamlPath); err != nil {
		return nil, fmt.Errorf("config yaml: %w", err)
	}

	loadEnv(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validate: %w", err)
	}

	return &cfg, nil
}

// loadYAML reads the YAML file and unmarshals it over cfg.
// Returns nil if the file does not exist.
func loadYAML(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	return nil
}

// loadEnv overlays environment variables onto cfg.
// Only non-empty env values override the current config.
func loadEnv(cfg *Config) {
	setString(&cfg.Server.Port, "PROPMATE_PORT")
	setString(&cfg.Server.CORSOrigin, "PROPMATE_CORS_ORIGIN")
	setString(&cfg.Upstream.URL, "PROPMATE_UPSTREAM_URL")
	setString(&cfg.Upstream.OrgID, "PROPMATE_ORG_ID")
	setDuration(&cfg.Poll.QueueInterval, "PROPMATE_POLL_QUEUE_INTERVAL")
	setDuration(&cfg.Poll.DetailInterval, "PROPMATE_POLL_DETAIL_INTERVAL")
	setDuration(&cfg.Poll.SettleDelay, "PROPMATE_POLL_SETTLE_DELAY")
	setString(&cfg.Logging.Level, "PROPMATE_LOG_LEVEL")
	setString(&cfg.Logging.Service, "PROPMATE_LOG_SERVICE")
	setInt(&cfg.Breaker.MaxFailures, "PROPMATE_BREAKER_MAX_FAILURES")
	setDuration(&cfg.Breaker.Timeout, "PROPMATE_BREAKER_TIMEOUT")
	setInt64(&cfg.Cache.MaxEntries, "PROPMATE_CACHE_MAX_ENTRIES")
	setDuration(&cfg.Cache.TTL, "PROPMATE_CACHE_TTL")
	setBool(&cfg.Telemetry.Enabled, "PROPMATE_OTEL_ENABLED")
	setString(&cfg.Telemetry.Endpoint, "PROPMATE_OTEL_ENDPOINT")
}

// validate checks that required fields are set.
func validate(cfg *Config) error {
	if cfg.Server.Port == "" {
		return errors.New("server.port is required")
	}
	if cfg.Upstream.URL == "" {
		return errors.New("upstream.url is required")
	}
	if cfg.Poll.QueueInterval <= 0 {
		return errors.New("poll.queue_interval must be positive")
	}
	if cfg.Poll.DetailInterval <= 0 {
		return errors.New("poll.detail_interval must be positive")
	}
	if cfg.Breaker.MaxFailures < 1 {
		return errors.New("breaker.max_failures must be >= 1")
	}
	if cfg.Cache.MaxEntries < 1 {
		return errors.New("cache.max_entries must be >= 1")
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setInt64(dst *int64, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			*dst = n
		}
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

func setDuration(dst *time.Duration, key string) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			*dst = d
		}
	}
}
