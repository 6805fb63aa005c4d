// Package config provides hierarchical configuration loading for propmate.
// Precedence: defaults < YAML file < environment variables.
package config

import "time"

// Config holds all runtime configuration for the propmate dashboard service.
type Config struct {
	Server    Server    `yaml:"server"`
	Upstream  Upstream  `yaml:"upstream"`
	Poll      Poll      `yaml:"poll"`
	Logging   Logging   `yaml:"logging"`
	Breaker   Breaker   `yaml:"breaker"`
	Cache     Cache     `yaml:"cache"`
	Telemetry Telemetry `yaml:"telemetry"`
}

// Server holds HTTP server configuration.
type Server struct {
	Port       string `yaml:"port"`
	CORSOrigin string `yaml:"cors_origin"`
}

// Upstream holds the connection settings for the external maintenance/AI
// service. OrgID is the organization identity sent on every scoped call.
type Upstream struct {
	URL   string `yaml:"url"`
	OrgID string `yaml:"org_id"`
}

// Poll holds the refresh cadences for the two dashboard polling loops and
// the settle delay applied after sending a message, giving the remote agent
// a moment to react before the refetch.
type Poll struct {
	QueueInterval  time.Duration `yaml:"queue_interval"`
	DetailInterval time.Duration `yaml:"detail_interval"`
	SettleDelay    time.Duration `yaml:"settle_delay"`
}

// Logging holds structured logging configuration.
type Logging struct {
	Level   string `yaml:"level"`
	Service string `yaml:"service"`
}

// Breaker holds circuit breaker configuration for upstream calls.
type Breaker struct {
	MaxFailures int           `yaml:"max_failures"`
	Timeout     time.Duration `yaml:"timeout"`
}

// Cache holds the in-process view cache configuration.
type Cache struct {
	MaxEntries int64         `yaml:"max_entries"`
	TTL        time.Duration `yaml:"ttl"`
}

// Telemetry holds OpenTelemetry export configuration.
type Telemetry struct {
	Enabled  bool   `yaml:"enabled"`
	Endpoint string `yaml:"endpoint"`
}

// Defaults returns a Config with sensible default values for local development.
func Defaults() Config {
	return Config{
		Server: Server{
			Port:       "8090",
			CORSOrigin: "http://localhost:3000",
		},
		Upstream: Upstream{
			URL: "http://localhost:8000",
		},
		Poll: Poll{
			QueueInterval:  30 * time.Second,
			DetailInterval: 5 * time.Second,
			SettleDelay:    1500 * time.Millisecond,
		},
		Logging: Logging{
			Level:   "info",
			Service: "propmate",
		},
		Breaker: Breaker{
			MaxFailures: 5,
			Timeout:     30 * time.Second,
		},
		Cache: Cache{
			MaxEntries: 4096,
			TTL:        time.Minute,
		},
		Telemetry: Telemetry{
			Enabled:  false,
			Endpoint: "localhost:4317",
		},
	}
}
