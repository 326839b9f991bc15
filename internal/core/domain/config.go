package domain

import (
	"strings"
	"time"
)

// Cache backends selectable with cache.backend.
const (
	CacheBackendFile   = "file"
	CacheBackendBadger = "badger"
	CacheBackendSQLite = "sqlite"
	CacheBackendMemory = "memory"
	CacheBackendNone   = "none"
)

// Defaults applied before any config file, environment or flag.
const (
	DefaultRepository  = "flutter/flutter"
	DefaultAPIBase     = "https://api.github.com"
	DefaultCacheTTL    = 7 * 24 * time.Hour
	DefaultSpacing     = 250 * time.Millisecond
	DefaultBackoff     = time.Second
	DefaultHTTPTimeout = 30 * time.Second
	DefaultServerAddr  = ":8080"
)

// Config is the fully merged runtime configuration.
type Config struct {
	Repository string          `mapstructure:"repository" validate:"required,repository"`
	APIBase    string          `mapstructure:"api_base" validate:"required,url"`
	Token      string          `mapstructure:"token"`
	Snapshot   string          `mapstructure:"snapshot" validate:"required"`
	Cache      CacheConfig     `mapstructure:"cache"`
	Throttle   ThrottleConfig  `mapstructure:"throttle"`
	Engine     EngineConfig    `mapstructure:"engine"`
	HTTP       HTTPConfig      `mapstructure:"http"`
	Server     ServerConfig    `mapstructure:"server"`
	Log        LogConfig       `mapstructure:"log"`
	Telemetry  TelemetryConfig `mapstructure:"telemetry"`
}

// CacheConfig selects and tunes the inclusion cache.
type CacheConfig struct {
	Backend string        `mapstructure:"backend" validate:"oneof=file badger sqlite memory none"`
	Path    string        `mapstructure:"path"`
	TTL     time.Duration `mapstructure:"ttl" validate:"gte=0"`
}

// ThrottleConfig controls the pacing of remote calls.
type ThrottleConfig struct {
	Spacing time.Duration `mapstructure:"spacing" validate:"gte=0"`
	Backoff time.Duration `mapstructure:"backoff" validate:"gte=0"`
}

// EngineConfig tunes release evaluation.
type EngineConfig struct {
	ParallelChannels bool `mapstructure:"parallel_channels"`
}

// HTTPConfig tunes the outbound HTTP client.
type HTTPConfig struct {
	Timeout time.Duration `mapstructure:"timeout" validate:"gt=0"`
}

// ServerConfig configures the serve command.
type ServerConfig struct {
	Addr string `mapstructure:"addr" validate:"required"`
}

// LogConfig configures the logger.
type LogConfig struct {
	Format string `mapstructure:"format" validate:"oneof=pretty json"`
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
}

// TelemetryConfig configures tracing export.
type TelemetryConfig struct {
	Traces string `mapstructure:"traces" validate:"oneof=none stdout"`
}

// Owner returns the repository owner.
func (c *Config) Owner() string {
	owner, _, _ := strings.Cut(c.Repository, "/")
	return owner
}

// Name returns the repository name.
func (c *Config) Name() string {
	_, name, _ := strings.Cut(c.Repository, "/")
	return name
}

// DefaultConfig returns a Config populated with defaults.
func DefaultConfig() *Config {
	return &Config{
		Repository: DefaultRepository,
		APIBase:    DefaultAPIBase,
		Snapshot:   DefaultSnapshotPath,
		Cache: CacheConfig{
			Backend: CacheBackendFile,
			Path:    DefaultCachePath(),
			TTL:     DefaultCacheTTL,
		},
		Throttle: ThrottleConfig{
			Spacing: DefaultSpacing,
			Backoff: DefaultBackoff,
		},
		Engine: EngineConfig{ParallelChannels: true},
		HTTP:   HTTPConfig{Timeout: DefaultHTTPTimeout},
		Server: ServerConfig{Addr: DefaultServerAddr},
		Log:    LogConfig{Format: "pretty", Level: "info"},
		Telemetry: TelemetryConfig{
			Traces: "none",
		},
	}
}
