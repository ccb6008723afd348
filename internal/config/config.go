// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load() layers defaults, an optional YAML file, and environment variables.
// - External errors are wrapped via this package's error kinds.
package config

import "runtime"

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8091".
	Addr string `koanf:"addr"`

	// DatabasePath is the sqlite match log location.
	DatabasePath string `koanf:"database_path"`

	// ModelPath is the persisted model snapshot location.
	ModelPath string `koanf:"model_path"`

	// QueueSize bounds the in-memory match-event queue.
	QueueSize int `koanf:"queue_size"`

	// WorkerCount sets the number of append workers.
	WorkerCount int `koanf:"worker_count"`

	// DedupeSize sets the size of the idempotency cache.
	DedupeSize int `koanf:"dedupe_size"`

	// RedisAddr enables the prediction cache when non-empty, e.g. "localhost:6379".
	RedisAddr string `koanf:"redis_addr"`

	// PredictionCacheTTLSeconds bounds the lifetime of cached predictions.
	PredictionCacheTTLSeconds int `koanf:"prediction_cache_ttl_seconds"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:                  "info",
		Addr:                      ":8091",
		DatabasePath:              "data/matches.db",
		ModelPath:                 "data/model.json",
		QueueSize:                 10_000,
		WorkerCount:               runtime.NumCPU() * 2,
		DedupeSize:                50_000,
		RedisAddr:                 "",
		PredictionCacheTTLSeconds: 600,
	}
}
