// Package config provides environment-driven configuration for the graph loader.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/persistorai/graphloader/internal/graphstore"
)

// Secret wraps a sensitive string to prevent accidental logging or marshalling.
type Secret string

// String implements fmt.Stringer, returning a redacted placeholder.
func (s Secret) String() string { return "[REDACTED]" }

// GoString implements fmt.GoStringer, returning a redacted placeholder.
func (s Secret) GoString() string { return "[REDACTED]" }

// MarshalText implements encoding.TextMarshaler, returning a redacted placeholder.
func (s Secret) MarshalText() ([]byte, error) { return []byte("[REDACTED]"), nil }

// Value returns the underlying secret string.
func (s Secret) Value() string { return string(s) }

// Config holds all loader configuration values.
type Config struct {
	Addresses   []string
	User        string
	Password    Secret
	PoolSize    int
	Timeout     time.Duration
	BatchSize   int
	LogLevel    string
	MetricsAddr string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	cfg := &Config{
		User:        envOrDefault("GRAPH_USER", "root"),
		Password:    Secret(envOrDefault("GRAPH_PASSWORD", "nebula")),
		LogLevel:    envOrDefault("LOG_LEVEL", "info"),
		MetricsAddr: envOrDefault("METRICS_ADDR", ""),
	}

	poolSize, err := strconv.Atoi(envOrDefault("GRAPH_POOL_SIZE", "25"))
	if err != nil || poolSize < 1 || poolSize > 1024 {
		return nil, fmt.Errorf("GRAPH_POOL_SIZE must be an integer between 1 and 1024")
	}
	cfg.PoolSize = poolSize

	batchSize, err := strconv.Atoi(envOrDefault("GATHER_BATCH_SIZE", "512"))
	if err != nil || batchSize < 1 || batchSize > 65536 {
		return nil, fmt.Errorf("GATHER_BATCH_SIZE must be an integer between 1 and 65536")
	}
	cfg.BatchSize = batchSize

	timeout, err := time.ParseDuration(envOrDefault("GRAPH_TIMEOUT", "0s"))
	if err != nil {
		return nil, fmt.Errorf("GRAPH_TIMEOUT must be a duration (e.g. 30s): %w", err)
	}
	cfg.Timeout = timeout

	cfg.Addresses = SplitList(envOrDefault("GRAPH_ADDRESSES", "127.0.0.1:9669"))

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

// GraphStore returns the pool settings for graphstore.NewPool.
func (c *Config) GraphStore() graphstore.Config {
	return graphstore.Config{
		Addresses: c.Addresses,
		User:      c.User,
		Password:  c.Password.Value(),
		PoolSize:  c.PoolSize,
		Timeout:   c.Timeout,
	}
}

// NewLogger returns a logrus logger at the configured level.
func (c *Config) NewLogger() *logrus.Logger {
	log := logrus.New()

	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	return log
}

// SplitList splits a comma-separated list, trimming blanks and dropping empties.
func SplitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))

	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}

	return out
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}
