// Package config provides environment variable helpers and the engine's
// runtime configuration. All knobs use the GENEPOOL_ prefix.
package config

import (
	"os"
	"strconv"
	"time"
)

func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func GetEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if result, err := strconv.Atoi(value); err == nil {
			return result
		}
	}
	return defaultValue
}

func GetEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if result, err := strconv.ParseInt(value, 10, 64); err == nil {
			return result
		}
	}
	return defaultValue
}

func GetEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func GetEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

type ServerConfig struct {
	Host string
	Port int
}

type DatabaseConfig struct {
	Path               string
	CheckpointInterval time.Duration
}

type EvolutionConfig struct {
	// SelectorSeed fixes gene selection for reproducible runs; zero means
	// seed from the clock.
	SelectorSeed    int64
	QueueSize       int
	PromptCacheSize int
}

type OtelConfig struct {
	ExportSpans bool
	Environment string
}

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Evolution EvolutionConfig
	Otel      OtelConfig
}

// Load reads configuration from the environment. The server binds loopback
// by default: the engine serves one device, not a network.
func Load() Config {
	return Config{
		Server: ServerConfig{
			Host: GetEnv("GENEPOOL_HOST", "127.0.0.1"),
			Port: GetEnvInt("GENEPOOL_PORT", 8710),
		},
		Database: DatabaseConfig{
			Path:               GetEnv("GENEPOOL_DB_PATH", "genepool.db"),
			CheckpointInterval: GetEnvDuration("GENEPOOL_CHECKPOINT_INTERVAL", 30*time.Second),
		},
		Evolution: EvolutionConfig{
			SelectorSeed:    GetEnvInt64("GENEPOOL_SELECTOR_SEED", 0),
			QueueSize:       GetEnvInt("GENEPOOL_FEEDBACK_QUEUE_SIZE", 64),
			PromptCacheSize: GetEnvInt("GENEPOOL_PROMPT_CACHE_SIZE", 256),
		},
		Otel: OtelConfig{
			ExportSpans: GetEnvBool("GENEPOOL_EXPORT_SPANS", false),
			Environment: GetEnv("GENEPOOL_ENVIRONMENT", "production"),
		},
	}
}
