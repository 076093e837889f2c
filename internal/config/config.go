package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	// API server settings
	APIAddr string
	APIKey  string
	DevMode bool

	// Redis settings
	RedisAddr string

	// ClickHouse settings
	ClickHouseAddr     string
	ClickHouseDatabase string
	ClickHouseUsername string
	ClickHousePassword string

	// OpenRouter / LLM settings
	OpenRouterAPIKey string
	Model            string

	// Request timeouts
	QueryTimeout time.Duration
	ParseTimeout time.Duration
}

func Load() *Config {
	return &Config{
		// API
		APIAddr: getEnv("API_ADDR", ":8090"),
		APIKey:  getEnv("API_KEY", ""),
		DevMode: getBoolEnv("DEV_MODE", false),

		// Redis
		RedisAddr: getEnv("REDIS_ADDR", "localhost:6379"),

		// ClickHouse
		ClickHouseAddr:     getEnv("CLICKHOUSE_ADDR", "localhost:9000"),
		ClickHouseDatabase: getEnv("CLICKHOUSE_DATABASE", "solana"),
		ClickHouseUsername: getEnv("CLICKHOUSE_USERNAME", "default"),
		ClickHousePassword: getEnv("CLICKHOUSE_PASSWORD", ""),

		// LLM
		OpenRouterAPIKey: getEnv("OPENROUTER_API_KEY", ""),
		Model:            getEnv("OPENROUTER_MODEL", "openai/gpt-4.1-mini"),

		// Timeouts
		QueryTimeout: getDurationEnv("QUERY_TIMEOUT", 30*time.Second),
		ParseTimeout: getDurationEnv("PARSE_TIMEOUT", 20*time.Second),
	}
}

func (c *Config) Validate() error {
	if c.APIAddr == "" {
		return fmt.Errorf("API_ADDR must not be empty")
	}
	if c.ClickHouseAddr == "" {
		return fmt.Errorf("CLICKHOUSE_ADDR must not be empty")
	}
	if c.RedisAddr == "" {
		return fmt.Errorf("REDIS_ADDR must not be empty")
	}
	if c.QueryTimeout <= 0 {
		return fmt.Errorf("QUERY_TIMEOUT must be positive")
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getBoolEnv(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultVal
}

func getDurationEnv(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}
