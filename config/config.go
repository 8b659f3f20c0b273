package config

import (
	"log"
	"os"
	"strconv"
	"strings"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Infrastructure
	RedisAddr     string
	RedisPassword string
	SQLitePath    string
	MetricsAddr   string

	// Watchlist (comma-separated CEDEAR tickers)
	Watchlist string

	// Batch run
	CronSpec      string
	HistoryDays   int
	RetentionDays int

	// Prediction cache TTL in minutes
	CacheTTLMinutes int
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		SQLitePath:    getEnv("SQLITE_PATH", "data/indicators.db"),
		MetricsAddr:   getEnv("METRICS_ADDR", ":9090"),

		// Default: a small liquid CEDEAR set
		Watchlist: getEnv("WATCHLIST", "AAPL,MSFT,GOOGL,KO,MELI"),

		// 18:00 local on weekdays, after the BYMA close
		CronSpec:      getEnv("CRON_SPEC", "0 18 * * 1-5"),
		HistoryDays:   getEnvInt("HISTORY_DAYS", 400),
		RetentionDays: getEnvInt("RETENTION_DAYS", 90),

		CacheTTLMinutes: getEnvInt("CACHE_TTL_MINUTES", 30),
	}
}

// ParseWatchlist splits the Watchlist string into trimmed, de-duplicated
// symbols, preserving order.
func (c *Config) ParseWatchlist() []string {
	parts := strings.Split(c.Watchlist, ",")
	seen := make(map[string]bool, len(parts))
	symbols := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ToUpper(strings.TrimSpace(p))
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		symbols = append(symbols, p)
	}
	return symbols
}

func getEnv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Printf("[config] invalid value for %s: %q, using %d", key, v, fallback)
		return fallback
	}
	return n
}
