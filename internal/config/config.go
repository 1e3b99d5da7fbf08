package config

import (
	"os"
	"time"
)

// Config holds application configuration loaded from the environment.
type Config struct {
	HTTPAddr        string
	MySQLDSN        string
	RedisAddr       string
	ProductCacheTTL time.Duration
}

// LoadFromEnv loads configuration from environment variables with defaults
// for development.
func LoadFromEnv() *Config {
	return &Config{
		HTTPAddr:        getEnv("HTTP_ADDR", ":8080"),
		MySQLDSN:        getEnv("MYSQL_DSN", "root:root@tcp(localhost:3306)/storefront?parseTime=true"),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		ProductCacheTTL: getDurationEnv("PRODUCT_CACHE_TTL", 30*time.Second),
	}
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getDurationEnv(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
