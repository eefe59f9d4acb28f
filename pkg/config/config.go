package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port            string
	Env             string
	DatabaseURL     string
	MediaDir        string
	IndexCacheTTL   time.Duration
	SessionLifetime time.Duration
}

func Load() *Config {
	return &Config{
		Port:            getEnv("PORT", "8080"),
		Env:             getEnv("ENV", "development"),
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		MediaDir:        getEnv("MEDIA_DIR", "./media"),
		IndexCacheTTL:   time.Duration(getEnvInt("INDEX_CACHE_TTL_SECONDS", 20)) * time.Second,
		SessionLifetime: time.Duration(getEnvInt("SESSION_LIFETIME_HOURS", 72)) * time.Hour,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
