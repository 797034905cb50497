package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	CacheDefaultTTL    time.Duration
	CacheSweepInterval time.Duration
	DatabaseURL        string
	LogLevel           string
	ShutdownTimeout    time.Duration
}

func Load() *Config {
	// Load .env file if it exists (optional)
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found or error loading it: %v", err)
	}

	return &Config{
		CacheDefaultTTL:    getDurationEnv("CACHE_DEFAULT_TTL", 60*time.Second),
		CacheSweepInterval: getDurationEnv("CACHE_SWEEP_INTERVAL", 5*time.Minute),
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		ShutdownTimeout:    getDurationEnv("SHUTDOWN_TIMEOUT", 30*time.Second),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getDurationEnv accepts a Go duration ("250ms", "2m") or a whole number of seconds
func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if intVal, err := strconv.Atoi(value); err == nil {
		return time.Duration(intVal) * time.Second
	}
	return defaultValue
}
