// Package config loads process configuration from the environment, the
// same env-var-driven shape as the teacher's initConfig, but returned as a
// value instead of mutated into package globals so it can be constructed
// fresh in tests.
package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	DBPath          string
	DBDriver        string // "sqlite3" (mattn, cgo) or "sqlite" (modernc, pure Go)
	HTTPAddr        string
	LogDir          string
	TickInterval    time.Duration
	RespawnInterval time.Duration
}

func Load() Config {
	return Config{
		DBPath:          getEnv("OWNWORLD_DB_PATH", "./data/world.db"),
		DBDriver:        getEnv("OWNWORLD_DB_DRIVER", "sqlite3"),
		HTTPAddr:        getEnv("OWNWORLD_HTTP_ADDR", ":8080"),
		LogDir:          getEnv("OWNWORLD_LOG_DIR", "./logs"),
		TickInterval:    getEnvDuration("OWNWORLD_TICK_INTERVAL_MS", 1000*time.Millisecond),
		RespawnInterval: getEnvDuration("OWNWORLD_RESPAWN_INTERVAL_MS", 5000*time.Millisecond),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	ms, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return time.Duration(ms) * time.Millisecond
}
