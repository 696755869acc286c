package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultPollInterval   = 10 * time.Second
	defaultRequestTimeout = 15 * time.Second
)

type Config struct {
	APIBaseURL     string
	TerminalID     string
	AuthToken      string
	PollInterval   time.Duration
	RequestTimeout time.Duration
	AppEnv         string
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		APIBaseURL:     os.Getenv("POS_API_BASE_URL"),
		TerminalID:     os.Getenv("POS_TERMINAL_ID"),
		AuthToken:      os.Getenv("POS_AUTH_TOKEN"),
		PollInterval:   durationEnv("POS_POLL_INTERVAL_SECONDS", defaultPollInterval),
		RequestTimeout: durationEnv("POS_REQUEST_TIMEOUT_SECONDS", defaultRequestTimeout),
		AppEnv:         os.Getenv("APP_ENV"),
	}

	if cfg.APIBaseURL == "" {
		log.Fatal("POS_API_BASE_URL is not set")
	}

	if cfg.TerminalID == "" {
		cfg.TerminalID = "terminal-1"
	}

	return cfg
}

// durationEnv reads a whole-second env var, falling back when absent or invalid.
func durationEnv(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	secs, err := strconv.Atoi(raw)
	if err != nil || secs <= 0 {
		return fallback
	}
	return time.Duration(secs) * time.Second
}
