package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	Port string
	Env  string

	// Platform account. One account; multi-tenant operation is out of scope.
	PlatformURL     string
	AccountEmail    string
	AccountPassword string
	AccountSecret   string // 32 hex chars (16-byte AES key)
	ClientToken     string

	// Token issuance. When HashServiceURL is empty the monitor issues
	// tokens in-process instead of calling hashd.
	HashServiceURL string

	// Alert delivery.
	TelegramBotToken string
	TelegramChatID   int64

	// Polling cadence.
	PollInterval    time.Duration // full fetch cycle
	RecheckInterval time.Duration // staleness-only re-grade
}

// Load reads configuration from environment variables.
// In development, it loads from .env file if present.
// In production, it panics on missing required variables.
func Load() *Config {
	// Load .env file if it exists (for development)
	_ = godotenv.Load()

	cfg := &Config{
		Port:             getEnv("PORT", "8080"),
		Env:              getEnv("ENV", "development"),
		PlatformURL:      getEnv("PLATFORM_URL", "https://fancentro.com/external"),
		AccountEmail:     os.Getenv("ACCOUNT_EMAIL"),
		AccountPassword:  os.Getenv("ACCOUNT_PASSWORD"),
		AccountSecret:    os.Getenv("ACCOUNT_SECRET"),
		ClientToken:      os.Getenv("CLIENT_TOKEN"),
		HashServiceURL:   os.Getenv("HASH_SERVICE_URL"),
		TelegramBotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramChatID:   getInt64("TELEGRAM_CHAT_ID", 0),
		PollInterval:     getDuration("POLL_INTERVAL", 10*time.Minute),
		RecheckInterval:  getDuration("RECHECK_INTERVAL", time.Minute),
	}

	// In production, require the platform account to be fully configured
	if cfg.Env == "production" {
		for key, val := range map[string]string{
			"ACCOUNT_EMAIL":    cfg.AccountEmail,
			"ACCOUNT_PASSWORD": cfg.AccountPassword,
			"ACCOUNT_SECRET":   cfg.AccountSecret,
			"CLIENT_TOKEN":     cfg.ClientToken,
		} {
			if val == "" {
				panic(key + " is required in production")
			}
		}
	}

	return cfg
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt64(key string, defaultValue int64) int64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return defaultValue
	}
	return n
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return d
}
