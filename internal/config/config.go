package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURI string
	Listen      string
	Environment string
	LogLevel    string

	// Timezone is the IANA location all occurrence arithmetic runs in.
	Timezone string

	// Due-reminder engine tuning. The tick period, due tolerance and
	// re-fire cooldown are deliberately configuration, not constants.
	SchedulerTick time.Duration
	DueTolerance  time.Duration
	FireCooldown  time.Duration

	// Optional Telegram delivery channel.
	TelegramToken  string
	TelegramChatID int64

	// Optional natural-language reminder parsing.
	AIAPIKey  string
	AIBaseURL string
	AIModel   string
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// .env file is optional in production
	}

	cfg := &Config{
		DatabaseURI:   os.Getenv("DATABASE_URI"),
		Listen:        getEnvOrDefault("LISTEN", ":8080"),
		Environment:   getEnvOrDefault("ENVIRONMENT", "development"),
		LogLevel:      getEnvOrDefault("LOG_LEVEL", "info"),
		Timezone:      os.Getenv("TIMEZONE"),
		TelegramToken: os.Getenv("TELEGRAM_TOKEN"),
		AIAPIKey:      os.Getenv("AI_API_KEY"),
		AIBaseURL:     getEnvOrDefault("AI_BASE_URL", "https://openrouter.ai/api/v1"),
		AIModel:       getEnvOrDefault("AI_MODEL", "openai/gpt-4o-mini"),
	}

	var err error
	if cfg.SchedulerTick, err = getDuration("SCHEDULER_TICK", 15*time.Second); err != nil {
		return nil, err
	}
	if cfg.DueTolerance, err = getDuration("DUE_TOLERANCE", 30*time.Second); err != nil {
		return nil, err
	}
	if cfg.FireCooldown, err = getDuration("FIRE_COOLDOWN", 5*time.Minute); err != nil {
		return nil, err
	}
	if cfg.TelegramChatID, err = getInt64("TELEGRAM_CHAT_ID", 0); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Location resolves the configured timezone, falling back to the host's
// local zone when unset.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return d, nil
}

func getInt64(key string, defaultValue int64) (int64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	var n int64
	if _, err := fmt.Sscanf(value, "%d", &n); err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return n, nil
}
