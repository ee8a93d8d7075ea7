// Package config handles application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	TelegramBotToken string
	WeatherAPIKey    string
	WeatherBaseURL   string
	DatabasePath     string
	LogLevel         string
	AllowedUsers     []int64

	CacheBackend   string // "memory" or "memcached"
	MemcachedAddrs string

	OpsAddr      string
	WarmInterval time.Duration
	WarmTopN     int

	RateLimitPerMinute int

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	FeedbackFrom string
	FeedbackTo   string
}

// Load reads configuration from the environment. A .env file in the working
// directory is merged in first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN is required")
	}

	apiKey := os.Getenv("OPENWEATHER_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("OPENWEATHER_API_KEY is required")
	}

	cfg := &Config{
		TelegramBotToken:   token,
		WeatherAPIKey:      apiKey,
		WeatherBaseURL:     envOrDefault("OPENWEATHER_BASE_URL", "https://api.openweathermap.org"),
		DatabasePath:       envOrDefault("DATABASE_PATH", "./data/bot.db"),
		LogLevel:           envOrDefault("LOG_LEVEL", "info"),
		CacheBackend:       envOrDefault("CACHE_BACKEND", "memory"),
		MemcachedAddrs:     envOrDefault("MEMCACHED_ADDRS", "localhost:11211"),
		OpsAddr:            envOrDefault("OPS_ADDR", ":9090"),
		SMTPHost:           os.Getenv("FEEDBACK_SMTP_HOST"),
		SMTPUser:           os.Getenv("FEEDBACK_SMTP_USER"),
		SMTPPassword:       os.Getenv("FEEDBACK_SMTP_PASSWORD"),
		FeedbackFrom:       os.Getenv("FEEDBACK_FROM"),
		FeedbackTo:         os.Getenv("FEEDBACK_TO"),
		WarmTopN:           5,
		RateLimitPerMinute: 20,
	}

	switch cfg.CacheBackend {
	case "memory", "memcached":
	default:
		return nil, fmt.Errorf("invalid CACHE_BACKEND %q, use: memory, memcached", cfg.CacheBackend)
	}

	port, err := envIntOrDefault("FEEDBACK_SMTP_PORT", 587)
	if err != nil {
		return nil, err
	}
	cfg.SMTPPort = port

	warmMins, err := envIntOrDefault("WARM_INTERVAL_MINUTES", 10)
	if err != nil {
		return nil, err
	}
	if warmMins < 1 || warmMins > 1440 {
		return nil, fmt.Errorf("WARM_INTERVAL_MINUTES must be between 1 and 1440")
	}
	cfg.WarmInterval = time.Duration(warmMins) * time.Minute

	rpm, err := envIntOrDefault("RATE_LIMIT_PER_MINUTE", 20)
	if err != nil {
		return nil, err
	}
	cfg.RateLimitPerMinute = rpm

	if raw := os.Getenv("ALLOWED_USERS"); raw != "" {
		for _, s := range strings.Split(raw, ",") {
			s = strings.TrimSpace(s)
			if s == "" {
				continue
			}
			uid, err := strconv.ParseInt(s, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid user ID %q in ALLOWED_USERS: %w", s, err)
			}
			cfg.AllowedUsers = append(cfg.AllowedUsers, uid)
		}
	}

	return cfg, nil
}

// MailEnabled reports whether the feedback relay has a complete SMTP setup.
func (c *Config) MailEnabled() bool {
	return c.SMTPHost != "" && c.FeedbackFrom != "" && c.FeedbackTo != ""
}

// IsUserAllowed checks whether a user ID is in the allow list.
// Returns true if the allow list is empty (all users permitted).
func (c *Config) IsUserAllowed(userID int64) bool {
	if len(c.AllowedUsers) == 0 {
		return true
	}
	for _, id := range c.AllowedUsers {
		if id == userID {
			return true
		}
	}
	return false
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOrDefault(key string, def int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return v, nil
}
