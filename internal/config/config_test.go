package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("TELEGRAM_BOT_TOKEN", "tg-token")
	t.Setenv("OPENWEATHER_API_KEY", "ow-key")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	want := &Config{
		TelegramBotToken:   "tg-token",
		WeatherAPIKey:      "ow-key",
		WeatherBaseURL:     "https://api.openweathermap.org",
		DatabasePath:       "./data/bot.db",
		LogLevel:           "info",
		CacheBackend:       "memory",
		MemcachedAddrs:     "localhost:11211",
		OpsAddr:            ":9090",
		SMTPPort:           587,
		WarmInterval:       10 * time.Minute,
		WarmTopN:           5,
		RateLimitPerMinute: 20,
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadMissingRequired(t *testing.T) {
	tests := []struct {
		name  string
		token string
		key   string
	}{
		{"missing bot token", "", "ow-key"},
		{"missing api key", "tg-token", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TELEGRAM_BOT_TOKEN", tt.token)
			t.Setenv("OPENWEATHER_API_KEY", tt.key)
			if _, err := Load(); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestLoadInvalidCacheBackend(t *testing.T) {
	setRequired(t)
	t.Setenv("CACHE_BACKEND", "redis")

	if _, err := Load(); err == nil {
		t.Error("expected error for unsupported cache backend")
	}
}

func TestLoadWarmIntervalBounds(t *testing.T) {
	tests := []struct {
		value   string
		wantErr bool
	}{
		{"1", false},
		{"1440", false},
		{"0", true},
		{"1441", true},
		{"abc", true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			setRequired(t)
			t.Setenv("WARM_INTERVAL_MINUTES", tt.value)
			_, err := Load()
			if gotErr := err != nil; gotErr != tt.wantErr {
				t.Errorf("Load() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadAllowedUsers(t *testing.T) {
	setRequired(t)
	t.Setenv("ALLOWED_USERS", "11, 22,33,")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff([]int64{11, 22, 33}, cfg.AllowedUsers); diff != "" {
		t.Errorf("allowed users mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadAllowedUsersInvalid(t *testing.T) {
	setRequired(t)
	t.Setenv("ALLOWED_USERS", "11,bogus")

	if _, err := Load(); err == nil {
		t.Error("expected error for non-numeric user ID")
	}
}

func TestIsUserAllowed(t *testing.T) {
	tests := []struct {
		name    string
		allowed []int64
		userID  int64
		want    bool
	}{
		{"empty list allows everyone", nil, 7, true},
		{"listed user", []int64{7, 8}, 7, true},
		{"unlisted user", []int64{7, 8}, 9, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{AllowedUsers: tt.allowed}
			if got := cfg.IsUserAllowed(tt.userID); got != tt.want {
				t.Errorf("IsUserAllowed(%d) = %v, want %v", tt.userID, got, tt.want)
			}
		})
	}
}

func TestMailEnabled(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want bool
	}{
		{"complete", Config{SMTPHost: "smtp.test", FeedbackFrom: "bot@test", FeedbackTo: "ops@test"}, true},
		{"no host", Config{FeedbackFrom: "bot@test", FeedbackTo: "ops@test"}, false},
		{"no recipient", Config{SMTPHost: "smtp.test", FeedbackFrom: "bot@test"}, false},
		{"empty", Config{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.MailEnabled(); got != tt.want {
				t.Errorf("MailEnabled() = %v, want %v", got, tt.want)
			}
		})
	}
}
