package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/Kalyan-5460/Bujji-Weather/internal/bot"
	"github.com/Kalyan-5460/Bujji-Weather/internal/cache"
	"github.com/Kalyan-5460/Bujji-Weather/internal/config"
	"github.com/Kalyan-5460/Bujji-Weather/internal/feedback"
	"github.com/Kalyan-5460/Bujji-Weather/internal/ops"
	"github.com/Kalyan-5460/Bujji-Weather/internal/scheduler"
	"github.com/Kalyan-5460/Bujji-Weather/internal/storage"
	"github.com/Kalyan-5460/Bujji-Weather/internal/weather"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	log := newLogger(cfg.LogLevel)

	if dir := filepath.Dir(cfg.DatabasePath); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			log.Error("create data directory", "path", dir, "error", err)
			os.Exit(1)
		}
	}

	store, err := storage.NewSQLite(cfg.DatabasePath)
	if err != nil {
		log.Error("open database", "path", cfg.DatabasePath, "error", err)
		os.Exit(1)
	}
	defer func() { _ = store.Close() }()

	var wxCache cache.Cache
	var pinger ops.Pinger
	switch cfg.CacheBackend {
	case "memcached":
		mc := cache.NewMemcached(cfg.MemcachedAddrs, 2*time.Second)
		defer func() { _ = mc.Close() }()
		wxCache = mc
		pinger = mc
	default:
		wxCache = cache.NewMemory()
	}

	httpc := &http.Client{Timeout: 8 * time.Second}
	wc := weather.New(cfg.WeatherAPIKey, cfg.WeatherBaseURL, httpc, wxCache, log)

	var mailer feedback.Mailer
	if m := feedback.NewSMTPMailer(cfg); m != nil {
		mailer = m
	} else {
		log.Warn("feedback mail disabled: incomplete SMTP configuration")
	}
	relay := feedback.New(mailer, store, log)

	b, err := bot.New(cfg.TelegramBotToken, cfg, wc, relay, store, log)
	if err != nil {
		log.Error("create bot", "error", err)
		os.Exit(1)
	}

	warmer := scheduler.New(store, wc, log, cfg.WarmInterval, cfg.WarmTopN)
	opsSrv := ops.New(cfg.OpsAddr, pinger, log)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	log.Info("starting bot")

	go warmer.Run(ctx)
	go opsSrv.Run(ctx)

	b.Run(ctx)

	log.Info("bot stopped")
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
