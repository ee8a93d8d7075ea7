package bot

import (
	"context"
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Kalyan-5460/Bujji-Weather/internal/config"
	"github.com/Kalyan-5460/Bujji-Weather/internal/feedback"
	"github.com/Kalyan-5460/Bujji-Weather/internal/metrics"
	"github.com/Kalyan-5460/Bujji-Weather/internal/ratelimit"
	"github.com/Kalyan-5460/Bujji-Weather/internal/session"
	"github.com/Kalyan-5460/Bujji-Weather/internal/storage"
	"github.com/Kalyan-5460/Bujji-Weather/internal/weather"
)

type telegramAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// Bot is the Telegram bot that answers weather lookups and relays feedback.
type Bot struct {
	api      telegramAPI
	cfg      *config.Config
	weather  *weather.Client
	relay    *feedback.Relay
	sessions *session.Table
	store    storage.Storage
	limiter  *ratelimit.PerChat
	log      *slog.Logger
}

// New creates a Bot with the given Telegram token and collaborators.
func New(token string, cfg *config.Config, wc *weather.Client, relay *feedback.Relay, store storage.Storage, log *slog.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create bot api: %w", err)
	}

	return &Bot{
		api:      api,
		cfg:      cfg,
		weather:  wc,
		relay:    relay,
		sessions: session.NewTable(),
		store:    store,
		limiter:  ratelimit.New(cfg.RateLimitPerMinute),
		log:      log,
	}, nil
}

// Run starts the bot's long-polling loop, blocking until ctx is cancelled.
// Each update is dispatched to exactly one handler.
func (b *Bot) Run(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return
		case update := <-updates:
			b.dispatch(ctx, update)
		}
	}
}

// dispatch classifies one inbound update and routes it to its handler.
func (b *Bot) dispatch(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		cb := update.CallbackQuery
		if !b.cfg.IsUserAllowed(cb.From.ID) {
			return
		}
		b.handleCallback(ctx, cb)
		return
	}

	msg := update.Message
	if msg == nil || msg.From == nil {
		return
	}
	chatID := msg.Chat.ID

	if !b.cfg.IsUserAllowed(msg.From.ID) {
		b.reply(chatID, "Access denied.")
		return
	}
	if !b.limiter.Allow(chatID) {
		metrics.RateLimitDeniedTotal.Inc()
		b.log.Debug("rate limited", "chat_id", chatID)
		return
	}

	switch {
	case msg.IsCommand():
		b.handleCommand(ctx, msg)
	case msg.Location != nil:
		b.handleLocation(ctx, msg)
	case msg.Text != "":
		b.handleText(ctx, msg)
	}
}

// SendMessage sends a text message to the given chat.
func (b *Bot) SendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		metrics.SendFailuresTotal.Inc()
		b.log.Error("send message", "chat_id", chatID, "error", err)
	}
}

func (b *Bot) reply(chatID int64, text string) {
	b.SendMessage(chatID, text)
}

func (b *Bot) replyWithMarkup(chatID int64, text string, markup interface{}) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = markup
	if _, err := b.api.Send(msg); err != nil {
		metrics.SendFailuresTotal.Inc()
		b.log.Error("send message", "chat_id", chatID, "error", err)
	}
}
