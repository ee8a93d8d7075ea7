package bot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Kalyan-5460/Bujji-Weather/internal/format"
	"github.com/Kalyan-5460/Bujji-Weather/internal/metrics"
	"github.com/Kalyan-5460/Bujji-Weather/internal/model"
)

// handleCallback serves inline-button presses. The press is acknowledged
// first; a garbled or unknown token is swallowed after that, never fatal.
// Replies go out as new messages, not edits.
func (b *Bot) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	ack := tgbotapi.NewCallback(cb.ID, "")
	if _, err := b.api.Send(ack); err != nil {
		b.log.Error("send callback ack", "error", err)
	}

	if cb.Message == nil {
		return
	}
	chatID := cb.Message.Chat.ID

	action, target, ok := DecodeToken(cb.Data)
	if !ok {
		b.log.Debug("unrecognized callback payload", "data", cb.Data, "chat_id", chatID)
		return
	}

	b.log.Info("callback",
		"action", action,
		"target", target,
		"chat_id", chatID,
		"user_id", cb.From.ID,
	)

	switch action {
	case ActionAqi:
		metrics.QueriesTotal.WithLabelValues("aqi").Inc()
		reading, err := b.weather.AirQualityByCity(ctx, target)
		if err != nil {
			b.reply(chatID, format.UnavailableReply("AQI"))
			return
		}
		b.reply(chatID, format.AqiReply(reading, target))

	case ActionForecast:
		metrics.QueriesTotal.WithLabelValues("forecast").Inc()
		entries, err := b.weather.Forecast(ctx, model.ByCity(target))
		if err != nil {
			b.reply(chatID, format.UnavailableReply("forecast"))
			return
		}
		b.reply(chatID, format.ForecastReply(entries, target))

	case ActionAqiLoc:
		lat, lon, err := ParseCoords(target)
		if err != nil {
			return
		}
		metrics.QueriesTotal.WithLabelValues("aqi").Inc()
		reading, err := b.weather.AirQuality(ctx, lat, lon)
		if err != nil {
			b.reply(chatID, format.UnavailableReply("AQI"))
			return
		}
		b.reply(chatID, format.AqiReply(reading, "your location"))

	case ActionForecastLoc:
		lat, lon, err := ParseCoords(target)
		if err != nil {
			return
		}
		metrics.QueriesTotal.WithLabelValues("forecast").Inc()
		entries, err := b.weather.Forecast(ctx, model.ByCoords(lat, lon))
		if err != nil {
			b.reply(chatID, format.UnavailableReply("forecast"))
			return
		}
		b.reply(chatID, format.ForecastReply(entries, "your location"))
	}
}
