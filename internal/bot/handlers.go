package bot

import (
	"context"
	"errors"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Kalyan-5460/Bujji-Weather/internal/alias"
	"github.com/Kalyan-5460/Bujji-Weather/internal/feedback"
	"github.com/Kalyan-5460/Bujji-Weather/internal/format"
	"github.com/Kalyan-5460/Bujji-Weather/internal/metrics"
	"github.com/Kalyan-5460/Bujji-Weather/internal/model"
	"github.com/Kalyan-5460/Bujji-Weather/internal/weather"
)

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	cmd := msg.Command()
	chatID := msg.Chat.ID

	b.log.Debug("command", "cmd", cmd, "chat_id", chatID)

	switch cmd {
	case "start":
		b.handleStart(msg)
	case "help":
		b.handleHelp(chatID)
	case "about":
		b.handleAbout(chatID)
	case "feedback":
		b.handleFeedbackPrompt(msg)
	default:
		b.reply(chatID, "Unknown command. Use /help for a list of commands.")
	}
}

func (b *Bot) handleStart(msg *tgbotapi.Message) {
	name := msg.From.FirstName
	if name == "" {
		name = "there"
	}
	markup := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButtonLocation("Send My Location"),
		),
	)
	b.replyWithMarkup(msg.Chat.ID,
		fmt.Sprintf("Hi %s! Send me a city name or your location to get the weather update.", name),
		markup)
}

func (b *Bot) handleHelp(chatID int64) {
	b.reply(chatID, `Send me a city name (or a nearby area like "gachibowli") and I'll reply with the current weather, plus buttons for AQI and a 24-hour forecast.

You can also share your location for coordinate-accurate weather.

Commands:
/start — greeting and the location keyboard
/about — what this bot is
/feedback — send a note to the operator
/help — this message`)
}

func (b *Bot) handleAbout(chatID int64) {
	b.reply(chatID, "Bujji Weather Bot: city or location in, weather, air quality, and a 24-hour forecast out. Data by OpenWeather.")
}

func (b *Bot) handleFeedbackPrompt(msg *tgbotapi.Message) {
	b.sessions.AwaitFeedback(msg.From.ID)
	b.reply(msg.Chat.ID, "Tell me what you think! Your next message goes straight to the operator.")
}

// handleText serves free text: a pending feedback session consumes it,
// otherwise it is a city lookup.
func (b *Bot) handleText(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	if b.sessions.Consume(msg.From.ID) {
		b.handleFeedbackText(ctx, msg)
		return
	}

	if !validCityName(msg.Text) {
		b.reply(chatID, format.ValidationErrorReply())
		return
	}

	city, wasAliased := alias.Resolve(msg.Text)
	metrics.QueriesTotal.WithLabelValues("weather").Inc()

	snapshot, err := b.weather.CurrentWeather(ctx, model.ByCity(city))
	if err != nil {
		if !errors.Is(err, weather.ErrNotFound) {
			b.log.Error("current weather", "city", city, "error", err)
		}
		b.reply(chatID, format.NotFoundReply(msg.Text))
		return
	}

	b.logQuery(ctx, chatID, snapshot.City, "weather_city")

	markup := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Get AQI", EncodeToken(ActionAqi, snapshot.City)),
			tgbotapi.NewInlineKeyboardButtonData("Next 24hrs Forecast", EncodeToken(ActionForecast, snapshot.City)),
		),
	)
	b.replyWithMarkup(chatID, format.WeatherReply(snapshot, wasAliased, msg.Text), markup)
}

// handleLocation serves a shared GPS coordinate. Follow-up buttons carry the
// coordinate pair so callbacks skip geocoding entirely.
func (b *Bot) handleLocation(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	lat := msg.Location.Latitude
	lon := msg.Location.Longitude

	metrics.QueriesTotal.WithLabelValues("weather").Inc()

	snapshot, err := b.weather.CurrentWeather(ctx, model.ByCoords(lat, lon))
	if err != nil {
		b.reply(chatID, format.LocationNotFoundReply())
		return
	}

	b.logQuery(ctx, chatID, snapshot.City, "weather_loc")

	target := EncodeCoords(lat, lon)
	markup := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Get AQI", EncodeToken(ActionAqiLoc, target)),
			tgbotapi.NewInlineKeyboardButtonData("Next 24hrs Forecast", EncodeToken(ActionForecastLoc, target)),
		),
	)
	b.replyWithMarkup(chatID, format.WeatherReply(snapshot, false, ""), markup)
}

func (b *Bot) handleFeedbackText(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	ref, err := b.relay.Submit(ctx, msg.From.ID, msg.From.UserName, msg.Text)
	if err != nil {
		if errors.Is(err, feedback.ErrDeliveryFailed) {
			b.reply(chatID, "Couldn't deliver your feedback right now, but it's saved. Sorry!")
			return
		}
		b.log.Error("submit feedback", "user_id", msg.From.ID, "error", err)
		b.reply(chatID, "Something went wrong handling your feedback.")
		return
	}

	b.reply(chatID, fmt.Sprintf("Thanks for the feedback! Reference: %s", ref))
}

func (b *Bot) logQuery(ctx context.Context, chatID int64, city, kind string) {
	rec := &model.QueryRecord{ChatID: chatID, City: city, Kind: kind}
	if err := b.store.LogQuery(ctx, rec); err != nil {
		b.log.Warn("log query", "city", city, "error", err)
	}
}
