// Package format composes user-facing reply texts. All functions are pure.
package format

import (
	"fmt"
	"strings"
	"time"

	"github.com/Kalyan-5460/Bujji-Weather/internal/model"
)

// Tip returns the advisory line for a temperature in Celsius. Bands are
// evaluated in descending order; boundary values fall into the lower band.
func Tip(tempC float64) string {
	switch {
	case tempC > 35:
		return "It's boiling! Stay hydrated and wear sunscreen!"
	case tempC > 28:
		return "Warm and sunny - perfect for shades and chilled drinks."
	case tempC > 20:
		return "Nice weather! Go for a walk or chill outside."
	case tempC > 10:
		return "It's getting chilly. Wear a jacket, bujji!"
	default:
		return "Brrr! Bundle up like a snowman!"
	}
}

// AliasNotice is shown when a local-area name was substituted by its city.
func AliasNotice(rawInput, city string) string {
	return fmt.Sprintf("'%s' not found. Showing weather for nearby city: %s", rawInput, city)
}

// WeatherReply renders the main weather message. The alias notice leads when
// the input was substituted and the canonical name differs from it.
func WeatherReply(s model.WeatherSnapshot, wasAliased bool, rawInput string) string {
	var b strings.Builder
	if wasAliased && !strings.EqualFold(strings.TrimSpace(rawInput), s.City) {
		b.WriteString(AliasNotice(strings.TrimSpace(rawInput), s.City))
		b.WriteString("\n\n")
	}
	fmt.Fprintf(&b, "Weather in %s:\n", s.City)
	fmt.Fprintf(&b, "Temp: %.1f°C\n", s.TempC)
	fmt.Fprintf(&b, "Condition: %s\n", s.Condition)
	fmt.Fprintf(&b, "Humidity: %d%%\n", s.Humidity)
	fmt.Fprintf(&b, "Wind: %.1f m/s\n", s.WindSpeed)
	fmt.Fprintf(&b, "Sunrise: %s / Sunset: %s\n", localClock(s.Sunrise, s.TZOffsetSec), localClock(s.Sunset, s.TZOffsetSec))
	b.WriteString(Tip(s.TempC))
	return b.String()
}

// AqiReply renders an AQI level with its fixed label.
func AqiReply(reading model.AqiReading, locationLabel string) string {
	r := reading.Clamp()
	return fmt.Sprintf("AQI in %s: %d - %s", locationLabel, int(r), r.Label())
}

// ForecastReply renders forecast entries one per line in chronological order.
func ForecastReply(entries []model.ForecastEntry, locationLabel string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Forecast for %s (next 24hrs):\n", locationLabel)
	for _, e := range entries {
		fmt.Fprintf(&b, "\n%s - %.1f°C - %s", e.At.Format("15:04"), e.TempC, e.Condition)
	}
	return b.String()
}

// NotFoundReply is the apology for an unresolvable place name.
func NotFoundReply(rawInput string) string {
	return fmt.Sprintf("Sorry Bujji! I couldn't find '%s'.\nTry sending your location for accurate weather!", rawInput)
}

// LocationNotFoundReply is the apology for a failed coordinate lookup.
func LocationNotFoundReply() string {
	return "Sorry Bujji! I couldn't fetch weather info from your location."
}

// UnavailableReply is the apology for a failed AQI or forecast follow-up.
func UnavailableReply(what string) string {
	return fmt.Sprintf("Couldn't fetch %s data right now. Please try again later.", what)
}

// ValidationErrorReply rejects a malformed city name.
func ValidationErrorReply() string {
	return "That doesn't look like a place name. Use letters, spaces, and hyphens only."
}

// localClock renders a UTC timestamp in the location's local clock time.
func localClock(t time.Time, tzOffsetSec int) string {
	return t.Add(time.Duration(tzOffsetSec) * time.Second).Format("15:04")
}
