package format

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/Kalyan-5460/Bujji-Weather/internal/model"
)

func TestTipBands(t *testing.T) {
	tests := []struct {
		temp float64
		want string
	}{
		{36, "boiling"},
		{35.1, "boiling"},
		{35, "Warm and sunny"},
		{29, "Warm and sunny"},
		{28, "Nice weather"},
		{20.5, "Nice weather"},
		{20, "chilly"},
		{10.1, "chilly"},
		{10, "Bundle up"},
		{-5, "Bundle up"},
	}

	for _, tt := range tests {
		got := Tip(tt.temp)
		if !strings.Contains(got, tt.want) {
			t.Errorf("Tip(%v) = %q, want it to contain %q", tt.temp, got, tt.want)
		}
	}
}

func sampleSnapshot() model.WeatherSnapshot {
	return model.WeatherSnapshot{
		City:        "Hyderabad",
		TempC:       31.4,
		Condition:   "scattered clouds",
		Humidity:    58,
		WindSpeed:   3.6,
		Sunrise:     time.Date(2025, 6, 14, 0, 15, 0, 0, time.UTC),
		Sunset:      time.Date(2025, 6, 14, 13, 20, 0, 0, time.UTC),
		TZOffsetSec: 19800, // IST
	}
}

func TestWeatherReply(t *testing.T) {
	t.Run("plain lookup", func(t *testing.T) {
		got := WeatherReply(sampleSnapshot(), false, "Hyderabad")
		want := "Weather in Hyderabad:\n" +
			"Temp: 31.4°C\n" +
			"Condition: scattered clouds\n" +
			"Humidity: 58%\n" +
			"Wind: 3.6 m/s\n" +
			"Sunrise: 05:45 / Sunset: 18:50\n" +
			"Warm and sunny - perfect for shades and chilled drinks."
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("reply mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("aliased input shows notice", func(t *testing.T) {
		got := WeatherReply(sampleSnapshot(), true, "gachibowli")
		if !strings.HasPrefix(got, "'gachibowli' not found. Showing weather for nearby city: Hyderabad") {
			t.Errorf("missing alias notice, got:\n%s", got)
		}
	})

	t.Run("no notice when names match", func(t *testing.T) {
		got := WeatherReply(sampleSnapshot(), true, " hyderabad ")
		if strings.Contains(got, "nearby city") {
			t.Errorf("unexpected alias notice, got:\n%s", got)
		}
	})
}

func TestAqiReply(t *testing.T) {
	tests := []struct {
		name    string
		reading model.AqiReading
		want    string
	}{
		{"good", 1, "AQI in Hyderabad: 1 - Good"},
		{"very poor", 5, "AQI in Hyderabad: 5 - Very Poor"},
		{"clamped high", 12, "AQI in Hyderabad: 5 - Very Poor"},
		{"clamped low", 0, "AQI in Hyderabad: 1 - Good"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, AqiReply(tt.reading, "Hyderabad")); diff != "" {
				t.Errorf("reply mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestForecastReply(t *testing.T) {
	entries := []model.ForecastEntry{
		{At: time.Date(2025, 6, 14, 15, 0, 0, 0, time.UTC), TempC: 33.1, Condition: "clear sky"},
		{At: time.Date(2025, 6, 14, 18, 0, 0, 0, time.UTC), TempC: 30.2, Condition: "few clouds"},
	}

	got := ForecastReply(entries, "Guntur")
	want := "Forecast for Guntur (next 24hrs):\n" +
		"\n15:00 - 33.1°C - clear sky" +
		"\n18:00 - 30.2°C - few clouds"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("reply mismatch (-want +got):\n%s", diff)
	}
}

func TestApologies(t *testing.T) {
	if got := NotFoundReply("Xyzzzz"); !strings.Contains(got, "'Xyzzzz'") {
		t.Errorf("NotFoundReply missing input echo: %q", got)
	}
	if got := UnavailableReply("AQI"); !strings.Contains(got, "AQI") {
		t.Errorf("UnavailableReply missing subject: %q", got)
	}
}
