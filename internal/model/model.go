// Package model defines the domain types used across the application.
package model

import (
	"fmt"
	"time"
)

// LocationQuery identifies a place either by free-text name or by a
// coordinate pair. Exactly one representation is populated.
type LocationQuery struct {
	City string
	Lat  float64
	Lon  float64
}

// ByCity returns a LocationQuery for a place name.
func ByCity(city string) LocationQuery {
	return LocationQuery{City: city}
}

// ByCoords returns a LocationQuery for a latitude/longitude pair.
func ByCoords(lat, lon float64) LocationQuery {
	return LocationQuery{Lat: lat, Lon: lon}
}

// HasCoords reports whether the query carries an explicit coordinate pair.
func (q LocationQuery) HasCoords() bool {
	return q.City == ""
}

// Key returns the normalized cache-key fragment for the query.
func (q LocationQuery) Key() string {
	if q.HasCoords() {
		return fmt.Sprintf("%.4f,%.4f", q.Lat, q.Lon)
	}
	return q.City
}

// WeatherSnapshot holds current conditions for a resolved location.
type WeatherSnapshot struct {
	City        string
	TempC       float64
	Condition   string
	Humidity    int
	WindSpeed   float64
	Sunrise     time.Time
	Sunset      time.Time
	Lat         float64
	Lon         float64
	HasCoords   bool
	TZOffsetSec int
}

// AqiReading is an air-quality index level in the 1..5 domain.
type AqiReading int

// AQI domain bounds per the provider's scale.
const (
	AqiGood     AqiReading = 1
	AqiVeryPoor AqiReading = 5
)

// Clamp forces a raw provider value into the valid 1..5 domain.
func (a AqiReading) Clamp() AqiReading {
	if a < AqiGood {
		return AqiGood
	}
	if a > AqiVeryPoor {
		return AqiVeryPoor
	}
	return a
}

// Label returns the fixed textual label for the clamped level.
func (a AqiReading) Label() string {
	switch a.Clamp() {
	case 1:
		return "Good"
	case 2:
		return "Fair"
	case 3:
		return "Moderate"
	case 4:
		return "Poor"
	default:
		return "Very Poor"
	}
}

// ForecastEntry is one 3-hour step of the short-range forecast.
type ForecastEntry struct {
	At        time.Time
	TempC     float64
	Condition string
}

// FeedbackRecord is an archived feedback submission.
type FeedbackRecord struct {
	ID        int64
	Reference string
	UserID    int64
	Username  string
	Text      string
	Delivered bool
	CreatedAt time.Time
}

// QueryRecord is one logged weather lookup, kept for popularity stats.
type QueryRecord struct {
	ID        int64
	ChatID    int64
	City      string
	Kind      string
	CreatedAt time.Time
}

// CityCount pairs a city with how often it has been queried.
type CityCount struct {
	City  string
	Count int
}
