// Package weather talks to the OpenWeather API with per-endpoint caching.
package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sony/gobreaker"

	"github.com/Kalyan-5460/Bujji-Weather/internal/cache"
	"github.com/Kalyan-5460/Bujji-Weather/internal/metrics"
	"github.com/Kalyan-5460/Bujji-Weather/internal/model"
)

// Typed failure outcomes. Transport errors never escape the client.
var (
	// ErrNotFound means the provider does not know the requested place.
	ErrNotFound = errors.New("location not found")
	// ErrUnavailable means the data could not be fetched right now.
	ErrUnavailable = errors.New("weather data unavailable")
)

// Per-endpoint cache TTLs. Current weather churns fastest, AQI slowest.
const (
	weatherTTL  = 5 * time.Minute
	aqiTTL      = 60 * time.Minute
	forecastTTL = 30 * time.Minute
	geoTTL      = 24 * time.Hour
)

const maxBodyBytes = 1 << 20

// Client fetches current conditions, air quality, and forecasts from
// OpenWeather. Results are cached per endpoint kind; a circuit breaker
// guards the upstream.
type Client struct {
	apiKey  string
	baseURL string
	httpc   *http.Client
	cache   cache.Cache
	breaker *gobreaker.CircuitBreaker
	log     *slog.Logger
}

// New creates a Client. The http.Client should carry the request timeout.
func New(apiKey, baseURL string, httpc *http.Client, c cache.Cache, log *slog.Logger) *Client {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openweather",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		httpc:   httpc,
		cache:   c,
		breaker: breaker,
		log:     log,
	}
}

type currentPayload struct {
	Name string `json:"name"`
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity int     `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Sys struct {
		Sunrise int64 `json:"sunrise"`
		Sunset  int64 `json:"sunset"`
	} `json:"sys"`
	Coord struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"coord"`
	Timezone int `json:"timezone"`
}

type aqiPayload struct {
	List []struct {
		Main struct {
			Aqi int `json:"aqi"`
		} `json:"main"`
	} `json:"list"`
}

type forecastPayload struct {
	List []struct {
		Dt    int64  `json:"dt"`
		DtTxt string `json:"dt_txt"`
		Main  struct {
			Temp float64 `json:"temp"`
		} `json:"main"`
		Weather []struct {
			Description string `json:"description"`
		} `json:"weather"`
	} `json:"list"`
}

type geoPayload []struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// CurrentWeather returns current conditions for a city name or coordinate
// pair. Any upstream miss or malformed payload yields ErrNotFound.
func (c *Client) CurrentWeather(ctx context.Context, q model.LocationQuery) (model.WeatherSnapshot, error) {
	params := url.Values{}
	if q.HasCoords() {
		params.Set("lat", formatCoord(q.Lat))
		params.Set("lon", formatCoord(q.Lon))
	} else {
		params.Set("q", q.City)
	}
	params.Set("units", "metric")

	raw, err := c.fetch(ctx, "weather", "/data/2.5/weather", params, q.Key(), weatherTTL)
	if err != nil {
		return model.WeatherSnapshot{}, ErrNotFound
	}

	var p currentPayload
	if err := json.Unmarshal(raw, &p); err != nil || len(p.Weather) == 0 {
		return model.WeatherSnapshot{}, ErrNotFound
	}

	name := p.Name
	if name == "" {
		name = q.City
	}

	return model.WeatherSnapshot{
		City:        name,
		TempC:       p.Main.Temp,
		Condition:   p.Weather[0].Description,
		Humidity:    p.Main.Humidity,
		WindSpeed:   p.Wind.Speed,
		Sunrise:     time.Unix(p.Sys.Sunrise, 0).UTC(),
		Sunset:      time.Unix(p.Sys.Sunset, 0).UTC(),
		Lat:         p.Coord.Lat,
		Lon:         p.Coord.Lon,
		HasCoords:   p.Coord.Lat != 0 || p.Coord.Lon != 0,
		TZOffsetSec: p.Timezone,
	}, nil
}

// AirQuality returns the AQI level for a coordinate pair, clamped into 1..5.
func (c *Client) AirQuality(ctx context.Context, lat, lon float64) (model.AqiReading, error) {
	params := url.Values{}
	params.Set("lat", formatCoord(lat))
	params.Set("lon", formatCoord(lon))

	key := model.ByCoords(lat, lon).Key()
	raw, err := c.fetch(ctx, "aqi", "/data/2.5/air_pollution", params, key, aqiTTL)
	if err != nil {
		return 0, ErrUnavailable
	}

	var p aqiPayload
	if err := json.Unmarshal(raw, &p); err != nil || len(p.List) == 0 {
		return 0, ErrUnavailable
	}

	return model.AqiReading(p.List[0].Main.Aqi).Clamp(), nil
}

// AirQualityByCity geocodes a city name and looks up the AQI at the result.
// A geocoding miss is ErrUnavailable, not a crash.
func (c *Client) AirQualityByCity(ctx context.Context, city string) (model.AqiReading, error) {
	lat, lon, err := c.Geocode(ctx, city)
	if err != nil {
		return 0, ErrUnavailable
	}
	return c.AirQuality(ctx, lat, lon)
}

// Forecast returns up to 8 three-hour entries covering the next 24 hours,
// in the provider's chronological order.
func (c *Client) Forecast(ctx context.Context, q model.LocationQuery) ([]model.ForecastEntry, error) {
	params := url.Values{}
	if q.HasCoords() {
		params.Set("lat", formatCoord(q.Lat))
		params.Set("lon", formatCoord(q.Lon))
	} else {
		params.Set("q", q.City)
	}
	params.Set("units", "metric")

	raw, err := c.fetch(ctx, "forecast", "/data/2.5/forecast", params, q.Key(), forecastTTL)
	if err != nil {
		return nil, ErrUnavailable
	}

	var p forecastPayload
	if err := json.Unmarshal(raw, &p); err != nil || len(p.List) == 0 {
		return nil, ErrUnavailable
	}

	items := p.List
	if len(items) > 8 {
		items = items[:8]
	}

	entries := make([]model.ForecastEntry, 0, len(items))
	for _, it := range items {
		at := time.Unix(it.Dt, 0).UTC()
		if it.DtTxt != "" {
			if parsed, err := time.Parse("2006-01-02 15:04:05", it.DtTxt); err == nil {
				at = parsed
			}
		}
		cond := ""
		if len(it.Weather) > 0 {
			cond = it.Weather[0].Description
		}
		entries = append(entries, model.ForecastEntry{
			At:        at,
			TempC:     it.Main.Temp,
			Condition: cond,
		})
	}
	return entries, nil
}

// Geocode resolves a city name to coordinates via the provider's geocoding
// endpoint.
func (c *Client) Geocode(ctx context.Context, city string) (lat, lon float64, err error) {
	params := url.Values{}
	params.Set("q", city)
	params.Set("limit", "1")

	raw, err := c.fetch(ctx, "geo", "/geo/1.0/direct", params, city, geoTTL)
	if err != nil {
		return 0, 0, ErrUnavailable
	}

	var p geoPayload
	if err := json.Unmarshal(raw, &p); err != nil || len(p) == 0 {
		return 0, 0, ErrUnavailable
	}
	return p[0].Lat, p[0].Lon, nil
}

var errBadStatus = errors.New("unexpected status")

// fetch returns the raw payload for an endpoint, consulting the cache first.
// On a miss it issues exactly one upstream request through the breaker and,
// on success, stores the payload with the endpoint's TTL. Concurrent misses
// may each call upstream; the last write wins.
func (c *Client) fetch(ctx context.Context, kind, path string, params url.Values, queryKey string, ttl time.Duration) ([]byte, error) {
	key := kind + ":" + queryKey

	if raw, ok, err := c.cache.Get(ctx, key); err == nil && ok {
		metrics.CacheLookupsTotal.WithLabelValues(kind, "hit").Inc()
		return raw, nil
	} else if err != nil {
		c.log.Warn("cache lookup", "key", key, "error", err)
	}
	metrics.CacheLookupsTotal.WithLabelValues(kind, "miss").Inc()

	params.Set("appid", c.apiKey)
	reqURL := c.baseURL + path + "?" + params.Encode()

	start := time.Now()
	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.doRequest(ctx, reqURL)
	})
	metrics.UpstreamDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.UpstreamCallsTotal.WithLabelValues(kind, "error").Inc()
		c.log.Warn("upstream call failed", "endpoint", kind, "error", err)
		return nil, err
	}
	metrics.UpstreamCallsTotal.WithLabelValues(kind, "success").Inc()

	raw := result.([]byte)
	if err := c.cache.Set(ctx, key, raw, ttl); err != nil {
		c.log.Warn("cache store", "key", key, "error", err)
	}
	return raw, nil
}

func (c *Client) doRequest(ctx context.Context, reqURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http get: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w %d", errBadStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
