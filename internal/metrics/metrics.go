// Package metrics exposes Prometheus instrumentation for the bot.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var registry *prometheus.Registry

var (
	// Weather lookups by kind (weather, aqi, forecast). Watch for traffic volume.
	QueriesTotal *prometheus.CounterVec

	// Upstream OpenWeather calls by endpoint and outcome. Watch error vs success ratio.
	UpstreamCallsTotal *prometheus.CounterVec

	// Upstream latency by endpoint.
	UpstreamDuration *prometheus.HistogramVec

	// Cache hits and misses by endpoint kind.
	CacheLookupsTotal *prometheus.CounterVec

	// Telegram send failures. Watch for transport trouble.
	SendFailuresTotal prometheus.Counter

	// Messages dropped by the per-chat rate limiter.
	RateLimitDeniedTotal prometheus.Counter

	// Feedback submissions by outcome (delivered, failed).
	FeedbackTotal *prometheus.CounterVec
)

func init() {
	registry = prometheus.NewRegistry()

	registry.MustRegister(
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)

	QueriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bujji_queries_total",
			Help: "Total weather lookups by kind",
		},
		[]string{"kind"},
	)
	UpstreamCallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bujji_upstream_calls_total",
			Help: "Total OpenWeather API calls",
		},
		[]string{"endpoint", "status"},
	)
	UpstreamDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bujji_upstream_duration_seconds",
			Help:    "OpenWeather API latency in seconds",
			Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"endpoint"},
	)
	CacheLookupsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bujji_cache_lookups_total",
			Help: "Cache lookups by endpoint kind and result (hit/miss)",
		},
		[]string{"kind", "result"},
	)
	SendFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "bujji_send_failures_total",
			Help: "Total Telegram send failures",
		},
	)
	RateLimitDeniedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "bujji_rate_limit_denied_total",
			Help: "Total messages rejected by the per-chat rate limiter",
		},
	)
	FeedbackTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bujji_feedback_total",
			Help: "Feedback submissions by delivery outcome",
		},
		[]string{"outcome"},
	)

	registry.MustRegister(
		QueriesTotal, UpstreamCallsTotal, UpstreamDuration,
		CacheLookupsTotal, SendFailuresTotal, RateLimitDeniedTotal,
		FeedbackTotal,
	)
}

// Handler returns the HTTP handler serving the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}
