// Package scheduler keeps the weather cache warm for popular cities.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/Kalyan-5460/Bujji-Weather/internal/model"
	"github.com/Kalyan-5460/Bujji-Weather/internal/storage"
	"github.com/Kalyan-5460/Bujji-Weather/internal/weather"
)

// Warmer periodically refreshes current weather for the most queried cities
// so hot lookups are served from cache.
type Warmer struct {
	store   storage.Storage
	weather *weather.Client
	log     *slog.Logger
	tick    time.Duration
	topN    int
}

// New creates a Warmer refreshing the topN cities every tick.
func New(store storage.Storage, wc *weather.Client, log *slog.Logger, tick time.Duration, topN int) *Warmer {
	if topN < 1 {
		topN = 5
	}
	return &Warmer{
		store:   store,
		weather: wc,
		log:     log,
		tick:    tick,
		topN:    topN,
	}
}

// Run starts the warming loop, blocking until ctx is cancelled.
func (w *Warmer) Run(ctx context.Context) {
	ticker := time.NewTicker(w.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.warm(ctx)
		}
	}
}

func (w *Warmer) warm(ctx context.Context) {
	since := time.Now().Add(-24 * time.Hour)
	cities, err := w.store.TopCities(ctx, since, w.topN)
	if err != nil {
		w.log.Error("list top cities", "error", err)
		return
	}

	for _, cc := range cities {
		if ctx.Err() != nil {
			return
		}
		if _, err := w.weather.CurrentWeather(ctx, model.ByCity(cc.City)); err != nil {
			w.log.Debug("warm city", "city", cc.City, "error", err)
			continue
		}
		w.log.Debug("warmed city", "city", cc.City, "queries", cc.Count)
	}
}
