// Package ratelimit throttles chats that flood the bot.
package ratelimit

import (
	"sync"

	"golang.org/x/time/rate"
)

// PerChat keeps one token bucket per chat. Bursts are rejected, not queued.
type PerChat struct {
	mu       sync.Mutex
	limiters map[int64]*rate.Limiter
	limit    rate.Limit
	burst    int
}

// New creates a limiter allowing perMinute events per chat with a small burst.
func New(perMinute int) *PerChat {
	if perMinute < 1 {
		perMinute = 1
	}
	return &PerChat{
		limiters: make(map[int64]*rate.Limiter),
		limit:    rate.Limit(float64(perMinute) / 60.0),
		burst:    5,
	}
}

// Allow reports whether the chat may be served right now.
func (p *PerChat) Allow(chatID int64) bool {
	p.mu.Lock()
	l, ok := p.limiters[chatID]
	if !ok {
		l = rate.NewLimiter(p.limit, p.burst)
		p.limiters[chatID] = l
	}
	p.mu.Unlock()
	return l.Allow()
}
