// Package ratelimit provides per-client rate limiting for the generative
// endpoints using a token bucket per client.
package ratelimit

import (
	"os"
	"strconv"
	"sync"
	"time"
)

// Config holds rate limiting configuration.
type Config struct {
	Enabled bool
	Limit   int           // Requests allowed per window (bucket capacity)
	Window  time.Duration // Refill window
}

// LoadConfig reads rate limit settings from the environment.
// RATE_LIMIT_ENABLED defaults to true; RATE_LIMIT_REQUESTS to 10 per minute.
func LoadConfig() *Config {
	cfg := &Config{Enabled: true, Limit: 10, Window: time.Minute}
	if v := os.Getenv("RATE_LIMIT_ENABLED"); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			cfg.Enabled = enabled
		}
	}
	if v := os.Getenv("RATE_LIMIT_REQUESTS"); v != "" {
		if limit, err := strconv.Atoi(v); err == nil && limit > 0 {
			cfg.Limit = limit
		}
	}
	if v := os.Getenv("RATE_LIMIT_WINDOW_SECONDS"); v != "" {
		if seconds, err := strconv.Atoi(v); err == nil && seconds > 0 {
			cfg.Window = time.Duration(seconds) * time.Second
		}
	}
	return cfg
}

// bucket tracks tokens for one client.
type bucket struct {
	tokens     float64
	lastRefill time.Time
}

// Limiter manages token buckets keyed by client identifier.
type Limiter struct {
	mu         sync.Mutex
	buckets    map[string]*bucket
	capacity   float64
	refillRate float64 // tokens per second
	enabled    bool
	now        func() time.Time // overridable for tests
}

// NewLimiter creates a limiter from config.
func NewLimiter(cfg *Config) *Limiter {
	if cfg == nil {
		cfg = &Config{Enabled: true, Limit: 10, Window: time.Minute}
	}
	return &Limiter{
		buckets:    make(map[string]*bucket),
		capacity:   float64(cfg.Limit),
		refillRate: float64(cfg.Limit) / cfg.Window.Seconds(),
		enabled:    cfg.Enabled,
		now:        time.Now,
	}
}

// Allow reports whether the client may make a request now, consuming one
// token if so.
func (l *Limiter) Allow(clientID string) bool {
	if !l.enabled {
		return true
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[clientID]
	now := l.now()
	if !ok {
		b = &bucket{tokens: l.capacity, lastRefill: now}
		l.buckets[clientID] = b
	}

	elapsed := now.Sub(b.lastRefill).Seconds()
	b.tokens = min(l.capacity, b.tokens+elapsed*l.refillRate)
	b.lastRefill = now

	if b.tokens >= 1.0 {
		b.tokens -= 1.0
		return true
	}
	return false
}

func min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
