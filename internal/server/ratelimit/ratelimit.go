// Package ratelimit provides per-client request throttling using the token
// bucket algorithm.
package ratelimit

import (
	"sync"
	"time"
)

// bucket is a token bucket for one client+endpoint pair. Tokens refill at a
// steady rate up to the burst capacity.
type bucket struct {
	mu         sync.Mutex
	capacity   float64
	refillRate float64 // tokens per second
	tokens     float64
	lastRefill time.Time
	lastAccess time.Time
}

func newBucket(capacity int, refillRate float64) *bucket {
	now := time.Now()
	return &bucket{
		capacity:   float64(capacity),
		refillRate: refillRate,
		tokens:     float64(capacity), // start full
		lastRefill: now,
		lastAccess: now,
	}
}

// take consumes one token if available and reports the bucket state after
// the attempt. remaining and resetAt are computed under the same lock so
// they stay consistent with the allow decision.
func (b *bucket) take() (allowed bool, remaining int, resetAt time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(b.lastRefill)
	b.tokens = min(b.capacity, b.tokens+elapsed.Seconds()*b.refillRate)
	b.lastRefill = now
	b.lastAccess = now

	if b.tokens >= 1.0 {
		b.tokens -= 1.0
		allowed = true
	}

	remaining = int(b.tokens)
	if b.tokens < b.capacity {
		secondsUntilFull := (b.capacity - b.tokens) / b.refillRate
		resetAt = now.Add(time.Duration(secondsUntilFull * float64(time.Second)))
	} else {
		resetAt = now
	}

	return allowed, remaining, resetAt
}

// idleSince reports whether the bucket has been untouched since cutoff.
func (b *bucket) idleSince(cutoff time.Time) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastAccess.Before(cutoff)
}

// Info describes the rate limit state applied to one request.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	Whitelist       map[string]bool
	Blacklist       map[string]bool
	Endpoints       []EndpointConfig
}

// Limiter manages token buckets for client+endpoint pairs.
type Limiter struct {
	mu      sync.RWMutex
	buckets map[string]*bucket
	config  *Config

	cleanupTicker *time.Ticker
	cleanupStop   chan struct{}
}

// NewLimiter creates a rate limiter. A nil config enables limiting with the
// default budget.
func NewLimiter(config *Config) *Limiter {
	if config == nil {
		config = &Config{
			Enabled:         true,
			DefaultLimit:    1000,
			DefaultWindow:   time.Minute,
			CleanupInterval: 5 * time.Minute,
			Whitelist:       make(map[string]bool),
			Blacklist:       make(map[string]bool),
		}
	}

	l := &Limiter{
		buckets: make(map[string]*bucket),
		config:  config,
	}

	if config.Enabled && config.CleanupInterval > 0 {
		l.cleanupTicker = time.NewTicker(config.CleanupInterval)
		l.cleanupStop = make(chan struct{})
		go l.cleanupLoop()
	}

	return l
}

// Allow checks if a request from the given client is allowed for the
// specified endpoint. Returns the decision along with rate limit state.
func (l *Limiter) Allow(clientID, endpoint, method string) (bool, Info) {
	if !l.config.Enabled {
		return true, Info{Allowed: true}
	}

	if l.config.Whitelist[clientID] {
		return true, Info{Allowed: true}
	}
	if l.config.Blacklist[clientID] {
		return false, Info{}
	}

	endpointConfig := MatchEndpoint(endpoint, method, l.config.Endpoints)
	if endpointConfig == nil {
		endpointConfig = &EndpointConfig{
			Limit:  l.config.DefaultLimit,
			Window: l.config.DefaultWindow,
			Burst:  l.config.DefaultLimit,
		}
	}

	// Unlimited endpoint (health check)
	if endpointConfig.Limit <= 0 {
		return true, Info{Allowed: true}
	}

	key := clientID + ":" + endpoint + ":" + method
	allowed, remaining, resetAt := l.getBucket(key, endpointConfig).take()

	var retryAfter time.Duration
	if !allowed {
		retryAfter = max(time.Until(resetAt), 0)
	}

	return allowed, Info{
		Allowed:    allowed,
		Limit:      endpointConfig.Limit,
		Remaining:  remaining,
		ResetTime:  resetAt,
		RetryAfter: retryAfter,
	}
}

// getBucket returns the bucket for key, creating it on first use.
func (l *Limiter) getBucket(key string, cfg *EndpointConfig) *bucket {
	l.mu.RLock()
	b, exists := l.buckets[key]
	l.mu.RUnlock()
	if exists {
		return b
	}

	refillRate := float64(cfg.Limit) / cfg.Window.Seconds()
	capacity := cfg.Burst
	if capacity <= 0 {
		capacity = cfg.Limit
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	// Double-check after acquiring write lock
	if existing, exists := l.buckets[key]; exists {
		return existing
	}
	b = newBucket(capacity, refillRate)
	l.buckets[key] = b
	return b
}

func (l *Limiter) cleanupLoop() {
	for {
		select {
		case <-l.cleanupTicker.C:
			l.evictIdle(time.Now().Add(-time.Hour))
		case <-l.cleanupStop:
			return
		}
	}
}

// evictIdle drops buckets untouched since cutoff to cap memory use.
func (l *Limiter) evictIdle(cutoff time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for key, b := range l.buckets {
		if b.idleSince(cutoff) {
			delete(l.buckets, key)
		}
	}
}

// Stop stops the cleanup goroutine.
func (l *Limiter) Stop() {
	if l.cleanupTicker != nil {
		l.cleanupTicker.Stop()
	}
	if l.cleanupStop != nil {
		close(l.cleanupStop)
	}
}
