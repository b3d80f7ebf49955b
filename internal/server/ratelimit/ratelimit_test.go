package ratelimit

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestBucket_Take(t *testing.T) {
	b := newBucket(10, 1.0) // 10 tokens, 1 token per second

	// Should allow 10 requests immediately (burst)
	for i := 0; i < 10; i++ {
		allowed, remaining, _ := b.take()
		if !allowed {
			t.Errorf("Expected request %d to be allowed", i+1)
		}
		if remaining != 9-i {
			t.Errorf("Expected remaining %d, got %d", 9-i, remaining)
		}
	}

	// 11th request should be denied (no tokens left)
	allowed, _, resetAt := b.take()
	if allowed {
		t.Error("Expected 11th request to be denied")
	}
	if !resetAt.After(time.Now()) {
		t.Error("Reset time should be in the future")
	}
}

func TestBucket_Refill(t *testing.T) {
	b := newBucket(10, 100.0) // 100 tokens per second

	// Consume all tokens
	for i := 0; i < 10; i++ {
		b.take()
	}
	if allowed, _, _ := b.take(); allowed {
		t.Error("Expected request to be denied with empty bucket")
	}

	// 100ms at 100 tokens/s refills the bucket
	time.Sleep(100 * time.Millisecond)

	if allowed, _, _ := b.take(); !allowed {
		t.Error("Expected request to be allowed after refill")
	}
}

func TestLimiter_Allow(t *testing.T) {
	config := &Config{
		Enabled:       true,
		DefaultLimit:  10,
		DefaultWindow: time.Minute,
	}
	limiter := NewLimiter(config)
	defer limiter.Stop()

	clientID := "127.0.0.1"
	endpoint := "/test"
	method := "GET"

	// Should allow requests up to limit
	for i := 0; i < 10; i++ {
		allowed, rateInfo := limiter.Allow(clientID, endpoint, method)
		if !allowed {
			t.Errorf("Expected request %d to be allowed", i+1)
		}
		if rateInfo.Limit != 10 {
			t.Errorf("Expected limit 10, got %d", rateInfo.Limit)
		}
		if rateInfo.Remaining != 9-i {
			t.Errorf("Expected remaining %d, got %d", 9-i, rateInfo.Remaining)
		}
	}

	// 11th request should be denied
	allowed, rateInfo := limiter.Allow(clientID, endpoint, method)
	if allowed {
		t.Error("Expected 11th request to be denied")
	}
	if rateInfo.Remaining != 0 {
		t.Errorf("Expected remaining 0, got %d", rateInfo.Remaining)
	}
	if rateInfo.RetryAfter <= 0 {
		t.Error("Expected retry after to be positive")
	}
}

func TestLimiter_Whitelist(t *testing.T) {
	config := &Config{
		Enabled:       true,
		DefaultLimit:  1,
		DefaultWindow: time.Minute,
		Whitelist:     map[string]bool{"127.0.0.1": true},
	}
	limiter := NewLimiter(config)
	defer limiter.Stop()

	// Whitelisted IP should always be allowed
	for i := 0; i < 100; i++ {
		allowed, rateInfo := limiter.Allow("127.0.0.1", "/test", "GET")
		if !allowed {
			t.Errorf("Expected whitelisted request %d to be allowed", i+1)
		}
		if rateInfo.Limit != 0 {
			t.Errorf("Expected limit 0 for whitelisted, got %d", rateInfo.Limit)
		}
	}
}

func TestLimiter_Blacklist(t *testing.T) {
	config := &Config{
		Enabled:       true,
		DefaultLimit:  1000,
		DefaultWindow: time.Minute,
		Blacklist:     map[string]bool{"192.168.1.1": true},
	}
	limiter := NewLimiter(config)
	defer limiter.Stop()

	// Blacklisted IP should always be denied
	allowed, _ := limiter.Allow("192.168.1.1", "/test", "GET")
	if allowed {
		t.Error("Expected blacklisted request to be denied")
	}
}

func TestLimiter_Disabled(t *testing.T) {
	config := &Config{
		Enabled: false,
	}
	limiter := NewLimiter(config)
	defer limiter.Stop()

	// When disabled, all requests should be allowed
	for i := 0; i < 100; i++ {
		allowed, rateInfo := limiter.Allow("127.0.0.1", "/test", "GET")
		if !allowed {
			t.Errorf("Expected request %d to be allowed when disabled", i+1)
		}
		if rateInfo.Limit != 0 {
			t.Errorf("Expected limit 0 when disabled, got %d", rateInfo.Limit)
		}
	}
}

func TestLimiter_EndpointSpecific(t *testing.T) {
	config := &Config{
		Enabled:       true,
		DefaultLimit:  1000,
		DefaultWindow: time.Minute,
		Endpoints: []EndpointConfig{
			{Path: "/api/scans", Method: "POST", Limit: 5, Window: time.Hour, Burst: 5},
		},
	}
	limiter := NewLimiter(config)
	defer limiter.Stop()

	clientID := "127.0.0.1"

	// Endpoint-specific burst allows 5 immediately
	for i := 0; i < 5; i++ {
		allowed, rateInfo := limiter.Allow(clientID, "/api/scans", "POST")
		if !allowed {
			t.Errorf("Expected request %d to be allowed", i+1)
		}
		if rateInfo.Limit != 5 {
			t.Errorf("Expected limit 5, got %d", rateInfo.Limit)
		}
	}

	// 6th request should be denied (limit reached)
	allowed, rateInfo := limiter.Allow(clientID, "/api/scans", "POST")
	if allowed {
		t.Error("Expected 6th request to be denied")
	}
	if rateInfo.Limit != 5 {
		t.Errorf("Expected limit 5, got %d", rateInfo.Limit)
	}

	// Reads on the same path fall back to the default limit
	allowed, rateInfo = limiter.Allow(clientID, "/api/scans", "GET")
	if !allowed {
		t.Error("Expected GET on the same path to be allowed")
	}
	if rateInfo.Limit != 1000 {
		t.Errorf("Expected default limit 1000, got %d", rateInfo.Limit)
	}
}

func TestLimiter_Concurrent(t *testing.T) {
	config := &Config{
		Enabled:       true,
		DefaultLimit:  100,
		DefaultWindow: time.Minute,
	}
	limiter := NewLimiter(config)
	defer limiter.Stop()

	clientID := "127.0.0.1"
	endpoint := "/test"
	method := "GET"

	var wg sync.WaitGroup
	allowedCount := 0
	var mu sync.Mutex

	// Make 200 concurrent requests (should only allow 100)
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			allowed, _ := limiter.Allow(clientID, endpoint, method)
			if allowed {
				mu.Lock()
				allowedCount++
				mu.Unlock()
			}
		}()
	}

	wg.Wait()

	// Should have allowed exactly 100 requests
	if allowedCount != 100 {
		t.Errorf("Expected 100 allowed requests, got %d", allowedCount)
	}
}

func TestLimiter_EvictIdle(t *testing.T) {
	config := &Config{
		Enabled:       true,
		DefaultLimit:  1,
		DefaultWindow: time.Hour,
	}
	limiter := NewLimiter(config)
	defer limiter.Stop()

	// Exhaust the budget for several clients
	for i := 0; i < 5; i++ {
		clientID := fmt.Sprintf("127.0.0.%d", i+1)
		if allowed, _ := limiter.Allow(clientID, "/test", "GET"); !allowed {
			t.Errorf("Expected first request from %s to be allowed", clientID)
		}
		if allowed, _ := limiter.Allow(clientID, "/test", "GET"); allowed {
			t.Errorf("Expected second request from %s to be denied", clientID)
		}
	}

	// Evicting with a future cutoff drops every bucket, so the next
	// request starts from a fresh budget
	limiter.evictIdle(time.Now().Add(time.Hour))

	for i := 0; i < 5; i++ {
		clientID := fmt.Sprintf("127.0.0.%d", i+1)
		if allowed, _ := limiter.Allow(clientID, "/test", "GET"); !allowed {
			t.Errorf("Expected request from %s to be allowed after eviction", clientID)
		}
	}
}

func TestLimiter_Burst(t *testing.T) {
	config := &Config{
		Enabled:       true,
		DefaultLimit:  10,
		DefaultWindow: time.Minute,
		Endpoints: []EndpointConfig{
			{Path: "/burst", Method: "POST", Limit: 10, Window: time.Minute, Burst: 5},
		},
	}
	limiter := NewLimiter(config)
	defer limiter.Stop()

	clientID := "127.0.0.1"

	// Should allow burst of 5 requests immediately
	for i := 0; i < 5; i++ {
		allowed, _ := limiter.Allow(clientID, "/burst", "POST")
		if !allowed {
			t.Errorf("Expected burst request %d to be allowed", i+1)
		}
	}

	// 6th request should be denied (burst exhausted, no refill yet)
	allowed, _ := limiter.Allow(clientID, "/burst", "POST")
	if allowed {
		t.Error("Expected request after burst to be denied")
	}
}

func TestNewLimiter_NilConfig(t *testing.T) {
	limiter := NewLimiter(nil)
	defer limiter.Stop()

	// Should use defaults
	allowed, rateInfo := limiter.Allow("127.0.0.1", "/test", "GET")
	if !allowed {
		t.Error("Expected request to be allowed with default config")
	}
	if rateInfo.Limit != 1000 {
		t.Errorf("Expected default limit 1000, got %d", rateInfo.Limit)
	}
}

func TestMatchEndpoint(t *testing.T) {
	configs := []EndpointConfig{
		{Path: "/api/scans", Method: "POST", Limit: 20, Window: time.Hour, Burst: 5},
		{Path: "/api/scans/", Method: "DELETE", Limit: 100, Window: time.Minute, Burst: 10},
	}

	// Health check is unlimited regardless of configs
	config := MatchEndpoint("/api/health", "GET", configs)
	if config == nil || config.Limit != 0 {
		t.Error("Expected unlimited config for health check")
	}

	// Exact match
	config = MatchEndpoint("/api/scans", "POST", configs)
	if config == nil || config.Limit != 20 {
		t.Error("Expected exact match for POST /api/scans")
	}

	// Prefix match covers path parameters
	config = MatchEndpoint("/api/scans/0b26c4b5-3aaf-4a1b-8a41-22eb88baad8c", "DELETE", configs)
	if config == nil || config.Limit != 100 {
		t.Error("Expected prefix match for DELETE /api/scans/{id}")
	}

	// Method mismatch falls through
	if config := MatchEndpoint("/api/scans", "GET", configs); config != nil {
		t.Error("Expected no match for GET /api/scans")
	}

	// Unknown path falls through
	if config := MatchEndpoint("/other", "POST", configs); config != nil {
		t.Error("Expected no match for unknown path")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "true")
	t.Setenv("RATE_LIMIT_DEFAULT_LIMIT", "")

	config := LoadConfig()

	if !config.Enabled {
		t.Error("Expected rate limiting enabled by default")
	}
	if config.DefaultLimit != 1000 {
		t.Errorf("Expected default limit 1000, got %d", config.DefaultLimit)
	}
	if len(config.Endpoints) == 0 {
		t.Error("Expected default endpoint configs")
	}
}

func TestLoadConfig_Disabled(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "false")

	config := LoadConfig()
	if config.Enabled {
		t.Error("Expected rate limiting disabled")
	}
}

func TestLoadConfig_Lists(t *testing.T) {
	t.Setenv("RATE_LIMIT_WHITELIST", "10.0.0.1, 10.0.0.2")
	t.Setenv("RATE_LIMIT_BLACKLIST", "192.168.1.5")

	config := LoadConfig()
	if !config.Whitelist["10.0.0.1"] || !config.Whitelist["10.0.0.2"] {
		t.Error("Expected whitelist entries to be parsed")
	}
	if !config.Blacklist["192.168.1.5"] {
		t.Error("Expected blacklist entry to be parsed")
	}
}
