package auth

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	// Window is the length of the fixed counting window.
	Window time.Duration
	// MaxRequests is the number of requests allowed per caller per window.
	MaxRequests int
}

// RateLimiter provides per-caller rate limiting using Redis fixed windows.
type RateLimiter struct {
	client *redis.Client
	config RateLimitConfig
}

// NewRateLimiter creates a new RateLimiter with the given Redis client and
// configuration. A nil client disables rate limiting: every call to Allow
// succeeds.
func NewRateLimiter(client *redis.Client, config RateLimitConfig) *RateLimiter {
	return &RateLimiter{
		client: client,
		config: config,
	}
}

// Allow records a request for the given caller and reports whether it fits
// within the current window. Returns nil if allowed, or an error if the
// limit is exceeded or Redis is unreachable.
func (rl *RateLimiter) Allow(ctx context.Context, caller string) error {
	if rl.client == nil {
		// No Redis client configured; skip rate limiting.
		return nil
	}

	windowSecs := int64(rl.config.Window.Seconds())
	if windowSecs < 1 {
		windowSecs = 1
	}
	key := fmt.Sprintf("ratelimit:api:%s:%d", caller, time.Now().Unix()/windowSecs)

	pipe := rl.client.Pipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, rl.config.Window+time.Second)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("check rate limit: %w", err)
	}

	if count := incr.Val(); count > int64(rl.config.MaxRequests) {
		return fmt.Errorf("rate limit exceeded (%d/%d per %s)", count, rl.config.MaxRequests, rl.config.Window)
	}

	return nil
}

// RetryAfter returns the window length in whole seconds, for use in a
// Retry-After response header.
func (rl *RateLimiter) RetryAfter() string {
	return strconv.Itoa(int(rl.config.Window.Seconds()))
}

// Ping verifies the Redis connection. Returns nil when rate limiting is
// disabled.
func (rl *RateLimiter) Ping(ctx context.Context) error {
	if rl.client == nil {
		return nil
	}
	return rl.client.Ping(ctx).Err()
}
