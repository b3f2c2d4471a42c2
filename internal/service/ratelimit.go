package service

import (
	"context"
	"sync"
	"time"
)

const (
	limiterSweepInterval = 5 * time.Minute
	limiterIdleTimeout   = 10 * time.Minute
)

// RateLimiter throttles calculation requests per client key (usually the
// remote IP) with a token bucket. It is safe for concurrent use.
type RateLimiter struct {
	mu       sync.Mutex
	clients  map[string]*allowance
	rate     float64 // tokens added per second
	capacity float64 // burst size
	now      func() time.Time
}

type allowance struct {
	tokens float64
	seen   time.Time
}

// NewRateLimiter creates a limiter allowing bursts of capacity requests per
// client, refilled at rate per second. Idle clients are swept in the
// background until ctx is cancelled.
func NewRateLimiter(ctx context.Context, rate, capacity float64) *RateLimiter {
	rl := &RateLimiter{
		clients:  make(map[string]*allowance),
		rate:     rate,
		capacity: capacity,
		now:      time.Now,
	}
	go rl.sweepLoop(ctx)
	return rl
}

// Allow consumes one token for key and reports whether the request may
// proceed.
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	a, ok := rl.clients[key]
	if !ok {
		a = &allowance{tokens: rl.capacity, seen: now}
		rl.clients[key] = a
	}

	a.tokens = min(a.tokens+now.Sub(a.seen).Seconds()*rl.rate, rl.capacity)
	a.seen = now

	if a.tokens < 1 {
		return false
	}
	a.tokens--
	return true
}

// Clients returns the number of tracked client keys.
func (rl *RateLimiter) Clients() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.clients)
}

func (rl *RateLimiter) sweepLoop(ctx context.Context) {
	ticker := time.NewTicker(limiterSweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rl.sweep()
		}
	}
}

// sweep drops clients idle for longer than limiterIdleTimeout.
func (rl *RateLimiter) sweep() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	cutoff := rl.now().Add(-limiterIdleTimeout)
	for key, a := range rl.clients {
		if a.seen.Before(cutoff) {
			delete(rl.clients, key)
		}
	}
}
