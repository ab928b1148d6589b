package service

import (
	"sync"
	"time"
)

// RateLimitPolicy decides whether an account may run another upload merge
// right now. Implementations must be safe for concurrent use.
type RateLimitPolicy interface {
	Allow(userID int64) bool
}

// allowAllPolicy is the default policy: every request is admitted.
type allowAllPolicy struct{}

// NewAllowAllPolicy constructs the default [RateLimitPolicy] that never
// refuses a request.
func NewAllowAllPolicy() RateLimitPolicy {
	return allowAllPolicy{}
}

func (allowAllPolicy) Allow(int64) bool { return true }

// TokenBucketLimiter is a per-account token bucket [RateLimitPolicy].
// Each account gets a bucket of burst tokens refilled at a fixed interval;
// a request spends one token, and an empty bucket refuses the request.
type TokenBucketLimiter struct {
	mu      sync.Mutex
	buckets map[int64]*bucket

	refill time.Duration
	burst  int
	clk    Clock
}

type bucket struct {
	tokens   int
	lastFill time.Time
}

// NewTokenBucketLimiter constructs a [TokenBucketLimiter] that grants burst
// tokens per account, refilling one token every refill interval.
// A nil clk falls back to [RealClock].
func NewTokenBucketLimiter(refill time.Duration, burst int, clk Clock) *TokenBucketLimiter {
	if clk == nil {
		clk = RealClock{}
	}
	if burst < 1 {
		burst = 1
	}

	return &TokenBucketLimiter{
		buckets: make(map[int64]*bucket),
		refill:  refill,
		burst:   burst,
		clk:     clk,
	}
}

// Allow implements [RateLimitPolicy]. It spends one token from the account's
// bucket, refilling earned tokens first, and reports whether a token was
// available.
func (l *TokenBucketLimiter) Allow(userID int64) bool {
	now := l.clk.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[userID]
	if !ok {
		b = &bucket{tokens: l.burst, lastFill: now}
		l.buckets[userID] = b
	}

	if l.refill > 0 {
		earned := int(now.Sub(b.lastFill) / l.refill)
		if earned > 0 {
			b.tokens += earned
			if b.tokens > l.burst {
				b.tokens = l.burst
			}
			b.lastFill = b.lastFill.Add(time.Duration(earned) * l.refill)
		}
	}

	if b.tokens <= 0 {
		return false
	}

	b.tokens--
	return true
}

// Reset drops the account's bucket so its next request starts with a full
// burst again.
func (l *TokenBucketLimiter) Reset(userID int64) {
	l.mu.Lock()
	delete(l.buckets, userID)
	l.mu.Unlock()
}
