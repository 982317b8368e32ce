// Package rate provides in-memory per-key request rate limiting.
//
// Two policies are available: a fixed window counter and a token bucket with
// bulk refill. Both keep one entry per key (typically a client IP) guarded by
// a mutex, and prune entries that have been idle long enough to no longer
// affect decisions.
package rate

import (
	"errors"
	"sync"
	"time"

	"github.com/samber/lo"
	"github.com/tixgo/tixgo/internal/pkg/clock"
)

// ErrRateLimited indicates the caller exceeded the configured rate.
var ErrRateLimited = errors.New("rate: limit exceeded")

// Limiter decides whether a request identified by key may proceed now.
type Limiter interface {
	// Allow consumes one permit for key. It returns ErrRateLimited when the
	// key has no permits left.
	Allow(key string) error
}

const pruneEvery = 512

type windowEntry struct {
	start time.Time
	count int
}

// FixedWindow allows at most limit requests per key within each window.
//
// The window is anchored at the first request after the previous window
// expired, so a burst at a window boundary can see up to 2*limit requests.
// That matches the common fixed window trade-off and keeps the state tiny.
type FixedWindow struct {
	limit  int
	window time.Duration
	clock  clock.Clocker

	mu      sync.Mutex
	entries map[string]*windowEntry
	ops     int
}

// NewFixedWindow returns a fixed window limiter.
func NewFixedWindow(limit int, window time.Duration, clk clock.Clocker) *FixedWindow {
	return &FixedWindow{
		limit:   limit,
		window:  window,
		clock:   clk,
		entries: make(map[string]*windowEntry),
	}
}

// Allow implements Limiter.
func (f *FixedWindow) Allow(key string) error {
	now := f.clock.Now()

	f.mu.Lock()
	defer f.mu.Unlock()

	f.ops++
	if f.ops%pruneEvery == 0 {
		f.entries = lo.PickBy(f.entries, func(_ string, e *windowEntry) bool {
			return now.Sub(e.start) < f.window
		})
	}

	e, ok := f.entries[key]
	if !ok || now.Sub(e.start) >= f.window {
		f.entries[key] = &windowEntry{start: now, count: 1}
		return nil
	}

	if e.count >= f.limit {
		return ErrRateLimited
	}

	e.count++
	return nil
}

type bucketEntry struct {
	tokens   int
	refillAt time.Time
}

// TokenBucket allows bursts up to capacity and refills the bucket back to
// capacity once per period.
//
// Refill is all-at-once rather than continuous: a key that drained its bucket
// gets nothing until a full period has elapsed, then the bucket is full again.
type TokenBucket struct {
	capacity int
	period   time.Duration
	clock    clock.Clocker

	mu      sync.Mutex
	entries map[string]*bucketEntry
	ops     int
}

// NewTokenBucket returns a token bucket limiter.
func NewTokenBucket(capacity int, period time.Duration, clk clock.Clocker) *TokenBucket {
	return &TokenBucket{
		capacity: capacity,
		period:   period,
		clock:    clk,
		entries:  make(map[string]*bucketEntry),
	}
}

// Allow implements Limiter.
func (t *TokenBucket) Allow(key string) error {
	now := t.clock.Now()

	t.mu.Lock()
	defer t.mu.Unlock()

	t.ops++
	if t.ops%pruneEvery == 0 {
		t.entries = lo.PickBy(t.entries, func(_ string, e *bucketEntry) bool {
			return e.tokens < t.capacity && now.Before(e.refillAt)
		})
	}

	e, ok := t.entries[key]
	if !ok {
		e = &bucketEntry{tokens: t.capacity, refillAt: now.Add(t.period)}
		t.entries[key] = e
	} else if !now.Before(e.refillAt) {
		e.tokens = t.capacity
		e.refillAt = now.Add(t.period)
	}

	if e.tokens <= 0 {
		return ErrRateLimited
	}

	e.tokens--
	return nil
}
