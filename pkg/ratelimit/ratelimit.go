// Package ratelimit implements client-side request throttling for the
// CLOB API. Limits follow the published per-endpoint-class quotas.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Limiter admits requests under a rate policy.
type Limiter interface {
	Wait(ctx context.Context) error
	Allow() bool
	Remaining() int
}

// TokenBucket is a refilling bucket limiter for bursty endpoints.
type TokenBucket struct {
	capacity   int
	tokens     int
	refillRate int // tokens per second
	lastRefill time.Time
	mu         sync.Mutex
}

// NewTokenBucket creates a full bucket refilling at refillRate per second.
func NewTokenBucket(capacity, refillRate int) *TokenBucket {
	return &TokenBucket{
		capacity:   capacity,
		tokens:     capacity,
		refillRate: refillRate,
		lastRefill: time.Now(),
	}
}

func (tb *TokenBucket) refill() {
	now := time.Now()
	add := int(now.Sub(tb.lastRefill).Seconds()) * tb.refillRate
	if add > 0 {
		tb.tokens = min(tb.capacity, tb.tokens+add)
		tb.lastRefill = now
	}
}

// Allow consumes one token if available.
func (tb *TokenBucket) Allow() bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	tb.refill()
	if tb.tokens > 0 {
		tb.tokens--
		return true
	}
	return false
}

// Wait blocks until a token is available or the context ends.
func (tb *TokenBucket) Wait(ctx context.Context) error {
	for {
		if tb.Allow() {
			return nil
		}
		wait := time.Second
		if tb.refillRate > 0 {
			wait = time.Second / time.Duration(tb.refillRate)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
}

// Remaining returns the current token count.
func (tb *TokenBucket) Remaining() int {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	tb.refill()
	return tb.tokens
}

// SlidingWindow caps the request count inside a rolling window, for
// endpoints with hard per-window quotas.
type SlidingWindow struct {
	limit      int
	windowSize time.Duration
	requests   []time.Time
	mu         sync.Mutex
}

// NewSlidingWindow creates a limiter allowing limit requests per window.
func NewSlidingWindow(limit int, windowSize time.Duration) *SlidingWindow {
	return &SlidingWindow{limit: limit, windowSize: windowSize}
}

// Allow records the request if the window has room.
func (sw *SlidingWindow) Allow() bool {
	sw.mu.Lock()
	defer sw.mu.Unlock()

	sw.trim(time.Now())
	if len(sw.requests) >= sw.limit {
		return false
	}
	sw.requests = append(sw.requests, time.Now())
	return true
}

// trim drops requests that fell out of the window. Caller holds mu.
func (sw *SlidingWindow) trim(now time.Time) {
	cutoff := now.Add(-sw.windowSize)
	kept := sw.requests[:0]
	for _, r := range sw.requests {
		if r.After(cutoff) {
			kept = append(kept, r)
		}
	}
	sw.requests = kept
}

// Wait blocks until the window has room or the context ends.
func (sw *SlidingWindow) Wait(ctx context.Context) error {
	for {
		if sw.Allow() {
			return nil
		}

		sw.mu.Lock()
		wait := 100 * time.Millisecond
		if len(sw.requests) > 0 {
			wait = sw.windowSize - time.Since(sw.requests[0])
		}
		sw.mu.Unlock()
		if wait <= 0 {
			wait = 100 * time.Millisecond
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
}

// Remaining returns how many requests the window still admits.
func (sw *SlidingWindow) Remaining() int {
	sw.mu.Lock()
	defer sw.mu.Unlock()
	sw.trim(time.Now())
	return max(0, sw.limit-len(sw.requests))
}

// Class groups endpoints sharing one quota.
type Class string

const (
	// ClassOrders covers order submission and cancellation.
	ClassOrders Class = "orders"
	// ClassData covers market data and account read endpoints.
	ClassData Class = "data"
	// ClassAuth covers credential management endpoints.
	ClassAuth Class = "auth"
)

// Manager routes each endpoint class to its limiter.
type Manager struct {
	limiters map[Class]Limiter
	fallback Limiter
	mu       sync.RWMutex
}

// NewManager creates a manager preloaded with the CLOB quotas.
func NewManager() *Manager {
	return &Manager{
		limiters: map[Class]Limiter{
			ClassOrders: NewTokenBucket(2400, 240),
			ClassData:   NewSlidingWindow(200, 10*time.Second),
			ClassAuth:   NewSlidingWindow(30, 10*time.Second),
		},
		fallback: NewSlidingWindow(5000, 10*time.Second),
	}
}

// SetLimiter replaces the limiter for a class.
func (m *Manager) SetLimiter(class Class, l Limiter) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.limiters[class] = l
}

func (m *Manager) limiter(class Class) Limiter {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if l, ok := m.limiters[class]; ok {
		return l
	}
	return m.fallback
}

// Wait blocks until the class quota admits a request.
func (m *Manager) Wait(ctx context.Context, class Class) error {
	return m.limiter(class).Wait(ctx)
}

// Allow reports whether the class quota admits a request right now.
func (m *Manager) Allow(class Class) bool {
	return m.limiter(class).Allow()
}
