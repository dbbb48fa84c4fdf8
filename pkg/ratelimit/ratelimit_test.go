package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestTokenBucket_Burst(t *testing.T) {
	tb := NewTokenBucket(3, 1)
	for i := 0; i < 3; i++ {
		if !tb.Allow() {
			t.Fatalf("request %d rejected within capacity", i)
		}
	}
	if tb.Allow() {
		t.Fatalf("request admitted past capacity")
	}
	if tb.Remaining() != 0 {
		t.Fatalf("remaining got=%d", tb.Remaining())
	}
}

func TestTokenBucket_WaitHonorsContext(t *testing.T) {
	tb := NewTokenBucket(1, 0)
	tb.Allow() // drain

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if err := tb.Wait(ctx); err == nil {
		t.Fatalf("expected context error from drained bucket")
	}
}

func TestSlidingWindow_Quota(t *testing.T) {
	sw := NewSlidingWindow(2, time.Minute)
	if !sw.Allow() || !sw.Allow() {
		t.Fatalf("requests rejected within quota")
	}
	if sw.Allow() {
		t.Fatalf("request admitted past quota")
	}
	if sw.Remaining() != 0 {
		t.Fatalf("remaining got=%d", sw.Remaining())
	}
}

func TestSlidingWindow_Expires(t *testing.T) {
	sw := NewSlidingWindow(1, 30*time.Millisecond)
	if !sw.Allow() {
		t.Fatalf("first request rejected")
	}
	if sw.Allow() {
		t.Fatalf("second request admitted inside window")
	}
	time.Sleep(50 * time.Millisecond)
	if !sw.Allow() {
		t.Fatalf("request rejected after window expired")
	}
}

func TestManager_ClassRouting(t *testing.T) {
	m := NewManager()
	m.SetLimiter(ClassAuth, NewSlidingWindow(1, time.Minute))

	if !m.Allow(ClassAuth) {
		t.Fatalf("first auth request rejected")
	}
	if m.Allow(ClassAuth) {
		t.Fatalf("auth quota not enforced")
	}
	// Other classes are unaffected.
	if !m.Allow(ClassData) {
		t.Fatalf("data class throttled by auth quota")
	}
	// Unknown classes fall back to the general limiter.
	if !m.Allow(Class("unknown")) {
		t.Fatalf("fallback limiter rejected first request")
	}
}
