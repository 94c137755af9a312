package http

import (
	"testing"
	"time"
)

func TestRateLimiterWindow(t *testing.T) {
	now := time.Unix(1000, 0)
	rl := newRateLimiter(2, time.Minute)
	rl.now = func() time.Time { return now }

	if !rl.allow() || !rl.allow() {
		t.Fatalf("first two frames should pass")
	}
	if rl.allow() {
		t.Fatalf("third frame in the window should be rejected")
	}

	now = now.Add(time.Minute)
	if !rl.allow() {
		t.Fatalf("counter should reset in a new window")
	}
}

func TestRateLimiterDisabled(t *testing.T) {
	rl := newRateLimiter(0, time.Minute)
	for range 1000 {
		if !rl.allow() {
			t.Fatalf("disabled limiter rejected a frame")
		}
	}

	var nilLimiter *rateLimiter
	if !nilLimiter.allow() {
		t.Fatalf("nil limiter should allow")
	}
}
