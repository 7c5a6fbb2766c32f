package middleware

import (
	"testing"
	"time"
)

func TestRateLimiter_ExhaustsBurst(t *testing.T) {
	rl := NewRateLimiter(60, 3)

	for i := 0; i < 3; i++ {
		if !rl.Allow("203.0.113.1") {
			t.Fatalf("request %d rejected within burst", i+1)
		}
	}
	if rl.Allow("203.0.113.1") {
		t.Fatal("request beyond burst was allowed")
	}
	if !rl.Allow("203.0.113.2") {
		t.Fatal("a different client was throttled")
	}
}

func TestRateLimiter_RefillsAfterInterval(t *testing.T) {
	rl := NewRateLimiter(60, 2)
	ip := "203.0.113.3"

	rl.Allow(ip)
	rl.Allow(ip)
	if rl.Allow(ip) {
		t.Fatal("expected the bucket to be empty")
	}

	v := rl.getVisitor(ip)
	rl.mu.Lock()
	v.lastUpdated = time.Now().Add(-2 * time.Minute)
	rl.mu.Unlock()

	if !rl.Allow(ip) {
		t.Fatal("bucket did not refill after the interval")
	}
}
