package signal

import (
	"testing"
	"time"
)

func TestJoinRateLimiter(t *testing.T) {
	rl := NewJoinRateLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		if !rl.Allow("A") {
			t.Fatalf("attempt %d denied under the limit", i+1)
		}
	}
	if rl.Allow("A") {
		t.Fatalf("attempt over the limit allowed")
	}
	// Another connection does not share the window.
	if !rl.Allow("B") {
		t.Fatalf("independent connection denied")
	}

	rl.Forget("A")
	if !rl.Allow("A") {
		t.Fatalf("attempt denied after Forget")
	}
}

func TestJoinRateLimiterWindowExpiry(t *testing.T) {
	rl := NewJoinRateLimiter(1, 10*time.Millisecond)
	if !rl.Allow("A") {
		t.Fatalf("first attempt denied")
	}
	if rl.Allow("A") {
		t.Fatalf("second attempt inside window allowed")
	}
	time.Sleep(20 * time.Millisecond)
	if !rl.Allow("A") {
		t.Fatalf("attempt denied after window expiry")
	}
}
