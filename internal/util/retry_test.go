// ABOUTME: Tests for backoff calculation
// ABOUTME: Verifies growth, jitter bounds, cap, and overflow safety

package util

import (
	"testing"
	"time"
)

func TestBackoff_ZeroForFirstAttempt(t *testing.T) {
	if got := Backoff(time.Second, 0, 0); got != 0 {
		t.Errorf("Backoff(attempt=0) = %v, want 0", got)
	}
	if got := Backoff(time.Second, -1, 0); got != 0 {
		t.Errorf("Backoff(attempt=-1) = %v, want 0", got)
	}
}

func TestBackoff_GrowsWithAttempts(t *testing.T) {
	base := 100 * time.Millisecond

	// With 25% jitter, attempt 2 (400ms nominal) can never undercut
	// attempt 1's nominal 200ms plus its own -25% floor (300ms).
	one := Backoff(base, 1, 0)
	two := Backoff(base, 2, 0)

	if one < 150*time.Millisecond || one > 250*time.Millisecond {
		t.Errorf("attempt 1 backoff %v outside jitter bounds", one)
	}
	if two < 300*time.Millisecond || two > 500*time.Millisecond {
		t.Errorf("attempt 2 backoff %v outside jitter bounds", two)
	}
}

func TestBackoff_CappedAtMax(t *testing.T) {
	max := 2 * time.Second
	for attempt := 1; attempt <= 40; attempt++ {
		got := Backoff(time.Second, attempt, max)
		// Jitter can push at most 25% above the cap.
		if got > max+max/4 {
			t.Fatalf("attempt %d backoff %v exceeds cap %v", attempt, got, max)
		}
		if got < 0 {
			t.Fatalf("attempt %d backoff %v is negative", attempt, got)
		}
	}
}
