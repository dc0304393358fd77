// ABOUTME: Retry utilities for upstream service calls with exponential backoff
// ABOUTME: Used by the LLM client; retries are always explicit and bounded
package util

import (
	"math/rand/v2"
	"time"
)

// DefaultMaxBackoff caps the delay when the caller does not supply one.
const DefaultMaxBackoff = 30 * time.Second

// Backoff returns the delay before retry number attempt (1-based).
// The base delay doubles each attempt, capped at max, with random jitter
// of up to 25% in either direction.
func Backoff(base time.Duration, attempt int, max time.Duration) time.Duration {
	if attempt <= 0 {
		return 0
	}
	if max <= 0 {
		max = DefaultMaxBackoff
	}
	// Cap the shift so the multiplication cannot overflow.
	if attempt > 30 {
		attempt = 30
	}
	delay := base * time.Duration(1<<uint(attempt))
	if delay > max || delay <= 0 {
		delay = max
	}
	jitter := time.Duration(rand.Int64N(int64(delay)/2)) - delay/4
	return delay + jitter
}
