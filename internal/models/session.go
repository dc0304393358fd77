// ABOUTME: Session liveness rules for the implicit session model
// ABOUTME: A session is alive while its most recent turn is inside the inactivity window
package models

import "time"

// ExpiredBefore reports whether a session whose most recent turn was written
// at lastActivity is dead relative to cutoff. A session expires when its last
// activity is strictly older than the cutoff.
func ExpiredBefore(lastActivity, cutoff time.Time) bool {
	return lastActivity.Before(cutoff)
}

// SessionExpired reports whether a session has outlived the inactivity
// window at the given instant.
func SessionExpired(lastActivity, now time.Time, ttl time.Duration) bool {
	return ExpiredBefore(lastActivity, now.Add(-ttl))
}
