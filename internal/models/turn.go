// ABOUTME: Turn represents a single message in a conversation session
// ABOUTME: Immutable once written; sessions exist only as turns sharing a session id
package models

import (
	"fmt"
	"strings"
	"time"
)

// Role identifies the author of a turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAssistant
}

// Label returns the capitalized role name used in transcripts ("User", "Assistant").
func (r Role) Label() string {
	s := string(r)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Turn is one message in a session. Turns are append-only: they are never
// mutated, only deleted en masse when their session expires.
type Turn struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// ValidateTurn checks the fields a caller controls before a turn is persisted.
// The timestamp is assigned by the store, not the caller.
func ValidateTurn(sessionID string, role Role, content string) error {
	if strings.TrimSpace(sessionID) == "" {
		return fmt.Errorf("session id cannot be empty")
	}
	if !role.Valid() {
		return fmt.Errorf("invalid role %q", role)
	}
	if content == "" {
		return fmt.Errorf("content cannot be empty")
	}
	return nil
}
