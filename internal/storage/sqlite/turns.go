// ABOUTME: Conversation turn log backed by SQLite
// ABOUTME: Append-only per session, with a max-timestamp expiry sweep
package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/questlabs/ragdesk/internal/models"
)

// TurnStore persists conversation turns. Within one session, read order is
// append order: timestamps are unix nanoseconds and the rowid breaks ties
// between writes landing on the same nanosecond.
type TurnStore struct {
	db  *DB
	now func() time.Time
}

// NewTurnStore creates a new TurnStore
func NewTurnStore(db *DB) *TurnStore {
	return &TurnStore{db: db, now: time.Now}
}

// Append durably writes one turn with a server-assigned timestamp and
// returns it. Safe for concurrent callers; different sessions never
// contend beyond the database itself.
func (s *TurnStore) Append(ctx context.Context, sessionID string, role models.Role, content string) (*models.Turn, error) {
	if err := models.ValidateTurn(sessionID, role, content); err != nil {
		return nil, err
	}

	turn := &models.Turn{
		ID:        uuid.New().String(),
		SessionID: sessionID,
		Role:      role,
		Content:   content,
		Timestamp: s.now().UTC(),
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO turns (id, session_id, role, content, timestamp)
		VALUES (?, ?, ?, ?, ?)
	`, turn.ID, turn.SessionID, string(turn.Role), turn.Content, turn.Timestamp.UnixNano())
	if err != nil {
		return nil, fmt.Errorf("failed to append turn for session %s: %w", sessionID, err)
	}

	return turn, nil
}

// History returns all turns for a session in ascending timestamp order.
// An unknown session yields an empty history, not an error.
func (s *TurnStore) History(ctx context.Context, sessionID string) ([]models.Turn, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, session_id, role, content, timestamp
		FROM turns
		WHERE session_id = ?
		ORDER BY timestamp ASC, rowid ASC
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load history for session %s: %w", sessionID, err)
	}
	defer func() { _ = rows.Close() }()

	var turns []models.Turn
	for rows.Next() {
		var (
			turn  models.Turn
			role  string
			nanos int64
		)
		if err := rows.Scan(&turn.ID, &turn.SessionID, &role, &turn.Content, &nanos); err != nil {
			return nil, err
		}
		turn.Role = models.Role(role)
		turn.Timestamp = time.Unix(0, nanos).UTC()
		turns = append(turns, turn)
	}
	return turns, rows.Err()
}

// ExpireOlderThan deletes every session whose most recent turn is strictly
// older than cutoff, all-or-nothing across the sweep, and returns the
// purged session ids. The aggregation runs over the (session_id, timestamp)
// index, so the sweep is cheap enough to run on every conversational turn.
//
// A sweep may race an in-flight turn for the same session: the session's
// history can be purged moments before its next turn is appended, in which
// case that turn simply starts a fresh session.
func (s *TurnStore) ExpireOlderThan(ctx context.Context, cutoff time.Time) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT session_id, MAX(timestamp) AS last
		FROM turns
		GROUP BY session_id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate session activity: %w", err)
	}

	var expired []string
	for rows.Next() {
		var (
			sessionID string
			nanos     int64
		)
		if err := rows.Scan(&sessionID, &nanos); err != nil {
			_ = rows.Close()
			return nil, err
		}
		if models.ExpiredBefore(time.Unix(0, nanos).UTC(), cutoff) {
			expired = append(expired, sessionID)
		}
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, err
	}
	_ = rows.Close()

	if len(expired) == 0 {
		return nil, nil
	}

	tx, err := s.db.Conn().BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin expiry transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, sessionID := range expired {
		if _, err := tx.ExecContext(ctx, `DELETE FROM turns WHERE session_id = ?`, sessionID); err != nil {
			return nil, fmt.Errorf("failed to purge session %s: %w", sessionID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit expiry sweep: %w", err)
	}
	return expired, nil
}
