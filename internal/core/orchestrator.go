// ABOUTME: Per-turn orchestration: sweep, log user turn, build context, generate, log answer
// ABOUTME: The user turn is durable before retrieval so history survives generation failures
package core

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/questlabs/ragdesk/internal/audit"
	"github.com/questlabs/ragdesk/internal/models"
)

// ConversationStore is the slice of the turn log the orchestrator needs.
type ConversationStore interface {
	Append(ctx context.Context, sessionID string, role models.Role, content string) (*models.Turn, error)
	History(ctx context.Context, sessionID string) ([]models.Turn, error)
	ExpireOlderThan(ctx context.Context, cutoff time.Time) ([]string, error)
}

// ContextRetriever finds passages relevant to a question.
type ContextRetriever interface {
	Retrieve(ctx context.Context, question string) (string, error)
}

// Generator produces the final answer from question, context, and history.
type Generator interface {
	GenerateAnswer(ctx context.Context, question, contextText, history string) (string, error)
}

// Orchestrator runs one conversational turn end to end.
type Orchestrator struct {
	turns     ConversationStore
	retriever ContextRetriever
	generator Generator
	auditLog  audit.Logger
	ttl       time.Duration
	now       func() time.Time
}

// NewOrchestrator wires the per-turn pipeline. A nil audit logger disables
// the activity log.
func NewOrchestrator(turns ConversationStore, retriever ContextRetriever, generator Generator, auditLog audit.Logger, ttl time.Duration) *Orchestrator {
	if auditLog == nil {
		auditLog = audit.NopLogger{}
	}
	return &Orchestrator{
		turns:     turns,
		retriever: retriever,
		generator: generator,
		auditLog:  auditLog,
		ttl:       ttl,
		now:       time.Now,
	}
}

// Ask answers one question within a session. If generation fails, the turn
// fails as a whole but the user's question stays persisted: the next turn's
// history will show an unanswered question, which is intended.
func (o *Orchestrator) Ask(ctx context.Context, sessionID, question string) (string, error) {
	// Best-effort maintenance; a failed sweep never blocks the turn.
	if purged, err := o.turns.ExpireOlderThan(ctx, o.now().UTC().Add(-o.ttl)); err != nil {
		log.Printf("session expiry sweep failed: %v", err)
	} else if len(purged) > 0 {
		log.Printf("expired %d inactive session(s): %v", len(purged), purged)
	}

	userTurn, err := o.turns.Append(ctx, sessionID, models.RoleUser, question)
	if err != nil {
		return "", fmt.Errorf("session %s: failed to log question: %w", sessionID, err)
	}
	o.observe(userTurn)

	history, err := o.turns.History(ctx, sessionID)
	if err != nil {
		return "", fmt.Errorf("session %s: failed to load history: %w", sessionID, err)
	}
	transcript := FormatTranscript(history)

	contextText, err := o.retriever.Retrieve(ctx, question)
	if err != nil {
		return "", fmt.Errorf("session %s: %w", sessionID, err)
	}

	answer, err := o.generator.GenerateAnswer(ctx, question, contextText, transcript)
	if err != nil {
		return "", fmt.Errorf("session %s: failed to generate answer: %w", sessionID, err)
	}

	assistantTurn, err := o.turns.Append(ctx, sessionID, models.RoleAssistant, answer)
	if err != nil {
		return "", fmt.Errorf("session %s: failed to log answer: %w", sessionID, err)
	}
	o.observe(assistantTurn)

	return answer, nil
}

// History returns a session's turns without side effects: no sweep, no
// writes.
func (o *Orchestrator) History(ctx context.Context, sessionID string) ([]models.Turn, error) {
	return o.turns.History(ctx, sessionID)
}

func (o *Orchestrator) observe(turn *models.Turn) {
	if err := o.auditLog.TurnLogged(turn); err != nil {
		log.Printf("audit log write failed for session %s: %v", turn.SessionID, err)
	}
}

// FormatTranscript renders turns as a role-labeled transcript, one line per
// turn in timestamp order: "User: ..." / "Assistant: ...".
func FormatTranscript(turns []models.Turn) string {
	var b strings.Builder
	for _, turn := range turns {
		b.WriteString(turn.Role.Label())
		b.WriteString(": ")
		b.WriteString(turn.Content)
		b.WriteString("\n")
	}
	return b.String()
}
