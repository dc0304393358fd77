// ABOUTME: MCP tool handler implementations for the ragdesk server
// ABOUTME: Thin argument parsing over the orchestrator and ingest pipeline
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/questlabs/ragdesk/internal/models"
)

// Conversation runs conversational turns and serves history reads.
type Conversation interface {
	Ask(ctx context.Context, sessionID, question string) (string, error)
	History(ctx context.Context, sessionID string) ([]models.Turn, error)
}

// Ingestor ingests one decoded document into the vector index.
type Ingestor interface {
	Index(ctx context.Context, documentID, text string) (int, error)
}

// Handlers contains the handler functions for all MCP tools
type Handlers struct {
	conversation Conversation
	ingestor     Ingestor
}

// Ask handles the ask tool
func (h *Handlers) Ask(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	question, err := request.RequireString("question")
	if err != nil {
		return mcp.NewToolResultError("question argument is required and must be a string"), nil
	}
	sessionID, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError("session_id argument is required and must be a string"), nil
	}

	answer, err := h.conversation.Ask(ctx, sessionID, question)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to answer: %v", err)), nil
	}

	return mcp.NewToolResultText(answer), nil
}

// IngestDocument handles the ingest_document tool
func (h *Handlers) IngestDocument(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	documentID, err := request.RequireString("document_id")
	if err != nil {
		return mcp.NewToolResultError("document_id argument is required and must be a string"), nil
	}
	text, err := request.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError("text argument is required and must be a string"), nil
	}

	count, err := h.ingestor.Index(ctx, documentID, text)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to ingest %s: %v", documentID, err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("%d chunks indexed from %q", count, documentID)), nil
}

// GetHistory handles the get_history tool
func (h *Handlers) GetHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError("session_id argument is required and must be a string"), nil
	}

	turns, err := h.conversation.History(ctx, sessionID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load history: %v", err)), nil
	}

	type turnView struct {
		Role      string `json:"role"`
		Content   string `json:"content"`
		Timestamp string `json:"timestamp"`
	}
	view := struct {
		SessionID string     `json:"session_id"`
		History   []turnView `json:"history"`
	}{
		SessionID: sessionID,
		History:   make([]turnView, 0, len(turns)),
	}
	for _, turn := range turns {
		view.History = append(view.History, turnView{
			Role:      string(turn.Role),
			Content:   turn.Content,
			Timestamp: turn.Timestamp.Format(time.RFC3339Nano),
		})
	}

	payload, err := json.MarshalIndent(view, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode history: %v", err)), nil
	}
	return mcp.NewToolResultText(string(payload)), nil
}
