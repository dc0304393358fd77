// ABOUTME: MCP tool definitions and registration for the ragdesk server
// ABOUTME: Exposes ask, ingest_document, and get_history over stdio
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// RegisterTools registers all MCP tools with the server
func RegisterTools(server *mcpserver.MCPServer, conversation Conversation, ingestor Ingestor) *Handlers {
	handlers := &Handlers{
		conversation: conversation,
		ingestor:     ingestor,
	}

	// 1. ask - answer a question within a conversation session
	server.AddTool(mcp.Tool{
		Name:        "ask",
		Description: "Answer a question using the indexed document corpus and the session's conversation history.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"question": map[string]interface{}{
					"type":        "string",
					"description": "The question to answer",
				},
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Conversation session identifier",
				},
			},
			Required: []string{"question", "session_id"},
		},
	}, handlers.Ask)

	// 2. ingest_document - index a document for retrieval
	server.AddTool(mcp.Tool{
		Name:        "ingest_document",
		Description: "Chunk, embed, and index a text document so it becomes retrievable context for future questions.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"document_id": map[string]interface{}{
					"type":        "string",
					"description": "Stable document identifier; re-ingesting the same id replaces its chunks",
				},
				"text": map[string]interface{}{
					"type":        "string",
					"description": "Decoded document text",
				},
			},
			Required: []string{"document_id", "text"},
		},
	}, handlers.IngestDocument)

	// 3. get_history - read a session's transcript
	server.AddTool(mcp.Tool{
		Name:        "get_history",
		Description: "Return a session's conversation history in timestamp order. Read-only.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Conversation session identifier",
				},
			},
			Required: []string{"session_id"},
		},
	}, handlers.GetHistory)

	return handlers
}
