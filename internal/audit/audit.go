// ABOUTME: Append-only JSONL activity log, one record per persisted turn
// ABOUTME: Injected as an observer so core logic never touches the filesystem
package audit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/questlabs/ragdesk/internal/models"
)

// Record is one line of the activity log.
type Record struct {
	SessionID string    `json:"session_id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Logger observes durable turn writes. Implementations must tolerate being
// called concurrently; failures are the caller's to log, never to propagate.
type Logger interface {
	TurnLogged(turn *models.Turn) error
}

// FileLogger appends one JSON object per turn to a log file.
type FileLogger struct {
	mu   sync.Mutex
	path string
}

// NewFileLogger creates the log's directory if needed and returns a logger
// appending to path.
func NewFileLogger(path string) (*FileLogger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create audit log directory: %w", err)
	}
	return &FileLogger{path: path}, nil
}

// TurnLogged appends one record. The file is opened per write so log
// rotation never strands a handle.
func (l *FileLogger) TurnLogged(turn *models.Turn) error {
	line, err := json.Marshal(Record{
		SessionID: turn.SessionID,
		Role:      string(turn.Role),
		Content:   turn.Content,
		Timestamp: turn.Timestamp,
	})
	if err != nil {
		return fmt.Errorf("failed to encode audit record: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open audit log: %w", err)
	}
	defer func() { _ = f.Close() }()

	if _, err := f.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("failed to append audit record: %w", err)
	}
	return nil
}

// NopLogger discards all records. Used when no audit log is configured.
type NopLogger struct{}

// TurnLogged implements Logger.
func (NopLogger) TurnLogged(*models.Turn) error { return nil }
