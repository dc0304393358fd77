// ABOUTME: Tests for the JSONL activity log
// ABOUTME: Verifies one-record-per-line append behavior

package audit

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/questlabs/ragdesk/internal/models"
)

func TestFileLogger_AppendsOneLinePerTurn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "activity.jsonl")
	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger() error = %v", err)
	}

	turns := []*models.Turn{
		{SessionID: "s1", Role: models.RoleUser, Content: "question", Timestamp: time.Now().UTC()},
		{SessionID: "s1", Role: models.RoleAssistant, Content: "answer", Timestamp: time.Now().UTC()},
	}
	for _, turn := range turns {
		if err := logger.TurnLogged(turn); err != nil {
			t.Fatalf("TurnLogged() error = %v", err)
		}
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("opening audit log: %v", err)
	}
	defer func() { _ = f.Close() }()

	var records []Record
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var rec Record
		if err := json.Unmarshal(scanner.Bytes(), &rec); err != nil {
			t.Fatalf("line %d is not valid JSON: %v", len(records), err)
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("scanning audit log: %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("audit log has %d records, want 2", len(records))
	}
	if records[0].Role != "user" || records[0].Content != "question" {
		t.Errorf("record 0 = %+v, want the user turn", records[0])
	}
	if records[1].Role != "assistant" || records[1].Content != "answer" {
		t.Errorf("record 1 = %+v, want the assistant turn", records[1])
	}
}

func TestNopLogger(t *testing.T) {
	if err := (NopLogger{}).TurnLogged(&models.Turn{}); err != nil {
		t.Errorf("NopLogger.TurnLogged() error = %v, want nil", err)
	}
}
