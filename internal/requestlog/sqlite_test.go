// ABOUTME: Tests for the SQLite request log implementation
// ABOUTME: Covers schema creation, record persistence, and directory handling

package requestlog

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func newTestLog(t *testing.T) *SQLiteLog {
	t.Helper()
	l, err := OpenSQLite(filepath.Join(t.TempDir(), "requests.db"))
	if err != nil {
		t.Fatalf("OpenSQLite failed: %v", err)
	}
	return l
}

func TestOpenSQLite(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "requests.db")

	l, err := OpenSQLite(dbPath)
	if err != nil {
		t.Fatalf("OpenSQLite failed: %v", err)
	}
	defer l.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("database file was not created")
	}
}

func TestOpenSQLite_CreatesDirectory(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "logs", "requests.db")

	l, err := OpenSQLite(dbPath)
	if err != nil {
		t.Fatalf("OpenSQLite failed: %v", err)
	}
	defer l.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("database file was not created in nested directory")
	}
}

func TestRecordHTTP(t *testing.T) {
	l := newTestLog(t)
	defer l.Close()

	ctx := context.Background()
	l.RecordHTTP(ctx, HTTPRequest{
		ID:         "req-1",
		Method:     "POST",
		Path:       "/sse",
		RemoteAddr: "127.0.0.1:5000",
		Status:     200,
		Duration:   12 * time.Millisecond,
		StartedAt:  time.Now(),
	})

	var count int
	if err := l.db.QueryRow("SELECT COUNT(*) FROM http_requests").Scan(&count); err != nil {
		t.Fatalf("counting rows: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 http request row, got %d", count)
	}
}

func TestRecordToolCall(t *testing.T) {
	l := newTestLog(t)
	defer l.Close()

	ctx := context.Background()
	l.RecordToolCall(ctx, ToolCall{
		ID:           "call-1",
		ConnectionID: "default",
		Tool:         "get_current_time",
		Arguments:    "{}",
		ResultText:   `{"utc_time":"2026-01-01 00:00:00 UTC"}`,
		IsError:      false,
		Duration:     3 * time.Millisecond,
		StartedAt:    time.Now(),
	})

	var tool string
	var isError int
	err := l.db.QueryRow("SELECT tool, is_error FROM tool_calls WHERE id = ?", "call-1").
		Scan(&tool, &isError)
	if err != nil {
		t.Fatalf("querying tool call: %v", err)
	}
	if tool != "get_current_time" {
		t.Errorf("tool = %q, want get_current_time", tool)
	}
	if isError != 0 {
		t.Errorf("is_error = %d, want 0", isError)
	}
}

func TestNop(t *testing.T) {
	var log Log = Nop{}
	log.RecordHTTP(context.Background(), HTTPRequest{ID: "x"})
	log.RecordToolCall(context.Background(), ToolCall{ID: "y"})
	if err := log.Close(); err != nil {
		t.Errorf("Nop.Close returned %v", err)
	}
}
