// ABOUTME: SQLite implementation of the request log using modernc.org/sqlite
// ABOUTME: Persists HTTP requests and tool calls with automatic schema creation

package requestlog

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// SQLiteLog implements Log backed by a SQLite database.
type SQLiteLog struct {
	db     *sql.DB
	logger *slog.Logger
}

// OpenSQLite opens (or creates) the request log database at path.
// Parent directories are created if needed.
func OpenSQLite(path string) (*SQLiteLog, error) {
	logger := slog.Default().With("component", "requestlog")

	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating log directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening request log: %w", err)
	}

	// WAL keeps writers from blocking the serving path
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	l := &SQLiteLog{db: db, logger: logger}
	if err := l.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	logger.Info("request log initialized", "path", path)
	return l, nil
}

func (l *SQLiteLog) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS http_requests (
			id TEXT PRIMARY KEY,
			method TEXT NOT NULL,
			path TEXT NOT NULL,
			remote_addr TEXT NOT NULL,
			status INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL,
			started_at TIMESTAMP NOT NULL
		);

		CREATE TABLE IF NOT EXISTS tool_calls (
			id TEXT PRIMARY KEY,
			connection_id TEXT NOT NULL,
			tool TEXT NOT NULL,
			arguments TEXT NOT NULL,
			result_text TEXT NOT NULL,
			is_error INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL,
			started_at TIMESTAMP NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_tool_calls_tool ON tool_calls(tool);
		CREATE INDEX IF NOT EXISTS idx_tool_calls_connection ON tool_calls(connection_id);
	`
	if _, err := l.db.Exec(schema); err != nil {
		return fmt.Errorf("executing schema: %w", err)
	}
	return nil
}

// RecordHTTP persists one HTTP exchange. Failures are logged and dropped.
func (l *SQLiteLog) RecordHTTP(ctx context.Context, rec HTTPRequest) {
	_, err := l.db.ExecContext(ctx, `
		INSERT INTO http_requests (id, method, path, remote_addr, status, duration_ms, started_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Method, rec.Path, rec.RemoteAddr, rec.Status,
		rec.Duration.Milliseconds(), rec.StartedAt.UTC())
	if err != nil {
		l.logger.Warn("failed to record HTTP request", "error", err)
	}
}

// RecordToolCall persists one tool invocation. Failures are logged and dropped.
func (l *SQLiteLog) RecordToolCall(ctx context.Context, rec ToolCall) {
	isError := 0
	if rec.IsError {
		isError = 1
	}
	_, err := l.db.ExecContext(ctx, `
		INSERT INTO tool_calls (id, connection_id, tool, arguments, result_text, is_error, duration_ms, started_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.ConnectionID, rec.Tool, rec.Arguments, rec.ResultText,
		isError, rec.Duration.Milliseconds(), rec.StartedAt.UTC())
	if err != nil {
		l.logger.Warn("failed to record tool call", "error", err)
	}
}

// Close closes the underlying database.
func (l *SQLiteLog) Close() error {
	return l.db.Close()
}
