package logging

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"strings"
	"testing"
	"time"

	"eventbook/internal/store"
)

// testDB creates a temporary test database with migrations applied.
func testDB(t *testing.T) (*sql.DB, func()) {
	t.Helper()

	f, err := os.CreateTemp("", "eventbook-logging-test-*.db")
	if err != nil {
		t.Fatalf("creating temp file: %v", err)
	}
	dbPath := f.Name()
	_ = f.Close()

	db, err := store.NewDB(dbPath)
	if err != nil {
		_ = os.Remove(dbPath)
		t.Fatalf("NewDB: %v", err)
	}

	if err := store.Migrate(db); err != nil {
		_ = db.Close()
		_ = os.Remove(dbPath)
		t.Fatalf("Migrate: %v", err)
	}

	cleanup := func() {
		_ = db.Close()
		_ = os.Remove(dbPath)
	}

	return db, cleanup
}

// discardHandler is a slog.Handler that discards all logs.
type discardHandler struct{}

func (h discardHandler) Enabled(context.Context, slog.Level) bool  { return true }
func (h discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (h discardHandler) WithAttrs([]slog.Attr) slog.Handler        { return h }
func (h discardHandler) WithGroup(string) slog.Handler             { return h }

func listEntries(t *testing.T, db *sql.DB) []store.AuditEntry {
	t.Helper()

	q := store.New(db)
	entries, err := q.ListAuditEntries(context.Background(), store.ListAuditEntriesParams{
		Limit:  10,
		Offset: 0,
	})
	if err != nil {
		t.Fatalf("ListAuditEntries: %v", err)
	}
	return entries
}

func TestAuditLogHandler_Handle_ErrorLevel(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	handler := NewAuditLogHandler(discardHandler{}, db)
	logger := slog.New(handler)

	logger.Error("database connection failed", "host", "localhost", "port", 5432)

	time.Sleep(50 * time.Millisecond)

	entries := listEntries(t, db)
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].Level != store.AuditLevelError {
		t.Errorf("Level = %q, want %q", entries[0].Level, store.AuditLevelError)
	}
	if entries[0].Message != "database connection failed" {
		t.Errorf("Message = %q, want %q", entries[0].Message, "database connection failed")
	}
}

func TestAuditLogHandler_Handle_InfoLevel_NotCaptured(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	handler := NewAuditLogHandler(discardHandler{}, db)
	logger := slog.New(handler)

	logger.Info("server started", "port", 8080)

	time.Sleep(50 * time.Millisecond)

	entries := listEntries(t, db)
	if len(entries) != 0 {
		t.Errorf("expected 0 entries for INFO level, got %d", len(entries))
	}
}

func TestAuditLogHandler_Handle_CustomLevel(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	handler := NewAuditLogHandlerWithLevel(discardHandler{}, db, slog.LevelInfo)
	logger := slog.New(handler)

	logger.Info("server started", "port", 8080)

	time.Sleep(50 * time.Millisecond)

	entries := listEntries(t, db)
	if len(entries) != 1 {
		t.Errorf("expected 1 entry with custom INFO level, got %d", len(entries))
	}
}

func TestAuditLogHandler_CategoryInference(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	handler := NewAuditLogHandler(discardHandler{}, db)
	logger := slog.New(handler)

	testCases := []struct {
		message          string
		expectedCategory string
	}{
		{"login attempt blocked", store.AuditCategoryAuth},
		{"logout completed", store.AuditCategoryAuth},
		{"contact update failed", store.AuditCategoryContact},
		{"event delete failed", store.AuditCategoryEvent},
		{"category save failed", store.AuditCategoryCategory},
		{"unknown failure occurred", store.AuditCategorySystem},
	}

	for _, tc := range testCases {
		_, _ = db.Exec("DELETE FROM audit_log")

		logger.Error(tc.message)
		time.Sleep(50 * time.Millisecond)

		entries := listEntries(t, db)
		if len(entries) != 1 {
			t.Errorf("message %q: expected 1 entry, got %d", tc.message, len(entries))
			continue
		}
		if entries[0].Category != tc.expectedCategory {
			t.Errorf("message %q: Category = %q, want %q", tc.message, entries[0].Category, tc.expectedCategory)
		}
	}
}

func TestAuditLogHandler_ExplicitCategory(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	handler := NewAuditLogHandler(discardHandler{}, db)
	logger := slog.New(handler)

	logger.Error("something happened", "category", store.AuditCategoryContact)
	time.Sleep(50 * time.Millisecond)

	entries := listEntries(t, db)
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].Category != store.AuditCategoryContact {
		t.Errorf("Category = %q, want %q (explicit category should override)", entries[0].Category, store.AuditCategoryContact)
	}
}

func TestAuditLogHandler_UserIDExtraction(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	handler := NewAuditLogHandler(discardHandler{}, db)
	logger := slog.New(handler)

	ctx := context.Background()
	q := store.New(db)
	now := time.Now()
	user, err := q.CreateUser(ctx, store.CreateUserParams{
		Email:        "audit@example.com",
		PasswordHash: "hash",
		Role:         store.RoleUser,
		Name:         "Audit User",
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	logger.Warn("access denied", "user_id", user.ID)
	time.Sleep(50 * time.Millisecond)

	entries := listEntries(t, db)
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if !entries[0].UserID.Valid || entries[0].UserID.Int64 != user.ID {
		t.Errorf("UserID = %+v, want %d", entries[0].UserID, user.ID)
	}
}

func TestAuditLogHandler_MetadataExtraction(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	handler := NewAuditLogHandler(discardHandler{}, db)
	logger := slog.New(handler)

	logger.Error("request failed",
		"status_code", 500,
		"path", "/pl/event",
	)
	time.Sleep(50 * time.Millisecond)

	entries := listEntries(t, db)
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}

	metadata := entries[0].Metadata
	if metadata == "{}" {
		t.Error("Metadata should not be empty")
	}
	if !strings.Contains(metadata, "status_code") {
		t.Errorf("Metadata should contain 'status_code': %s", metadata)
	}
	if !strings.Contains(metadata, "path") {
		t.Errorf("Metadata should contain 'path': %s", metadata)
	}
}

func TestAuditLogHandler_MultipleEntries(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	handler := NewAuditLogHandler(discardHandler{}, db)
	logger := slog.New(handler)

	logger.Error("error 1")
	logger.Warn("warning 1")
	logger.Error("error 2")
	logger.Info("info 1") // not captured

	time.Sleep(100 * time.Millisecond)

	entries := listEntries(t, db)
	if len(entries) != 3 {
		t.Errorf("expected 3 entries (2 errors + 1 warning), got %d", len(entries))
	}
}

func TestEscapeJSON(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{`hello`, `hello`},
		{`hello "world"`, `hello \"world\"`},
		{`path\to\file`, `path\\to\\file`},
		{"line1\nline2", `line1\nline2`},
		{"col1\tcol2", `col1\tcol2`},
		{"return\rhere", `return\rhere`},
	}

	for _, tc := range testCases {
		result := escapeJSON(tc.input)
		if result != tc.expected {
			t.Errorf("escapeJSON(%q) = %q, want %q", tc.input, result, tc.expected)
		}
	}
}

func TestSlogLevelToAuditLevel(t *testing.T) {
	testCases := []struct {
		level    slog.Level
		expected string
	}{
		{slog.LevelDebug, store.AuditLevelInfo},
		{slog.LevelInfo, store.AuditLevelInfo},
		{slog.LevelWarn, store.AuditLevelWarning},
		{slog.LevelError, store.AuditLevelError},
		{slog.LevelError + 4, store.AuditLevelError},
	}

	for _, tc := range testCases {
		result := slogLevelToAuditLevel(tc.level)
		if result != tc.expected {
			t.Errorf("slogLevelToAuditLevel(%v) = %q, want %q", tc.level, result, tc.expected)
		}
	}
}
