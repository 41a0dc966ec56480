// Package sqlite_test contains integration tests for SQLite repositories.
//
// # Schema Protection
//
// This file is the SINGLE POINT where the database schema is loaded for tests.
// All test setup functions use db.GetSchemaSQL() to ensure tests run against
// the authoritative schema, preventing drift between test and production.
//
// DO NOT hardcode CREATE TABLE statements in test files. Use setupTestDB()
// and the seed* helpers instead.
package sqlite_test

import (
	"database/sql"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/flowdeck/internal/db"
)

// setupTestDB creates an in-memory database with the authoritative schema.
// This is the single shared test database setup function for all repository
// tests. Uses db.GetSchemaSQL() to prevent test schemas from drifting.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	if _, err := testDB.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("failed to enable foreign keys: %v", err)
	}

	// Use the authoritative schema from schema.go
	if _, err := testDB.Exec(db.GetSchemaSQL()); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// seedUser inserts a test user and returns its ID.
func seedUser(t *testing.T, db *sql.DB, id string) string {
	t.Helper()
	if id == "" {
		id = "USER-001"
	}
	if _, err := db.Exec("INSERT INTO users (id, name) VALUES (?, 'Test User')", id); err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return id
}

// seedTask inserts a test task and returns its ID.
func seedTask(t *testing.T, db *sql.DB, id, userID, name string) string {
	t.Helper()
	if id == "" {
		id = "TASK-001"
	}
	if userID == "" {
		userID = "USER-001"
	}
	if name == "" {
		name = "Test Task"
	}
	if _, err := db.Exec("INSERT INTO tasks (id, user_id, name) VALUES (?, ?, ?)", id, userID, name); err != nil {
		t.Fatalf("failed to seed task: %v", err)
	}
	return id
}

// seedSession inserts a completed session row. occurred_at is written in the
// same RFC3339 UTC format the repository uses.
func seedSession(t *testing.T, db *sql.DB, userID, taskID, sessionType string, durationSeconds int, occurredAt time.Time) {
	t.Helper()
	var task any
	if taskID != "" {
		task = taskID
	}
	_, err := db.Exec(
		"INSERT INTO session_history (user_id, task_id, session_type, duration_seconds, completed, occurred_at) VALUES (?, ?, ?, ?, 1, ?)",
		userID, task, sessionType, durationSeconds, occurredAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		t.Fatalf("failed to seed session: %v", err)
	}
}

// seedReward inserts a catalog rule.
func seedReward(t *testing.T, db *sql.DB, id, name, conditionType string, threshold int) string {
	t.Helper()
	_, err := db.Exec(
		"INSERT INTO rewards (id, name, description, condition_type, threshold) VALUES (?, ?, 'Test reward', ?, ?)",
		id, name, conditionType, threshold,
	)
	if err != nil {
		t.Fatalf("failed to seed reward: %v", err)
	}
	return id
}
