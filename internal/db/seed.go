package db

import (
	"database/sql"
	"fmt"
	"time"
)

// defaultRewards is the built-in badge catalog. Inserted once on a fresh
// database; existing installs keep whatever catalog they have.
var defaultRewards = []struct {
	id, name, description, conditionType string
	threshold                            int
}{
	{"RWD-001", "First Task", "Completed your first task", "task_completion", 1},
	{"RWD-002", "Focus Starter", "Completed your first focus session", "focus_completion", 1},
	{"RWD-003", "Consistency Champion", "Completed tasks on 3 consecutive days", "consecutive_days", 3},
	{"RWD-004", "Focus Pro", "Completed 5 focus sessions", "focus_sessions_total", 5},
	{"RWD-005", "Task Streak", "Completed 3 tasks within a day", "consecutive_tasks", 3},
	{"RWD-006", "Vision Creator", "Added your first vision board tile", "vision_board_created", 1},
	{"RWD-007", "Focus Legend", "Completed 10 focus sessions", "focus_sessions_total", 10},
	{"RWD-008", "Task Legend", "Completed 10 tasks", "tasks_total", 10},
	{"RWD-009", "Deep Worker", "Accumulated 10 hours of focus time", "focus_time", 36000},
	{"RWD-010", "Back to Back", "Completed 4 focus sessions within a day", "consecutive_focus", 4},
}

// SeedRewardCatalog inserts the default badge catalog if the rewards table
// is empty. Safe to call on every startup.
func SeedRewardCatalog(database *sql.DB) error {
	var count int
	if err := database.QueryRow("SELECT COUNT(*) FROM rewards").Scan(&count); err != nil {
		return fmt.Errorf("failed to count rewards: %w", err)
	}
	if count > 0 {
		return nil
	}

	for _, r := range defaultRewards {
		if _, err := database.Exec(
			"INSERT INTO rewards (id, name, description, condition_type, threshold) VALUES (?, ?, ?, ?, ?)",
			r.id, r.name, r.description, r.conditionType, r.threshold,
		); err != nil {
			return fmt.Errorf("seed rewards: %w", err)
		}
	}

	return nil
}

// SeedFixtures populates the database with development fixtures.
// Assumes the reward catalog is already seeded and a user exists.
func SeedFixtures(database *sql.DB, userID string) error {
	now := time.Now().UTC().Format(time.RFC3339)

	tasks := []struct{ id, name, note string }{
		{"TASK-001", "Write project proposal", "Due end of week"},
		{"TASK-002", "Review pull requests", ""},
		{"TASK-003", "Plan sprint backlog", "Carry over unfinished items"},
		{"TASK-004", "Clear email inbox", ""},
	}
	for _, t := range tasks {
		if _, err := database.Exec(
			"INSERT INTO tasks (id, user_id, name, note, created_at) VALUES (?, ?, ?, ?, ?)",
			t.id, userID, t.name, t.note, now,
		); err != nil {
			return fmt.Errorf("seed tasks: %w", err)
		}
	}

	tiles := []struct{ id, title, caption string }{
		{"TILE-001", "Run a marathon", "Training plan starts in spring"},
		{"TILE-002", "Learn woodworking", ""},
	}
	for _, ti := range tiles {
		if _, err := database.Exec(
			"INSERT INTO vision_tiles (id, user_id, title, caption, created_at) VALUES (?, ?, ?, ?, ?)",
			ti.id, userID, ti.title, ti.caption, now,
		); err != nil {
			return fmt.Errorf("seed vision tiles: %w", err)
		}
	}

	sessions := []struct {
		sessionType string
		duration    int
	}{
		{"focus", 1500},
		{"short_break", 300},
		{"focus", 1500},
	}
	for _, s := range sessions {
		if _, err := database.Exec(
			"INSERT INTO session_history (user_id, task_id, session_type, duration_seconds, completed, occurred_at) VALUES (?, NULL, ?, ?, 1, ?)",
			userID, s.sessionType, s.duration, now,
		); err != nil {
			return fmt.Errorf("seed session history: %w", err)
		}
	}

	return nil
}
