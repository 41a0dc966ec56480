package db

// SchemaSQL is the complete schema for fresh flowdeck installs.
//
// This is the SINGLE SOURCE OF TRUTH for the database schema. All repository
// tests use it via GetSchemaSQL(), so a column referenced by repository code
// that does not exist here fails immediately with "no such column" at test
// time rather than in production.
const SchemaSQL = `
-- Users (local profiles; no authentication, that lives outside this tool)
CREATE TABLE IF NOT EXISTS users (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Tasks (flat personal task list; weak reference target for flow linking)
CREATE TABLE IF NOT EXISTS tasks (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	name TEXT NOT NULL,
	note TEXT,
	completed INTEGER NOT NULL DEFAULT 0,
	completed_at DATETIME,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
);

-- Vision board tiles
CREATE TABLE IF NOT EXISTS vision_tiles (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	title TEXT NOT NULL,
	caption TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
);

-- Flow state (at most one active flow per user; the state machine is the
-- only writer). target_end_time is set exactly while stage='running' and
-- the timer is not paused; remaining_seconds is authoritative otherwise.
CREATE TABLE IF NOT EXISTS flow_state (
	user_id TEXT PRIMARY KEY,
	mode TEXT NOT NULL CHECK(mode IN ('focus', 'short_break', 'long_break')),
	stage TEXT NOT NULL CHECK(stage IN ('ready', 'running', 'completed')),
	paused INTEGER NOT NULL DEFAULT 0,
	linked_task_id TEXT,
	remaining_seconds INTEGER NOT NULL DEFAULT 0,
	total_seconds INTEGER NOT NULL DEFAULT 0,
	target_end_time DATETIME,
	last_updated DATETIME NOT NULL,
	FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
);

-- Per-user timer durations (minutes)
CREATE TABLE IF NOT EXISTS flow_settings (
	user_id TEXT PRIMARY KEY,
	focus_minutes INTEGER NOT NULL DEFAULT 25,
	short_break_minutes INTEGER NOT NULL DEFAULT 5,
	long_break_minutes INTEGER NOT NULL DEFAULT 15,
	FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
);

-- Session history (append-only; rows are never mutated after insert)
CREATE TABLE IF NOT EXISTS session_history (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id TEXT NOT NULL,
	task_id TEXT,
	session_type TEXT NOT NULL CHECK(session_type IN ('focus', 'short_break', 'long_break')),
	duration_seconds INTEGER NOT NULL,
	completed INTEGER NOT NULL DEFAULT 1,
	occurred_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
);

-- Reward catalog (static; seeded at init, read-only at runtime)
CREATE TABLE IF NOT EXISTS rewards (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	description TEXT NOT NULL,
	condition_type TEXT NOT NULL,
	threshold INTEGER NOT NULL,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Grant records. The UNIQUE constraint is what makes granting idempotent:
-- try_grant is INSERT OR IGNORE against it.
CREATE TABLE IF NOT EXISTS user_rewards (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id TEXT NOT NULL,
	reward_id TEXT NOT NULL,
	earned_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE,
	FOREIGN KEY (reward_id) REFERENCES rewards(id) ON DELETE CASCADE,
	UNIQUE(user_id, reward_id)
);

CREATE INDEX IF NOT EXISTS idx_tasks_user ON tasks(user_id);
CREATE INDEX IF NOT EXISTS idx_session_history_user ON session_history(user_id);
CREATE INDEX IF NOT EXISTS idx_rewards_condition ON rewards(condition_type);
`

// GetSchemaSQL returns the authoritative schema SQL.
// Tests use this to build in-memory databases that cannot drift.
func GetSchemaSQL() string {
	return SchemaSQL
}
