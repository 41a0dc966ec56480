package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/flowdeck/internal/ports/secondary"
)

// SessionHistoryRepository implements secondary.SessionHistoryRepository
// with SQLite. The table is append-only; nothing here mutates rows.
type SessionHistoryRepository struct {
	db *sql.DB
}

// NewSessionHistoryRepository creates a new SQLite session history repository.
func NewSessionHistoryRepository(db *sql.DB) *SessionHistoryRepository {
	return &SessionHistoryRepository{db: db}
}

// Append records a session and returns its row ID. occurred_at is stored as
// an RFC3339 UTC string; the window queries bind the same format so string
// comparison matches instant comparison.
func (r *SessionHistoryRepository) Append(ctx context.Context, session *secondary.SessionRecord) (int64, error) {
	var taskID sql.NullString
	if session.TaskID != "" {
		taskID = sql.NullString{String: session.TaskID, Valid: true}
	}
	occurredAt := session.OccurredAt
	if occurredAt == "" {
		occurredAt = time.Now().UTC().Format(time.RFC3339)
	}

	result, err := r.db.ExecContext(ctx,
		"INSERT INTO session_history (user_id, task_id, session_type, duration_seconds, completed, occurred_at) VALUES (?, ?, ?, ?, ?, ?)",
		session.UserID, taskID, session.SessionType, session.DurationSeconds, session.Completed, occurredAt,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to append session: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get session ID: %w", err)
	}

	return id, nil
}

// CountCompleted returns the number of completed sessions of a type.
func (r *SessionHistoryRepository) CountCompleted(ctx context.Context, userID, sessionType string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM session_history WHERE user_id = ? AND session_type = ? AND completed = 1",
		userID, sessionType,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count sessions: %w", err)
	}

	return count, nil
}

// CountCompletedSince counts completed sessions of a type on or after the
// given instant.
func (r *SessionHistoryRepository) CountCompletedSince(ctx context.Context, userID, sessionType string, since time.Time) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM session_history WHERE user_id = ? AND session_type = ? AND completed = 1 AND occurred_at >= ?",
		userID, sessionType, since.UTC().Format(time.RFC3339),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count sessions since: %w", err)
	}

	return count, nil
}

// TotalDurationSeconds sums completed session durations of a type.
func (r *SessionHistoryRepository) TotalDurationSeconds(ctx context.Context, userID, sessionType string) (int, error) {
	var total int
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(SUM(duration_seconds), 0) FROM session_history WHERE user_id = ? AND session_type = ? AND completed = 1",
		userID, sessionType,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to sum session durations: %w", err)
	}

	return total, nil
}

// ListRecent retrieves the most recent sessions, newest first.
func (r *SessionHistoryRepository) ListRecent(ctx context.Context, userID string, limit int) ([]*secondary.SessionRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, user_id, task_id, session_type, duration_seconds, completed, occurred_at FROM session_history WHERE user_id = ? ORDER BY id DESC LIMIT ?",
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*secondary.SessionRecord
	for rows.Next() {
		var (
			taskID     sql.NullString
			occurredAt time.Time
		)
		record := &secondary.SessionRecord{}
		if err := rows.Scan(&record.ID, &record.UserID, &taskID, &record.SessionType, &record.DurationSeconds, &record.Completed, &occurredAt); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		record.TaskID = taskID.String
		record.OccurredAt = occurredAt.Format(time.RFC3339)
		sessions = append(sessions, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sessions: %w", err)
	}

	return sessions, nil
}

// SummaryByTask aggregates completed focus time per linked task. Unlinked
// sessions come back as one row with an empty TaskID; deleted tasks keep
// their rows but lose their name.
func (r *SessionHistoryRepository) SummaryByTask(ctx context.Context, userID string) ([]*secondary.TaskFocusSummary, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT COALESCE(sh.task_id, ''), COALESCE(t.name, ''), COUNT(*), SUM(sh.duration_seconds)
		 FROM session_history sh
		 LEFT JOIN tasks t ON t.id = sh.task_id
		 WHERE sh.user_id = ? AND sh.session_type = 'focus' AND sh.completed = 1
		 GROUP BY sh.task_id
		 ORDER BY SUM(sh.duration_seconds) DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize sessions by task: %w", err)
	}
	defer rows.Close()

	var summaries []*secondary.TaskFocusSummary
	for rows.Next() {
		summary := &secondary.TaskFocusSummary{}
		if err := rows.Scan(&summary.TaskID, &summary.TaskName, &summary.Sessions, &summary.TotalSeconds); err != nil {
			return nil, fmt.Errorf("failed to scan task summary: %w", err)
		}
		summaries = append(summaries, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate task summaries: %w", err)
	}

	return summaries, nil
}

// Ensure SessionHistoryRepository implements the interface
var _ secondary.SessionHistoryRepository = (*SessionHistoryRepository)(nil)
