package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/flowdeck/internal/ports/secondary"
)

const taskSelectCols = "id, user_id, name, note, completed, completed_at, created_at"

// TaskRepository implements secondary.TaskRepository with SQLite.
type TaskRepository struct {
	db *sql.DB
}

// NewTaskRepository creates a new SQLite task repository.
func NewTaskRepository(db *sql.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create persists a new task.
func (r *TaskRepository) Create(ctx context.Context, task *secondary.TaskRecord) error {
	var note sql.NullString
	if task.Note != "" {
		note = sql.NullString{String: task.Note, Valid: true}
	}

	_, err := r.db.ExecContext(ctx,
		"INSERT INTO tasks (id, user_id, name, note) VALUES (?, ?, ?, ?)",
		task.ID, task.UserID, task.Name, note,
	)
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}

	return nil
}

// GetByID retrieves a task by its ID, scoped to a user.
func (r *TaskRepository) GetByID(ctx context.Context, userID, id string) (*secondary.TaskRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+taskSelectCols+" FROM tasks WHERE user_id = ? AND id = ?",
		userID, id,
	)

	record, err := scanTaskRow(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("task %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	return record, nil
}

// List retrieves tasks matching the given filters.
func (r *TaskRepository) List(ctx context.Context, userID string, filters secondary.TaskFilters) ([]*secondary.TaskRecord, error) {
	query := "SELECT " + taskSelectCols + " FROM tasks WHERE user_id = ?"
	args := []any{userID}

	if filters.Completed != nil {
		query += " AND completed = ?"
		args = append(args, *filters.Completed)
	}
	query += " ORDER BY id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*secondary.TaskRecord
	for rows.Next() {
		record, err := scanTaskRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tasks: %w", err)
	}

	return tasks, nil
}

// SetCompleted marks a task complete or reopens it. Completion stamps the
// time; reopening clears it.
func (r *TaskRepository) SetCompleted(ctx context.Context, userID, id string, completed bool) error {
	var result sql.Result
	var err error
	if completed {
		// RFC3339 UTC, matching the format the window counters bind.
		result, err = r.db.ExecContext(ctx,
			"UPDATE tasks SET completed = 1, completed_at = ? WHERE user_id = ? AND id = ?",
			time.Now().UTC().Format(time.RFC3339), userID, id,
		)
	} else {
		result, err = r.db.ExecContext(ctx,
			"UPDATE tasks SET completed = 0, completed_at = NULL WHERE user_id = ? AND id = ?",
			userID, id,
		)
	}
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("task %s not found", id)
	}

	return nil
}

// Delete removes a task.
func (r *TaskRepository) Delete(ctx context.Context, userID, id string) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM tasks WHERE user_id = ? AND id = ?",
		userID, id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("task %s not found", id)
	}

	return nil
}

// GetNextID returns the next available task ID.
func (r *TaskRepository) GetNextID(ctx context.Context) (string, error) {
	var maxID int
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(CAST(SUBSTR(id, 6) AS INTEGER)), 0) FROM tasks",
	).Scan(&maxID)
	if err != nil {
		return "", fmt.Errorf("failed to get next task ID: %w", err)
	}

	return fmt.Sprintf("TASK-%03d", maxID+1), nil
}

// CountCompleted returns the lifetime count of completed tasks.
func (r *TaskRepository) CountCompleted(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM tasks WHERE user_id = ? AND completed = 1",
		userID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count completed tasks: %w", err)
	}

	return count, nil
}

// CountCompletedSince counts tasks completed on or after the instant.
func (r *TaskRepository) CountCompletedSince(ctx context.Context, userID string, since time.Time) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM tasks WHERE user_id = ? AND completed = 1 AND completed_at >= ?",
		userID, since.UTC().Format(time.RFC3339),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count completed tasks since: %w", err)
	}

	return count, nil
}

// CountDistinctCompletionDaysSince counts distinct calendar days with a task
// completion on or after the instant.
func (r *TaskRepository) CountDistinctCompletionDaysSince(ctx context.Context, userID string, since time.Time) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(DISTINCT DATE(completed_at)) FROM tasks WHERE user_id = ? AND completed = 1 AND completed_at >= ?",
		userID, since.UTC().Format(time.RFC3339),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count completion days: %w", err)
	}

	return count, nil
}

// Resolve returns the task's display name, or "" when the task no longer
// exists. Missing is not an error here; the flow holds weak references.
func (r *TaskRepository) Resolve(ctx context.Context, userID, id string) (string, error) {
	var name string
	err := r.db.QueryRowContext(ctx,
		"SELECT name FROM tasks WHERE user_id = ? AND id = ?",
		userID, id,
	).Scan(&name)

	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to resolve task: %w", err)
	}

	return name, nil
}

// scanner abstracts *sql.Row and *sql.Rows for shared scan helpers.
type scanner interface {
	Scan(dest ...any) error
}

func scanTaskRow(s scanner) (*secondary.TaskRecord, error) {
	var (
		note        sql.NullString
		completedAt sql.NullTime
		createdAt   time.Time
	)

	record := &secondary.TaskRecord{}
	if err := s.Scan(&record.ID, &record.UserID, &record.Name, &note, &record.Completed, &completedAt, &createdAt); err != nil {
		return nil, err
	}

	record.Note = note.String
	if completedAt.Valid {
		record.CompletedAt = completedAt.Time.Format(time.RFC3339)
	}
	record.CreatedAt = createdAt.Format(time.RFC3339)

	return record, nil
}

// Ensure TaskRepository implements the interface
var _ secondary.TaskRepository = (*TaskRepository)(nil)
