// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/flowdeck/internal/ports/secondary"
)

// FlowStateRepository implements secondary.FlowStateRepository with SQLite.
type FlowStateRepository struct {
	db *sql.DB
}

// NewFlowStateRepository creates a new SQLite flow state repository.
func NewFlowStateRepository(db *sql.DB) *FlowStateRepository {
	return &FlowStateRepository{db: db}
}

// Load retrieves the stored flow state for a user. Returns (nil, nil) when
// no state has ever been persisted.
func (r *FlowStateRepository) Load(ctx context.Context, userID string) (*secondary.FlowStateRecord, error) {
	var (
		linkedTaskID sql.NullString
		targetEnd    sql.NullTime
	)

	record := &secondary.FlowStateRecord{}
	err := r.db.QueryRowContext(ctx,
		"SELECT user_id, mode, stage, paused, linked_task_id, remaining_seconds, total_seconds, target_end_time, last_updated FROM flow_state WHERE user_id = ?",
		userID,
	).Scan(&record.UserID, &record.Mode, &record.Stage, &record.Paused, &linkedTaskID, &record.RemainingSeconds, &record.TotalSeconds, &targetEnd, &record.LastUpdated)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load flow state: %w", err)
	}

	record.LinkedTaskID = linkedTaskID.String
	if targetEnd.Valid {
		record.TargetEnd = targetEnd.Time
	}

	return record, nil
}

// Save upserts the full flow state for a user.
func (r *FlowStateRepository) Save(ctx context.Context, state *secondary.FlowStateRecord) error {
	var linkedTaskID sql.NullString
	if state.LinkedTaskID != "" {
		linkedTaskID = sql.NullString{String: state.LinkedTaskID, Valid: true}
	}
	var targetEnd sql.NullTime
	if !state.TargetEnd.IsZero() {
		targetEnd = sql.NullTime{Time: state.TargetEnd, Valid: true}
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO flow_state (user_id, mode, stage, paused, linked_task_id, remaining_seconds, total_seconds, target_end_time, last_updated)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET
			mode = excluded.mode,
			stage = excluded.stage,
			paused = excluded.paused,
			linked_task_id = excluded.linked_task_id,
			remaining_seconds = excluded.remaining_seconds,
			total_seconds = excluded.total_seconds,
			target_end_time = excluded.target_end_time,
			last_updated = excluded.last_updated`,
		state.UserID, state.Mode, state.Stage, state.Paused, linkedTaskID, state.RemainingSeconds, state.TotalSeconds, targetEnd, state.LastUpdated,
	)
	if err != nil {
		return fmt.Errorf("failed to save flow state: %w", err)
	}

	return nil
}

// GetSettings retrieves per-user timer durations. Returns (nil, nil) when
// the user has never saved settings.
func (r *FlowStateRepository) GetSettings(ctx context.Context, userID string) (*secondary.FlowSettingsRecord, error) {
	record := &secondary.FlowSettingsRecord{}
	err := r.db.QueryRowContext(ctx,
		"SELECT user_id, focus_minutes, short_break_minutes, long_break_minutes FROM flow_settings WHERE user_id = ?",
		userID,
	).Scan(&record.UserID, &record.FocusMinutes, &record.ShortBreakMinutes, &record.LongBreakMinutes)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get flow settings: %w", err)
	}

	return record, nil
}

// SaveSettings upserts per-user timer durations.
func (r *FlowStateRepository) SaveSettings(ctx context.Context, settings *secondary.FlowSettingsRecord) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO flow_settings (user_id, focus_minutes, short_break_minutes, long_break_minutes)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET
			focus_minutes = excluded.focus_minutes,
			short_break_minutes = excluded.short_break_minutes,
			long_break_minutes = excluded.long_break_minutes`,
		settings.UserID, settings.FocusMinutes, settings.ShortBreakMinutes, settings.LongBreakMinutes,
	)
	if err != nil {
		return fmt.Errorf("failed to save flow settings: %w", err)
	}

	return nil
}

// Ensure FlowStateRepository implements the interface
var _ secondary.FlowStateRepository = (*FlowStateRepository)(nil)
