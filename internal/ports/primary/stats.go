package primary

import "context"

// StatsService is the primary port for aggregate focus statistics.
type StatsService interface {
	// Summary computes the user's aggregate counters from session history.
	// Metrics are always computed fresh; nothing here is cached.
	Summary(ctx context.Context) (*StatsSummary, error)

	// RecentSessions lists the most recent history rows, newest first.
	RecentSessions(ctx context.Context, limit int) ([]*SessionEntry, error)
}

// StatsSummary holds aggregate counters over session history.
type StatsSummary struct {
	FocusSessions   int
	FocusSeconds    int
	BreaksCompleted int
	BreakSeconds    int
	TaskSummaries   []TaskFocus
	UnlinkedSeconds int
}

// TaskFocus is focus time aggregated for one task.
type TaskFocus struct {
	TaskID       string
	TaskName     string
	Sessions     int
	TotalSeconds int
}

// SessionEntry is one row of session history for display.
type SessionEntry struct {
	ID              int64
	SessionType     string
	TaskID          string
	DurationSeconds int
	Completed       bool
	OccurredAt      string
}
