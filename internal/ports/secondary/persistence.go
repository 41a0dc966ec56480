// Package secondary defines the secondary ports (driven adapters) for the
// application. These are the interfaces through which the application drives
// external systems.
package secondary

import (
	"context"
	"time"
)

// FlowStateRepository defines the secondary port for the persistent flow
// store: one durable record per user.
type FlowStateRepository interface {
	// Load retrieves the stored flow state for a user.
	// Returns (nil, nil) when no state has ever been persisted.
	Load(ctx context.Context, userID string) (*FlowStateRecord, error)

	// Save upserts the full flow state for a user.
	Save(ctx context.Context, state *FlowStateRecord) error

	// GetSettings retrieves per-user timer durations.
	// Returns (nil, nil) when the user has never saved settings.
	GetSettings(ctx context.Context, userID string) (*FlowSettingsRecord, error)

	// SaveSettings upserts per-user timer durations.
	SaveSettings(ctx context.Context, settings *FlowSettingsRecord) error
}

// FlowStateRecord represents a flow state as stored in persistence.
// TargetEnd and LastUpdated stay as time.Time because the resume protocol
// does arithmetic on them; display formatting happens in the service layer.
type FlowStateRecord struct {
	UserID           string
	Mode             string
	Stage            string
	Paused           bool
	LinkedTaskID     string
	RemainingSeconds int
	TotalSeconds     int
	TargetEnd        time.Time // zero when absent
	LastUpdated      time.Time
}

// FlowSettingsRecord represents per-user timer durations in minutes.
type FlowSettingsRecord struct {
	UserID            string
	FocusMinutes      int
	ShortBreakMinutes int
	LongBreakMinutes  int
}

// SessionHistoryRepository defines the secondary port for the append-only
// session log and its aggregate read path.
type SessionHistoryRepository interface {
	// Append records a completed (or abandoned) session and returns its ID.
	Append(ctx context.Context, session *SessionRecord) (int64, error)

	// CountCompleted returns the number of completed sessions of a type.
	CountCompleted(ctx context.Context, userID, sessionType string) (int, error)

	// CountCompletedSince counts completed sessions of a type on or after
	// the given instant.
	CountCompletedSince(ctx context.Context, userID, sessionType string, since time.Time) (int, error)

	// TotalDurationSeconds sums completed session durations of a type.
	TotalDurationSeconds(ctx context.Context, userID, sessionType string) (int, error)

	// ListRecent retrieves the most recent sessions, newest first.
	ListRecent(ctx context.Context, userID string, limit int) ([]*SessionRecord, error)

	// SummaryByTask aggregates completed focus time per linked task.
	// Unlinked sessions appear as a row with an empty TaskID.
	SummaryByTask(ctx context.Context, userID string) ([]*TaskFocusSummary, error)
}

// SessionRecord represents one row of the session history log.
type SessionRecord struct {
	ID              int64
	UserID          string
	TaskID          string // empty when the session was not linked to a task
	SessionType     string
	DurationSeconds int
	Completed       bool
	OccurredAt      string
}

// TaskFocusSummary is an aggregate of focus sessions grouped by task.
type TaskFocusSummary struct {
	TaskID       string // empty for unlinked sessions
	TaskName     string
	Sessions     int
	TotalSeconds int
}

// RewardRepository defines the secondary port for the reward catalog and
// grant store.
type RewardRepository interface {
	// ListRules retrieves the whole catalog.
	ListRules(ctx context.Context) ([]*RewardRuleRecord, error)

	// ListRulesByCondition retrieves catalog rules for one condition type.
	ListRulesByCondition(ctx context.Context, conditionType string) ([]*RewardRuleRecord, error)

	// TryGrant atomically records a grant. Returns false when the grant
	// already existed; a lost insert race reports the same way and is not
	// an error.
	TryGrant(ctx context.Context, userID, rewardID string) (bool, error)

	// HasGrant reports whether the user already earned a reward.
	HasGrant(ctx context.Context, userID, rewardID string) (bool, error)

	// ListEarned retrieves the user's earned rewards, newest first.
	ListEarned(ctx context.Context, userID string) ([]*EarnedRewardRecord, error)
}

// RewardRuleRecord represents one catalog entry.
type RewardRuleRecord struct {
	ID            string
	Name          string
	Description   string
	ConditionType string
	Threshold     int
}

// EarnedRewardRecord joins a grant with its catalog entry.
type EarnedRewardRecord struct {
	RewardID    string
	Name        string
	Description string
	EarnedAt    string
}

// TaskRepository defines the secondary port for task persistence and the
// task-side aggregate counters the reward engine reads.
type TaskRepository interface {
	// Create persists a new task.
	Create(ctx context.Context, task *TaskRecord) error

	// GetByID retrieves a task by its ID, scoped to a user.
	GetByID(ctx context.Context, userID, id string) (*TaskRecord, error)

	// List retrieves tasks matching the given filters.
	List(ctx context.Context, userID string, filters TaskFilters) ([]*TaskRecord, error)

	// SetCompleted marks a task complete or reopens it.
	SetCompleted(ctx context.Context, userID, id string, completed bool) error

	// Delete removes a task.
	Delete(ctx context.Context, userID, id string) error

	// GetNextID returns the next available task ID.
	GetNextID(ctx context.Context) (string, error)

	// CountCompleted returns the lifetime count of completed tasks.
	CountCompleted(ctx context.Context, userID string) (int, error)

	// CountCompletedSince counts tasks completed on or after the instant.
	CountCompletedSince(ctx context.Context, userID string, since time.Time) (int, error)

	// CountDistinctCompletionDaysSince counts distinct calendar days with a
	// task completion on or after the instant.
	CountDistinctCompletionDaysSince(ctx context.Context, userID string, since time.Time) (int, error)

	// Resolve returns the task's display name, or "" when the task no
	// longer exists. Used for weak references from the flow state.
	Resolve(ctx context.Context, userID, id string) (string, error)
}

// TaskRecord represents a task as stored in persistence.
type TaskRecord struct {
	ID          string
	UserID      string
	Name        string
	Note        string
	Completed   bool
	CompletedAt string
	CreatedAt   string
}

// TaskFilters contains filter options for querying tasks.
type TaskFilters struct {
	Completed *bool
}

// VisionRepository defines the secondary port for vision board tiles.
type VisionRepository interface {
	// Create persists a new tile.
	Create(ctx context.Context, tile *VisionTileRecord) error

	// List retrieves all tiles for a user.
	List(ctx context.Context, userID string) ([]*VisionTileRecord, error)

	// Delete removes a tile.
	Delete(ctx context.Context, userID, id string) error

	// GetNextID returns the next available tile ID.
	GetNextID(ctx context.Context) (string, error)

	// Count returns the number of tiles on the user's board.
	Count(ctx context.Context, userID string) (int, error)
}

// VisionTileRecord represents a vision board tile as stored in persistence.
type VisionTileRecord struct {
	ID        string
	UserID    string
	Title     string
	Caption   string
	CreatedAt string
}

// UserRepository defines the secondary port for local user profiles.
type UserRepository interface {
	// Create persists a new user.
	Create(ctx context.Context, user *UserRecord) error

	// GetByID retrieves a user by ID.
	GetByID(ctx context.Context, id string) (*UserRecord, error)

	// GetNextID returns the next available user ID.
	GetNextID(ctx context.Context) (string, error)
}

// UserRecord represents a local user profile.
type UserRecord struct {
	ID        string
	Name      string
	CreatedAt string
}
