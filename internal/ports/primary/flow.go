// Package primary defines the primary ports (driving interfaces) for the
// application: the service contracts the CLI layer calls.
package primary

import "context"

// FlowService is the primary port for the focus flow state machine.
// The active user is carried in the context (ctxutil.WithUserID).
type FlowService interface {
	// Status returns the current flow snapshot without mutating anything.
	Status(ctx context.Context) (*FlowSnapshot, error)

	// SetMode configures the flow for a mode ("focus", "short_break",
	// "long_break") and resets it to ready. Break modes are refused while
	// the user has no completed focus sessions.
	SetMode(ctx context.Context, mode string) (*FlowSnapshot, error)

	// Start begins the countdown from ready, or resumes a paused one.
	Start(ctx context.Context) (*FlowSnapshot, error)

	// Pause freezes the running countdown.
	Pause(ctx context.Context) (*FlowSnapshot, error)

	// Resume continues a paused countdown.
	Resume(ctx context.Context) (*FlowSnapshot, error)

	// Tick refreshes remaining time and runs the completion path when the
	// segment has elapsed. Callers invoke it at their own cadence.
	Tick(ctx context.Context) (*TickResult, error)

	// Reset cancels the current segment and returns to ready. Partial
	// elapsed time is discarded, never credited.
	Reset(ctx context.Context) (*FlowSnapshot, error)

	// LinkTask binds the flow to a task; rejected while running.
	LinkTask(ctx context.Context, taskID string) (*FlowSnapshot, error)

	// UnlinkTask clears the task binding; rejected while running.
	UnlinkTask(ctx context.Context) (*FlowSnapshot, error)

	// GetSettings returns the user's timer durations.
	GetSettings(ctx context.Context) (*FlowSettings, error)

	// UpdateSettings saves timer durations after bounds validation.
	UpdateSettings(ctx context.Context, settings FlowSettings) error
}

// FlowSnapshot is the caller-facing view of one user's flow.
type FlowSnapshot struct {
	Mode             string
	Stage            string
	Paused           bool
	RemainingSeconds int
	LinkedTaskID     string
	LinkedTaskName   string // resolved for display; empty when no task or task deleted
	Warnings         []string
}

// TickResult reports the outcome of one tick.
type TickResult struct {
	Snapshot  *FlowSnapshot
	Completed bool
	SessionID int64 // history row ID when Completed
	Granted   []GrantedReward
}

// FlowSettings holds timer durations in minutes.
type FlowSettings struct {
	FocusMinutes      int
	ShortBreakMinutes int
	LongBreakMinutes  int
}
