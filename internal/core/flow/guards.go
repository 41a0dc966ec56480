package flow

import "fmt"

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string
}

// Error converts the guard result to an error if not allowed.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return fmt.Errorf("%s", r.Reason)
}

// ConfigureContext provides context for mode configuration guards.
type ConfigureContext struct {
	Stage                  Stage
	RequestedMode          Mode
	CompletedFocusSessions int
}

// CanConfigure evaluates whether the flow can switch to a new mode.
// Rules:
// - Duration is locked while running (paused counts as running)
// - Break modes require at least one completed focus session
func CanConfigure(ctx ConfigureContext) GuardResult {
	if ctx.Stage == StageRunning {
		return GuardResult{
			Allowed: false,
			Reason:  "cannot change mode while a segment is active. Reset first with: flowdeck focus reset",
		}
	}
	if ctx.RequestedMode.IsBreak() && ctx.CompletedFocusSessions == 0 {
		return GuardResult{
			Allowed: false,
			Reason:  "complete a focus session before taking a break",
		}
	}
	return GuardResult{Allowed: true}
}

// StartContext provides context for start guards.
type StartContext struct {
	Stage  Stage
	Paused bool
}

// CanStart evaluates whether the timer can start.
// Rules:
// - Allowed from ready, or from running while paused (resume)
func CanStart(ctx StartContext) GuardResult {
	if ctx.Stage == StageReady {
		return GuardResult{Allowed: true}
	}
	if ctx.Stage == StageRunning && ctx.Paused {
		return GuardResult{Allowed: true}
	}
	return GuardResult{
		Allowed: false,
		Reason:  fmt.Sprintf("cannot start from %s stage", ctx.Stage),
	}
}

// CanPause evaluates whether the timer can be paused.
func CanPause(ctx StartContext) GuardResult {
	if ctx.Stage != StageRunning || ctx.Paused {
		return GuardResult{
			Allowed: false,
			Reason:  "no active countdown to pause",
		}
	}
	return GuardResult{Allowed: true}
}

// CanResume evaluates whether a paused timer can resume.
func CanResume(ctx StartContext) GuardResult {
	if ctx.Stage != StageRunning || !ctx.Paused {
		return GuardResult{
			Allowed: false,
			Reason:  "timer is not paused",
		}
	}
	return GuardResult{Allowed: true}
}

// LinkContext provides context for task link/unlink guards.
type LinkContext struct {
	Stage Stage
}

// CanLinkTask evaluates whether the task binding may change.
// The binding for an active segment is immutable so that completed time is
// never misattributed.
func CanLinkTask(ctx LinkContext) GuardResult {
	if ctx.Stage == StageRunning {
		return GuardResult{
			Allowed: false,
			Reason:  "cannot change the linked task while a segment is active",
		}
	}
	return GuardResult{Allowed: true}
}
