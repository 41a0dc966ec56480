package flow

import (
	"fmt"
	"time"
)

// Configure switches the flow to a new mode and resets it to ready with the
// configured duration for that mode. completedFocus is the user's lifetime
// count of completed focus sessions, used to gate break modes.
func Configure(s State, mode Mode, d Durations, completedFocus int, now time.Time) (State, error) {
	if !mode.Valid() {
		return s, fmt.Errorf("unknown mode %q", mode)
	}
	guard := CanConfigure(ConfigureContext{
		Stage:                  s.Stage,
		RequestedMode:          mode,
		CompletedFocusSessions: completedFocus,
	})
	if !guard.Allowed {
		return s, guard.Error()
	}

	s.Mode = mode
	s.Stage = StageReady
	s.Paused = false
	s.RemainingSeconds = d.Seconds(mode)
	s.TotalSeconds = d.Seconds(mode)
	s.TargetEnd = time.Time{}
	s.LastUpdated = now
	return s, nil
}

// Start begins the countdown from ready, or resumes a paused one. The
// absolute end time is computed from the clock reading; everything after
// this derives remaining time by subtraction.
func Start(s State, now time.Time) (State, error) {
	guard := CanStart(StartContext{Stage: s.Stage, Paused: s.Paused})
	if !guard.Allowed {
		return s, guard.Error()
	}

	s.Stage = StageRunning
	s.Paused = false
	s.TargetEnd = now.Add(time.Duration(s.RemainingSeconds) * time.Second)
	s.LastUpdated = now
	return s, nil
}

// Pause freezes a running countdown: remaining time is captured from the
// target end and the target end is cleared.
func Pause(s State, now time.Time) (State, error) {
	guard := CanPause(StartContext{Stage: s.Stage, Paused: s.Paused})
	if !guard.Allowed {
		return s, guard.Error()
	}

	s.RemainingSeconds = s.RemainingAt(now)
	s.Paused = true
	s.TargetEnd = time.Time{}
	s.LastUpdated = now
	return s, nil
}

// Resume recomputes a fresh target end from the frozen remaining seconds.
func Resume(s State, now time.Time) (State, error) {
	guard := CanResume(StartContext{Stage: s.Stage, Paused: s.Paused})
	if !guard.Allowed {
		return s, guard.Error()
	}
	return Start(s, now)
}

// Tick refreshes remaining time from the clock. It is non-blocking and safe
// to call at any cadence; outside an active countdown it is a no-op. The
// second return value reports whether the segment has elapsed, in which case
// the caller is expected to run its completion path.
func Tick(s State, now time.Time) (State, bool) {
	if s.Stage != StageRunning || s.Paused {
		return s, false
	}
	s.RemainingSeconds = s.RemainingAt(now)
	s.LastUpdated = now
	return s, s.RemainingSeconds <= 0
}

// Complete marks the segment as elapsed and clears the countdown. Recording
// the session and evaluating rewards are the caller's responsibility; this
// only moves the state machine.
func Complete(s State, now time.Time) State {
	s.Stage = StageCompleted
	s.Paused = false
	s.RemainingSeconds = 0
	s.TargetEnd = time.Time{}
	s.LastUpdated = now
	return s
}

// Reset cancels the current segment and returns to ready with the configured
// duration for the current mode. Always safe to call; the linked task is
// kept. Partial elapsed time is discarded: Complete is the only path that
// writes history.
func Reset(s State, d Durations, now time.Time) State {
	s.Stage = StageReady
	s.Paused = false
	s.RemainingSeconds = d.Seconds(s.Mode)
	s.TotalSeconds = d.Seconds(s.Mode)
	s.TargetEnd = time.Time{}
	s.LastUpdated = now
	return s
}

// LinkTask binds the flow to a task. Allowed from ready or completed only.
func LinkTask(s State, taskID string, now time.Time) (State, error) {
	guard := CanLinkTask(LinkContext{Stage: s.Stage})
	if !guard.Allowed {
		return s, guard.Error()
	}
	s.LinkedTaskID = taskID
	s.LastUpdated = now
	return s, nil
}

// UnlinkTask clears the task binding. Same guard as LinkTask.
func UnlinkTask(s State, now time.Time) (State, error) {
	return LinkTask(s, "", now)
}
