// Package flow contains the pure logic for the focus flow state machine.
// Transitions are pure functions over State values: they take a state and a
// clock reading and return a new state or a policy error. Persistence and
// reward side effects live in the application layer.
package flow

import "time"

// Mode identifies which kind of segment the timer counts down.
type Mode string

const (
	ModeFocus      Mode = "focus"
	ModeShortBreak Mode = "short_break"
	ModeLongBreak  Mode = "long_break"
)

// IsBreak reports whether the mode is one of the break modes.
func (m Mode) IsBreak() bool {
	return m == ModeShortBreak || m == ModeLongBreak
}

// Valid reports whether the mode is a known value.
func (m Mode) Valid() bool {
	return m == ModeFocus || m == ModeShortBreak || m == ModeLongBreak
}

// Stage is the lifecycle position of a flow. A paused timer is a variant of
// StageRunning with the Paused sub-flag set, not a stage of its own: it
// shares all other semantics with running (resettable, duration locked).
type Stage string

const (
	StageReady     Stage = "ready"
	StageRunning   Stage = "running"
	StageCompleted Stage = "completed"
)

// State is one user's flow at a point in time.
//
// Invariant: TargetEnd is set exactly while Stage == StageRunning and the
// timer is not paused; in every other configuration it is the zero time and
// RemainingSeconds is authoritative.
type State struct {
	Mode             Mode
	Stage            Stage
	Paused           bool
	LinkedTaskID     string // weak reference; empty means no task
	RemainingSeconds int
	// TotalSeconds is the segment's configured duration, fixed at configure
	// or reset. Settings changed mid-segment do not affect it, so the
	// duration credited at completion is the one the segment ran with.
	TotalSeconds int
	TargetEnd    time.Time
	LastUpdated  time.Time
}

// NewReady returns an idle flow in the given mode with its full configured
// duration on the clock.
func NewReady(mode Mode, d Durations, now time.Time) State {
	return State{
		Mode:             mode,
		Stage:            StageReady,
		RemainingSeconds: d.Seconds(mode),
		TotalSeconds:     d.Seconds(mode),
		LastUpdated:      now,
	}
}

// Running reports whether the flow is in the running stage, paused or not.
func (s State) Running() bool {
	return s.Stage == StageRunning
}

// RemainingAt returns the seconds left on the timer as observed at now.
// While running and not paused this is derived from the absolute target end
// time, never from per-tick decrements, which makes the countdown robust to
// irregular polling.
func (s State) RemainingAt(now time.Time) int {
	if s.Stage == StageRunning && !s.Paused && !s.TargetEnd.IsZero() {
		r := int(s.TargetEnd.Sub(now).Round(time.Second).Seconds())
		if r < 0 {
			return 0
		}
		return r
	}
	return s.RemainingSeconds
}
