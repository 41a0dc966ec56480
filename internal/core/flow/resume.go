package flow

import "time"

// Rehydrate applies the resume protocol to a state loaded from the store.
//
// A state persisted within the freshness window is restored: a running
// countdown gets a fresh target end computed from the remaining seconds at
// last write, so time the process spent down does not count against the
// timer. That deliberately trades strict wall-clock accounting for never
// silently failing a session across a restart. A completed state is restored
// as-is so the user still sees the pending what-next prompt.
//
// Anything older than the window is discarded and the flow starts over from
// ready in focus mode. That discard is a designed fallback, not an error.
func Rehydrate(stored State, d Durations, window time.Duration, now time.Time) State {
	if stored.LastUpdated.IsZero() || now.Sub(stored.LastUpdated) > window {
		return NewReady(ModeFocus, d, now)
	}

	// Records written before the total was stored carry a zero; fall back
	// to the configured duration so completion still credits something sane.
	if stored.TotalSeconds == 0 {
		stored.TotalSeconds = d.Seconds(stored.Mode)
	}

	if stored.Stage == StageRunning && !stored.Paused {
		stored.TargetEnd = now.Add(time.Duration(stored.RemainingSeconds) * time.Second)
	} else {
		stored.TargetEnd = time.Time{}
	}
	stored.LastUpdated = now
	return stored
}
