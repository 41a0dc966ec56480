package flow

import "fmt"

// Duration bounds in minutes. Product policy constants, enforced when
// settings are saved, not baked into the state machine itself.
const (
	MinFocusMinutes      = 5
	MaxFocusMinutes      = 60
	MinShortBreakMinutes = 5
	MaxShortBreakMinutes = 15
	MinLongBreakMinutes  = 15
	MaxLongBreakMinutes  = 30
)

// Durations holds the configured segment lengths for one user, in minutes.
type Durations struct {
	FocusMinutes      int
	ShortBreakMinutes int
	LongBreakMinutes  int
}

// DefaultDurations returns the stock 25/5/15 configuration.
func DefaultDurations() Durations {
	return Durations{
		FocusMinutes:      25,
		ShortBreakMinutes: 5,
		LongBreakMinutes:  15,
	}
}

// Seconds returns the configured duration for a mode in seconds.
func (d Durations) Seconds(mode Mode) int {
	switch mode {
	case ModeShortBreak:
		return d.ShortBreakMinutes * 60
	case ModeLongBreak:
		return d.LongBreakMinutes * 60
	default:
		return d.FocusMinutes * 60
	}
}

// Validate checks all three durations against their bounds.
func (d Durations) Validate() error {
	if d.FocusMinutes < MinFocusMinutes || d.FocusMinutes > MaxFocusMinutes {
		return fmt.Errorf("focus duration must be between %d and %d minutes", MinFocusMinutes, MaxFocusMinutes)
	}
	if d.ShortBreakMinutes < MinShortBreakMinutes || d.ShortBreakMinutes > MaxShortBreakMinutes {
		return fmt.Errorf("short break duration must be between %d and %d minutes", MinShortBreakMinutes, MaxShortBreakMinutes)
	}
	if d.LongBreakMinutes < MinLongBreakMinutes || d.LongBreakMinutes > MaxLongBreakMinutes {
		return fmt.Errorf("long break duration must be between %d and %d minutes", MinLongBreakMinutes, MaxLongBreakMinutes)
	}
	return nil
}
