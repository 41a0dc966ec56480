// Package reward contains the pure logic of the reward eligibility engine:
// the closed set of achievement condition types and which of them fire for
// each kind of event. Metric computation and grant persistence live in the
// application layer.
package reward

import "fmt"

// ConditionType is a category of achievement criterion. Each condition maps
// to exactly one integer metric, computed fresh at evaluation time.
type ConditionType string

const (
	// ConditionTaskCompletion fires on the first completed task.
	ConditionTaskCompletion ConditionType = "task_completion"
	// ConditionTasksTotal is the lifetime count of completed tasks.
	ConditionTasksTotal ConditionType = "tasks_total"
	// ConditionConsecutiveTasks counts tasks completed within the last day.
	ConditionConsecutiveTasks ConditionType = "consecutive_tasks"
	// ConditionConsecutiveDays counts distinct days with completed tasks in
	// the last three days.
	ConditionConsecutiveDays ConditionType = "consecutive_days"
	// ConditionFocusCompletion fires on the first completed focus session.
	ConditionFocusCompletion ConditionType = "focus_completion"
	// ConditionFocusSessionsTotal is the lifetime count of completed focus
	// sessions.
	ConditionFocusSessionsTotal ConditionType = "focus_sessions_total"
	// ConditionFocusTime is total completed focus time in seconds.
	ConditionFocusTime ConditionType = "focus_time"
	// ConditionConsecutiveFocus counts focus sessions completed within the
	// last day.
	ConditionConsecutiveFocus ConditionType = "consecutive_focus"
	// ConditionVisionBoardCreated is the number of vision board tiles.
	ConditionVisionBoardCreated ConditionType = "vision_board_created"
)

// All lists every known condition type.
func All() []ConditionType {
	return []ConditionType{
		ConditionTaskCompletion,
		ConditionTasksTotal,
		ConditionConsecutiveTasks,
		ConditionConsecutiveDays,
		ConditionFocusCompletion,
		ConditionFocusSessionsTotal,
		ConditionFocusTime,
		ConditionConsecutiveFocus,
		ConditionVisionBoardCreated,
	}
}

// Parse validates a stored condition-type string against the closed set.
func Parse(s string) (ConditionType, error) {
	c := ConditionType(s)
	for _, known := range All() {
		if c == known {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown condition type %q", s)
}

// FocusCompletionConditions are the condition types re-evaluated when a
// focus segment completes. Breaks record history but trigger no evaluation.
func FocusCompletionConditions() []ConditionType {
	return []ConditionType{
		ConditionFocusCompletion,
		ConditionFocusSessionsTotal,
		ConditionFocusTime,
		ConditionConsecutiveFocus,
	}
}

// TaskCompletionConditions are the condition types re-evaluated when a task
// is completed.
func TaskCompletionConditions() []ConditionType {
	return []ConditionType{
		ConditionTaskCompletion,
		ConditionTasksTotal,
		ConditionConsecutiveTasks,
		ConditionConsecutiveDays,
	}
}

// VisionConditions are the condition types re-evaluated when a vision board
// tile is added.
func VisionConditions() []ConditionType {
	return []ConditionType{
		ConditionVisionBoardCreated,
	}
}
