package reward

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"task_completion", false},
		{"tasks_total", false},
		{"focus_completion", false},
		{"focus_sessions_total", false},
		{"focus_time", false},
		{"consecutive_focus", false},
		{"consecutive_tasks", false},
		{"consecutive_days", false},
		{"vision_board_created", false},
		{"focus_session", true}, // legacy spelling, not in the closed set
		{"", true},
		{"bogus", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := Parse(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("Parse(%q) err = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestTriggerListsAreSubsetsOfAll(t *testing.T) {
	known := make(map[ConditionType]bool)
	for _, c := range All() {
		known[c] = true
	}

	lists := map[string][]ConditionType{
		"focus":  FocusCompletionConditions(),
		"task":   TaskCompletionConditions(),
		"vision": VisionConditions(),
	}
	for name, list := range lists {
		for _, c := range list {
			if !known[c] {
				t.Errorf("%s trigger list contains unknown condition %q", name, c)
			}
		}
	}
}
