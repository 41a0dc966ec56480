package primary

import (
	"context"

	"github.com/example/flowdeck/internal/core/reward"
)

// RewardService is the primary port for the reward eligibility engine.
type RewardService interface {
	// Evaluate checks one condition type against a freshly computed metric
	// value and grants every qualifying unearned rule in this single call.
	// A store failure fails the whole evaluation (no partial grants lost
	// silently); callers treat that as a soft failure.
	Evaluate(ctx context.Context, cond reward.ConditionType, metric int) ([]GrantedReward, error)

	// EvaluateConditions computes each condition's metric through its
	// supplier and evaluates it. A supplier failure skips only that
	// condition and is reported in the outcome, never as an error.
	EvaluateConditions(ctx context.Context, conds []reward.ConditionType) (*EvaluationOutcome, error)

	// ListEarned returns the user's earned rewards, newest first.
	ListEarned(ctx context.Context) ([]*EarnedReward, error)

	// Catalog returns every rule in the reward catalog.
	Catalog(ctx context.Context) ([]*RewardRule, error)

	// Progress returns every rule with the user's current metric value and
	// earned flag.
	Progress(ctx context.Context) ([]*RewardProgress, error)
}

// GrantedReward is a newly granted reward returned for display.
type GrantedReward struct {
	ID          string
	Name        string
	Description string
}

// EvaluationOutcome reports grants plus any conditions skipped because
// their metric supplier failed.
type EvaluationOutcome struct {
	Granted []GrantedReward
	Skipped []string
}

// EarnedReward is an earned reward with its grant timestamp.
type EarnedReward struct {
	ID          string
	Name        string
	Description string
	EarnedAt    string
}

// RewardRule is a catalog entry.
type RewardRule struct {
	ID            string
	Name          string
	Description   string
	ConditionType string
	Threshold     int
}

// RewardProgress is a catalog entry annotated with the user's progress.
type RewardProgress struct {
	Rule    RewardRule
	Earned  bool
	Current int
}
