package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/flowdeck/internal/ports/secondary"
)

// RewardRepository implements secondary.RewardRepository with SQLite.
type RewardRepository struct {
	db *sql.DB
}

// NewRewardRepository creates a new SQLite reward repository.
func NewRewardRepository(db *sql.DB) *RewardRepository {
	return &RewardRepository{db: db}
}

// ListRules retrieves the whole catalog.
func (r *RewardRepository) ListRules(ctx context.Context) ([]*secondary.RewardRuleRecord, error) {
	return r.listRules(ctx, "SELECT id, name, description, condition_type, threshold FROM rewards ORDER BY id")
}

// ListRulesByCondition retrieves catalog rules for one condition type.
func (r *RewardRepository) ListRulesByCondition(ctx context.Context, conditionType string) ([]*secondary.RewardRuleRecord, error) {
	return r.listRules(ctx,
		"SELECT id, name, description, condition_type, threshold FROM rewards WHERE condition_type = ? ORDER BY threshold",
		conditionType,
	)
}

func (r *RewardRepository) listRules(ctx context.Context, query string, args ...any) ([]*secondary.RewardRuleRecord, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list reward rules: %w", err)
	}
	defer rows.Close()

	var rules []*secondary.RewardRuleRecord
	for rows.Next() {
		record := &secondary.RewardRuleRecord{}
		if err := rows.Scan(&record.ID, &record.Name, &record.Description, &record.ConditionType, &record.Threshold); err != nil {
			return nil, fmt.Errorf("failed to scan reward rule: %w", err)
		}
		rules = append(rules, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate reward rules: %w", err)
	}

	return rules, nil
}

// TryGrant atomically records a grant. INSERT OR IGNORE against the unique
// (user_id, reward_id) constraint means a repeat grant, including one lost
// to a concurrent insert race, reports false without an error.
func (r *RewardRepository) TryGrant(ctx context.Context, userID, rewardID string) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		"INSERT OR IGNORE INTO user_rewards (user_id, reward_id) VALUES (?, ?)",
		userID, rewardID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to grant reward: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check grant result: %w", err)
	}

	return affected > 0, nil
}

// HasGrant reports whether the user already earned a reward.
func (r *RewardRepository) HasGrant(ctx context.Context, userID, rewardID string) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM user_rewards WHERE user_id = ? AND reward_id = ?",
		userID, rewardID,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check grant: %w", err)
	}

	return count > 0, nil
}

// ListEarned retrieves the user's earned rewards, newest first.
func (r *RewardRepository) ListEarned(ctx context.Context, userID string) ([]*secondary.EarnedRewardRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT ur.reward_id, rw.name, rw.description, ur.earned_at
		 FROM user_rewards ur
		 JOIN rewards rw ON rw.id = ur.reward_id
		 WHERE ur.user_id = ?
		 ORDER BY ur.earned_at DESC, ur.id DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list earned rewards: %w", err)
	}
	defer rows.Close()

	var earned []*secondary.EarnedRewardRecord
	for rows.Next() {
		var earnedAt time.Time
		record := &secondary.EarnedRewardRecord{}
		if err := rows.Scan(&record.RewardID, &record.Name, &record.Description, &earnedAt); err != nil {
			return nil, fmt.Errorf("failed to scan earned reward: %w", err)
		}
		record.EarnedAt = earnedAt.Format(time.RFC3339)
		earned = append(earned, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate earned rewards: %w", err)
	}

	return earned, nil
}

// Ensure RewardRepository implements the interface
var _ secondary.RewardRepository = (*RewardRepository)(nil)
