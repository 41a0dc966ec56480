package app

import (
	"context"
	"fmt"

	"github.com/example/flowdeck/internal/core/reward"
	"github.com/example/flowdeck/internal/ports/primary"
	"github.com/example/flowdeck/internal/ports/secondary"
)

// RewardServiceImpl implements the RewardService interface.
type RewardServiceImpl struct {
	rewardRepo secondary.RewardRepository
	suppliers  map[reward.ConditionType]MetricSupplier
}

// NewRewardService creates a new RewardService with injected dependencies.
func NewRewardService(
	rewardRepo secondary.RewardRepository,
	suppliers map[reward.ConditionType]MetricSupplier,
) *RewardServiceImpl {
	return &RewardServiceImpl{
		rewardRepo: rewardRepo,
		suppliers:  suppliers,
	}
}

// Evaluate grants every unearned rule of the condition type whose threshold
// the metric meets. Multiple rules crossing in one call (say thresholds 1
// and 5 both newly satisfied at 5) are all granted here, not just the
// highest. TryGrant's unique constraint makes repeated calls idempotent: a
// grant that already exists, including one lost to a concurrent insert
// race, is a silent no-op.
func (s *RewardServiceImpl) Evaluate(ctx context.Context, cond reward.ConditionType, metric int) ([]primary.GrantedReward, error) {
	userID, err := userFromContext(ctx)
	if err != nil {
		return nil, err
	}

	rules, err := s.rewardRepo.ListRulesByCondition(ctx, string(cond))
	if err != nil {
		return nil, fmt.Errorf("failed to list reward rules: %w", err)
	}

	var granted []primary.GrantedReward
	for _, rule := range rules {
		if metric < rule.Threshold {
			continue
		}
		ok, err := s.rewardRepo.TryGrant(ctx, userID, rule.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to grant reward %s: %w", rule.ID, err)
		}
		if ok {
			granted = append(granted, primary.GrantedReward{
				ID:          rule.ID,
				Name:        rule.Name,
				Description: rule.Description,
			})
		}
	}

	return granted, nil
}

// EvaluateConditions computes each condition's metric through its supplier
// and evaluates it. A supplier failure skips only that condition; a grant
// store failure fails the whole call.
func (s *RewardServiceImpl) EvaluateConditions(ctx context.Context, conds []reward.ConditionType) (*primary.EvaluationOutcome, error) {
	userID, err := userFromContext(ctx)
	if err != nil {
		return nil, err
	}

	outcome := &primary.EvaluationOutcome{}
	for _, cond := range conds {
		supplier, ok := s.suppliers[cond]
		if !ok {
			outcome.Skipped = append(outcome.Skipped, string(cond))
			continue
		}
		metric, err := supplier(ctx, userID)
		if err != nil {
			outcome.Skipped = append(outcome.Skipped, string(cond))
			continue
		}
		granted, err := s.Evaluate(ctx, cond, metric)
		if err != nil {
			return nil, err
		}
		outcome.Granted = append(outcome.Granted, granted...)
	}

	return outcome, nil
}

// ListEarned returns the user's earned rewards, newest first.
func (s *RewardServiceImpl) ListEarned(ctx context.Context) ([]*primary.EarnedReward, error) {
	userID, err := userFromContext(ctx)
	if err != nil {
		return nil, err
	}

	records, err := s.rewardRepo.ListEarned(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list earned rewards: %w", err)
	}

	earned := make([]*primary.EarnedReward, len(records))
	for i, r := range records {
		earned[i] = &primary.EarnedReward{
			ID:          r.RewardID,
			Name:        r.Name,
			Description: r.Description,
			EarnedAt:    r.EarnedAt,
		}
	}
	return earned, nil
}

// Catalog returns every rule in the reward catalog.
func (s *RewardServiceImpl) Catalog(ctx context.Context) ([]*primary.RewardRule, error) {
	records, err := s.rewardRepo.ListRules(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list reward rules: %w", err)
	}

	rules := make([]*primary.RewardRule, len(records))
	for i, r := range records {
		rules[i] = recordToRule(r)
	}
	return rules, nil
}

// Progress returns every rule with the user's current metric value and
// earned flag. A supplier failure leaves that rule's current value at zero
// rather than failing the whole view.
func (s *RewardServiceImpl) Progress(ctx context.Context) ([]*primary.RewardProgress, error) {
	userID, err := userFromContext(ctx)
	if err != nil {
		return nil, err
	}

	records, err := s.rewardRepo.ListRules(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list reward rules: %w", err)
	}

	// One metric fetch per condition type, not per rule.
	metrics := make(map[reward.ConditionType]int)
	progress := make([]*primary.RewardProgress, 0, len(records))

	for _, r := range records {
		cond, condErr := reward.Parse(r.ConditionType)

		current := 0
		if condErr == nil {
			if v, ok := metrics[cond]; ok {
				current = v
			} else if supplier, ok := s.suppliers[cond]; ok {
				if v, err := supplier(ctx, userID); err == nil {
					metrics[cond] = v
					current = v
				}
			}
		}

		earned, err := s.rewardRepo.HasGrant(ctx, userID, r.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to check grant for %s: %w", r.ID, err)
		}

		progress = append(progress, &primary.RewardProgress{
			Rule:    *recordToRule(r),
			Earned:  earned,
			Current: current,
		})
	}

	return progress, nil
}

func recordToRule(r *secondary.RewardRuleRecord) *primary.RewardRule {
	return &primary.RewardRule{
		ID:            r.ID,
		Name:          r.Name,
		Description:   r.Description,
		ConditionType: r.ConditionType,
		Threshold:     r.Threshold,
	}
}

// Ensure RewardServiceImpl implements the interface
var _ primary.RewardService = (*RewardServiceImpl)(nil)
