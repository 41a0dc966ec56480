package app

import (
	"context"
	"time"

	"github.com/example/flowdeck/internal/core/flow"
	"github.com/example/flowdeck/internal/core/reward"
	"github.com/example/flowdeck/internal/ports/secondary"
)

// Rolling windows for streak-style conditions. Product policy.
const (
	streakWindow          = 24 * time.Hour
	consecutiveDaysWindow = 72 * time.Hour
)

// MetricSupplier computes one integer metric for a user, fresh at
// evaluation time. Metrics are never cached across evaluations.
type MetricSupplier func(ctx context.Context, userID string) (int, error)

// BuildMetricSuppliers wires each condition type to exactly one supplier.
// This lookup table is the single place a condition type meets its metric.
func BuildMetricSuppliers(
	historyRepo secondary.SessionHistoryRepository,
	taskRepo secondary.TaskRepository,
	visionRepo secondary.VisionRepository,
	clock flow.Clock,
) map[reward.ConditionType]MetricSupplier {
	focusType := string(flow.ModeFocus)

	return map[reward.ConditionType]MetricSupplier{
		reward.ConditionTaskCompletion: func(ctx context.Context, userID string) (int, error) {
			return taskRepo.CountCompleted(ctx, userID)
		},
		reward.ConditionTasksTotal: func(ctx context.Context, userID string) (int, error) {
			return taskRepo.CountCompleted(ctx, userID)
		},
		reward.ConditionConsecutiveTasks: func(ctx context.Context, userID string) (int, error) {
			return taskRepo.CountCompletedSince(ctx, userID, clock.Now().Add(-streakWindow))
		},
		reward.ConditionConsecutiveDays: func(ctx context.Context, userID string) (int, error) {
			return taskRepo.CountDistinctCompletionDaysSince(ctx, userID, clock.Now().Add(-consecutiveDaysWindow))
		},
		reward.ConditionFocusCompletion: func(ctx context.Context, userID string) (int, error) {
			return historyRepo.CountCompleted(ctx, userID, focusType)
		},
		reward.ConditionFocusSessionsTotal: func(ctx context.Context, userID string) (int, error) {
			return historyRepo.CountCompleted(ctx, userID, focusType)
		},
		reward.ConditionFocusTime: func(ctx context.Context, userID string) (int, error) {
			return historyRepo.TotalDurationSeconds(ctx, userID, focusType)
		},
		reward.ConditionConsecutiveFocus: func(ctx context.Context, userID string) (int, error) {
			return historyRepo.CountCompletedSince(ctx, userID, focusType, clock.Now().Add(-streakWindow))
		},
		reward.ConditionVisionBoardCreated: func(ctx context.Context, userID string) (int, error) {
			return visionRepo.Count(ctx, userID)
		},
	}
}
