package app

import (
	"context"
	"fmt"

	"github.com/example/flowdeck/internal/core/flow"
	"github.com/example/flowdeck/internal/ports/primary"
	"github.com/example/flowdeck/internal/ports/secondary"
)

// StatsServiceImpl implements the StatsService interface.
type StatsServiceImpl struct {
	historyRepo secondary.SessionHistoryRepository
}

// NewStatsService creates a new StatsService with injected dependencies.
func NewStatsService(historyRepo secondary.SessionHistoryRepository) *StatsServiceImpl {
	return &StatsServiceImpl{historyRepo: historyRepo}
}

// Summary computes aggregate counters from session history. Everything is
// counted fresh on every call.
func (s *StatsServiceImpl) Summary(ctx context.Context) (*primary.StatsSummary, error) {
	userID, err := userFromContext(ctx)
	if err != nil {
		return nil, err
	}

	summary := &primary.StatsSummary{}

	summary.FocusSessions, err = s.historyRepo.CountCompleted(ctx, userID, string(flow.ModeFocus))
	if err != nil {
		return nil, fmt.Errorf("failed to count focus sessions: %w", err)
	}
	summary.FocusSeconds, err = s.historyRepo.TotalDurationSeconds(ctx, userID, string(flow.ModeFocus))
	if err != nil {
		return nil, fmt.Errorf("failed to sum focus time: %w", err)
	}

	for _, breakType := range []flow.Mode{flow.ModeShortBreak, flow.ModeLongBreak} {
		count, err := s.historyRepo.CountCompleted(ctx, userID, string(breakType))
		if err != nil {
			return nil, fmt.Errorf("failed to count %s sessions: %w", breakType, err)
		}
		seconds, err := s.historyRepo.TotalDurationSeconds(ctx, userID, string(breakType))
		if err != nil {
			return nil, fmt.Errorf("failed to sum %s time: %w", breakType, err)
		}
		summary.BreaksCompleted += count
		summary.BreakSeconds += seconds
	}

	byTask, err := s.historyRepo.SummaryByTask(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate focus time by task: %w", err)
	}
	for _, row := range byTask {
		if row.TaskID == "" {
			summary.UnlinkedSeconds += row.TotalSeconds
			continue
		}
		summary.TaskSummaries = append(summary.TaskSummaries, primary.TaskFocus{
			TaskID:       row.TaskID,
			TaskName:     row.TaskName,
			Sessions:     row.Sessions,
			TotalSeconds: row.TotalSeconds,
		})
	}

	return summary, nil
}

// RecentSessions lists the most recent history rows, newest first.
func (s *StatsServiceImpl) RecentSessions(ctx context.Context, limit int) ([]*primary.SessionEntry, error) {
	userID, err := userFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 10
	}

	records, err := s.historyRepo.ListRecent(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	entries := make([]*primary.SessionEntry, len(records))
	for i, r := range records {
		entries[i] = &primary.SessionEntry{
			ID:              r.ID,
			SessionType:     r.SessionType,
			TaskID:          r.TaskID,
			DurationSeconds: r.DurationSeconds,
			Completed:       r.Completed,
			OccurredAt:      r.OccurredAt,
		}
	}
	return entries, nil
}

// Ensure StatsServiceImpl implements the interface
var _ primary.StatsService = (*StatsServiceImpl)(nil)
