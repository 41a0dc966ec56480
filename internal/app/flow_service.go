package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/example/flowdeck/internal/core/flow"
	"github.com/example/flowdeck/internal/core/reward"
	"github.com/example/flowdeck/internal/ports/primary"
	"github.com/example/flowdeck/internal/ports/secondary"
)

// FlowServiceImpl implements the FlowService interface. It owns the
// in-memory flow state for the lifetime of the process and writes through
// to the persistent flow store on every transition.
//
// Persistence is best-effort: a store failure leaves the in-memory state
// authoritative, surfaces a warning on the snapshot, and is retried
// naturally on the next transition. No transition fails because of it.
type FlowServiceImpl struct {
	flowRepo    secondary.FlowStateRepository
	historyRepo secondary.SessionHistoryRepository
	taskRepo    secondary.TaskRepository
	rewards     primary.RewardService
	clock       flow.Clock
	window      time.Duration

	mu     sync.Mutex
	states map[string]flow.State
}

// NewFlowService creates a new FlowService with injected dependencies.
// window is the resume freshness window.
func NewFlowService(
	flowRepo secondary.FlowStateRepository,
	historyRepo secondary.SessionHistoryRepository,
	taskRepo secondary.TaskRepository,
	rewards primary.RewardService,
	clock flow.Clock,
	window time.Duration,
) *FlowServiceImpl {
	return &FlowServiceImpl{
		flowRepo:    flowRepo,
		historyRepo: historyRepo,
		taskRepo:    taskRepo,
		rewards:     rewards,
		clock:       clock,
		window:      window,
		states:      make(map[string]flow.State),
	}
}

// Status returns the current flow snapshot without mutating anything.
func (s *FlowServiceImpl) Status(ctx context.Context) (*primary.FlowSnapshot, error) {
	userID, err := userFromContext(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	state, _, warnings, err := s.loadState(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.snapshot(ctx, userID, state, warnings), nil
}

// SetMode configures the flow for a mode and resets it to ready.
func (s *FlowServiceImpl) SetMode(ctx context.Context, mode string) (*primary.FlowSnapshot, error) {
	userID, err := userFromContext(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	state, d, warnings, err := s.loadState(ctx, userID)
	if err != nil {
		return nil, err
	}

	completedFocus, err := s.historyRepo.CountCompleted(ctx, userID, string(flow.ModeFocus))
	if err != nil {
		return nil, fmt.Errorf("failed to count completed focus sessions: %w", err)
	}

	state, err = flow.Configure(state, flow.Mode(mode), d, completedFocus, s.clock.Now())
	if err != nil {
		return nil, err
	}

	warnings = s.store(ctx, userID, state, warnings)
	return s.snapshot(ctx, userID, state, warnings), nil
}

// Start begins the countdown from ready, or resumes a paused one.
func (s *FlowServiceImpl) Start(ctx context.Context) (*primary.FlowSnapshot, error) {
	return s.transition(ctx, flow.Start)
}

// Pause freezes the running countdown.
func (s *FlowServiceImpl) Pause(ctx context.Context) (*primary.FlowSnapshot, error) {
	return s.transition(ctx, flow.Pause)
}

// Resume continues a paused countdown.
func (s *FlowServiceImpl) Resume(ctx context.Context) (*primary.FlowSnapshot, error) {
	return s.transition(ctx, flow.Resume)
}

// transition applies a simple clocked transition and writes through.
func (s *FlowServiceImpl) transition(ctx context.Context, fn func(flow.State, time.Time) (flow.State, error)) (*primary.FlowSnapshot, error) {
	userID, err := userFromContext(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	state, _, warnings, err := s.loadState(ctx, userID)
	if err != nil {
		return nil, err
	}

	state, err = fn(state, s.clock.Now())
	if err != nil {
		return nil, err
	}

	warnings = s.store(ctx, userID, state, warnings)
	return s.snapshot(ctx, userID, state, warnings), nil
}

// Tick refreshes remaining time; when the segment has elapsed it runs the
// completion path: history append, aggregate refresh, reward evaluation.
// This is the only path that writes session history.
func (s *FlowServiceImpl) Tick(ctx context.Context) (*primary.TickResult, error) {
	userID, err := userFromContext(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	state, _, warnings, err := s.loadState(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	state, elapsed := flow.Tick(state, now)
	if !elapsed {
		// Checkpoint remaining seconds so an interrupted poll loop resumes
		// with at most one interval lost.
		warnings = s.store(ctx, userID, state, warnings)
		return &primary.TickResult{
			Snapshot: s.snapshot(ctx, userID, state, warnings),
		}, nil
	}

	completedMode := state.Mode
	linkedTask := state.LinkedTaskID
	// The duration credited is the one the segment was configured with, not
	// whatever the settings say now.
	segmentSeconds := state.TotalSeconds
	state = flow.Complete(state, now)

	// The flow transition persists before reward work: a lost transition is
	// more user-visible than a delayed badge.
	warnings = s.store(ctx, userID, state, warnings)

	var sessionID int64
	var granted []primary.GrantedReward

	sessionID, histErr := s.historyRepo.Append(ctx, &secondary.SessionRecord{
		UserID:          userID,
		TaskID:          linkedTask,
		SessionType:     string(completedMode),
		DurationSeconds: segmentSeconds,
		Completed:       true,
		OccurredAt:      now.UTC().Format(time.RFC3339),
	})
	if histErr != nil {
		warnings = append(warnings, fmt.Sprintf("session not recorded: %v", histErr))
	} else if completedMode == flow.ModeFocus {
		outcome, evalErr := s.rewards.EvaluateConditions(ctx, reward.FocusCompletionConditions())
		if evalErr != nil {
			warnings = append(warnings, fmt.Sprintf("reward check failed: %v", evalErr))
		} else {
			granted = outcome.Granted
			for _, skipped := range outcome.Skipped {
				warnings = append(warnings, fmt.Sprintf("reward check skipped for %s", skipped))
			}
		}
	}

	return &primary.TickResult{
		Snapshot:  s.snapshot(ctx, userID, state, warnings),
		Completed: true,
		SessionID: sessionID,
		Granted:   granted,
	}, nil
}

// Reset cancels the current segment. Partial elapsed time is discarded.
func (s *FlowServiceImpl) Reset(ctx context.Context) (*primary.FlowSnapshot, error) {
	userID, err := userFromContext(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	state, d, warnings, err := s.loadState(ctx, userID)
	if err != nil {
		return nil, err
	}

	state = flow.Reset(state, d, s.clock.Now())
	warnings = s.store(ctx, userID, state, warnings)
	return s.snapshot(ctx, userID, state, warnings), nil
}

// LinkTask binds the flow to a task.
func (s *FlowServiceImpl) LinkTask(ctx context.Context, taskID string) (*primary.FlowSnapshot, error) {
	userID, err := userFromContext(ctx)
	if err != nil {
		return nil, err
	}

	name, err := s.taskRepo.Resolve(ctx, userID, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve task: %w", err)
	}
	if name == "" {
		return nil, fmt.Errorf("task %s not found", taskID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	state, _, warnings, err := s.loadState(ctx, userID)
	if err != nil {
		return nil, err
	}

	state, err = flow.LinkTask(state, taskID, s.clock.Now())
	if err != nil {
		return nil, err
	}

	warnings = s.store(ctx, userID, state, warnings)
	return s.snapshot(ctx, userID, state, warnings), nil
}

// UnlinkTask clears the task binding.
func (s *FlowServiceImpl) UnlinkTask(ctx context.Context) (*primary.FlowSnapshot, error) {
	userID, err := userFromContext(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	state, _, warnings, err := s.loadState(ctx, userID)
	if err != nil {
		return nil, err
	}

	state, err = flow.UnlinkTask(state, s.clock.Now())
	if err != nil {
		return nil, err
	}

	warnings = s.store(ctx, userID, state, warnings)
	return s.snapshot(ctx, userID, state, warnings), nil
}

// GetSettings returns the user's timer durations.
func (s *FlowServiceImpl) GetSettings(ctx context.Context) (*primary.FlowSettings, error) {
	userID, err := userFromContext(ctx)
	if err != nil {
		return nil, err
	}

	d, err := s.durations(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &primary.FlowSettings{
		FocusMinutes:      d.FocusMinutes,
		ShortBreakMinutes: d.ShortBreakMinutes,
		LongBreakMinutes:  d.LongBreakMinutes,
	}, nil
}

// UpdateSettings saves timer durations after bounds validation. When the
// flow is idle in the affected mode, its remaining time follows the new
// duration on the next reset or configure.
func (s *FlowServiceImpl) UpdateSettings(ctx context.Context, settings primary.FlowSettings) error {
	userID, err := userFromContext(ctx)
	if err != nil {
		return err
	}

	d := flow.Durations{
		FocusMinutes:      settings.FocusMinutes,
		ShortBreakMinutes: settings.ShortBreakMinutes,
		LongBreakMinutes:  settings.LongBreakMinutes,
	}
	if err := d.Validate(); err != nil {
		return err
	}

	return s.flowRepo.SaveSettings(ctx, &secondary.FlowSettingsRecord{
		UserID:            userID,
		FocusMinutes:      d.FocusMinutes,
		ShortBreakMinutes: d.ShortBreakMinutes,
		LongBreakMinutes:  d.LongBreakMinutes,
	})
}

// Helper methods

// loadState returns the user's flow state, rehydrating from the store on
// first touch in this process. After that the in-memory copy is
// authoritative; the store is write-through only.
func (s *FlowServiceImpl) loadState(ctx context.Context, userID string) (flow.State, flow.Durations, []string, error) {
	var warnings []string

	d, err := s.durations(ctx, userID)
	if err != nil {
		// Degrade to defaults; settings unavailability never blocks the flow.
		warnings = append(warnings, fmt.Sprintf("timer settings unavailable, using defaults: %v", err))
	}

	if state, ok := s.states[userID]; ok {
		return state, d, warnings, nil
	}

	now := s.clock.Now()

	record, err := s.flowRepo.Load(ctx, userID)
	if err != nil {
		// Store unavailable: start fresh in memory and keep going.
		state := flow.NewReady(flow.ModeFocus, d, now)
		s.states[userID] = state
		warnings = append(warnings, fmt.Sprintf("stored flow state unavailable: %v", err))
		return state, d, warnings, nil
	}

	var state flow.State
	if record == nil {
		state = flow.NewReady(flow.ModeFocus, d, now)
	} else {
		state = flow.Rehydrate(recordToState(record), d, s.window, now)
	}

	s.states[userID] = state
	return state, d, warnings, nil
}

// store caches the state in memory and writes it through, appending a
// warning instead of failing when the store is unavailable.
func (s *FlowServiceImpl) store(ctx context.Context, userID string, state flow.State, warnings []string) []string {
	s.states[userID] = state
	if err := s.flowRepo.Save(ctx, stateToRecord(userID, state)); err != nil {
		return append(warnings, fmt.Sprintf("flow state not persisted (will retry): %v", err))
	}
	return warnings
}

// durations loads the user's timer settings, falling back to defaults.
func (s *FlowServiceImpl) durations(ctx context.Context, userID string) (flow.Durations, error) {
	record, err := s.flowRepo.GetSettings(ctx, userID)
	if err != nil {
		return flow.DefaultDurations(), fmt.Errorf("failed to load timer settings: %w", err)
	}
	if record == nil {
		return flow.DefaultDurations(), nil
	}
	return flow.Durations{
		FocusMinutes:      record.FocusMinutes,
		ShortBreakMinutes: record.ShortBreakMinutes,
		LongBreakMinutes:  record.LongBreakMinutes,
	}, nil
}

// snapshot builds the caller-facing view, resolving the linked task name
// for display. Resolver failure never blocks: the name just stays empty.
func (s *FlowServiceImpl) snapshot(ctx context.Context, userID string, state flow.State, warnings []string) *primary.FlowSnapshot {
	snap := &primary.FlowSnapshot{
		Mode:             string(state.Mode),
		Stage:            string(state.Stage),
		Paused:           state.Paused,
		RemainingSeconds: state.RemainingAt(s.clock.Now()),
		LinkedTaskID:     state.LinkedTaskID,
		Warnings:         warnings,
	}
	if state.LinkedTaskID != "" {
		if name, err := s.taskRepo.Resolve(ctx, userID, state.LinkedTaskID); err == nil {
			snap.LinkedTaskName = name
		}
	}
	return snap
}

func recordToState(r *secondary.FlowStateRecord) flow.State {
	return flow.State{
		Mode:             flow.Mode(r.Mode),
		Stage:            flow.Stage(r.Stage),
		Paused:           r.Paused,
		LinkedTaskID:     r.LinkedTaskID,
		RemainingSeconds: r.RemainingSeconds,
		TotalSeconds:     r.TotalSeconds,
		TargetEnd:        r.TargetEnd,
		LastUpdated:      r.LastUpdated,
	}
}

func stateToRecord(userID string, s flow.State) *secondary.FlowStateRecord {
	return &secondary.FlowStateRecord{
		UserID:           userID,
		Mode:             string(s.Mode),
		Stage:            string(s.Stage),
		Paused:           s.Paused,
		LinkedTaskID:     s.LinkedTaskID,
		RemainingSeconds: s.RemainingSeconds,
		TotalSeconds:     s.TotalSeconds,
		TargetEnd:        s.TargetEnd,
		LastUpdated:      s.LastUpdated,
	}
}

// Ensure FlowServiceImpl implements the interface
var _ primary.FlowService = (*FlowServiceImpl)(nil)
