package app

import (
	"context"
	"fmt"

	"github.com/example/flowdeck/internal/core/reward"
	"github.com/example/flowdeck/internal/ports/primary"
	"github.com/example/flowdeck/internal/ports/secondary"
)

// TaskServiceImpl implements the TaskService interface.
type TaskServiceImpl struct {
	taskRepo secondary.TaskRepository
	rewards  primary.RewardService
}

// NewTaskService creates a new TaskService with injected dependencies.
func NewTaskService(taskRepo secondary.TaskRepository, rewards primary.RewardService) *TaskServiceImpl {
	return &TaskServiceImpl{
		taskRepo: taskRepo,
		rewards:  rewards,
	}
}

// CreateTask creates a new task.
func (s *TaskServiceImpl) CreateTask(ctx context.Context, req primary.CreateTaskRequest) (*primary.Task, error) {
	userID, err := userFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if req.Name == "" {
		return nil, fmt.Errorf("task name is required")
	}

	nextID, err := s.taskRepo.GetNextID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate task ID: %w", err)
	}

	record := &secondary.TaskRecord{
		ID:     nextID,
		UserID: userID,
		Name:   req.Name,
		Note:   req.Note,
	}
	if err := s.taskRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	created, err := s.taskRepo.GetByID(ctx, userID, nextID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch created task: %w", err)
	}
	return recordToTask(created), nil
}

// GetTask retrieves a task by ID.
func (s *TaskServiceImpl) GetTask(ctx context.Context, taskID string) (*primary.Task, error) {
	userID, err := userFromContext(ctx)
	if err != nil {
		return nil, err
	}

	record, err := s.taskRepo.GetByID(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}
	return recordToTask(record), nil
}

// ListTasks lists tasks with optional filters.
func (s *TaskServiceImpl) ListTasks(ctx context.Context, filters primary.TaskFilters) ([]*primary.Task, error) {
	userID, err := userFromContext(ctx)
	if err != nil {
		return nil, err
	}

	records, err := s.taskRepo.List(ctx, userID, secondary.TaskFilters{Completed: filters.Completed})
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	tasks := make([]*primary.Task, len(records))
	for i, r := range records {
		tasks[i] = recordToTask(r)
	}
	return tasks, nil
}

// CompleteTask marks a task complete and evaluates task-related reward
// conditions with freshly computed metrics. The completion itself succeeds
// even when reward evaluation fails; the failure surfaces in Skipped.
func (s *TaskServiceImpl) CompleteTask(ctx context.Context, taskID string) (*primary.CompleteTaskResponse, error) {
	userID, err := userFromContext(ctx)
	if err != nil {
		return nil, err
	}

	record, err := s.taskRepo.GetByID(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}
	if record.Completed {
		return nil, fmt.Errorf("task %s is already completed", taskID)
	}

	if err := s.taskRepo.SetCompleted(ctx, userID, taskID, true); err != nil {
		return nil, err
	}

	resp := &primary.CompleteTaskResponse{}

	outcome, err := s.rewards.EvaluateConditions(ctx, reward.TaskCompletionConditions())
	if err != nil {
		// Soft failure: the completed task stands, the badge check retries
		// naturally on the next completion.
		resp.Skipped = append(resp.Skipped, fmt.Sprintf("reward check failed: %v", err))
	} else {
		resp.Granted = outcome.Granted
		resp.Skipped = outcome.Skipped
	}

	completed, err := s.taskRepo.GetByID(ctx, userID, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch completed task: %w", err)
	}
	resp.Task = recordToTask(completed)
	return resp, nil
}

// ReopenTask clears the completed flag.
func (s *TaskServiceImpl) ReopenTask(ctx context.Context, taskID string) error {
	userID, err := userFromContext(ctx)
	if err != nil {
		return err
	}

	record, err := s.taskRepo.GetByID(ctx, userID, taskID)
	if err != nil {
		return err
	}
	if !record.Completed {
		return fmt.Errorf("task %s is not completed", taskID)
	}

	return s.taskRepo.SetCompleted(ctx, userID, taskID, false)
}

// DeleteTask removes a task.
func (s *TaskServiceImpl) DeleteTask(ctx context.Context, taskID string) error {
	userID, err := userFromContext(ctx)
	if err != nil {
		return err
	}
	return s.taskRepo.Delete(ctx, userID, taskID)
}

func recordToTask(r *secondary.TaskRecord) *primary.Task {
	return &primary.Task{
		ID:          r.ID,
		Name:        r.Name,
		Note:        r.Note,
		Completed:   r.Completed,
		CompletedAt: r.CompletedAt,
		CreatedAt:   r.CreatedAt,
	}
}

// Ensure TaskServiceImpl implements the interface
var _ primary.TaskService = (*TaskServiceImpl)(nil)
