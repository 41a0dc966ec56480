package primary

import "context"

// TaskService is the primary port for the personal task list.
type TaskService interface {
	// CreateTask creates a new task.
	CreateTask(ctx context.Context, req CreateTaskRequest) (*Task, error)

	// GetTask retrieves a task by ID.
	GetTask(ctx context.Context, taskID string) (*Task, error)

	// ListTasks lists tasks with optional filters.
	ListTasks(ctx context.Context, filters TaskFilters) ([]*Task, error)

	// CompleteTask marks a task complete and evaluates task-related reward
	// conditions. Reward failures never fail the completion itself.
	CompleteTask(ctx context.Context, taskID string) (*CompleteTaskResponse, error)

	// ReopenTask clears the completed flag.
	ReopenTask(ctx context.Context, taskID string) error

	// DeleteTask removes a task. Flow states referencing it degrade to
	// "no task" on their own; the reference is weak.
	DeleteTask(ctx context.Context, taskID string) error
}

// CreateTaskRequest holds the fields for a new task.
type CreateTaskRequest struct {
	Name string
	Note string
}

// Task is the caller-facing task view.
type Task struct {
	ID          string
	Name        string
	Note        string
	Completed   bool
	CompletedAt string
	CreatedAt   string
}

// TaskFilters contains filter options for listing tasks.
type TaskFilters struct {
	Completed *bool
}

// CompleteTaskResponse reports the completion and any rewards it earned.
type CompleteTaskResponse struct {
	Task    *Task
	Granted []GrantedReward
	Skipped []string
}
