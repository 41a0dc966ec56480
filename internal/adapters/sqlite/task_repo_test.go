package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/example/flowdeck/internal/adapters/sqlite"
	"github.com/example/flowdeck/internal/ports/secondary"
)

func TestTaskCreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	seedUser(t, db, "")
	repo := sqlite.NewTaskRepository(db)
	ctx := context.Background()

	err := repo.Create(ctx, &secondary.TaskRecord{
		ID:     "TASK-001",
		UserID: "USER-001",
		Name:   "Write report",
		Note:   "due friday",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	task, err := repo.GetByID(ctx, "USER-001", "TASK-001")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if task.Name != "Write report" || task.Note != "due friday" {
		t.Errorf("unexpected task: %+v", task)
	}
	if task.Completed {
		t.Error("expected new task to be open")
	}
	if task.CreatedAt == "" {
		t.Error("expected created timestamp")
	}
}

func TestTaskGetScopedToUser(t *testing.T) {
	db := setupTestDB(t)
	seedUser(t, db, "USER-001")
	seedUser(t, db, "USER-002")
	seedTask(t, db, "TASK-001", "USER-001", "")
	repo := sqlite.NewTaskRepository(db)

	if _, err := repo.GetByID(context.Background(), "USER-002", "TASK-001"); err == nil {
		t.Error("expected another user's task to be invisible")
	}
}

func TestTaskListFilter(t *testing.T) {
	db := setupTestDB(t)
	seedUser(t, db, "")
	seedTask(t, db, "TASK-001", "", "Write report")
	seedTask(t, db, "TASK-002", "", "Review design")
	repo := sqlite.NewTaskRepository(db)
	ctx := context.Background()

	if err := repo.SetCompleted(ctx, "USER-001", "TASK-002", true); err != nil {
		t.Fatalf("SetCompleted failed: %v", err)
	}

	all, err := repo.List(ctx, "USER-001", secondary.TaskFilters{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("expected 2 tasks, got %d", len(all))
	}

	done := true
	completed, err := repo.List(ctx, "USER-001", secondary.TaskFilters{Completed: &done})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(completed) != 1 || completed[0].ID != "TASK-002" {
		t.Errorf("expected only TASK-002 completed, got %+v", completed)
	}
}

func TestTaskSetCompletedStampsAndClears(t *testing.T) {
	db := setupTestDB(t)
	seedUser(t, db, "")
	seedTask(t, db, "", "", "")
	repo := sqlite.NewTaskRepository(db)
	ctx := context.Background()

	if err := repo.SetCompleted(ctx, "USER-001", "TASK-001", true); err != nil {
		t.Fatalf("SetCompleted failed: %v", err)
	}
	task, err := repo.GetByID(ctx, "USER-001", "TASK-001")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if !task.Completed || task.CompletedAt == "" {
		t.Errorf("expected completed with timestamp, got %+v", task)
	}

	if err := repo.SetCompleted(ctx, "USER-001", "TASK-001", false); err != nil {
		t.Fatalf("SetCompleted failed: %v", err)
	}
	task, err = repo.GetByID(ctx, "USER-001", "TASK-001")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if task.Completed || task.CompletedAt != "" {
		t.Errorf("expected reopened with cleared timestamp, got %+v", task)
	}

	if err := repo.SetCompleted(ctx, "USER-001", "TASK-999", true); err == nil {
		t.Error("expected error for unknown task")
	}
}

func TestTaskGetNextID(t *testing.T) {
	db := setupTestDB(t)
	seedUser(t, db, "")
	repo := sqlite.NewTaskRepository(db)
	ctx := context.Background()

	id, err := repo.GetNextID(ctx)
	if err != nil {
		t.Fatalf("GetNextID failed: %v", err)
	}
	if id != "TASK-001" {
		t.Errorf("expected TASK-001, got %s", id)
	}

	seedTask(t, db, "TASK-007", "", "")
	id, err = repo.GetNextID(ctx)
	if err != nil {
		t.Fatalf("GetNextID failed: %v", err)
	}
	if id != "TASK-008" {
		t.Errorf("expected TASK-008, got %s", id)
	}
}

func TestTaskCompletionCounters(t *testing.T) {
	db := setupTestDB(t)
	seedUser(t, db, "")
	seedTask(t, db, "TASK-001", "", "")
	seedTask(t, db, "TASK-002", "", "")
	seedTask(t, db, "TASK-003", "", "")
	repo := sqlite.NewTaskRepository(db)
	ctx := context.Background()

	if err := repo.SetCompleted(ctx, "USER-001", "TASK-001", true); err != nil {
		t.Fatalf("SetCompleted failed: %v", err)
	}
	if err := repo.SetCompleted(ctx, "USER-001", "TASK-002", true); err != nil {
		t.Fatalf("SetCompleted failed: %v", err)
	}

	count, err := repo.CountCompleted(ctx, "USER-001")
	if err != nil {
		t.Fatalf("CountCompleted failed: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 completed, got %d", count)
	}

	since, err := repo.CountCompletedSince(ctx, "USER-001", time.Now().UTC().Add(-time.Hour))
	if err != nil {
		t.Fatalf("CountCompletedSince failed: %v", err)
	}
	if since != 2 {
		t.Errorf("expected 2 completed in window, got %d", since)
	}

	days, err := repo.CountDistinctCompletionDaysSince(ctx, "USER-001", time.Now().UTC().Add(-72*time.Hour))
	if err != nil {
		t.Fatalf("CountDistinctCompletionDaysSince failed: %v", err)
	}
	if days != 1 {
		t.Errorf("expected 1 completion day, got %d", days)
	}
}

func TestTaskCompletionCountsInWindowAcrossZones(t *testing.T) {
	db := setupTestDB(t)
	seedUser(t, db, "")
	seedTask(t, db, "", "", "")
	repo := sqlite.NewTaskRepository(db)
	ctx := context.Background()

	if err := repo.SetCompleted(ctx, "USER-001", "TASK-001", true); err != nil {
		t.Fatalf("SetCompleted failed: %v", err)
	}

	tokyo := time.FixedZone("UTC+9", 9*3600)
	since := time.Now().In(tokyo).Add(-time.Hour)

	count, err := repo.CountCompletedSince(ctx, "USER-001", since)
	if err != nil {
		t.Fatalf("CountCompletedSince failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected the just-completed task in a 1h window, got %d", count)
	}

	days, err := repo.CountDistinctCompletionDaysSince(ctx, "USER-001", since)
	if err != nil {
		t.Fatalf("CountDistinctCompletionDaysSince failed: %v", err)
	}
	if days != 1 {
		t.Errorf("expected 1 completion day in window, got %d", days)
	}
}

func TestTaskResolve(t *testing.T) {
	db := setupTestDB(t)
	seedUser(t, db, "")
	seedTask(t, db, "TASK-001", "", "Write report")
	repo := sqlite.NewTaskRepository(db)
	ctx := context.Background()

	name, err := repo.Resolve(ctx, "USER-001", "TASK-001")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if name != "Write report" {
		t.Errorf("expected task name, got %q", name)
	}

	// A deleted task resolves to empty, not an error.
	if err := repo.Delete(ctx, "USER-001", "TASK-001"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	name, err = repo.Resolve(ctx, "USER-001", "TASK-001")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if name != "" {
		t.Errorf("expected empty name for deleted task, got %q", name)
	}
}

func TestTaskDeleteUnknown(t *testing.T) {
	db := setupTestDB(t)
	seedUser(t, db, "")
	repo := sqlite.NewTaskRepository(db)

	if err := repo.Delete(context.Background(), "USER-001", "TASK-999"); err == nil {
		t.Error("expected error deleting unknown task")
	}
}
