package sqlite_test

import (
	"context"
	"testing"

	"github.com/example/flowdeck/internal/adapters/sqlite"
	"github.com/example/flowdeck/internal/ports/secondary"
)

func TestUserCreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewUserRepository(db)
	ctx := context.Background()

	id, err := repo.GetNextID(ctx)
	if err != nil {
		t.Fatalf("GetNextID failed: %v", err)
	}
	if id != "USER-001" {
		t.Errorf("expected USER-001, got %s", id)
	}

	if err := repo.Create(ctx, &secondary.UserRecord{ID: id, Name: "Dana"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	user, err := repo.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if user.Name != "Dana" || user.CreatedAt == "" {
		t.Errorf("unexpected user: %+v", user)
	}

	if _, err := repo.GetByID(ctx, "USER-999"); err == nil {
		t.Error("expected error for unknown user")
	}
}
