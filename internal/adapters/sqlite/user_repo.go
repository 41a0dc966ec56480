package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/flowdeck/internal/ports/secondary"
)

// UserRepository implements secondary.UserRepository with SQLite.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new SQLite user repository.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create persists a new user.
func (r *UserRepository) Create(ctx context.Context, user *secondary.UserRecord) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO users (id, name) VALUES (?, ?)",
		user.ID, user.Name,
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// GetByID retrieves a user by ID.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*secondary.UserRecord, error) {
	var createdAt time.Time
	record := &secondary.UserRecord{}
	err := r.db.QueryRowContext(ctx,
		"SELECT id, name, created_at FROM users WHERE id = ?",
		id,
	).Scan(&record.ID, &record.Name, &createdAt)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	record.CreatedAt = createdAt.Format(time.RFC3339)
	return record, nil
}

// GetNextID returns the next available user ID.
func (r *UserRepository) GetNextID(ctx context.Context) (string, error) {
	var maxID int
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(CAST(SUBSTR(id, 6) AS INTEGER)), 0) FROM users",
	).Scan(&maxID)
	if err != nil {
		return "", fmt.Errorf("failed to get next user ID: %w", err)
	}

	return fmt.Sprintf("USER-%03d", maxID+1), nil
}

// Ensure UserRepository implements the interface
var _ secondary.UserRepository = (*UserRepository)(nil)
