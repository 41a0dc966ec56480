package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/flowdeck/internal/ports/secondary"
)

// VisionRepository implements secondary.VisionRepository with SQLite.
type VisionRepository struct {
	db *sql.DB
}

// NewVisionRepository creates a new SQLite vision board repository.
func NewVisionRepository(db *sql.DB) *VisionRepository {
	return &VisionRepository{db: db}
}

// Create persists a new tile.
func (r *VisionRepository) Create(ctx context.Context, tile *secondary.VisionTileRecord) error {
	var caption sql.NullString
	if tile.Caption != "" {
		caption = sql.NullString{String: tile.Caption, Valid: true}
	}

	_, err := r.db.ExecContext(ctx,
		"INSERT INTO vision_tiles (id, user_id, title, caption) VALUES (?, ?, ?, ?)",
		tile.ID, tile.UserID, tile.Title, caption,
	)
	if err != nil {
		return fmt.Errorf("failed to create vision tile: %w", err)
	}

	return nil
}

// List retrieves all tiles for a user.
func (r *VisionRepository) List(ctx context.Context, userID string) ([]*secondary.VisionTileRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, user_id, title, caption, created_at FROM vision_tiles WHERE user_id = ? ORDER BY id",
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list vision tiles: %w", err)
	}
	defer rows.Close()

	var tiles []*secondary.VisionTileRecord
	for rows.Next() {
		var (
			caption   sql.NullString
			createdAt time.Time
		)
		record := &secondary.VisionTileRecord{}
		if err := rows.Scan(&record.ID, &record.UserID, &record.Title, &caption, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan vision tile: %w", err)
		}
		record.Caption = caption.String
		record.CreatedAt = createdAt.Format(time.RFC3339)
		tiles = append(tiles, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate vision tiles: %w", err)
	}

	return tiles, nil
}

// Delete removes a tile.
func (r *VisionRepository) Delete(ctx context.Context, userID, id string) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM vision_tiles WHERE user_id = ? AND id = ?",
		userID, id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete vision tile: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("vision tile %s not found", id)
	}

	return nil
}

// GetNextID returns the next available tile ID.
func (r *VisionRepository) GetNextID(ctx context.Context) (string, error) {
	var maxID int
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(CAST(SUBSTR(id, 6) AS INTEGER)), 0) FROM vision_tiles",
	).Scan(&maxID)
	if err != nil {
		return "", fmt.Errorf("failed to get next tile ID: %w", err)
	}

	return fmt.Sprintf("TILE-%03d", maxID+1), nil
}

// Count returns the number of tiles on the user's board.
func (r *VisionRepository) Count(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM vision_tiles WHERE user_id = ?",
		userID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count vision tiles: %w", err)
	}

	return count, nil
}

// Ensure VisionRepository implements the interface
var _ secondary.VisionRepository = (*VisionRepository)(nil)
