package app

import (
	"context"
	"fmt"

	"github.com/example/flowdeck/internal/core/reward"
	"github.com/example/flowdeck/internal/ports/primary"
	"github.com/example/flowdeck/internal/ports/secondary"
)

// VisionServiceImpl implements the VisionService interface.
type VisionServiceImpl struct {
	visionRepo secondary.VisionRepository
	rewards    primary.RewardService
}

// NewVisionService creates a new VisionService with injected dependencies.
func NewVisionService(visionRepo secondary.VisionRepository, rewards primary.RewardService) *VisionServiceImpl {
	return &VisionServiceImpl{
		visionRepo: visionRepo,
		rewards:    rewards,
	}
}

// AddTile adds a tile to the board and evaluates the vision board reward
// condition. The tile stands even when the reward check fails.
func (s *VisionServiceImpl) AddTile(ctx context.Context, req primary.AddTileRequest) (*primary.AddTileResponse, error) {
	userID, err := userFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if req.Title == "" {
		return nil, fmt.Errorf("tile title is required")
	}

	nextID, err := s.visionRepo.GetNextID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tile ID: %w", err)
	}

	record := &secondary.VisionTileRecord{
		ID:      nextID,
		UserID:  userID,
		Title:   req.Title,
		Caption: req.Caption,
	}
	if err := s.visionRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create tile: %w", err)
	}

	resp := &primary.AddTileResponse{
		Tile: &primary.VisionTile{
			ID:      nextID,
			Title:   req.Title,
			Caption: req.Caption,
		},
	}

	outcome, err := s.rewards.EvaluateConditions(ctx, reward.VisionConditions())
	if err == nil {
		resp.Granted = outcome.Granted
	}
	return resp, nil
}

// ListTiles returns the user's tiles.
func (s *VisionServiceImpl) ListTiles(ctx context.Context) ([]*primary.VisionTile, error) {
	userID, err := userFromContext(ctx)
	if err != nil {
		return nil, err
	}

	records, err := s.visionRepo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tiles: %w", err)
	}

	tiles := make([]*primary.VisionTile, len(records))
	for i, r := range records {
		tiles[i] = &primary.VisionTile{
			ID:        r.ID,
			Title:     r.Title,
			Caption:   r.Caption,
			CreatedAt: r.CreatedAt,
		}
	}
	return tiles, nil
}

// RemoveTile deletes a tile.
func (s *VisionServiceImpl) RemoveTile(ctx context.Context, tileID string) error {
	userID, err := userFromContext(ctx)
	if err != nil {
		return err
	}
	return s.visionRepo.Delete(ctx, userID, tileID)
}

// Ensure VisionServiceImpl implements the interface
var _ primary.VisionService = (*VisionServiceImpl)(nil)
