package primary

import "context"

// VisionService is the primary port for the vision board.
type VisionService interface {
	// AddTile adds a tile to the board and evaluates the vision board
	// reward condition.
	AddTile(ctx context.Context, req AddTileRequest) (*AddTileResponse, error)

	// ListTiles returns the user's tiles.
	ListTiles(ctx context.Context) ([]*VisionTile, error)

	// RemoveTile deletes a tile.
	RemoveTile(ctx context.Context, tileID string) error
}

// AddTileRequest holds the fields for a new tile.
type AddTileRequest struct {
	Title   string
	Caption string
}

// VisionTile is the caller-facing tile view.
type VisionTile struct {
	ID        string
	Title     string
	Caption   string
	CreatedAt string
}

// AddTileResponse reports the new tile and any rewards it earned.
type AddTileResponse struct {
	Tile    *VisionTile
	Granted []GrantedReward
}
